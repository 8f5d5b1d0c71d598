package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/api/dto"
	"github.com/fixware/repairdesk/internal/filter"
	"github.com/fixware/repairdesk/internal/store"
)

// AdminUsersHandler exposes back-office customer management.
type AdminUsersHandler struct {
	directory *store.UserDirectory
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(directory *store.UserDirectory) *AdminUsersHandler {
	return &AdminUsersHandler{directory: directory}
}

// List handles GET /api/admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	profiles := h.directory.ListAll()
	return c.JSON(fiber.Map{
		"data": dto.NewProfileList(profiles),
		"meta": fiber.Map{"total": len(profiles)},
	})
}

// Delete handles DELETE /api/admin/users/:uid. Only the profile record is
// removed; the customer's request history and login stay behind.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.DeleteUser(c.UserContext(), c.Params("uid"), adminID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Requests handles GET /api/admin/users/:uid/requests?period=. History
// lookups work for deleted profiles too.
func (h *AdminUsersHandler) Requests(c *fiber.Ctx) error {
	period := filter.ParsePeriod(c.Query("period", string(filter.PeriodAll)))
	history := h.directory.GetUserServiceHistoryByPeriod(c.Params("uid"), period)
	return c.JSON(fiber.Map{
		"data": dto.NewServiceRequestList(history),
		"meta": fiber.Map{"period": period},
	})
}
