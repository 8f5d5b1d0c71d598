package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/api/dto"
	"github.com/fixware/repairdesk/internal/auth"
	"github.com/fixware/repairdesk/internal/filter"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/pkg/util"
)

// ProfileHandler exposes the signed-in customer's profile and history.
type ProfileHandler struct {
	directory *store.UserDirectory
}

// NewProfileHandler constructs handler.
func NewProfileHandler(directory *store.UserDirectory) *ProfileHandler {
	return &ProfileHandler{directory: directory}
}

// Get handles GET /api/me/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	profile, err := h.directory.GetUserByID(c.UserContext(), principal.Account.ID)
	if err != nil {
		return err
	}
	if profile == nil {
		return util.NewNotFound("user profile", map[string]any{"uid": principal.Account.ID})
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(*profile)})
}

// Patch handles PATCH /api/me/profile.
func (h *ProfileHandler) Patch(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ProfilePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	uid := principal.Account.ID
	if err := h.directory.UpdateUserProfile(c.UserContext(), uid, req.ToPatch()); err != nil {
		return err
	}

	profile, err := h.directory.GetUserByID(c.UserContext(), uid)
	if err != nil {
		return err
	}
	if profile == nil {
		return util.NewNotFound("user profile", map[string]any{"uid": uid})
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(*profile)})
}

// Requests handles GET /api/me/requests?period=all|thisMonth|thisYear.
func (h *ProfileHandler) Requests(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	period := filter.ParsePeriod(c.Query("period", string(filter.PeriodAll)))
	history := h.directory.GetUserServiceHistoryByPeriod(principal.Account.ID, period)
	return c.JSON(fiber.Map{
		"data": dto.NewServiceRequestList(history),
		"meta": fiber.Map{"period": period},
	})
}
