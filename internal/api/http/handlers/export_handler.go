package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/export"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/pkg/util"
)

// ExportHandler serves the back-office CSV downloads.
type ExportHandler struct {
	requests  *store.RequestStore
	directory *store.UserDirectory
}

// NewExportHandler constructs handler.
func NewExportHandler(requests *store.RequestStore, directory *store.UserDirectory) *ExportHandler {
	return &ExportHandler{requests: requests, directory: directory}
}

// Requests handles GET /api/admin/export/requests.csv.
func (h *ExportHandler) Requests(c *fiber.Ctx) error {
	return sendCSV(c, "service-requests.csv", export.ServiceRequestsCSV(h.requests.ListAll()))
}

// Users handles GET /api/admin/export/users.csv.
func (h *ExportHandler) Users(c *fiber.Ctx) error {
	return sendCSV(c, "users.csv", export.UserProfilesCSV(h.directory.ListAll()))
}

// UserHistory handles GET /api/admin/export/users/:uid/requests.csv.
func (h *ExportHandler) UserHistory(c *fiber.Ctx) error {
	uid := c.Params("uid")
	profile, err := h.directory.GetUserByID(c.UserContext(), uid)
	if err != nil {
		return err
	}
	if profile == nil {
		return util.NewNotFound("user profile", map[string]any{"uid": uid})
	}

	history := h.directory.GetUserServiceHistory(uid)
	return sendCSV(c, "user-"+uid+"-requests.csv", export.UserHistoryCSV(*profile, history))
}

func sendCSV(c *fiber.Ctx, filename, body string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(body)
}
