package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/api/dto"
	"github.com/fixware/repairdesk/internal/auth"
	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/filter"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/pkg/util"
)

// AdminRequestsHandler exposes back-office request management.
type AdminRequestsHandler struct {
	requests *store.RequestStore
}

// NewAdminRequestsHandler constructs handler.
func NewAdminRequestsHandler(requests *store.RequestStore) *AdminRequestsHandler {
	return &AdminRequestsHandler{requests: requests}
}

// List handles GET /api/admin/requests with the filter pipeline applied over
// the snapshot.
func (h *AdminRequestsHandler) List(c *fiber.Ctx) error {
	criteria := filter.AdminCriteria{
		Name:   c.Query("name"),
		Email:  c.Query("email"),
		Status: c.Query("status"),
	}

	var err error
	if criteria.DateFrom, err = parseDateQuery(c.Query("date_from"), false); err != nil {
		return util.NewValidationError("invalid date_from", map[string]any{"date_from": c.Query("date_from")})
	}
	if criteria.DateTo, err = parseDateQuery(c.Query("date_to"), true); err != nil {
		return util.NewValidationError("invalid date_to", map[string]any{"date_to": c.Query("date_to")})
	}

	filtered := filter.ByAdminCriteria(h.requests.ListAll(), criteria)
	return c.JSON(fiber.Map{
		"data": dto.NewServiceRequestList(filtered),
		"meta": fiber.Map{"total": len(filtered)},
	})
}

// UpdateStatus handles PATCH /api/admin/requests/:id/status.
func (h *AdminRequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	id := c.Params("id")
	if err := h.requests.UpdateRequestStatus(c.UserContext(), id, domain.RequestStatus(req.Status), adminID(c)); err != nil {
		return err
	}

	updated, err := h.requests.GetRequestByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if updated == nil {
		return util.NewNotFound("service request", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceRequestResponse(*updated)})
}

// UpdateEstimates handles PATCH /api/admin/requests/:id/estimates.
func (h *AdminRequestsHandler) UpdateEstimates(c *fiber.Ctx) error {
	var req dto.UpdateEstimatesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	patch := domain.RequestEstimatesPatch{
		EstimatedPrice:          req.EstimatedPrice,
		EstimatedCompletionTime: req.EstimatedCompletionTime,
		DiagnosedIssue:          req.DiagnosedIssue,
	}

	id := c.Params("id")
	if err := h.requests.UpdateRequestEstimates(c.UserContext(), id, patch, adminID(c)); err != nil {
		return err
	}

	updated, err := h.requests.GetRequestByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if updated == nil {
		return util.NewNotFound("service request", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceRequestResponse(*updated)})
}

// Import handles POST /api/admin/requests/import with a JSON array of
// records exported from the previous backend.
func (h *AdminRequestsHandler) Import(c *fiber.Ctx) error {
	var records []store.LegacyRequestRecord
	if err := c.BodyParser(&records); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(records) == 0 {
		return util.NewValidationError("no records provided", nil)
	}

	imported, err := h.requests.ImportLegacy(c.UserContext(), records)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"imported": imported,
			"skipped":  len(records) - imported,
		},
	})
}

func adminID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Admin != nil {
		return principal.Admin.ID
	}
	return ""
}

// parseDateQuery reads a YYYY-MM-DD bound; the upper bound is pushed to the
// end of its day so the range stays inclusive.
func parseDateQuery(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return parsed, nil
}
