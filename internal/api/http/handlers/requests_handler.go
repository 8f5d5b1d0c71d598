package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/api/dto"
	"github.com/fixware/repairdesk/internal/auth"
	"github.com/fixware/repairdesk/internal/domain"
	"github.com/fixware/repairdesk/internal/store"
	"github.com/fixware/repairdesk/pkg/util"
)

// RequestsHandler exposes the public intake and tracking endpoints.
type RequestsHandler struct {
	requests *store.RequestStore
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requests *store.RequestStore) *RequestsHandler {
	return &RequestsHandler{requests: requests}
}

// Create handles POST /api/requests. A valid bearer token binds the request
// to the customer; anonymous submissions are accepted too.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := store.AddRequestInput{
		CustomerName:  req.CustomerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ServiceType:   domain.ServiceType(req.ServiceType),
		CustomService: req.CustomService,
		Description:   req.Description,
		Urgency:       domain.Urgency(req.Urgency),
		PreferredDate: req.PreferredDate,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Account != nil {
		uid := principal.Account.ID
		input.UserID = &uid
	}

	id, err := h.requests.AddRequest(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":     id,
			"status": domain.RequestStatusPending,
		},
	})
}

// Track handles GET /api/requests/track?contact=. The lookup never fails:
// an unknown or malformed contact yields an empty list.
func (h *RequestsHandler) Track(c *fiber.Ctx) error {
	contact := c.Query("contact")
	if contact == "" {
		return util.NewValidationError("contact query parameter required", nil)
	}

	requests := h.requests.GetRequestsByContact(c.UserContext(), contact)
	return c.JSON(fiber.Map{"data": dto.NewServiceRequestList(requests)})
}

// GetByID handles GET /api/requests/:id.
func (h *RequestsHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	req, err := h.requests.GetRequestByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if req == nil {
		return util.NewNotFound("service request", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceRequestResponse(*req)})
}
