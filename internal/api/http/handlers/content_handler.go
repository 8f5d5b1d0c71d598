package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/api/dto"
	"github.com/fixware/repairdesk/internal/service"
)

// ContentHandler serves and updates the landing page copy.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Home handles GET /api/content/home.
func (h *ContentHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewContentResponse(h.content.HomePage(c.UserContext()))})
}

// UpdateHome handles PUT /api/admin/content/home.
func (h *ContentHandler) UpdateHome(c *fiber.Ctx) error {
	var req dto.ContentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.content.UpdateHomePage(c.UserContext(), service.ContentUpdateInput{
		HeroTitle:        req.HeroTitle,
		HeroSubtitle:     req.HeroSubtitle,
		ServicesSubtitle: req.ServicesSubtitle,
		RepairsCompleted: req.RepairsCompleted,
		AvgTurnaround:    req.AvgTurnaround,
		Satisfaction:     req.Satisfaction,
		SupportHours:     req.SupportHours,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		ContactAddress:   req.ContactAddress,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContentResponse(updated)})
}
