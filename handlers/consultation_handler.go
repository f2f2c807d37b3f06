package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/services"
)

type ConsultationHandler struct {
	Service *services.BookingService
}

func NewConsultationHandler(service *services.BookingService) *ConsultationHandler {
	return &ConsultationHandler{Service: service}
}

func (h *ConsultationHandler) BookConsultation(c *fiber.Ctx) error {
	var req models.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(req.ProfileID) == "" || strings.TrimSpace(req.Counselor) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "profile_id and counselor are required",
		})
	}

	booking, err := h.Service.BookConsultation(c.Context(), &req)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Consultation booked, payment processed",
		"data":    booking,
	})
}
