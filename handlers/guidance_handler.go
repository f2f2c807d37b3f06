package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/services"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

type GuidanceHandler struct {
	Service *services.GuidanceService
	Store   *store.Store
}

func NewGuidanceHandler(service *services.GuidanceService, s *store.Store) *GuidanceHandler {
	return &GuidanceHandler{Service: service, Store: s}
}

func (h *GuidanceHandler) CreateGuidance(c *fiber.Ctx) error {
	var guidance models.ApplicationGuidance
	if err := c.BodyParser(&guidance); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if strings.TrimSpace(guidance.ProfileID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "profile_id is required",
		})
	}

	created, err := h.Service.CreateGuidance(c.Context(), guidance)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

func (h *GuidanceHandler) GetGuidance(c *fiber.Ctx) error {
	id := c.Params("id")
	guidance := h.Store.GetGuidance(c.Context(), id)
	if guidance == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Guidance not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    guidance,
	})
}
