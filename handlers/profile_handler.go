package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

type ProfileHandler struct {
	Store *store.Store
}

func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{Store: s}
}

func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	var profile models.StudentProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(profile.Name) == "" || strings.TrimSpace(profile.Email) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "name and email are required",
		})
	}

	created := h.Store.CreateProfile(c.Context(), profile)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	profile := h.Store.GetProfile(c.Context(), id)
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Profile not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	id := c.Params("id")

	var update models.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	updated := h.Store.UpdateProfile(c.Context(), id, &update)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}
