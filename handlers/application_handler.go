package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

type ApplicationHandler struct {
	Store *store.Store
}

func NewApplicationHandler(s *store.Store) *ApplicationHandler {
	return &ApplicationHandler{Store: s}
}

// CreateApplication validates the document list before anything is
// persisted: at least one document, every one with a ".pdf" suffix checked
// case-insensitively. One bad document rejects the whole batch.
func (h *ApplicationHandler) CreateApplication(c *fiber.Ctx) error {
	var req models.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(req.ProfileID) == "" || strings.TrimSpace(req.ScholarshipID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "profile_id and scholarship_id are required",
		})
	}
	if len(req.Documents) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "at least one document is required",
		})
	}
	if invalid := models.InvalidDocuments(req.Documents); len(invalid) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("documents must be PDF files: %s", strings.Join(invalid, ", ")),
		})
	}

	created := h.Store.CreateApplication(c.Context(), models.ScholarshipApplication{
		ProfileID:     req.ProfileID,
		ScholarshipID: req.ScholarshipID,
		Documents:     req.Documents,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	id := c.Params("id")
	application := h.Store.GetApplication(c.Context(), id)
	if application == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Application not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    application,
	})
}
