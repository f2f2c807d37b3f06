package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/services"
)

type ResumeHandler struct {
	Service *services.ResumeService
}

func NewResumeHandler(service *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{Service: service}
}

type generateResumeRequest struct {
	ProfileID string `json:"profile_id"`
}

func (h *ResumeHandler) GenerateResume(c *fiber.Ctx) error {
	var req generateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if strings.TrimSpace(req.ProfileID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "profile_id is required",
		})
	}

	record, err := h.Service.GenerateResume(c.Context(), req.ProfileID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "Resume generation triggered",
		"data":    fiber.Map{"record_id": record.ID},
	})
}

// GetResume polls for the generated resume text; "pending" until the webhook
// writer has delivered it.
func (h *ResumeHandler) GetResume(c *fiber.Ctx) error {
	profileID := c.Params("profile_id")

	text := h.Service.FetchResume(c.Context(), profileID)
	if text == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No resume generated for this profile",
		})
	}

	status := "ready"
	if *text == "" {
		status = "pending"
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"status": status,
			"resume": *text,
		},
	})
}

// DownloadResume returns the resume as a binary document with a filename
// derived from the profile name.
func (h *ResumeHandler) DownloadResume(c *fiber.Ctx) error {
	profileID := c.Params("profile_id")

	doc, filename, err := h.Service.ExportResume(c.Context(), profileID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
