package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/models"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

type ScholarshipHandler struct {
	Store *store.Store
}

func NewScholarshipHandler(s *store.Store) *ScholarshipHandler {
	return &ScholarshipHandler{Store: s}
}

// ListScholarships returns the catalog, optionally narrowed by ?type= and a
// free-text ?q= filter. Backend degradation is invisible here; the fallback
// catalog is served in its place.
func (h *ScholarshipHandler) ListScholarships(c *fiber.Ctx) error {
	scholarships := h.Store.ListScholarships(c.Context())

	typeFilter := c.Query("type")
	query := strings.ToLower(c.Query("q"))

	if typeFilter != "" || query != "" {
		filtered := make([]models.Scholarship, 0, len(scholarships))
		for _, sc := range scholarships {
			if typeFilter != "" && sc.Type != typeFilter {
				continue
			}
			if query != "" && !scholarshipMatchesQuery(&sc, query) {
				continue
			}
			filtered = append(filtered, sc)
		}
		scholarships = filtered
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    scholarships,
	})
}

func scholarshipMatchesQuery(sc *models.Scholarship, query string) bool {
	if strings.Contains(strings.ToLower(sc.Title), query) ||
		strings.Contains(strings.ToLower(sc.Organization), query) ||
		strings.Contains(strings.ToLower(sc.Description), query) {
		return true
	}
	for _, tag := range sc.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (h *ScholarshipHandler) GetScholarship(c *fiber.Ctx) error {
	id := c.Params("id")
	scholarship := h.Store.GetScholarship(c.Context(), id)
	if scholarship == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Scholarship not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    scholarship,
	})
}

func (h *ScholarshipHandler) CreateScholarship(c *fiber.Ctx) error {
	var scholarship models.Scholarship
	if err := c.BodyParser(&scholarship); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(scholarship.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "title is required",
		})
	}

	created := h.Store.CreateScholarship(c.Context(), scholarship)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// ClearScholarships bulk-deletes every scholarship record from the backend.
// Unlike the other write paths this one is allowed to fail outward.
func (h *ScholarshipHandler) ClearScholarships(c *fiber.Ctx) error {
	deleted, err := h.Store.ClearScholarships(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"deleted": deleted},
	})
}
