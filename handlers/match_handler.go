package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scholarmatch/scholarmatch-backend/services"
	"github.com/scholarmatch/scholarmatch-backend/store"
)

type MatchHandler struct {
	Service *services.MatchService
	Store   *store.Store
}

func NewMatchHandler(service *services.MatchService, s *store.Store) *MatchHandler {
	return &MatchHandler{Service: service, Store: s}
}

type generateMatchesRequest struct {
	ProfileID string `json:"profile_id"`
}

func (h *MatchHandler) GenerateMatches(c *fiber.Ctx) error {
	var req generateMatchesRequest
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

	matches, err := h.Service.GenerateMatches(c.Context(), req.ProfileID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    matches,
	})
}

func (h *MatchHandler) GetMatchesForProfile(c *fiber.Ctx) error {
	profileID := c.Params("id")
	matches := h.Store.MatchesForProfile(c.Context(), profileID)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    matches,
	})
}

type matchStatusRequest struct {
	Status string `json:"status"`
}

func (h *MatchHandler) UpdateMatchStatus(c *fiber.Ctx) error {
	matchID := c.Params("id")

	var req matchStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Status) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "status is required",
		})
	}

	updated := h.Store.UpdateMatchStatus(c.Context(), matchID, req.Status)
	if updated == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Match not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}
