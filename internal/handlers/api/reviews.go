package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"critvue/internal/models"
)

// ReviewHandler serves the reviewer workspace and creator inbox reads.
type ReviewHandler struct {
	store Store
}

// NewReviewHandler creates a new API review handler.
func NewReviewHandler(store Store) *ReviewHandler {
	return &ReviewHandler{store: store}
}

// Mine returns the current user's slots across all requests, optionally
// filtered by status (comma-separated). The list is the workspace's single
// source of truth; every read is fresh from the store.
func (h *ReviewHandler) Mine(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	statuses, ok := parseStatusFilter(c.Query("status", ""))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid status filter")
	}

	slots, err := h.store.ListSlotsByReviewer(c.Context(), user.ID, statuses)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch reviews")
	}

	return jsonSuccess(c, newSlotList(slots))
}

// Pending returns submitted reviews awaiting the current user's decision
// as a creator, ordered soonest deadline first.
func (h *ReviewHandler) Pending(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	slots, err := h.store.ListPendingForCreator(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch pending reviews")
	}

	return jsonSuccess(c, newSlotList(slots))
}

// parseStatusFilter parses a comma-separated status query value. An empty
// value means no filter. Returns false for unknown statuses.
func parseStatusFilter(raw string) ([]models.SlotStatus, bool) {
	if raw == "" {
		return nil, true
	}

	var statuses []models.SlotStatus
	for _, part := range strings.Split(raw, ",") {
		status := models.SlotStatus(strings.TrimSpace(part))
		if !models.ValidSlotStatus(status) {
			return nil, false
		}
		statuses = append(statuses, status)
	}
	return statuses, true
}

// newSlotList projects slots for the wire at a single server timestamp.
func newSlotList(slots []models.ReviewSlot) models.SlotListAPIResponse {
	now := time.Now()
	out := make([]models.SlotAPIResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, models.NewSlotAPIResponse(slot, now))
	}
	return models.SlotListAPIResponse{Slots: out, ServerTime: now}
}
