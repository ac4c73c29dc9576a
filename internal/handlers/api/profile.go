package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"critvue/internal/models"
	"critvue/internal/validation"
)

// ProfileHandler serves the current user's profile.
type ProfileHandler struct {
	store Store
}

// NewProfileHandler creates a new API profile handler.
func NewProfileHandler(store Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Me returns the authenticated user's profile.
func (h *ProfileHandler) Me(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return jsonSuccess(c, user)
}

// UpdateMe updates the authenticated user's specialty list. Tier is not
// editable here; it is recomputed from accepted reviews.
func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Specialties []string `json:"specialties"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateSpecialties(body.Specialties); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if body.Specialties == nil {
		body.Specialties = []string{}
	}

	if err := h.store.UpdateUserSpecialties(c.Context(), user.ID, body.Specialties); err != nil {
		return jsonStoreError(c, err, "failed to update profile")
	}

	updated, err := h.store.GetUserByID(c.Context(), user.ID)
	if err != nil {
		return jsonStoreError(c, err, "failed to fetch profile")
	}
	return jsonSuccess(c, updated)
}
