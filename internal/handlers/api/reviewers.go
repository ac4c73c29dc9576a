package api

import (
	"github.com/gofiber/fiber/v3"

	"critvue/internal/db"
	"critvue/internal/models"
)

// ReviewerHandler serves the reviewer directory.
type ReviewerHandler struct {
	store Store
}

// NewReviewerHandler creates a new API reviewer handler.
func NewReviewerHandler(store Store) *ReviewerHandler {
	return &ReviewerHandler{store: store}
}

// List returns a filtered, paginated page of the reviewer directory.
func (h *ReviewerHandler) List(c fiber.Ctx) error {
	tier := c.Query("tier", "")
	if tier != "" && !models.ValidTier(tier) {
		return jsonError(c, fiber.StatusBadRequest, "invalid tier")
	}

	opts := db.ReviewerSearchOpts{
		Search:    c.Query("search", ""),
		Tier:      tier,
		Specialty: c.Query("specialty", ""),
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
		Limit:     fiber.Query(c, "limit", 20),
		Offset:    fiber.Query(c, "offset", 0),
	}

	reviewers, total, err := h.store.SearchReviewers(c.Context(), opts)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch reviewers")
	}
	if reviewers == nil {
		reviewers = []models.User{}
	}

	return jsonSuccess(c, models.ReviewerDirectoryResponse{
		Reviewers: reviewers,
		Total:     total,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	})
}
