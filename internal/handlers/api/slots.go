package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"critvue/internal/config"
	"critvue/internal/db"
	"critvue/internal/email"
	"critvue/internal/lifecycle"
	"critvue/internal/metrics"
	"critvue/internal/models"
	"critvue/internal/validation"
)

// SlotHandler handles slot lifecycle mutations via JSON API.
type SlotHandler struct {
	store    Store
	cfg      *config.Config
	notifier *email.Notifier
}

// NewSlotHandler creates a new API slot handler.
func NewSlotHandler(store Store, cfg *config.Config, notifier *email.Notifier) *SlotHandler {
	return &SlotHandler{store: store, cfg: cfg, notifier: notifier}
}

// Claim claims an open slot on a review request for the current user.
func (h *SlotHandler) Claim(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	slot, err := h.store.ClaimSlot(c.Context(), requestID, user.ID)
	if err != nil {
		return jsonStoreError(c, err, "failed to claim slot")
	}

	metrics.RecordTransition(string(models.SlotClaimed), string(lifecycle.TriggerClaim))
	return jsonSuccess(c, models.NewSlotAPIResponse(*slot, time.Now()))
}

// Submit submits review text and a rating for a claimed slot, starting the
// auto-accept clock.
func (h *SlotHandler) Submit(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}

	var body struct {
		ReviewText string `json:"review_text"`
		Rating     int    `json:"rating"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateSubmission(body.ReviewText, body.Rating); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	slot, err := h.store.SubmitSlot(c.Context(), slotID, user.ID, body.ReviewText, body.Rating, h.cfg.AutoAcceptWindow)
	if err != nil {
		return jsonStoreError(c, err, "failed to submit review")
	}

	metrics.RecordTransition(string(models.SlotSubmitted), string(lifecycle.TriggerSubmit))
	if h.notifier != nil {
		go h.notifier.NotifyReviewSubmitted(context.Background(), slot)
	}

	return jsonSuccess(c, models.NewSlotAPIResponse(*slot, time.Now()))
}

// Accept accepts a submitted review. Only the request owner may accept;
// payment is released as a side effect.
func (h *SlotHandler) Accept(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}

	var body struct {
		QualityRating         *int `json:"quality_rating"`
		ProfessionalismRating *int `json:"professionalism_rating"`
		HelpfulnessRating     *int `json:"helpfulness_rating"`
		IsAnonymous           bool `json:"is_anonymous"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	for _, rating := range []*int{body.QualityRating, body.ProfessionalismRating, body.HelpfulnessRating} {
		if valid, msg := validation.ValidateReviewerRating(rating); !valid {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
	}

	slot, err := h.store.AcceptSlot(c.Context(), slotID, user.ID, db.AcceptOptions{
		QualityRating:         body.QualityRating,
		ProfessionalismRating: body.ProfessionalismRating,
		HelpfulnessRating:     body.HelpfulnessRating,
		IsAnonymous:           body.IsAnonymous,
	})
	if err != nil {
		return jsonStoreError(c, err, "failed to accept review")
	}

	metrics.RecordTransition(string(models.SlotAccepted), string(lifecycle.TriggerAccept))
	if _, err := h.store.RefreshReviewerTier(c.Context(), slot.ReviewerID); err != nil {
		slog.Error("failed to refresh reviewer tier", "reviewer_id", slot.ReviewerID, "error", err)
	}
	if h.notifier != nil {
		go h.notifier.NotifyReviewAccepted(context.Background(), slot, false)
	}

	return jsonSuccess(c, models.NewSlotAPIResponse(*slot, time.Now()))
}

// Reject rejects a submitted review. Requires a reason from the fixed
// enumeration; notes of at least 10 characters when the reason is "other".
// The slot reopens for other reviewers and any payment is refunded.
func (h *SlotHandler) Reject(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}

	var body struct {
		RejectionReason string `json:"rejection_reason"`
		RejectionNotes  string `json:"rejection_notes"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateRejection(body.RejectionReason, body.RejectionNotes); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	slot, err := h.store.RejectSlot(c.Context(), slotID, user.ID, body.RejectionReason, body.RejectionNotes)
	if err != nil {
		return jsonStoreError(c, err, "failed to reject review")
	}

	metrics.RecordTransition(string(models.SlotRejected), string(lifecycle.TriggerReject))
	if h.notifier != nil {
		go h.notifier.NotifyReviewRejected(context.Background(), slot)
	}

	return jsonSuccess(c, models.NewSlotAPIResponse(*slot, time.Now()))
}

// Abandon releases a claimed slot back to its request. Only legal before
// submission.
func (h *SlotHandler) Abandon(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}

	slot, err := h.store.AbandonSlot(c.Context(), slotID, user.ID)
	if err != nil {
		return jsonStoreError(c, err, "failed to abandon slot")
	}

	metrics.RecordTransition(string(models.SlotAbandoned), string(lifecycle.TriggerAbandon))
	return jsonSuccess(c, models.NewSlotAPIResponse(*slot, time.Now()))
}

// Get returns a single slot. Visible only to the reviewer who holds it or
// the owner of its request.
func (h *SlotHandler) Get(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}

	slot, err := h.store.GetSlotByID(c.Context(), slotID)
	if err != nil {
		return jsonStoreError(c, err, "failed to fetch slot")
	}

	if slot.ReviewerID != user.ID {
		request, err := h.store.GetRequestByID(c.Context(), slot.ReviewRequestID)
		if err != nil {
			return jsonStoreError(c, err, "failed to fetch slot")
		}
		if request.CreatorID != user.ID {
			return jsonError(c, fiber.StatusForbidden, "you do not have access to this slot")
		}
	}

	return jsonSuccess(c, models.NewSlotAPIResponse(*slot, time.Now()))
}
