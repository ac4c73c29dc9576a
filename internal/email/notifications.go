package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"critvue/internal/config"
	"critvue/internal/models"
)

// RecipientGetter is the slice of the data layer the notifier needs to
// resolve recipients and request context.
type RecipientGetter interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetRequestByID(ctx context.Context, requestID uuid.UUID) (*models.ReviewRequest, error)
}

// Notifier sends email notifications for slot lifecycle events.
type Notifier struct {
	service   *Service
	templates *Templates
	db        RecipientGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db RecipientGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		db:        db,
	}
}

// NotifyReviewSubmitted tells the request owner a review is waiting on them.
func (n *Notifier) NotifyReviewSubmitted(ctx context.Context, slot *models.ReviewSlot) {
	if !n.service.IsEnabled() {
		return
	}

	request, err := n.db.GetRequestByID(ctx, slot.ReviewRequestID)
	if err != nil {
		slog.Error("failed to load request for submit notification", "slot_id", slot.ID, "error", err)
		return
	}
	creator, err := n.db.GetUserByID(ctx, request.CreatorID)
	if err != nil {
		slog.Error("failed to load creator for submit notification", "slot_id", slot.ID, "error", err)
		return
	}

	subject, htmlBody, textBody := n.templates.ReviewSubmitted(slot, request)
	n.service.SendAsync([]string{creator.Email}, subject, htmlBody, textBody)
}

// NotifyReviewAccepted tells the reviewer their review was accepted. auto
// marks deadline-driven acceptance.
func (n *Notifier) NotifyReviewAccepted(ctx context.Context, slot *models.ReviewSlot, auto bool) {
	if !n.service.IsEnabled() {
		return
	}

	request, reviewer, err := n.slotContext(ctx, slot)
	if err != nil {
		slog.Error("failed to load context for accept notification", "slot_id", slot.ID, "error", err)
		return
	}

	subject, htmlBody, textBody := n.templates.ReviewAccepted(slot, request, auto)
	n.service.SendAsync([]string{reviewer.Email}, subject, htmlBody, textBody)
}

// NotifyReviewRejected tells the reviewer their review was rejected.
func (n *Notifier) NotifyReviewRejected(ctx context.Context, slot *models.ReviewSlot) {
	if !n.service.IsEnabled() {
		return
	}

	request, reviewer, err := n.slotContext(ctx, slot)
	if err != nil {
		slog.Error("failed to load context for reject notification", "slot_id", slot.ID, "error", err)
		return
	}

	subject, htmlBody, textBody := n.templates.ReviewRejected(slot, request)
	n.service.SendAsync([]string{reviewer.Email}, subject, htmlBody, textBody)
}

func (n *Notifier) slotContext(ctx context.Context, slot *models.ReviewSlot) (*models.ReviewRequest, *models.User, error) {
	request, err := n.db.GetRequestByID(ctx, slot.ReviewRequestID)
	if err != nil {
		return nil, nil, err
	}
	reviewer, err := n.db.GetUserByID(ctx, slot.ReviewerID)
	if err != nil {
		return nil, nil, err
	}
	return request, reviewer, nil
}
