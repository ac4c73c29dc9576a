package models

import (
	"time"

	"github.com/google/uuid"
)

// Review request status constants.
const (
	RequestOpen      = "open"
	RequestInReview  = "in_review"
	RequestCompleted = "completed"
	RequestCancelled = "cancelled"
)

// ReviewRequest is a creator's ask for feedback. A request exposes a fixed
// number of slots; reviewers claim them independently.
type ReviewRequest struct {
	ID            uuid.UUID `json:"id"`
	CreatorID     uuid.UUID `json:"creator_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TotalSlots    int       `json:"total_slots"`
	OpenSlots     int       `json:"open_slots"`
	PaymentAmount *float64  `json:"payment_amount"` // per-slot offer, nil for free reviews
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
