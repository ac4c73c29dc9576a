package models

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus is the lifecycle state of a review slot.
type SlotStatus string

const (
	SlotClaimed   SlotStatus = "claimed"
	SlotSubmitted SlotStatus = "submitted"
	SlotAccepted  SlotStatus = "accepted"
	SlotRejected  SlotStatus = "rejected"
	SlotAbandoned SlotStatus = "abandoned"
	// SlotExpired is kept for wire compatibility with older clients; the
	// deadline crossing itself lands slots in SlotAccepted (auto-accept).
	SlotExpired SlotStatus = "expired"
)

// ValidSlotStatus reports whether s is a known slot status.
func ValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotClaimed, SlotSubmitted, SlotAccepted, SlotRejected, SlotAbandoned, SlotExpired:
		return true
	}
	return false
}

// Rejection reason constants.
const (
	ReasonLowQuality = "low_quality"
	ReasonOffTopic   = "off_topic"
	ReasonSpam       = "spam"
	ReasonAbusive    = "abusive"
	ReasonOther      = "other"
)

// ValidRejectionReason reports whether s is a known rejection reason.
func ValidRejectionReason(s string) bool {
	switch s {
	case ReasonLowQuality, ReasonOffTopic, ReasonSpam, ReasonAbusive, ReasonOther:
		return true
	}
	return false
}

// ReviewSlot is one reviewer's claim against one review request.
type ReviewSlot struct {
	ID              uuid.UUID  `json:"id"`
	ReviewRequestID uuid.UUID  `json:"review_request_id"`
	ReviewerID      uuid.UUID  `json:"reviewer_id"`
	Status          SlotStatus `json:"status"`
	ReviewText      *string    `json:"review_text"`
	Rating          *int       `json:"rating"`
	PaymentAmount   *float64   `json:"payment_amount"`
	AutoAcceptAt    *time.Time `json:"auto_accept_at"`
	RejectionReason *string    `json:"rejection_reason"`
	RejectionNotes  *string    `json:"rejection_notes"`

	// Creator's ratings of the reviewer, recorded on accept.
	QualityRating         *int `json:"quality_rating"`
	ProfessionalismRating *int `json:"professionalism_rating"`
	HelpfulnessRating     *int `json:"helpfulness_rating"`
	IsAnonymous           bool `json:"is_anonymous"`

	ClaimedAt  time.Time  `json:"claimed_at"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Urgency tier constants for deadline presentation.
const (
	UrgencyCritical = "critical"
	UrgencySoon     = "soon"
	UrgencyNormal   = "normal"
)

// Urgency returns the display urgency tier for a submitted slot's
// auto-accept deadline, evaluated against the given (server) clock.
// Returns "" for slots without a pending deadline. Presentation only;
// the authoritative deadline check lives in the auto-accept sweep.
func (s *ReviewSlot) Urgency(now time.Time) string {
	if s.Status != SlotSubmitted || s.AutoAcceptAt == nil {
		return ""
	}
	remaining := s.AutoAcceptAt.Sub(now)
	switch {
	case remaining < 6*time.Hour:
		return UrgencyCritical
	case remaining < 24*time.Hour:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// SecondsRemaining returns the whole seconds until auto-accept, or nil when
// no deadline is pending. Never negative; a past deadline reports zero.
func (s *ReviewSlot) SecondsRemaining(now time.Time) *int64 {
	if s.Status != SlotSubmitted || s.AutoAcceptAt == nil {
		return nil
	}
	secs := int64(s.AutoAcceptAt.Sub(now).Seconds())
	if secs < 0 {
		secs = 0
	}
	return &secs
}
