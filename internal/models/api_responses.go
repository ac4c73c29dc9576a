package models

import "time"

// SlotAPIResponse wraps a slot with server-computed deadline projections so
// client countdowns and the auto-accept sweep share one clock source.
type SlotAPIResponse struct {
	ReviewSlot
	Urgency          string `json:"urgency,omitempty"`
	SecondsRemaining *int64 `json:"seconds_remaining,omitempty"`
}

// NewSlotAPIResponse builds the API view of a slot at the given server time.
func NewSlotAPIResponse(slot ReviewSlot, now time.Time) SlotAPIResponse {
	return SlotAPIResponse{
		ReviewSlot:       slot,
		Urgency:          slot.Urgency(now),
		SecondsRemaining: slot.SecondsRemaining(now),
	}
}

// SlotListAPIResponse is the envelope for slot list reads, carrying the
// server time the projections were computed at.
type SlotListAPIResponse struct {
	Slots      []SlotAPIResponse `json:"slots"`
	ServerTime time.Time         `json:"server_time"`
}

// ReviewerDirectoryResponse is a page of the reviewer directory.
type ReviewerDirectoryResponse struct {
	Reviewers []User `json:"reviewers"`
	Total     int    `json:"total"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

// RequestWithSlots bundles a request with its slots for the detail view.
type RequestWithSlots struct {
	ReviewRequest
	Slots []SlotAPIResponse `json:"slots"`
}
