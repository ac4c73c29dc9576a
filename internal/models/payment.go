package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment kind constants.
const (
	PaymentRelease = "release" // reviewer paid on accept
	PaymentRefund  = "refund"  // creator refunded on reject
)

// Payment is a ledger entry tied to a slot's terminal transition. The
// (slot_id, kind) pair is unique, so a slot can never be paid twice.
type Payment struct {
	ID        uuid.UUID `json:"id"`
	SlotID    uuid.UUID `json:"slot_id"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
