package models

import (
	"time"

	"github.com/google/uuid"
)

// Reviewer tier constants. Tiers are a reputation bracket used for
// directory filtering; they play no part in the slot lifecycle.
const (
	TierNovice       = "novice"
	TierIntermediate = "intermediate"
	TierAdvanced     = "advanced"
	TierExpert       = "expert"
	TierMaster       = "master"
)

// ValidTier reports whether s is a known reviewer tier.
func ValidTier(s string) bool {
	switch s {
	case TierNovice, TierIntermediate, TierAdvanced, TierExpert, TierMaster:
		return true
	}
	return false
}

// User represents a user authenticated via OIDC. Any user can act as a
// creator (posting review requests) and as a reviewer (claiming slots).
type User struct {
	ID          uuid.UUID `json:"id"`
	Sub         string    `json:"sub"` // OIDC subject identifier
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture"`
	Tier        string    `json:"tier"`
	Specialties []string  `json:"specialties"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
