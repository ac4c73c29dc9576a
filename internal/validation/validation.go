package validation

import (
	"strings"

	"critvue/internal/models"
)

// MinRejectionNotesLen is the minimum length of rejection notes when the
// reason is "other".
const MinRejectionNotesLen = 10

// MaxReviewTextLen bounds submitted review text.
const MaxReviewTextLen = 20000

// ValidateSubmission checks a review submission before any mutation.
// Returns (false, message) on the first failed check.
func ValidateSubmission(reviewText string, rating int) (bool, string) {
	if strings.TrimSpace(reviewText) == "" {
		return false, "review text is required"
	}
	if len(reviewText) > MaxReviewTextLen {
		return false, "review text is too long"
	}
	if rating < 1 || rating > 5 {
		return false, "rating must be between 1 and 5"
	}
	return true, ""
}

// ValidateRejection checks a rejection payload before any mutation.
// Notes are required (and at least MinRejectionNotesLen chars) when the
// reason is "other".
func ValidateRejection(reason, notes string) (bool, string) {
	if reason == "" {
		return false, "rejection reason is required"
	}
	if !models.ValidRejectionReason(reason) {
		return false, "invalid rejection reason"
	}
	if reason == models.ReasonOther && len(strings.TrimSpace(notes)) < MinRejectionNotesLen {
		return false, "rejection notes of at least 10 characters are required when reason is \"other\""
	}
	return true, ""
}

// ValidateReviewerRating checks an optional 1-5 rating of the reviewer.
// A nil rating is always valid.
func ValidateReviewerRating(rating *int) (bool, string) {
	if rating == nil {
		return true, ""
	}
	if *rating < 1 || *rating > 5 {
		return false, "ratings must be between 1 and 5"
	}
	return true, ""
}

// ValidateSpecialties checks a profile's specialty list.
func ValidateSpecialties(specialties []string) (bool, string) {
	if len(specialties) > 10 {
		return false, "at most 10 specialties are allowed"
	}
	for _, s := range specialties {
		if strings.TrimSpace(s) == "" {
			return false, "specialties must not be empty"
		}
		if len(s) > 50 {
			return false, "specialties must be at most 50 characters"
		}
	}
	return true, ""
}

// ValidateRequest checks a new review request payload.
func ValidateRequest(title string, totalSlots int, paymentAmount *float64) (bool, string) {
	if strings.TrimSpace(title) == "" {
		return false, "title is required"
	}
	if len(title) > 200 {
		return false, "title must be at most 200 characters"
	}
	if totalSlots < 1 || totalSlots > 20 {
		return false, "total_slots must be between 1 and 20"
	}
	if paymentAmount != nil && *paymentAmount <= 0 {
		return false, "payment_amount must be positive"
	}
	return true, ""
}
