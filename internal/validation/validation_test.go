package validation

import (
	"strings"
	"testing"
)

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name       string
		reviewText string
		rating     int
		want       bool
	}{
		{"valid submission", "Solid composition, but the lighting flattens the subject.", 4, true},
		{"empty text", "", 4, false},
		{"whitespace only text", "   \n\t", 4, false},
		{"rating zero", "Good work overall.", 0, false},
		{"rating too high", "Good work overall.", 6, false},
		{"rating minimum", "Good work overall.", 1, true},
		{"rating maximum", "Good work overall.", 5, true},
		{"text too long", strings.Repeat("a", MaxReviewTextLen+1), 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateSubmission(tt.reviewText, tt.rating)
			if got != tt.want {
				t.Errorf("ValidateSubmission() = %v (%q), want %v", got, msg, tt.want)
			}
			if !got && msg == "" {
				t.Error("ValidateSubmission() returned invalid without a message")
			}
		})
	}
}

func TestValidateRejection(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		notes  string
		want   bool
	}{
		{"spam needs no notes", "spam", "", true},
		{"low quality needs no notes", "low_quality", "", true},
		{"off topic", "off_topic", "", true},
		{"abusive", "abusive", "", true},
		{"empty reason", "", "", false},
		{"unknown reason", "didnt-like-it", "", false},
		{"other with no notes", "other", "", false},
		{"other with short notes", "other", "too short", false},
		{"other with whitespace-padded short notes", "other", "   bad    ", false},
		{"other with sufficient notes", "other", "the review ignored the brief entirely", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateRejection(tt.reason, tt.notes)
			if got != tt.want {
				t.Errorf("ValidateRejection(%q, %q) = %v (%q), want %v", tt.reason, tt.notes, got, msg, tt.want)
			}
		})
	}
}

func TestValidateReviewerRating(t *testing.T) {
	valid := 3
	low := 0
	high := 6

	if ok, _ := ValidateReviewerRating(nil); !ok {
		t.Error("ValidateReviewerRating(nil) should be valid")
	}
	if ok, _ := ValidateReviewerRating(&valid); !ok {
		t.Error("ValidateReviewerRating(3) should be valid")
	}
	if ok, _ := ValidateReviewerRating(&low); ok {
		t.Error("ValidateReviewerRating(0) should be invalid")
	}
	if ok, _ := ValidateReviewerRating(&high); ok {
		t.Error("ValidateReviewerRating(6) should be invalid")
	}
}

func TestValidateRequest(t *testing.T) {
	amount := 50.0
	negative := -5.0

	tests := []struct {
		name       string
		title      string
		totalSlots int
		amount     *float64
		want       bool
	}{
		{"valid request", "Portfolio review", 3, &amount, true},
		{"valid free request", "Portfolio review", 1, nil, true},
		{"empty title", "", 1, nil, false},
		{"zero slots", "Portfolio review", 0, nil, false},
		{"too many slots", "Portfolio review", 21, nil, false},
		{"negative payment", "Portfolio review", 1, &negative, false},
		{"title too long", strings.Repeat("x", 201), 1, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateRequest(tt.title, tt.totalSlots, tt.amount)
			if got != tt.want {
				t.Errorf("ValidateRequest() = %v (%q), want %v", got, msg, tt.want)
			}
		})
	}
}

func TestValidateSpecialties(t *testing.T) {
	tooMany := make([]string, 11)
	for i := range tooMany {
		tooMany[i] = "specialty"
	}

	tests := []struct {
		name        string
		specialties []string
		want        bool
	}{
		{"nil list", nil, true},
		{"valid list", []string{"photography", "ux"}, true},
		{"blank entry", []string{"photography", "   "}, false},
		{"entry too long", []string{strings.Repeat("x", 51)}, false},
		{"too many entries", tooMany, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateSpecialties(tt.specialties)
			if got != tt.want {
				t.Errorf("ValidateSpecialties() = %v (%q), want %v", got, msg, tt.want)
			}
		})
	}
}
