package email

import (
	"strings"
	"testing"
	"time"

	"critvue/internal/config"
	"critvue/internal/models"
)

func testTemplates() *Templates {
	return NewTemplates(&config.Config{BaseURL: "http://localhost:3000"})
}

func TestReviewSubmittedTemplate(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	slot := &models.ReviewSlot{AutoAcceptAt: &deadline}
	request := &models.ReviewRequest{Title: "Logo <feedback>"}

	subject, htmlBody, textBody := testTemplates().ReviewSubmitted(slot, request)

	if !strings.Contains(subject, "Logo <feedback>") {
		t.Errorf("subject = %q, want request title included", subject)
	}
	if strings.Contains(htmlBody, "<feedback>") {
		t.Error("HTML body must escape the request title")
	}
	if !strings.Contains(textBody, "automatically accepted") {
		t.Errorf("text body should mention auto-accept, got %q", textBody)
	}
}

func TestReviewAcceptedTemplate(t *testing.T) {
	amount := 50.0
	slot := &models.ReviewSlot{PaymentAmount: &amount}
	request := &models.ReviewRequest{Title: "Portfolio"}

	_, _, manual := testTemplates().ReviewAccepted(slot, request, false)
	if !strings.Contains(manual, "$50.00") {
		t.Errorf("text body should mention payment, got %q", manual)
	}

	_, _, auto := testTemplates().ReviewAccepted(slot, request, true)
	if !strings.Contains(auto, "automatically") {
		t.Errorf("auto-accept body should say so, got %q", auto)
	}
}

func TestReviewRejectedTemplate(t *testing.T) {
	reason := models.ReasonOther
	notes := "The review ignored the brief."
	slot := &models.ReviewSlot{RejectionReason: &reason, RejectionNotes: &notes}
	request := &models.ReviewRequest{Title: "Portfolio"}

	_, _, textBody := testTemplates().ReviewRejected(slot, request)
	if !strings.Contains(textBody, "other") || !strings.Contains(textBody, notes) {
		t.Errorf("text body should include reason and notes, got %q", textBody)
	}
}
