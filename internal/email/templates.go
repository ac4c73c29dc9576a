package email

import (
	"fmt"
	"html"

	"critvue/internal/config"
	"critvue/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #7c3aed; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
    </style>
</head>
<body>
    <div class="header"><h1>Critvue</h1></div>
    <div class="content">%s</div>
    <div class="footer"><p><a href="%s">%s</a></p></div>
</body>
</html>`, html.EscapeString(title), content, t.cfg.BaseURL, t.cfg.BaseURL)
}

// ReviewSubmitted is sent to the creator when a reviewer submits.
func (t *Templates) ReviewSubmitted(slot *models.ReviewSlot, request *models.ReviewRequest) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("New review submitted on %q", request.Title)

	deadline := ""
	if slot.AutoAcceptAt != nil {
		deadline = slot.AutoAcceptAt.Format("Jan 2, 2006 15:04 MST")
	}

	content := fmt.Sprintf(`
        <p>A reviewer has submitted feedback on your request <strong>%s</strong>.</p>
        <div class="info-box">
            <p>If you take no action, the review is automatically accepted on <strong>%s</strong> and the reviewer is paid.</p>
        </div>
        <p>Visit your pending reviews to accept or reject it.</p>`,
		html.EscapeString(request.Title), html.EscapeString(deadline))

	htmlBody = t.baseHTML(subject, content)
	textBody = fmt.Sprintf(
		"A reviewer has submitted feedback on your request %q.\n\n"+
			"If you take no action, the review is automatically accepted on %s.\n\n"+
			"Visit %s to accept or reject it.\n",
		request.Title, deadline, t.cfg.BaseURL)
	return subject, htmlBody, textBody
}

// ReviewAccepted is sent to the reviewer when their review is accepted.
func (t *Templates) ReviewAccepted(slot *models.ReviewSlot, request *models.ReviewRequest, auto bool) (subject, htmlBody, textBody string) {
	how := "The creator accepted"
	if auto {
		how = "The acceptance window passed, so we automatically accepted"
	}
	subject = fmt.Sprintf("Your review of %q was accepted", request.Title)

	paid := ""
	if slot.PaymentAmount != nil {
		paid = fmt.Sprintf(" Your payment of $%.2f has been released.", *slot.PaymentAmount)
	}

	content := fmt.Sprintf(`<p>%s your review of <strong>%s</strong>.%s</p>`,
		how, html.EscapeString(request.Title), paid)
	htmlBody = t.baseHTML(subject, content)
	textBody = fmt.Sprintf("%s your review of %q.%s\n", how, request.Title, paid)
	return subject, htmlBody, textBody
}

// ReviewRejected is sent to the reviewer when their review is rejected.
func (t *Templates) ReviewRejected(slot *models.ReviewSlot, request *models.ReviewRequest) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Your review of %q was not accepted", request.Title)

	reason := ""
	if slot.RejectionReason != nil {
		reason = *slot.RejectionReason
	}
	notes := ""
	if slot.RejectionNotes != nil {
		notes = *slot.RejectionNotes
	}

	content := fmt.Sprintf(`
        <p>The creator did not accept your review of <strong>%s</strong>.</p>
        <div class="info-box">
            <p><strong>Reason:</strong> %s</p>
            <p>%s</p>
        </div>`,
		html.EscapeString(request.Title), html.EscapeString(reason), html.EscapeString(notes))
	htmlBody = t.baseHTML(subject, content)
	textBody = fmt.Sprintf("The creator did not accept your review of %q.\nReason: %s\n%s\n",
		request.Title, reason, notes)
	return subject, htmlBody, textBody
}
