// Package email sends lifecycle notifications over SMTP.
package email

import (
	"fmt"
	"log/slog"

	mail "github.com/go-mail/mail/v2"

	"critvue/internal/config"
)

// Service handles sending email notifications.
type Service struct {
	cfg     *config.Config
	dialer  *mail.Dialer
	enabled bool
}

// NewService creates a new email service. Sending is a no-op until SMTP is
// configured.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		enabled: cfg.IsEmailEnabled(),
	}

	if s.enabled {
		s.dialer = mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		slog.Info("email notifications enabled", "smtp_host", cfg.SMTPHost, "smtp_port", cfg.SMTPPort)
	} else {
		slog.Info("email notifications disabled (SMTP not configured)")
	}

	return s
}

// IsEnabled returns true if email is enabled.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendEmail sends an email to the specified recipients.
func (s *Service) SendEmail(to []string, subject, htmlBody, textBody string) error {
	if !s.enabled || len(to) == 0 {
		return nil
	}

	m := mail.NewMessage()
	from := s.cfg.SMTPFrom
	if s.cfg.SMTPFromName != "" {
		from = m.FormatAddress(s.cfg.SMTPFrom, s.cfg.SMTPFromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendAsync sends an email in a background goroutine, logging failures.
func (s *Service) SendAsync(to []string, subject, htmlBody, textBody string) {
	if !s.enabled || len(to) == 0 {
		return
	}
	go func() {
		if err := s.SendEmail(to, subject, htmlBody, textBody); err != nil {
			slog.Error("failed to send notification email", "subject", subject, "error", err)
		}
	}()
}
