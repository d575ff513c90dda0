package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/mfdash/internal/config"
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendStatsDigest emails the admin dashboard statistics to the recipients
func (s *Sender) SendStatsDigest(to []string, stats models.Stats, at time.Time) error {
	if len(to) == 0 {
		return fmt.Errorf("no digest recipients")
	}
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required to send email")
	}

	e := NewDigest(s.cfg.SenderEmail, to, stats, at)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %v: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Digest sent to %v: %s", to, e.Subject)
	return nil
}

// NewDigest builds the digest message without sending it
func NewDigest(from string, to []string, stats models.Stats, at time.Time) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = to
	e.Subject = fmt.Sprintf("Microfinance dashboard digest for %s", at.Format("2006-01-02"))

	body := "Hello,\n\nHere is the current state of the microfinance programme.\n\n"
	body += fmt.Sprintf(
		"Loans: %d total, %d pending, %d approved\n"+
			"Savings under management: %.2f\n"+
			"Completed trainings: %d\n",
		int64(stats[models.StatTotalLoans]),
		int64(stats[models.StatPendingLoans]),
		int64(stats[models.StatApprovedLoans]),
		stats[models.StatTotalSavings],
		int64(stats[models.StatCompletedTrainings]),
	)
	body += fmt.Sprintf("\nGenerated %s\n", at.Format("2006-01-02 15:04:05"))
	e.Text = []byte(body)
	return e
}
