package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/fiesta-events/backend/config"
)

// Mailer sends plain-text notification emails over SMTP.
type Mailer struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// New creates a mailer.
func New(cfg config.EmailConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Configured reports whether an SMTP host is set; sending is skipped otherwise.
func (m *Mailer) Configured() bool {
	return m.cfg.SMTPHost != ""
}

// Send delivers one email. The caller decides how failures are recorded.
func (m *Mailer) Send(to, subject, body string) error {
	from := m.cfg.FromAddress
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.FromName, from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
