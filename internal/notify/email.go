package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/farewatch/fare-cli/internal/config"
)

// Email sends the report over SMTP.
type Email struct {
	cfg    config.SMTPConfig
	active bool
}

func NewEmail(cfg *config.Config) *Email {
	return &Email{cfg: cfg.SMTP, active: cfg.ChannelEnabled("email")}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Enabled() (bool, string) {
	if !e.active {
		return false, "channel not in NOTIFY_CHANNELS"
	}
	if e.cfg.Host == "" || e.cfg.From == "" || len(e.cfg.To) == 0 {
		return false, "missing SMTP_HOST, SMTP_FROM or SMTP_TO"
	}
	return true, ""
}

func (e *Email) Send(subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(e.cfg.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	var auth smtp.Auth
	if e.cfg.User != "" && e.cfg.Pass != "" {
		auth = smtp.PlainAuth("", e.cfg.User, e.cfg.Pass, e.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, e.cfg.From, e.cfg.To, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
