package email

import (
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

// SMTPConfig holds delivery settings for the digest email.
type SMTPConfig struct {
	Server string
	Port   int
	User   string
	Pass   string
	From   string
	To     string
}

// Sender delivers rendered messages via SMTP.
type Sender struct {
	cfg SMTPConfig
}

func NewSender(cfg SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers a message with HTML body and plain text fallback.
func (s *Sender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	dialer := gomail.NewDialer(s.cfg.Server, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
