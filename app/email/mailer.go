package email

import (
	"fmt"

	"dailydigest/app/digest"
)

// Mailer renders a digest and delivers it over SMTP.
type Mailer struct {
	renderer *Renderer
	sender   *Sender
}

func NewMailer(renderer *Renderer, sender *Sender) *Mailer {
	return &Mailer{renderer: renderer, sender: sender}
}

func (m *Mailer) Deliver(d *digest.Digest) error {
	msg, err := m.renderer.Render(d)
	if err != nil {
		return fmt.Errorf("failed to render digest email: %w", err)
	}

	if err := m.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}

	return nil
}
