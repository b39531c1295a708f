// Package smtp delivers customer notifications over SMTP using go-mail.
package smtp

import (
	"context"
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/wneessen/go-mail"
)

// Config holds the SMTP connection settings for the mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer implements EmailTransport over a reusable go-mail client.
type Mailer struct {
	client *mail.Client
	from   string
}

// NewMailer creates a Mailer from the given SMTP settings. Credentials are
// optional: when Username is empty the client connects without authentication,
// which covers local relay setups.
func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errs.NewValueIsRequiredError("smtp host")
	}
	if cfg.From == "" {
		return nil, errs.NewValueIsRequiredError("smtp from address")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{client: client, from: cfg.From}, nil
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send message to %s: %w", recipient, err)
	}

	return nil
}
