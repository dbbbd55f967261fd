package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// EmailChannel sends reminder notices over SMTP.
type EmailChannel struct {
	client *mail.Client
	from   string
}

// NewEmailChannel creates an email channel against the given SMTP server.
// Credentials are optional; leave username empty for unauthenticated relays.
func NewEmailChannel(host string, port int, username, password, from string) (*EmailChannel, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &EmailChannel{client: client, from: from}, nil
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Send(ctx context.Context, msg Message, addr string) error {
	m := mail.NewMsg()
	if err := m.From(e.from); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := m.To(addr); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	m.Subject("Reminder: " + msg.Title)
	m.SetBodyString(mail.TypeTextPlain, msg.Body())

	return e.client.DialAndSendWithContext(ctx, m)
}
