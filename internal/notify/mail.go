package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// MailDispatcher sends alerts over SMTP with implicit TLS to a fixed
// recipient.
type MailDispatcher struct {
	client *mail.Client
	from   string
	to     string
}

// NewMail creates a MailDispatcher. The connection is established per
// dispatch; construction only validates settings.
func NewMail(host string, port int, username, password, from, to string) (*MailDispatcher, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: creating mail client: %w", err)
	}
	return &MailDispatcher{client: client, from: from, to: to}, nil
}

// Dispatch composes and sends one department alert. Any transport failure
// comes back as an error for the caller to surface as a warning; the
// classification flow continues regardless.
func (d *MailDispatcher) Dispatch(ctx context.Context, alert Alert) error {
	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if err := msg.To(d.to); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	msg.Subject(Subject(alert.Category))
	msg.SetBodyString(mail.TypeTextPlain, Body(alert, newAlertRef()))

	if err := d.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: sending alert: %w", err)
	}
	return nil
}
