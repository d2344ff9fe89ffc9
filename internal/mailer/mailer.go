// Package mailer delivers transactional email through SendGrid.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"storefront/internal/domain"
)

// Sender is the contract handlers code against.
type Sender interface {
	Send(to, subject, plainBody, htmlBody string) error
}

// Mailer sends through the SendGrid API. One attempt per call; a failed
// delivery surfaces as UpstreamError.
type Mailer struct {
	client *sendgrid.Client
	from   string
}

func New(apiKey, from string) *Mailer {
	return &Mailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (m *Mailer) Send(to, subject, plainBody, htmlBody string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", m.from),
		subject,
		mail.NewEmail("", to),
		plainBody,
		htmlBody,
	)

	resp, err := m.client.Send(message)
	if err != nil {
		return domain.UpstreamError{Service: "mail delivery", Err: err}
	}
	if resp.StatusCode >= 400 {
		return domain.UpstreamError{
			Service: "mail delivery",
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return nil
}
