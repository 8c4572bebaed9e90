package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends a single html + plain text email
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, htmlContent, plainText string) error
}

// SendgridMailer delivers mail through the SendGrid v3 API
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgridMailer returns nil when apiKey is empty so callers can skip email
func NewSendgridMailer(apiKey, fromEmail string) *SendgridMailer {
	if apiKey == "" {
		return nil
	}
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("NE Attend", fromEmail),
	}
}

// Send implements Mailer
func (m *SendgridMailer) Send(ctx context.Context, toEmail, toName, subject, htmlContent, plainText string) error {
	if m == nil {
		return errors.New("sendgrid is not configured")
	}
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail(toName, toEmail), plainText, htmlContent)
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
