package email

import (
	"context"
	"errors"
	"fmt"

	"timely/internal/models"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrNotConfigured is returned when no SendGrid API key is set
var ErrNotConfigured = errors.New("SendGrid API key not configured")

// Sender delivers a prepared SendGrid message
type Sender interface {
	SendWithContext(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error)
}

// EmailService mails admin notifications via SendGrid
type EmailService struct {
	apiKey    string
	toEmail   string
	fromEmail string
	sender    Sender
}

// NewEmailService creates a new email service instance
func NewEmailService(apiKey, toEmail, fromEmail string) *EmailService {
	if fromEmail == "" {
		fromEmail = "noreply@timely.app"
	}
	es := &EmailService{
		apiKey:    apiKey,
		toEmail:   toEmail,
		fromEmail: fromEmail,
	}
	if apiKey != "" {
		es.sender = sendgrid.NewSendClient(apiKey)
	}
	return es
}

// WithSender replaces the SendGrid client, used by tests
func (es *EmailService) WithSender(sender Sender) *EmailService {
	es.sender = sender
	return es
}

// Enabled reports whether notification emails can be sent
func (es *EmailService) Enabled() bool {
	return es.sender != nil && es.toEmail != ""
}

// SendNotificationEmail mails one admin notification
func (es *EmailService) SendNotificationEmail(ctx context.Context, n models.Notification) error {
	if !es.Enabled() {
		return ErrNotConfigured
	}

	from := mail.NewEmail("Timely Portal", es.fromEmail)
	to := mail.NewEmail("Timely Admin", es.toEmail)

	subject := "[Timely] " + n.Title

	body := fmt.Sprintf(`%s

Client: %s
Type: %s
Time: %s`, n.Message, n.ClientID, n.Type, n.CreatedAt)
	if n.RequestID != "" {
		body += "\nRequest: " + n.RequestID
	}
	if n.MessageID != "" {
		body += "\nMessage: " + n.MessageID
	}

	message := mail.NewSingleEmail(from, subject, to, body, body)

	response, err := es.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
