// Package notify implements the notification port.
package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier delivers email through SendGrid.
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridNotifier creates a SendGridNotifier.
func NewSendGridNotifier(apiKey, fromAddress, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

// Notify sends the message. A non-2xx response is an error for the
// caller to log; notification failure never fails the triggering
// operation.
func (n *SendGridNotifier) Notify(_ context.Context, destination, subject, body string, attachment []byte) error {
	message := mail.NewSingleEmail(n.from, subject, mail.NewEmail("", destination), body, "")
	if len(attachment) > 0 {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(attachment))
		att.SetType("application/octet-stream")
		att.SetFilename("attachment")
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	resp, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogNotifier writes notifications to the log instead of delivering
// them. Used in development when no SendGrid key is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message.
func (n *LogNotifier) Notify(_ context.Context, destination, subject, body string, _ []byte) error {
	n.logger.Info("notification (log delivery)",
		"destination", destination, "subject", subject, "body", body)
	return nil
}
