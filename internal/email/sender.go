package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/skatsaros/go-forms-backend/internal/i18n"
)

// Attachment is one file relayed alongside the notification body.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully rendered mail ready for delivery.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
	Lang        string
}

// Sender delivers notification mail. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a sender using apiKey. from is the bare address;
// the display name is localized per message.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	t := i18n.T(msg.Lang)

	req := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", t("app.name"), s.from),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("email: send to %s: %w", msg.To, err)
	}
	log.Debug().Str("email_id", sent.Id).Str("to", msg.To).Int("attachments", len(msg.Attachments)).Msg("notification delivered")
	return nil
}
