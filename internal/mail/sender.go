package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Sender delivers a message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	to     []string
}

func NewResendSender(apiKey, from string, to []string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, errors.New("RESEND_API_KEY not configured")
	}
	if len(to) == 0 {
		return nil, errors.New("no recipients configured")
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from, to: to}, nil
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      s.to,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}
	return sent.Id, nil
}
