// Package mail delivers transactional email.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Message is a single HTML email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a Message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type resendSender struct {
	client *resend.Client
}

// NewResend returns a Sender backed by the Resend API.
func NewResend(apiKey string) (Sender, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return &resendSender{client: resend.NewCustomClient(httpClient, apiKey)}, nil
}

func (s *resendSender) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", errors.New("mail recipient is required")
	}
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return resp.Id, nil
}
