// Package notify delivers account mails such as verification and reset OTPs.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIMailer posts transactional mail to a Brevo-compatible HTTP API.
type APIMailer struct {
	client      *resty.Client
	endpoint    string
	senderEmail string
	senderName  string
}

type sendRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	TextContent string    `json:"textContent"`
}

type contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func NewAPIMailer(endpoint, apiKey, senderEmail, senderName string) *APIMailer {
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	client := resty.New().
		SetTimeout(8*time.Second).
		SetHeader("api-key", apiKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &APIMailer{
		client:      client,
		endpoint:    endpoint,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (m *APIMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("missing recipient email")
	}
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(sendRequest{
			Sender:      contact{Name: m.senderName, Email: m.senderEmail},
			To:          []contact{{Email: to}},
			Subject:     subject,
			TextContent: body,
		}).
		Post(m.endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail API returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	return nil
}

// LogMailer writes mails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("[MAIL] [INFO] to=%s subject=%q body=%q", to, subject, body)
	return nil
}
