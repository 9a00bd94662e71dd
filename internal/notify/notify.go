// Package notify sends tenant-facing messages through the mail relay.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"nyumbani/internal/models"
)

type Notifier interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
	SendRentReminder(ctx context.Context, tenant *models.Tenant) error
}

type relayNotifier struct {
	relayURL   string
	from       string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewRelayNotifier(relayURL, from string, logger zerolog.Logger) Notifier {
	return &relayNotifier{
		relayURL: relayURL,
		from:     from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type emailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (n *relayNotifier) SendEmail(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient is required")
	}

	payload, err := json.Marshal(emailPayload{
		From:    n.from,
		To:      recipient,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.relayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email via relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	n.logger.Info().Str("to", recipient).Str("subject", subject).Msg("email sent")
	return nil
}

func (n *relayNotifier) SendRentReminder(ctx context.Context, tenant *models.Tenant) error {
	if tenant.Email == "" {
		return fmt.Errorf("tenant %s has no email address", tenant.Name)
	}

	var due string
	if tenant.Lease != nil && tenant.Lease.DueDate != nil {
		due = tenant.Lease.DueDate.Format("2 January 2006")
	}

	subject := "Rent payment reminder"
	body := fmt.Sprintf("Dear %s,\n\nThis is a reminder that your rent for unit %s is due", tenant.Name, tenant.UnitName)
	if due != "" {
		body += fmt.Sprintf(" on %s", due)
	}
	body += ".\n\nThank you."

	return n.SendEmail(ctx, tenant.Email, subject, body)
}
