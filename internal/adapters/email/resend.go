package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendCategory tags every message so birthday mail can be filtered in the Resend dashboard.
const resendCategory = "birthday"

var errNoRecipients = errors.New("resend: at least one recipient is required")

// ResendSender delivers birthday emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	now    func() time.Time
}

// NewResendSender builds a sender for apiKey; from is used when a request leaves From empty.
// PRE: apiKey is non-empty
// POST: No network call is made until Send
func NewResendSender(apiKey, from string) *ResendSender {
	return NewResendSenderWithClient(resend.NewClient(apiKey), from)
}

// NewResendSenderWithClient wraps an existing client, e.g. one whose BaseURL points at a fake API.
func NewResendSenderWithClient(client *resend.Client, from string) *ResendSender {
	return &ResendSender{client: client, from: from, now: time.Now}
}

// Send hands one message to Resend with both text and HTML parts.
// PRE: req.To is non-empty
// POST: Returns the provider message ID; Simulated is always false
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, errNoRecipients
	}
	from := req.From
	if from == "" {
		from = s.from
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Text:    req.Text,
		Html:    req.HTML,
		Tags:    []resend.Tag{{Name: "category", Value: resendCategory}},
	})
	if err != nil {
		slog.Error("resend_send_failed", "error", err, "recipients", len(req.To))
		return SendResult{}, fmt.Errorf("resend: send to %d recipient(s): %w", len(req.To), err)
	}

	slog.Info("resend_sent", "message_id", sent.Id, "recipients", len(req.To))
	return SendResult{MessageID: sent.Id, SentAt: s.now()}, nil
}
