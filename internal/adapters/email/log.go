package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LogSender simulates delivery by writing the full email to the log.
// Used whenever no provider key is configured.
type LogSender struct{}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the email but does not deliver it.
// PRE: req has at least one recipient
// POST: Returns a simulated result with a fresh message ID
func (s *LogSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	id := "sim-" + uuid.NewString()
	slog.Info("simulated_email_send",
		"message_id", id,
		"to", req.To,
		"subject", req.Subject,
		"body", req.Text,
	)
	return SendResult{
		MessageID: id,
		SentAt:    time.Now(),
		Simulated: true,
	}, nil
}
