package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to hand a birthday email to a provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address; empty selects the sender's default
	Subject string
	Text    string // Plain-text body
	HTML    string // HTML body rendered from Text
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
	Simulated bool      // True when nothing left the process
}

// Sender is the interface for dispatching emails.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
