package email

import (
	"errors"
	"fmt"
	"strings"
)

// Status constants for a birthday email send.
const (
	StatusDryRun = "dry_run"
	StatusSent   = "sent"
)

// Status messages returned to the caller alongside the envelope.
const (
	MessageDryRun    = "Email NOT sent (dry-run mode). Email content logged above."
	MessageSent      = "Email sent successfully (simulated)"
	MessageDelivered = "Email sent successfully"
)

// Domain errors
var (
	ErrEmptySubject = errors.New("email subject is required")
	ErrEmptyBody    = errors.New("email body is required")
	ErrNoRecipient  = errors.New("a recipient is required")
	ErrEmptyDomain  = errors.New("recipient domain is required")
	ErrUnusableName = errors.New("member name cannot form an email address")
)

// Envelope is a composed birthday email.
type Envelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	DryRun  bool   `json:"dry_run"`
}

// Validate checks that the Envelope has valid data.
// PRE: Envelope struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Envelope) Validate() error {
	if e.To == "" {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrEmptySubject
	}
	if e.Body == "" {
		return ErrEmptyBody
	}
	return nil
}

// Result is what a send operation reports back.
type Result struct {
	Status  string   `json:"status"`
	Email   Envelope `json:"email"`
	Message string   `json:"message"`
}

// RecipientAddress derives the synthetic first.last@domain address for a member.
// Names are lower-cased and internal whitespace is dropped.
// PRE: domain is non-empty
// POST: Returns the same address for the same inputs
func RecipientAddress(firstName, lastName, domain string) (string, error) {
	if domain == "" {
		return "", ErrEmptyDomain
	}
	first := localPart(firstName)
	last := localPart(lastName)
	if first == "" || last == "" {
		return "", ErrUnusableName
	}
	return fmt.Sprintf("%s.%s@%s", first, last, domain), nil
}

// Subject returns the birthday subject line for a first name.
func Subject(firstName string) string {
	return fmt.Sprintf("Happy Birthday, %s!", firstName)
}

func localPart(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
