package greeting

import (
	"errors"
	"fmt"
)

// Tone selects the register of a birthday message.
type Tone string

// Recognized tones.
const (
	ToneFriendly Tone = "friendly"
	ToneFormal   Tone = "formal"
)

// DefaultTone is used when the caller does not pick one.
const DefaultTone = ToneFriendly

// MinRationaleLength is the exclusive lower bound on Explanation.Rationale length.
const MinRationaleLength = 20

// Domain errors
var (
	ErrInvalidTone      = errors.New("tone must be 'friendly' or 'formal'")
	ErrGenerationFailed = errors.New("AI generation failed")
	ErrEmptyMessage     = errors.New("generated message is empty")
)

// GenerationError wraps a failure from the text-generation collaborator.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrGenerationFailed, e.Err)
}

// Unwrap exposes both ErrGenerationFailed and the underlying cause.
func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// ParseTone validates a tone name. Callers substitute DefaultTone for an
// absent tone before parsing; an explicit empty tone is rejected.
// PRE: none
// POST: Returns a recognized Tone or ErrInvalidTone
func ParseTone(s string) (Tone, error) {
	switch Tone(s) {
	case ToneFriendly, ToneFormal:
		return Tone(s), nil
	}
	return "", fmt.Errorf("%w, got %q", ErrInvalidTone, s)
}

// Explanation describes how a message was produced.
type Explanation struct {
	Model      string         `json:"model"`
	Method     string         `json:"method"`
	Parameters map[string]any `json:"parameters"`
	Rationale  string         `json:"rationale"`
}

// Message is a generated birthday message plus its explanation.
type Message struct {
	Message     string      `json:"message"`
	Explanation Explanation `json:"explanation"`
}

// Validate checks the shape every generator must produce.
// PRE: none
// POST: Returns nil when the message is non-empty and the explanation is complete
func (m *Message) Validate() error {
	if m.Message == "" {
		return ErrEmptyMessage
	}
	if m.Explanation.Model == "" || m.Explanation.Method == "" {
		return errors.New("explanation must name the model and method")
	}
	if len(m.Explanation.Rationale) <= MinRationaleLength {
		return fmt.Errorf("explanation rationale must be longer than %d characters", MinRationaleLength)
	}
	return nil
}
