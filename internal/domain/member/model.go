package member

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Max length constants for user-editable fields, counted in characters.
const (
	MaxNameLength     = 100
	MaxLocationLength = 100
)

// Domain errors
var (
	ErrNotFound = errors.New("Member not found")
	ErrConflict = errors.New("member already exists")
)

// ValidationError reports a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// DuplicateError reports a violation of the (first name, last name, country, city) key.
type DuplicateError struct {
	FirstName string
	LastName  string
	Country   string
	City      string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Member with name '%s %s' in %s, %s already exists", e.FirstName, e.LastName, e.City, e.Country)
}

// Unwrap lets callers match ErrConflict with errors.Is.
func (e *DuplicateError) Unwrap() error {
	return ErrConflict
}

// Member holds state for the concept.
type Member struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate string // YYYY-MM-DD, kept verbatim
	Country   string
	City      string
	CreatedAt time.Time
}

// Normalize trims surrounding whitespace from the text fields.
// BirthDate is left untouched; it must already be in canonical form.
func (m *Member) Normalize() {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.Country = strings.TrimSpace(m.Country)
	m.City = strings.TrimSpace(m.City)
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns *ValidationError for the first invalid field, nil otherwise
// INVARIANT: Names, country and city must not be empty
func (m *Member) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"first_name", m.FirstName, MaxNameLength},
		{"last_name", m.LastName, MaxNameLength},
		{"country", m.Country, MaxLocationLength},
		{"city", m.City, MaxLocationLength},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Message: "cannot be empty"}
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return &ValidationError{Field: f.name, Message: fmt.Sprintf("cannot exceed %d characters", f.max)}
		}
	}
	if strings.TrimSpace(m.BirthDate) == "" {
		return &ValidationError{Field: "birth_date", Message: "cannot be empty"}
	}
	return nil
}

// FullName returns "First Last".
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// Duplicate builds the conflict error for this member's unique key.
func (m *Member) Duplicate() *DuplicateError {
	return &DuplicateError{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Country:   m.Country,
		City:      m.City,
	}
}
