package birthday

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted birth date format.
const DateLayout = "2006-01-02"

// Business rule constants
const (
	MinimumAge         = 18
	UpcomingWindowDays = 30
)

// Domain errors
var (
	ErrInvalidFormat = errors.New("Birth date must be in YYYY-MM-DD format")
	ErrUnderage      = errors.New("member is under the minimum age")
)

// UnderageError reports the age computed for a rejected birth date.
type UnderageError struct {
	Age int
}

func (e *UnderageError) Error() string {
	return fmt.Sprintf("Member must be at least %d years old. Current age would be %d", MinimumAge, e.Age)
}

// Unwrap lets callers match ErrUnderage with errors.Is.
func (e *UnderageError) Unwrap() error {
	return ErrUnderage
}

// Parse reads a birth date strictly as YYYY-MM-DD.
// PRE: none
// POST: Returns the date at UTC midnight, or ErrInvalidFormat for anything that is not a real calendar date
func Parse(text string) (time.Time, error) {
	d, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	return d, nil
}

// Age returns the whole years between birth and today.
// The year only counts once (month, day) reaches the birth (month, day);
// a Feb 29 birth is therefore not a year older until Mar 1 in non-leap years.
// INVARIANT: neither argument is mutated
func Age(birth, today time.Time) int {
	ty, tm, td := today.Date()
	_, bm, bd := birth.Date()
	age := ty - birth.Year()
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// ValidateAdult parses text and checks the MinimumAge rule as of today.
// PRE: today is the caller's current time
// POST: Returns the parsed date, ErrInvalidFormat, or *UnderageError carrying the computed age
func ValidateAdult(text string, today time.Time) (time.Time, error) {
	birth, err := Parse(text)
	if err != nil {
		return time.Time{}, err
	}
	if age := Age(birth, today); age < MinimumAge {
		return time.Time{}, &UnderageError{Age: age}
	}
	return birth, nil
}

// Occurrence returns the birthday anniversary of birth in the given year.
// Feb 29 is moved to Feb 28 when year is not a leap year.
func Occurrence(birth time.Time, year int) time.Time {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysUntilNext returns how many days remain until the next anniversary of the birth date.
// PRE: text is a YYYY-MM-DD date
// POST: Returns a value in [0, 366]; 0 when the birthday is today
func DaysUntilNext(text string, today time.Time) (int, error) {
	birth, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return DaysUntil(birth, today), nil
}

// DaysUntil is DaysUntilNext for an already parsed birth date.
func DaysUntil(birth, today time.Time) int {
	today = dateOf(today)
	next := Occurrence(birth, today.Year())
	if next.Before(today) {
		next = Occurrence(birth, today.Year()+1)
	}
	return int(next.Sub(today).Hours() / 24)
}

// IsUpcoming reports whether days falls inside the upcoming-birthday window.
func IsUpcoming(days int) bool {
	return days <= UpcomingWindowDays
}

// dateOf drops the clock and zone, keeping the caller's calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
