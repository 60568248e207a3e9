package birthday_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"celebration/internal/domain/birthday"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestParse tests strict YYYY-MM-DD parsing.
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "1990-03-15", wantErr: false},
		{name: "leap day in leap year", input: "2000-02-29", wantErr: false},
		{name: "leap day in non-leap year", input: "1999-02-29", wantErr: true},
		{name: "impossible day", input: "1990-02-30", wantErr: true},
		{name: "single digit month", input: "1990-3-15", wantErr: true},
		{name: "slashes", input: "1990/03/15", wantErr: true},
		{name: "trailing space", input: "1990-03-15 ", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := birthday.Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, birthday.ErrInvalidFormat) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", tt.input, err)
			}
		})
	}
}

// TestAge tests the birthday-reached-this-year rule.
func TestAge(t *testing.T) {
	today := day(2026, time.October, 15)
	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{name: "birthday today", birth: day(2008, time.October, 15), want: 18},
		{name: "birthday tomorrow", birth: day(2008, time.October, 16), want: 17},
		{name: "birthday yesterday", birth: day(2008, time.October, 14), want: 18},
		{name: "earlier month", birth: day(1990, time.March, 15), want: 36},
		{name: "later month", birth: day(1990, time.December, 1), want: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := birthday.Age(tt.birth, today); got != tt.want {
				t.Errorf("Age = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestAge_IgnoresClock verifies a late-evening "now" counts as the same calendar day.
func TestAge_IgnoresClock(t *testing.T) {
	now := time.Date(2026, time.October, 14, 23, 59, 0, 0, time.UTC)
	if got := birthday.Age(day(2008, time.October, 15), now); got != 17 {
		t.Errorf("Age = %d, want 17", got)
	}
}

// TestAge_LeapDay verifies Feb 29 births compare by raw month/day, ageing on Mar 1 in non-leap years.
func TestAge_LeapDay(t *testing.T) {
	birth := day(2004, time.February, 29)
	if got := birthday.Age(birth, day(2022, time.February, 27)); got != 17 {
		t.Errorf("Age on Feb 27 = %d, want 17", got)
	}
	if got := birthday.Age(birth, day(2022, time.February, 28)); got != 17 {
		t.Errorf("Age on Feb 28 = %d, want 17", got)
	}
	if got := birthday.Age(birth, day(2022, time.March, 1)); got != 18 {
		t.Errorf("Age on Mar 1 = %d, want 18", got)
	}
	if got := birthday.Age(birth, day(2024, time.February, 28)); got != 19 {
		t.Errorf("Age on Feb 28 of leap year = %d, want 19", got)
	}
	if got := birthday.Age(birth, day(2024, time.February, 29)); got != 20 {
		t.Errorf("Age on Feb 29 of leap year = %d, want 20", got)
	}
}

// TestValidateAdult_LeapDayBirth verifies a Feb 29 birth is still underage on Feb 28 of its 18th year.
func TestValidateAdult_LeapDayBirth(t *testing.T) {
	_, err := birthday.ValidateAdult("2008-02-29", time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC))
	var underage *birthday.UnderageError
	if !errors.As(err, &underage) || underage.Age != 17 {
		t.Fatalf("ValidateAdult on Feb 28 error = %v, want UnderageError with age 17", err)
	}
	if _, err := birthday.ValidateAdult("2008-02-29", day(2026, time.March, 1)); err != nil {
		t.Errorf("ValidateAdult on Mar 1 error = %v, want nil", err)
	}
}

// TestValidateAdult tests the minimum age rule.
func TestValidateAdult(t *testing.T) {
	today := day(2026, time.October, 15)

	if _, err := birthday.ValidateAdult("1990-01-01", today); err != nil {
		t.Fatalf("adult rejected: %v", err)
	}
	if _, err := birthday.ValidateAdult("2008-10-15", today); err != nil {
		t.Fatalf("exactly 18 today rejected: %v", err)
	}

	_, err := birthday.ValidateAdult("2008-10-16", today)
	var underage *birthday.UnderageError
	if !errors.As(err, &underage) {
		t.Fatalf("err = %v, want *UnderageError", err)
	}
	if underage.Age != 17 {
		t.Errorf("Age = %d, want 17", underage.Age)
	}
	if !errors.Is(err, birthday.ErrUnderage) {
		t.Error("UnderageError should match ErrUnderage")
	}
	if !strings.Contains(err.Error(), "17") || !strings.Contains(err.Error(), "18 years old") {
		t.Errorf("message %q should contain the computed age and the minimum", err.Error())
	}

	if _, err := birthday.ValidateAdult("15/10/1990", today); !errors.Is(err, birthday.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

// TestDaysUntilNext tests the next-anniversary countdown.
func TestDaysUntilNext(t *testing.T) {
	today := day(2026, time.October, 15)
	tests := []struct {
		name  string
		birth string
		want  int
	}{
		{name: "today", birth: "1990-10-15", want: 0},
		{name: "tomorrow", birth: "1990-10-16", want: 1},
		{name: "yesterday wraps", birth: "1990-10-14", want: 364},
		{name: "later this year", birth: "1985-12-25", want: 71},
		{name: "early next year", birth: "1988-01-30", want: 107},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := birthday.DaysUntilNext(tt.birth, today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysUntilNext(%s) = %d, want %d", tt.birth, got, tt.want)
			}
		})
	}
}

// TestDaysUntilNext_RelativeToNow checks the today/tomorrow/yesterday properties against the real clock.
func TestDaysUntilNext_RelativeToNow(t *testing.T) {
	now := time.Now()
	format := func(d time.Time) string {
		return time.Date(1990, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Format(birthday.DateLayout)
	}

	// Feb 29 has no 1990 equivalent; the leap-day tests cover it.
	if (now.Month() == time.February && now.Day() >= 28) || (now.Month() == time.March && now.Day() == 1) {
		t.Skip("leap-day boundary")
	}

	if got, _ := birthday.DaysUntilNext(now.Format(birthday.DateLayout), now); got != 0 {
		t.Errorf("today = %d, want 0", got)
	}
	if got, _ := birthday.DaysUntilNext(format(now.AddDate(0, 0, 1)), now); got != 1 {
		t.Errorf("tomorrow = %d, want 1", got)
	}
	yesterday := now.AddDate(0, 0, -1)
	if yesterday.Year() == now.Year() {
		if got, _ := birthday.DaysUntilNext(format(yesterday), now); got <= 300 {
			t.Errorf("yesterday = %d, want > 300", got)
		}
	}
}

// TestDaysUntilNext_Range verifies every day of a year lands in [0, 366].
func TestDaysUntilNext_Range(t *testing.T) {
	birth := day(2000, time.February, 29)
	for d := day(2027, time.January, 1); d.Year() < 2029; d = d.AddDate(0, 0, 1) {
		got := birthday.DaysUntil(birth, d)
		if got < 0 || got > 366 {
			t.Fatalf("DaysUntil on %s = %d, out of range", d.Format(birthday.DateLayout), got)
		}
	}
}

// TestDaysUntilNext_LeapDay tests the Feb 28 policy for Feb 29 birthdays.
func TestDaysUntilNext_LeapDay(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "non-leap year, on Feb 28", today: day(2027, time.February, 28), want: 0},
		{name: "non-leap year, Feb 27", today: day(2027, time.February, 27), want: 1},
		{name: "non-leap year, Mar 1 wraps to leap year Feb 29", today: day(2027, time.March, 1), want: 365},
		{name: "leap year, on Feb 29", today: day(2028, time.February, 29), want: 0},
		{name: "leap year, Feb 28", today: day(2028, time.February, 28), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := birthday.DaysUntilNext("2000-02-29", tt.today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysUntilNext = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestDaysUntilNext_InvalidFormat verifies malformed stored dates surface as errors.
func TestDaysUntilNext_InvalidFormat(t *testing.T) {
	if _, err := birthday.DaysUntilNext("not-a-date", time.Now()); !errors.Is(err, birthday.ErrInvalidFormat) {
		t.Errorf("err = %v, want ErrInvalidFormat", err)
	}
}

// TestIsUpcoming tests the 30-day window boundary.
func TestIsUpcoming(t *testing.T) {
	if !birthday.IsUpcoming(30) {
		t.Error("30 days should be upcoming")
	}
	if birthday.IsUpcoming(31) {
		t.Error("31 days should not be upcoming")
	}
}
