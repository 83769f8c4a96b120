// Package dates provides a calendar-day value type. Habit completion and
// mood journal records are keyed by calendar day, not by instant, so the
// rest of the codebase passes Day values around instead of formatted
// strings or midnight time.Times.
package dates

import (
	"fmt"
	"time"
)

// Format is the canonical day layout used everywhere: storage keys, JSON
// fields, and CLI arguments.
const Format = "2006-01-02"

// Day is a single calendar day. The zero value is the zero date. Day is
// comparable and usable as a map key.
type Day struct {
	year  int
	month time.Month
	day   int
}

// New builds a Day from its components. The components are normalized the
// way time.Date normalizes them, so New(2025, time.January, 32) is
// February 1st.
func New(year int, month time.Month, day int) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}
}

// FromTime returns the calendar day the instant falls on, in the
// instant's own location.
func FromTime(t time.Time) Day {
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Today returns the current calendar day in the local timezone.
func Today() Day {
	return FromTime(time.Now())
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return FromTime(t), nil
}

// String renders the day with fixed-width numeric formatting. The output
// is locale-independent regardless of the process environment.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Time returns midnight of the day in the given location.
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays returns the day n calendar days later (earlier for negative n).
func (d Day) AddDays(n int) Day {
	return FromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// DaysSince returns the number of whole calendar days from other to d.
// Negative when other is later than d.
func (d Day) DaysSince(other Day) int {
	return int(d.Time(time.UTC).Sub(other.Time(time.UTC)).Hours() / 24)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

// MarshalText implements encoding.TextMarshaler so Day serializes as its
// YYYY-MM-DD string in JSON.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
