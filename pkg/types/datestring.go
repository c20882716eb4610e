package types

import (
	"errors"
	"time"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDateString возвращается при некорректном формате даты
	ErrInvalidDateString = errors.New("invalid date string format, expected YYYY-MM-DD")
)

// ParseDate parses a strict "YYYY-MM-DD" string into a midnight time value in
// the given location. Non-existent calendar dates (like 2025-02-30) are
// rejected: time.Parse normalises them, so the round trip would not match.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateString
	}
	if t.Format(DateFormat) != s {
		return time.Time{}, ErrInvalidDateString
	}
	return t, nil
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
