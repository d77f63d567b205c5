// Package chrono handles the date formats used on the wire and in exports,
// plus the small duration arithmetic the reports need.
package chrono

import (
	"errors"
	"fmt"
	"time"
)

const (
	// apiLayout is the wire format for dates, e.g. "15Jun2020".
	apiLayout = "02Jan2006"
	// displayLayout is the format used in rendered export documents.
	displayLayout = "2006.01.02"
)

// ErrInvalidFormat is returned for date strings that do not match the
// DDMMMYYYY wire format.
var ErrInvalidFormat = errors.New("invalid date format, expected DDMMMYYYY")

// ParseAPIDate parses a DDMMMYYYY string into the start of that calendar day
// in UTC.
func ParseAPIDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(apiLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	return StartOfDay(t), nil
}

// FormatAPIDate renders t in the DDMMMYYYY wire format.
func FormatAPIDate(t time.Time) string {
	return t.UTC().Format(apiLayout)
}

// FormatDisplayDate renders t as YYYY.MM.DD for export documents.
func FormatDisplayDate(t time.Time) string {
	return t.UTC().Format(displayLayout)
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's calendar day,
// so the day can serve as an inclusive range bound.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// FormatMinutes renders a total number of minutes as "7h30m", or "45m" when
// under an hour.
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
