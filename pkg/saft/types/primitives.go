// =============================================================================
// SAF-T Financial - Primitive Value Types
// =============================================================================
//
// This file defines the primitive value types used by the schema type model:
// calendar dates, local date-times and relaxed boolean parsing. The governing
// schema serializes dates as YYYY-MM-DD and date-times as
// YYYY-MM-DDTHH:MM:SS (local time, no sub-second precision, no zone suffix),
// so both types carry exactly that much information and nothing more.
//
// Decimal values use github.com/shopspring/decimal throughout; their
// per-field precision rules live in constraints.go.
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// =============================================================================
// DATE
// =============================================================================

// Date is a calendar date without time-of-day or zone information.
// Stored as plain fields so two equal dates are always comparable with ==.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// =============================================================================
// DATE-TIME
// =============================================================================

// DateTime is a local date-time (second precision, no zone).
type DateTime struct {
	Date
	Hour   int
	Minute int
	Second int
}

// ParseDateTime parses a YYYY-MM-DDTHH:MM:SS string into a DateTime.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid date-time %q: expected YYYY-MM-DDTHH:MM:SS", s)
	}
	return DateTime{
		Date:   Date{Year: t.Year(), Month: t.Month(), Day: t.Day()},
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}, nil
}

// String formats the date-time as YYYY-MM-DDTHH:MM:SS.
func (d DateTime) String() string {
	return fmt.Sprintf("%sT%02d:%02d:%02d", d.Date, d.Hour, d.Minute, d.Second)
}

// =============================================================================
// BOOLEAN
// =============================================================================

// ParseBool parses a boolean leaf value. Accepts the common relaxed
// conventions (true/false, 1/0, yes/no) case-insensitively; exporting
// systems are not consistent about which one they emit.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// FormatBool serializes a boolean as the schema's canonical true/false form.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
