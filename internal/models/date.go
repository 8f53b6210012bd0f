// ABOUTME: Calendar date type used as the natural key for daily records.
// ABOUTME: Dates are YYYY-MM-DD strings so lexical order matches calendar order.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and on-wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time or zone, formatted YYYY-MM-DD.
type Date string

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(t.Format(DateLayout)), nil
}

// looseDateLayout also accepts single-digit months and days.
const looseDateLayout = "2006-1-2"

// Normalize returns d in canonical YYYY-MM-DD form, accepting unpadded
// months and days such as "2025-3-3". It reports false when d is not a date.
func (d Date) Normalize() (Date, bool) {
	t, err := time.Parse(looseDateLayout, strings.TrimSpace(string(d)))
	if err != nil {
		return "", false
	}
	return DateOf(t), true
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// Time returns midnight UTC of the date. The zero Date maps to the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d < other
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Valid reports whether the date parses as YYYY-MM-DD.
func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

func (d Date) String() string {
	return string(d)
}
