// Package time contains calendar date helpers
// Dates are civil days held as time.Time at UTC midnight; nil pointers mean absent
package time

import "time"

// DateLayout is the canonical YYYY-MM-DD layout
const DateLayout = "2006-01-02"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Day truncates t to its calendar date at UTC midnight, keeping the wall date of t's own location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD; ok is false for blank or invalid input
func ParseDate(s string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// AddDays returns d shifted by n calendar days
func AddDays(d time.Time, n int) time.Time { return d.AddDate(0, 0, n) }

// DaysBetween returns the whole number of calendar days from a to b (b - a)
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Format renders a date pointer as YYYY-MM-DD, or nil when absent
func Format(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(DateLayout)
	return &s
}

// Earliest returns the minimum of the present dates, or nil when none are present
func Earliest(ds ...*time.Time) *time.Time {
	var out *time.Time
	for _, d := range ds {
		if d != nil && (out == nil || d.Before(*out)) {
			out = d
		}
	}
	return out
}

// Latest returns the maximum of the present dates, or nil when none are present
func Latest(ds ...*time.Time) *time.Time {
	var out *time.Time
	for _, d := range ds {
		if d != nil && (out == nil || d.After(*out)) {
			out = d
		}
	}
	return out
}
