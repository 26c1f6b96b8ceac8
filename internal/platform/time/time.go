// Package time holds civil date helpers. A civil date is a time.Time at
// midnight UTC whose Y-M-D is the calendar day it names.
package time

import "time"

// Date builds a civil date
func Date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// Civil returns the calendar day t falls on in loc
func Civil(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return Date(y, m, d)
}

// Today is the civil date of now in loc
func Today(now time.Time, loc *time.Location) time.Time { return Civil(now, loc) }

// AddDays steps a civil date
func AddDays(d time.Time, n int) time.Time { return d.AddDate(0, 0, n) }

// DaysBetween counts whole days from a to b; both must be civil dates
func DaysBetween(a, b time.Time) int { return int(b.Sub(a).Hours() / 24) }

// Span lists every civil date in [from, to]; empty when to is before from
func Span(from, to time.Time) []time.Time {
	n := DaysBetween(from, to)
	if n < 0 {
		return nil
	}
	out := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, AddDays(from, i))
	}
	return out
}

// Ptr returns nil for the zero time
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Format renders a civil date as YYYY-MM-DD
func Format(d time.Time) string { return d.Format(time.DateOnly) }

// Parse reads YYYY-MM-DD as a civil date
func Parse(s string) (time.Time, error) { return time.Parse(time.DateOnly, s) }
