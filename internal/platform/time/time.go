// Package time contains time related helpers
package time

import "time"

// Clock is the source of "now" for services that stamp or compare dates
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// Now implements Clock
func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Handy in tests
type Fixed time.Time

// Now implements Clock
func (f Fixed) Now() time.Time { return time.Time(f) }

// Today returns midnight of now's calendar day in loc
func Today(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Midnight(c.Now().In(loc))
}

// Midnight truncates t to 00:00 of its calendar day, keeping t's location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Stamp formats t as the RFC 3339 UTC timestamp with millisecond precision used in stored rows
func Stamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
