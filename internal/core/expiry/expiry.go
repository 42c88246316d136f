// Package expiry parses the day/month/year expiry cells of the credential directory
package expiry

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MinYear is the earliest year an expiry may carry
const MinYear = 2020

// ErrMalformed is wrapped by every Parse failure
var ErrMalformed = errors.New("malformed expiry date")

var shape = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Parse reads D/M/YYYY into midnight UTC of that calendar day
// The input must already be trimmed
func Parse(raw string) (time.Time, error) {
	m := shape.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q is not D/M/YYYY", ErrMalformed, raw)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	switch {
	case day < 1 || day > 31:
		return time.Time{}, fmt.Errorf("%w: day %d out of range", ErrMalformed, day)
	case month < 1 || month > 12:
		return time.Time{}, fmt.Errorf("%w: month %d out of range", ErrMalformed, month)
	case year < MinYear:
		return time.Time{}, fmt.Errorf("%w: year %d before %d", ErrMalformed, year, MinYear)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31/04 into 01/05
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrMalformed, raw)
	}
	return t, nil
}

// Before reports whether the calendar day of exp is strictly before the calendar day of today
// Both are compared by their own year, month and day fields
func Before(exp, today time.Time) bool {
	ey, em, ed := exp.Date()
	ty, tm, td := today.Date()
	if ey != ty {
		return ey < ty
	}
	if em != tm {
		return em < tm
	}
	return ed < td
}
