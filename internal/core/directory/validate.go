package directory

import (
	"time"

	"taxkaki/internal/core/expiry"
	"taxkaki/internal/core/normalize"
)

// Outcome is the result of an authentication attempt
type Outcome string

// Outcomes in the order the checks run
const (
	OutcomeOK                   Outcome = "ok"
	OutcomePANNotFound          Outcome = "pan_not_found"
	OutcomeInvalidPIN           Outcome = "invalid_pin"
	OutcomeInactive             Outcome = "inactive"
	OutcomeExpired              Outcome = "expired"
	OutcomeMalformedExpiry      Outcome = "malformed_expiry"
	OutcomeDirectoryUnavailable Outcome = "directory_unavailable"
)

// Outcomes lists every outcome, handy for metrics pre registration and docs
var Outcomes = []Outcome{
	OutcomeOK, OutcomePANNotFound, OutcomeInvalidPIN, OutcomeInactive,
	OutcomeExpired, OutcomeMalformedExpiry, OutcomeDirectoryUnavailable,
}

var messages = map[Outcome]string{
	OutcomeOK:                   "authenticated",
	OutcomePANNotFound:          "PAN not registered",
	OutcomeInvalidPIN:           "PIN does not match",
	OutcomeInactive:             "account is not active",
	OutcomeExpired:              "account has expired",
	OutcomeMalformedExpiry:      "account expiry date is malformed, contact support",
	OutcomeDirectoryUnavailable: "credential directory is unavailable, try again later",
}

// Message is the human readable text for o
func (o Outcome) Message() string {
	if m, ok := messages[o]; ok {
		return m
	}
	return string(o)
}

// OK reports whether o grants access
func (o Outcome) OK() bool { return o == OutcomeOK }

// Validate checks pin, status and expiry in that order; the first failure wins
// today is the caller's current calendar day in the configured zone
// a blank PIN never matches, on either side
func Validate(rec Record, pin string, today time.Time) Outcome {
	given := normalize.PIN(pin)
	if given == "" || rec.PIN == "" || given != rec.PIN {
		return OutcomeInvalidPIN
	}
	if rec.Status != StatusActive {
		return OutcomeInactive
	}
	if rec.ExpiryRaw == "" {
		return OutcomeOK
	}
	exp, err := expiry.Parse(rec.ExpiryRaw)
	if err != nil {
		return OutcomeMalformedExpiry
	}
	if expiry.Before(exp, today) {
		return OutcomeExpired
	}
	return OutcomeOK
}

// Find returns the first record whose PAN matches pan canonically
func Find(s Schema, rows [][]any, pan string) (Record, bool) {
	want := normalize.PAN(pan)
	if want == "" {
		return Record{}, false
	}
	for _, row := range rows {
		rec := ParseRow(s, row)
		if normalize.PAN(rec.PAN) == want {
			return rec, true
		}
	}
	return Record{}, false
}
