package httpkit

import (
	"net/http"

	perr "taxkaki/internal/platform/errors"
)

// TokenFunc verifies a bearer token and returns its subject
type TokenFunc func(token string) (subject string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse returns the subject of the Authorization bearer token
// a missing header, a malformed header and a parser error are all unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := JWT(r)
	if err != nil {
		return "", err
	}
	if p == nil || p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	sub, err := p.parse(raw)
	if err != nil || sub == "" {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}
