package httpkit

import (
	"net/http"
	"strings"

	"taxkaki/internal/core/normalize"
	perr "taxkaki/internal/platform/errors"
	pnet "taxkaki/internal/platform/net"
)

// Subject returns the authenticated PAN from the request context
func Subject(r *http.Request) (string, error) {
	sub := pnet.Subject(r.Context())
	if sub == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return sub, nil
}

// MustSubject returns the authenticated PAN or panics
// only use on routes protected by the auth middleware
func MustSubject(r *http.Request) string {
	sub, err := Subject(r)
	if err != nil {
		panic(err)
	}
	return sub
}

// SubjectMatches rejects a request that acts for a PAN other than the token's
// routes mounted without auth have no subject and always pass
func SubjectMatches(r *http.Request, pan string) error {
	sub := pnet.Subject(r.Context())
	if sub == "" {
		return nil
	}
	if !normalize.SamePAN(sub, pan) {
		return perr.Forbiddenf("token does not cover this PAN")
	}
	return nil
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
