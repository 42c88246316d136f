package middleware

import (
	"encoding/json"
	"net/http"

	"taxkaki/internal/platform/logger"
	pnet "taxkaki/internal/platform/net"
)

// AuthPort resolves the authenticated subject of a request
type AuthPort interface {
	// Parse returns the subject (canonical PAN) the request is authorized for
	Parse(r *http.Request) (subject string, err error)
}

// WriteJSON is the default envelope writer used by the middlewares in this package
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Auth rejects requests the port cannot parse and stores the subject on the context
// A nil port disables the check
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	if write == nil {
		write = WriteJSON
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			sub, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithSubject(r.Context(), sub)
			ctx = logger.WithSubscriber(ctx, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
