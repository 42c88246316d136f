// Package domain holds the auth contracts shared by transport, service and module
package domain

import (
	"context"

	"taxkaki/internal/core/directory"
)

// LoginInput is the login request body
type LoginInput struct {
	PAN string `json:"pan" validate:"required,max=64" example:"AB1234"`
	PIN string `json:"pin" validate:"required,max=64" example:"9999"`
}

// Result is what an authentication attempt resolved to
// PAN is the canonical PAN and Token the session token, both only set when Outcome is ok
type Result struct {
	Outcome directory.Outcome `json:"outcome"`
	Message string            `json:"message"`
	PAN     string            `json:"pan,omitempty"`
	Token   string            `json:"token,omitempty"`
}

// OK reports whether access was granted
func (r Result) OK() bool { return r.Outcome.OK() }

// AuthenticatePort checks a PAN and PIN against the directory
type AuthenticatePort interface {
	Authenticate(ctx context.Context, pan, pin string) (Result, error)
}
