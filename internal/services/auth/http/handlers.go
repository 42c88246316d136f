// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"

	"taxkaki/internal/core/directory"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/services/auth/domain"
)

// Register mounts auth endpoints on the given router
func Register(r httpkit.Router, s domain.AuthenticatePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/login", h.login)
}

type handlers struct{ svc domain.AuthenticatePort }

// StatusOf maps an outcome to the HTTP status the login route answers with
func StatusOf(o directory.Outcome) int {
	switch o {
	case directory.OutcomeOK:
		return stdhttp.StatusOK
	case directory.OutcomeMalformedExpiry:
		return stdhttp.StatusUnprocessableEntity
	case directory.OutcomeDirectoryUnavailable:
		return stdhttp.StatusServiceUnavailable
	default:
		return stdhttp.StatusUnauthorized
	}
}

// @Summary Check a PAN and PIN against the subscriber directory
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Result "ok"
// @Failure 401 {object} domain.Result "invalid_pin, inactive, expired or pan_not_found"
// @Failure 422 {object} domain.Result "malformed_expiry"
// @Failure 503 {object} domain.Result "directory_unavailable"
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	res, err := h.svc.Authenticate(r.Context(), in.PAN, in.PIN)
	if err != nil {
		return nil, err
	}
	return httpkit.Status(StatusOf(res.Outcome), res), nil
}
