// Package http provides http transport for conversations
package http

import (
	stdhttp "net/http"

	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/services/conversation/domain"
)

// Register mounts conversation endpoints on the given router
func Register(r httpkit.Router, s domain.RespondPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/ask", h.ask)
}

type handlers struct{ svc domain.RespondPort }

// @Summary Answer a question using the subscriber's recent history
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.Answer "ok"
// @Router /chat/ask [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	if err := httpkit.SubjectMatches(r, in.PAN); err != nil {
		return nil, err
	}
	return h.svc.Respond(r.Context(), in.PAN, in.Question)
}
