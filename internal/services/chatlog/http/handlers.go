// Package http provides http transport for the chat log
package http

import (
	stdhttp "net/http"

	"taxkaki/internal/core/convo"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/services/chatlog/domain"
)

// Register mounts chat log endpoints on the given router
func Register(r httpkit.Router, s domain.HistoryPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/", h.append)
	httpkit.Get(r, "/{pan}", h.read)
}

type handlers struct{ svc domain.HistoryPort }

// @Summary Append one turn to the chat log
// @Tags History
// @Accept json
// @Produce json
// @Param payload body domain.AppendInput true "Turn"
// @Success 201 {object} convo.Turn "created"
// @Router /history [post]
func (h *handlers) append(r *stdhttp.Request, in domain.AppendInput) (any, error) {
	if err := httpkit.SubjectMatches(r, in.PAN); err != nil {
		return nil, err
	}
	t, err := h.svc.Append(r.Context(), in.PAN, convo.Role(in.Role), in.Message)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(t), nil
}

// @Summary All turns of a PAN in store order
// @Tags History
// @Produce json
// @Param pan path string true "PAN"
// @Success 200 {array} convo.Turn "ok"
// @Router /history/{pan} [get]
func (h *handlers) read(r *stdhttp.Request) (any, error) {
	pan := httpkit.Param(r, "pan")
	if err := httpkit.SubjectMatches(r, pan); err != nil {
		return nil, err
	}
	return h.svc.ReadAll(r.Context(), pan)
}
