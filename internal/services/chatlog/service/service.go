// Package service appends to and reads the per subscriber chat log
package service

import (
	"context"

	"taxkaki/internal/core/convo"
	"taxkaki/internal/core/normalize"
	"taxkaki/internal/modkit/repokit"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/logger"
	"taxkaki/internal/platform/metrics"
	ptime "taxkaki/internal/platform/time"
	"taxkaki/internal/services/chatlog/domain"
	"taxkaki/internal/services/chatlog/repo"
)

// Service defines the service contract for the chat log
type Service interface{ domain.HistoryPort }

// Svc implements Service
type Svc struct {
	repo    repo.Repo
	clock   ptime.Clock
	metrics *metrics.Metrics
}

// New binds the chat log repo to q
func New(q repokit.Queryer, binder repokit.Binder[repo.Repo], clock ptime.Clock, m *metrics.Metrics) *Svc {
	if q == nil {
		panic("chatlog.Service requires a non nil chat log table")
	}
	if binder == nil {
		panic("chatlog.Service requires a non nil Repo binder")
	}
	if clock == nil {
		clock = ptime.System{}
	}
	return &Svc{repo: repokit.MustBind(binder, q), clock: clock, metrics: m}
}

// Append stores one turn stamped with the current time under the canonical PAN
// role is folded the way it is read back: user in any case, anything else assistant
func (s *Svc) Append(ctx context.Context, pan string, role convo.Role, content string) (convo.Turn, error) {
	canon := normalize.PAN(pan)
	if canon == "" {
		return convo.Turn{}, perr.MissingField("pan")
	}
	t := convo.Turn{
		Timestamp: ptime.Stamp(s.clock.Now()),
		PAN:       canon,
		Role:      convo.ParseRole(string(role)),
		Content:   content,
	}
	err := s.repo.Append(ctx, t)
	s.metrics.History("append", err)
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("pan", logger.MaskPAN(canon)).Msg("chat log append failed")
		return convo.Turn{}, perr.WithOp(perr.Wrap(err, perr.ErrorCodeHistoryWrite, "chat history could not be saved"), "chatlog.append")
	}
	return t, nil
}

// ReadAll returns every turn of pan in store order
func (s *Svc) ReadAll(ctx context.Context, pan string) ([]convo.Turn, error) {
	if normalize.PAN(pan) == "" {
		return nil, perr.MissingField("pan")
	}
	all, skipped, err := s.repo.All(ctx)
	s.metrics.History("read", err)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("chat log read failed")
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeHistoryRead, "chat history could not be read"), "chatlog.read")
	}
	if skipped > 0 {
		logger.C(ctx).Warn().Int("skipped", skipped).Msg("chat log rows without a PAN were skipped")
	}

	out := make([]convo.Turn, 0, len(all))
	for _, t := range all {
		if normalize.SamePAN(t.PAN, pan) {
			out = append(out, t)
		}
	}
	return out, nil
}
