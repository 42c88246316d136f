// Package service authenticates subscribers against the directory
package service

import (
	"context"
	"time"

	"taxkaki/internal/core/directory"
	"taxkaki/internal/core/normalize"
	"taxkaki/internal/modkit/repokit"
	"taxkaki/internal/platform/logger"
	"taxkaki/internal/platform/metrics"
	ptime "taxkaki/internal/platform/time"
	"taxkaki/internal/services/auth/domain"
	"taxkaki/internal/services/auth/repo"

	"github.com/rs/zerolog"
)

// Service defines the service contract for auth
type Service interface{ domain.AuthenticatePort }

// Options configures Svc
type Options struct {
	Schema   directory.Schema
	Location *time.Location
	Clock    ptime.Clock
	Sessions *Sessions
	Metrics  *metrics.Metrics
}

// Svc implements Service
type Svc struct {
	repo repo.Repo
	opt  Options
}

// New binds the directory repo to q
func New(q repokit.Queryer, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if q == nil {
		panic("auth.Service requires a non nil directory table")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if opt.Schema.Version == 0 {
		opt.Schema = directory.SchemaV1
	}
	if opt.Location == nil {
		opt.Location = time.Local
	}
	if opt.Clock == nil {
		opt.Clock = ptime.System{}
	}
	return &Svc{repo: repokit.MustBind(binder, q), opt: opt}
}

// Authenticate fetches a fresh directory snapshot and validates pan and pin against it
// Every failure is reported as an outcome; the error return is always nil
func (s *Svc) Authenticate(ctx context.Context, pan, pin string) (domain.Result, error) {
	log := logger.C(ctx)

	res := s.authenticate(ctx, pan, pin)
	s.opt.Metrics.Auth(string(res.Outcome))

	level := zerolog.InfoLevel
	if !res.OK() {
		level = zerolog.WarnLevel
	}
	log.WithLevel(level).Str("pan", logger.MaskPAN(normalize.PAN(pan))).Str("outcome", string(res.Outcome)).Msg("authentication")
	return res, nil
}

func (s *Svc) authenticate(ctx context.Context, pan, pin string) domain.Result {
	rows, err := s.repo.Snapshot(ctx)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("directory unavailable")
		return result(directory.OutcomeDirectoryUnavailable)
	}

	rec, ok := directory.Find(s.opt.Schema, rows, pan)
	if !ok {
		return result(directory.OutcomePANNotFound)
	}

	today := ptime.Today(s.opt.Clock, s.opt.Location)
	out := result(directory.Validate(rec, pin, today))
	if !out.OK() {
		return out
	}

	out.PAN = normalize.PAN(rec.PAN)
	if s.opt.Sessions.Enabled() {
		tok, err := s.opt.Sessions.Issue(out.PAN)
		if err != nil {
			// the credentials were fine, the caller just gets no token
			logger.C(ctx).Error().Err(err).Msg("session token signing failed")
		}
		out.Token = tok
	}
	return out
}

func result(o directory.Outcome) domain.Result {
	return domain.Result{Outcome: o, Message: o.Message()}
}
