// Package service answers subscriber questions with a language model
package service

import (
	"context"
	"strings"

	"taxkaki/internal/adapters/completion"
	"taxkaki/internal/core/convo"
	"taxkaki/internal/core/normalize"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/logger"
	"taxkaki/internal/services/conversation/domain"
)

// Service defines the service contract for conversations
type Service interface{ domain.RespondPort }

// Options configures Svc
type Options struct {
	Model  string
	Window convo.Options
}

// Svc implements Service
// it only reads history; callers persist the question and the answer themselves
type Svc struct {
	history domain.HistoryReader
	client  completion.Client
	opt     Options
}

// New returns a Svc, panicking on missing collaborators
func New(history domain.HistoryReader, client completion.Client, opt Options) *Svc {
	if history == nil {
		panic("conversation.Service requires a non nil HistoryReader")
	}
	if client == nil {
		panic("conversation.Service requires a non nil completion client")
	}
	return &Svc{history: history, client: client, opt: opt}
}

// Respond builds the context window from pan's history plus question and returns the model's answer
func (s *Svc) Respond(ctx context.Context, pan, question string) (domain.Answer, error) {
	if normalize.PAN(pan) == "" {
		return domain.Answer{}, perr.MissingField("pan")
	}
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, perr.MissingField("question")
	}

	turns, err := s.history.ReadAll(ctx, pan)
	if err != nil {
		if perr.CodeOf(err) != perr.ErrorCodeHistoryRead {
			err = perr.Wrap(err, perr.ErrorCodeHistoryRead, "chat history could not be read")
		}
		return domain.Answer{}, err
	}

	msgs := convo.BuildWindow(turns, question, s.opt.Window)
	out, err := s.client.Complete(ctx, s.opt.Model, msgs)
	if err != nil {
		logger.C(ctx).Error().Err(err).Int("messages", len(msgs)).Msg("completion failed")
		if perr.CodeOf(err) != perr.ErrorCodeCompletion {
			err = perr.Wrap(err, perr.ErrorCodeCompletion, "the assistant could not answer")
		}
		return domain.Answer{}, perr.WithOp(err, "conversation.respond")
	}
	logger.C(ctx).Debug().Int("history", len(turns)).Int("messages", len(msgs)).Msg("answered")
	return domain.Answer{Answer: out}, nil
}
