// Package completion is the port to the language model that answers subscriber questions
package completion

import (
	"context"
	"time"

	"taxkaki/internal/core/convo"
	"taxkaki/internal/platform/metrics"
)

// Client answers a chat window with one assistant message
type Client interface {
	Complete(ctx context.Context, model string, msgs []convo.Message) (string, error)
}

// Func adapts a function to Client
type Func func(ctx context.Context, model string, msgs []convo.Message) (string, error)

// Complete calls f
func (f Func) Complete(ctx context.Context, model string, msgs []convo.Message) (string, error) {
	return f(ctx, model, msgs)
}

// Instrument records latency and failures of every call on m
func Instrument(c Client, m *metrics.Metrics) Client {
	if m == nil {
		return c
	}
	return Func(func(ctx context.Context, model string, msgs []convo.Message) (string, error) {
		start := time.Now()
		out, err := c.Complete(ctx, model, msgs)
		m.Completion(time.Since(start), err)
		return out, err
	})
}
