// Package openai calls an OpenAI compatible chat completions endpoint
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"taxkaki/internal/core/convo"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/logger"
	pstrings "taxkaki/internal/platform/strings"
)

const (
	baseURLDefault = "https://api.openai.com/v1"
	modelDefault   = "gpt-4o-mini"
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	// Timeout bounds one HTTP exchange, zero leaves it to the caller's context
	Timeout time.Duration
}

// Client is a minimal chat completions client
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// New returns a Client with defaults applied
func New(o Options) *Client {
	o.BaseURL = strings.TrimRight(pstrings.Coalesce(o.BaseURL, baseURLDefault), "/")
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("openai"),
	}
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []convo.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends msgs and returns the first choice
// Transport failures, non 2xx statuses and responses without a choice are ErrorCodeCompletion
func (c *Client) Complete(ctx context.Context, model string, msgs []convo.Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: pstrings.Coalesce(model, modelDefault), Messages: msgs})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeCompletion, "encode completion request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeCompletion, "build completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeCompletion, "completion request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeCompletion, "read completion response")
	}
	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("messages", len(msgs)).
		Dur("latency", time.Since(start)).
		Msg("completion response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", perr.Newf(perr.ErrorCodeCompletion, "completion status %d: %s",
			resp.StatusCode, pstrings.Truncate(string(raw), 512))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeCompletion, "completion response is not json")
	}
	if len(out.Choices) == 0 {
		return "", perr.New(perr.ErrorCodeCompletion, "completion response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}
