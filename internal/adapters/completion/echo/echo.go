// Package echo is a completion client for local development that repeats the question
package echo

import (
	"context"

	"taxkaki/internal/core/convo"
)

// Client answers with the last user message of the window
type Client struct{}

// Complete returns "echo: <question>", or an empty answer when there is no user message
func (Client) Complete(_ context.Context, _ string, msgs []convo.Message) (string, error) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == convo.RoleUser {
			return "echo: " + msgs[i].Content, nil
		}
	}
	return "", nil
}
