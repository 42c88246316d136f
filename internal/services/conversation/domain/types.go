// Package domain holds the conversation contracts
package domain

import (
	"context"

	"taxkaki/internal/core/convo"
)

// AskInput is the body of a question
type AskInput struct {
	PAN      string `json:"pan"      validate:"required,max=64" example:"AB1234"`
	Question string `json:"question" validate:"required"        example:"How much relief can I claim for my parents?"`
}

// Answer is the model's reply
type Answer struct {
	Answer string `json:"answer"`
}

// HistoryReader is the slice of the chat log the conversation needs
type HistoryReader interface {
	ReadAll(ctx context.Context, pan string) ([]convo.Turn, error)
}

// RespondPort answers a question in the context of the subscriber's history
type RespondPort interface {
	Respond(ctx context.Context, pan, question string) (Answer, error)
}
