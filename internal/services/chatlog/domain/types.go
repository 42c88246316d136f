// Package domain holds the chat log contracts
package domain

import (
	"context"

	"taxkaki/internal/core/convo"
)

// AppendInput is the body of an append request
type AppendInput struct {
	PAN     string `json:"pan"     validate:"required,max=64"           example:"AB1234"`
	Role    string `json:"role"    validate:"required,oneof=user assistant" example:"user"`
	Message string `json:"message" validate:"required"                   example:"Can I claim relief for my parents?"`
}

// HistoryPort appends to and reads a subscriber's chat log
type HistoryPort interface {
	Append(ctx context.Context, pan string, role convo.Role, content string) (convo.Turn, error)
	ReadAll(ctx context.Context, pan string) ([]convo.Turn, error)
}
