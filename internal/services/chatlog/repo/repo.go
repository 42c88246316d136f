// Package repo maps chat turns onto rows of the chat log table
package repo

import (
	"context"

	"taxkaki/internal/core/convo"
	"taxkaki/internal/core/normalize"
	"taxkaki/internal/modkit/repokit"
)

// Columns of a chat log row
const (
	ColTimestamp = iota
	ColPAN
	ColRole
	ColMessage

	width
)

// Repo is the chat log storage contract
type Repo interface {
	Append(ctx context.Context, t convo.Turn) error
	// All returns every decodable turn in store order and how many rows were skipped
	All(ctx context.Context) (turns []convo.Turn, skipped int, err error)
}

type queries struct{ q repokit.Queryer }

// NewRows returns the binder for a row table backed chat log
func NewRows() repokit.Binder[Repo] {
	return repokit.BindFunc[Repo](func(q repokit.Queryer) Repo { return &queries{q: q} })
}

func (r *queries) Append(ctx context.Context, t convo.Turn) error {
	return r.q.Append(ctx, Encode(t))
}

func (r *queries) All(ctx context.Context) ([]convo.Turn, int, error) {
	rows, err := r.q.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]convo.Turn, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		t, ok := Decode(row)
		if !ok {
			skipped++
			continue
		}
		out = append(out, t)
	}
	return out, skipped, nil
}

// Encode lays t out as [timestamp, pan, role, message]
func Encode(t convo.Turn) repokit.Row {
	return repokit.Row{t.Timestamp, t.PAN, string(t.Role), t.Content}
}

// Decode reads a row written by Encode
// rows shorter than two cells carry no PAN and are rejected; a missing message is blank
// and the role folds to user or assistant
func Decode(row repokit.Row) (convo.Turn, bool) {
	if len(row) <= ColPAN {
		return convo.Turn{}, false
	}
	cells := make([]string, width)
	copy(cells, normalize.Cells(row))
	return convo.Turn{
		Timestamp: cells[ColTimestamp],
		PAN:       cells[ColPAN],
		Role:      convo.ParseRole(cells[ColRole]),
		Content:   cells[ColMessage],
	}, true
}
