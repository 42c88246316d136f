// Package repo reads the subscriber directory through the row table seam
package repo

import (
	"context"

	"taxkaki/internal/modkit/repokit"
	perr "taxkaki/internal/platform/errors"
)

// Repo is the directory read contract
type Repo interface {
	// Snapshot returns every directory row as stored, header rows included
	Snapshot(ctx context.Context) ([][]any, error)
}

type queries struct{ q repokit.Queryer }

// NewRows returns the binder for a row table backed directory
func NewRows() repokit.Binder[Repo] {
	return repokit.BindFunc[Repo](func(q repokit.Queryer) Repo { return &queries{q: q} })
}

func (r *queries) Snapshot(ctx context.Context) ([][]any, error) {
	rows, err := r.q.Load(ctx)
	if err != nil {
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeDirectoryUnavailable, "directory fetch failed"), "directory.snapshot")
	}
	return rows, nil
}
