// Package chrows is an append only row store over a clickhouse MergeTree table
//
// Cells are stored as text, so numbers come back as their rendered form.
package chrows

import (
	"context"
	"time"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/core/normalize"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/store"
)

const (
	ddl = `CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet_id String,
		seq      DateTime64(6, 'UTC'),
		cells    Array(String)
	) ENGINE = MergeTree ORDER BY (sheet_id, seq)`

	table      = "sheet_rows (sheet_id, seq, cells)"
	selectRows = `SELECT cells FROM sheet_rows WHERE sheet_id = ? ORDER BY seq`
)

// Store implements rowstore.Store on clickhouse
type Store struct {
	ch  store.Clickhouse
	now func() time.Time
}

var _ rowstore.Store = (*Store)(nil)

// New returns a Store over ch
func New(ch store.Clickhouse) *Store {
	if ch == nil {
		panic("chrows.New: nil clickhouse")
	}
	return &Store{ch: ch, now: time.Now}
}

// Open ensures the table exists and returns a Store
func Open(ctx context.Context, ch store.Clickhouse) (*Store, error) {
	s := New(ch)
	if err := ch.Exec(ctx, ddl); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "ensure clickhouse sheet_rows")
	}
	return s, nil
}

// LoadAllRows returns the rows of sheetID in insertion time order
func (s *Store) LoadAllRows(ctx context.Context, sheetID string) ([]rowstore.Row, error) {
	rows, err := s.ch.Query(ctx, selectRows, sheetID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "load clickhouse rows")
	}
	out, err := store.Collect(rows, scanCells)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan clickhouse rows")
	}
	return out, nil
}

// AppendRow inserts one row stamped with the current time
func (s *Store) AppendRow(ctx context.Context, sheetID string, row rowstore.Row) error {
	err := s.ch.Insert(ctx, table, [][]any{{sheetID, s.now().UTC(), normalize.Cells(row)}})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "append clickhouse row")
	}
	return nil
}

func scanCells(r store.Row) (rowstore.Row, error) {
	var cells []string
	if err := r.Scan(&cells); err != nil {
		return nil, err
	}
	row := make(rowstore.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row, nil
}
