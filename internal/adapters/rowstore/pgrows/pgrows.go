// Package pgrows is a row store over a postgres table
//
// Every sheet lives in sheet_rows keyed by sheet_id; cells are a jsonb array and row
// order is the bigserial seq.
package pgrows

import (
	"bytes"
	"context"
	"encoding/json"

	"taxkaki/internal/adapters/rowstore"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/store"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sheet_rows (
		seq        bigserial PRIMARY KEY,
		sheet_id   text NOT NULL,
		cells      jsonb NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS sheet_rows_sheet_seq ON sheet_rows (sheet_id, seq)`,
}

const (
	selectRows = `SELECT cells FROM sheet_rows WHERE sheet_id = $1 ORDER BY seq`
	insertRow  = `INSERT INTO sheet_rows (sheet_id, cells) VALUES ($1, $2::jsonb)`
)

// Store implements rowstore.Store on postgres
type Store struct {
	q store.RowQuerier
}

var _ rowstore.Store = (*Store)(nil)

// New returns a Store over q without touching the database
func New(q store.RowQuerier) *Store {
	if q == nil {
		panic("pgrows.New: nil querier")
	}
	return &Store{q: q}
}

// Open ensures the table exists and returns a Store
// when q can run transactions the schema statements apply together
func Open(ctx context.Context, q store.RowQuerier) (*Store, error) {
	s := New(q)
	ensure := func(q store.RowQuerier) error {
		for _, stmt := range schema {
			if _, err := store.Exec(ctx, q, stmt); err != nil {
				return err
			}
		}
		return nil
	}
	var err error
	if tx, ok := q.(store.TxRunner); ok {
		err = tx.Tx(ctx, ensure)
	} else {
		err = ensure(q)
	}
	if err != nil {
		return nil, perr.WithOp(perr.FromPostgres(err, "ensure sheet_rows schema"), "pgrows.schema")
	}
	return s, nil
}

// LoadAllRows returns the rows of sheetID in seq order
func (s *Store) LoadAllRows(ctx context.Context, sheetID string) ([]rowstore.Row, error) {
	rows, err := store.Many(ctx, s.q, scanCells, selectRows, sheetID)
	if err != nil {
		return nil, perr.WithOp(perr.FromPostgres(err, "load sheet rows"), "pgrows.load")
	}
	return rows, nil
}

// AppendRow inserts one row
func (s *Store) AppendRow(ctx context.Context, sheetID string, row rowstore.Row) error {
	if row == nil {
		row = rowstore.Row{}
	}
	b, err := json.Marshal(row)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode row cells")
	}
	if err := store.ExecOne(ctx, s.q, insertRow, sheetID, string(b)); err != nil {
		return perr.WithOp(perr.FromPostgres(err, "append sheet row"), "pgrows.append")
	}
	return nil
}

func scanCells(r store.Row) (rowstore.Row, error) {
	var raw []byte
	if err := r.Scan(&raw); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var row rowstore.Row
	if err := dec.Decode(&row); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode row cells")
	}
	return row, nil
}
