package sheets

import (
	"context"

	"taxkaki/internal/adapters/rowstore"
)

// Store adapts a Client to rowstore.Store over one A1 range
// sheetID is the spreadsheet id
type Store struct {
	c   *Client
	rng string
}

var _ rowstore.Store = (*Store)(nil)

// NewStore returns a Store reading and appending at rng, e.g. "Sheet1!A:I"
func NewStore(c *Client, rng string) *Store {
	if c == nil {
		panic("sheets.NewStore: nil client")
	}
	return &Store{c: c, rng: rng}
}

// LoadAllRows fetches the whole range
func (s *Store) LoadAllRows(ctx context.Context, sheetID string) ([]rowstore.Row, error) {
	return s.c.Get(ctx, sheetID, s.rng)
}

// AppendRow appends one row
func (s *Store) AppendRow(ctx context.Context, sheetID string, row rowstore.Row) error {
	return s.c.Append(ctx, sheetID, s.rng, row)
}
