// Package rowstore is the port over the tabular stores the directory and chat log live in
//
// A sheet is an ordered, append-only list of rows. Rows are returned in store order and
// may be ragged; callers coerce cells themselves.
package rowstore

import (
	"context"
)

// Row is one record, cells in column order
type Row = []any

// Reader loads every row of a sheet
type Reader interface {
	LoadAllRows(ctx context.Context, sheetID string) ([]Row, error)
}

// Appender appends one row at the end of a sheet
type Appender interface {
	AppendRow(ctx context.Context, sheetID string, row Row) error
}

// Store is a Reader that can also append
type Store interface {
	Reader
	Appender
}

// Table is a store bound to one sheet
type Table interface {
	Load(ctx context.Context) ([]Row, error)
	Append(ctx context.Context, row Row) error
	ID() string
}

// Bind returns a Table over sheetID
// Append on a table bound to a read only Reader returns ErrReadOnly
func Bind(r Reader, sheetID string) Table { return table{r: r, id: sheetID} }

type table struct {
	r  Reader
	id string
}

func (t table) Load(ctx context.Context) ([]Row, error) { return t.r.LoadAllRows(ctx, t.id) }

func (t table) Append(ctx context.Context, row Row) error {
	a, ok := t.r.(Appender)
	if !ok {
		return ErrReadOnly
	}
	return a.AppendRow(ctx, t.id, row)
}

func (t table) ID() string { return t.id }
