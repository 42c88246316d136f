package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// fakeRows iterates a fixed set of single column rows
type fakeRows struct {
	vals   []any
	i      int
	err    error
	closed bool
}

func (f *fakeRows) Next() bool {
	if f.i >= len(f.vals) {
		return false
	}
	f.i++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	v := f.vals[f.i-1]
	if e, ok := v.(error); ok {
		return e
	}
	*(dest[0].(*string)) = v.(string)
	return nil
}

func (f *fakeRows) Err() error        { return f.err }
func (f *fakeRows) Close()            { f.closed = true }
func (f *fakeRows) Columns() []string { return []string{"v"} }

type tagN int64

func (t tagN) String() string      { return "INSERT 0" }
func (t tagN) RowsAffected() int64 { return int64(t) }

type fakeQuerier struct {
	rows    *fakeRows
	err     error
	tag     tagN
	scalar  string
	lastSQL string
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.lastSQL = sql
	return f.tag, f.err
}

func (f *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	f.lastSQL = sql
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) Row {
	f.lastSQL = sql
	return scanFunc(func(dest ...any) error {
		if f.err != nil {
			return f.err
		}
		*(dest[0].(*string)) = f.scalar
		return nil
	})
}

type scanFunc func(dest ...any) error

func (s scanFunc) Scan(dest ...any) error { return s(dest...) }

func scanString(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestHelpers(t *testing.T) {
	ctx := context.Background()

	t.Run("many", func(t *testing.T) {
		rows := &fakeRows{vals: []any{"a", "b"}}
		got, err := Many(ctx, &fakeQuerier{rows: rows}, scanString, "SELECT v")
		if err != nil || strings.Join(got, ",") != "a,b" {
			t.Fatalf("got %v err %v", got, err)
		}
		if !rows.closed {
			t.Fatal("rows not closed")
		}
	})

	t.Run("many scan error", func(t *testing.T) {
		boom := errors.New("bad cell")
		_, err := Many(ctx, &fakeQuerier{rows: &fakeRows{vals: []any{"a", boom}}}, scanString, "SELECT v")
		if !errors.Is(err, boom) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("exec one", func(t *testing.T) {
		if err := ExecOne(ctx, &fakeQuerier{tag: 1}, "INSERT"); err != nil {
			t.Fatal(err)
		}
		if err := ExecOne(ctx, &fakeQuerier{tag: 2}, "INSERT"); err == nil {
			t.Fatal("expected error for 2 rows")
		}
	})
}

func TestOpen_NoBackends(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatal("backends should stay nil")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping with no backends: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpen_OptionError(t *testing.T) {
	bad := func(*Store) error { return errors.New("nope") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatal("expected option error")
	}
}

func TestOpen_BadPGURL(t *testing.T) {
	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://bad"}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected nil store error")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

// fakeCH implements chConn
type fakeCH struct {
	pingErr  error
	inserted [][]any
	closed   bool
	rows     driver.Rows
}

func (f *fakeCH) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeCH) Insert(_ context.Context, _ string, rows [][]any) error {
	f.inserted = append(f.inserted, rows...)
	return nil
}
func (f *fakeCH) Query(context.Context, string, ...any) (driver.Rows, error) { return f.rows, nil }
func (f *fakeCH) Ping(context.Context) error                                  { return f.pingErr }
func (f *fakeCH) Close() error                                                { f.closed = true; return nil }

// fakeDriverRows overrides the parts of driver.Rows the adapter touches
type fakeDriverRows struct {
	driver.Rows
	n int
}

func (f *fakeDriverRows) Next() bool        { f.n--; return f.n >= 0 }
func (f *fakeDriverRows) Scan(...any) error { return nil }
func (f *fakeDriverRows) Err() error        { return nil }
func (f *fakeDriverRows) Close() error      { return nil }
func (f *fakeDriverRows) Columns() []string { return []string{"cells"} }

func TestClickhouseAdapter(t *testing.T) {
	ctx := context.Background()
	inner := &fakeCH{rows: &fakeDriverRows{n: 2}}
	a := newCHAdapter(inner)

	if err := a.Insert(ctx, "sheet_rows", nil); err != nil || len(inner.inserted) != 0 {
		t.Fatal("empty insert should be a no-op")
	}
	if err := a.Insert(ctx, "sheet_rows", [][]any{{"x"}}); err != nil || len(inner.inserted) != 1 {
		t.Fatalf("insert failed: %v", err)
	}

	rows, err := a.Query(ctx, "SELECT cells")
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for rows.Next() {
		n++
	}
	rows.Close()
	if n != 2 || rows.Columns()[0] != "cells" {
		t.Fatalf("rows=%d cols=%v", n, rows.Columns())
	}

	s := &Store{CH: a}
	inner.pingErr = errors.New("down")
	if err := s.Ping(ctx); err == nil || !strings.Contains(err.Error(), "ch: down") {
		t.Fatalf("ping err=%v", err)
	}
	_ = s.Close()
	if !inner.closed {
		t.Fatal("close not forwarded")
	}
}
