package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"taxkaki/internal/adapters/rowstore"
)

func TestStore_SeedLoadAppend(t *testing.T) {
	ctx := context.Background()
	s := New().Seed("dir", rowstore.Row{"", "AB1234", "9999"})

	if err := s.AppendRow(ctx, "dir", rowstore.Row{"", "XY9999", "0000"}); err != nil {
		t.Fatal(err)
	}
	rows, err := s.LoadAllRows(ctx, "dir")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][1] != "XY9999" {
		t.Fatalf("rows=%v", rows)
	}

	// returned rows are copies
	rows[0][1] = "mutated"
	again, _ := s.LoadAllRows(ctx, "dir")
	if again[0][1] != "AB1234" {
		t.Fatal("store leaked its backing slice")
	}

	if s.Loads() != 2 || s.Appends() != 1 {
		t.Fatalf("loads=%d appends=%d", s.Loads(), s.Appends())
	}
}

func TestStore_UnknownSheetIsEmpty(t *testing.T) {
	rows, err := New().LoadAllRows(context.Background(), "nope")
	if err != nil || len(rows) != 0 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
}

func TestStore_InjectedErrors(t *testing.T) {
	boom := errors.New("sheet offline")
	s := &Store{LoadErr: boom, AppendErr: boom}

	if _, err := s.LoadAllRows(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("load err=%v", err)
	}
	if err := s.AppendRow(context.Background(), "x", rowstore.Row{"a"}); !errors.Is(err, boom) {
		t.Fatalf("append err=%v", err)
	}
	if s.Loads() != 1 || s.Appends() != 1 {
		t.Fatal("failed calls should still be counted")
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AppendRow(context.Background(), "log", rowstore.Row{"t", "AB1234", "user", "hi"})
		}()
	}
	wg.Wait()

	rows, _ := s.LoadAllRows(context.Background(), "log")
	if len(rows) != 50 {
		t.Fatalf("rows=%d", len(rows))
	}
}

func TestBind(t *testing.T) {
	ctx := context.Background()
	tbl := rowstore.Bind(New(), "log")

	if err := tbl.Append(ctx, rowstore.Row{"a"}); err != nil {
		t.Fatal(err)
	}
	rows, err := tbl.Load(ctx)
	if err != nil || len(rows) != 1 || tbl.ID() != "log" {
		t.Fatalf("rows=%v err=%v id=%s", rows, err, tbl.ID())
	}
}

type readOnly struct{}

func (readOnly) LoadAllRows(context.Context, string) ([]rowstore.Row, error) { return nil, nil }

func TestBind_ReadOnly(t *testing.T) {
	err := rowstore.Bind(readOnly{}, "dir").Append(context.Background(), rowstore.Row{"x"})
	if !errors.Is(err, rowstore.ErrReadOnly) {
		t.Fatalf("err=%v", err)
	}
}
