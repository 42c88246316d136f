package repokit

import (
	"context"
	"errors"
	"testing"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/platform/testkit"
)

type countRepo struct{ q Queryer }

func (c countRepo) Count(ctx context.Context) (int, error) {
	rows, err := c.q.Load(ctx)
	return len(rows), err
}

func TestMustBind(t *testing.T) {
	mem := memory.New()
	mem.Seed("log", rowstore.Row{"a"}, rowstore.Row{"b"})

	b := BindFunc[countRepo](func(q Queryer) countRepo { return countRepo{q: q} })
	repo := MustBind[countRepo](b, rowstore.Bind(mem, "log"))

	n, err := repo.Count(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestMustBind_Panics(t *testing.T) {
	b := BindFunc[countRepo](func(q Queryer) countRepo { return countRepo{q: q} })
	testkit.MustPanic(t, func() { MustBind[countRepo](b, nil) })
	testkit.MustPanic(t, func() { MustBind[countRepo](nil, rowstore.Bind(memory.New(), "x")) })
	testkit.MustPanic(t, func() { RequireQueryer(nil) })
}

type pinger func(context.Context) error

func (p pinger) Ping(ctx context.Context) error { return p(ctx) }

func TestMustPing(t *testing.T) {
	var sawDeadline bool
	ok := pinger(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})
	testkit.MustNotPanic(t, func() { MustPing(context.Background(), "pg", ok) })
	if !sawDeadline {
		t.Fatal("default deadline not applied")
	}

	down := pinger(func(context.Context) error { return errors.New("connection refused") })
	testkit.MustPanic(t, func() { MustPing(context.Background(), "pg", down) })
	testkit.MustPanic(t, func() { MustPing(context.Background(), "pg", nil) })
}
