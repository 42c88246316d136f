package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/core/convo"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/metrics"
	ptime "taxkaki/internal/platform/time"
	"taxkaki/internal/services/chatlog/repo"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var now = ptime.Fixed(time.Date(2025, 6, 1, 2, 3, 4, 5_000_000, time.UTC))

func newSvc(mem *memory.Store) (*Svc, *metrics.Metrics) {
	m := metrics.New()
	return New(rowstore.Bind(mem, "log"), repo.NewRows(), now, m), m
}

func TestAppend(t *testing.T) {
	mem := memory.New()
	svc, m := newSvc(mem)

	turn, err := svc.Append(context.Background(), " ab1234 ", convo.RoleUser, "What is the CPF relief cap?")
	if err != nil {
		t.Fatal(err)
	}
	want := convo.Turn{Timestamp: "2025-06-01T02:03:04.005Z", PAN: "AB1234", Role: convo.RoleUser, Content: "What is the CPF relief cap?"}
	if turn != want {
		t.Fatalf("turn=%+v", turn)
	}
	rows, _ := mem.LoadAllRows(context.Background(), "log")
	if len(rows) != 1 || rows[0][0] != want.Timestamp || rows[0][1] != "AB1234" {
		t.Fatalf("rows=%v", rows)
	}
	if got := testutil.ToFloat64(m.HistoryOps.WithLabelValues("append", "ok")); got != 1 {
		t.Fatalf("append ok=%v", got)
	}
}

func TestAppend_Errors(t *testing.T) {
	mem := memory.New()
	svc, m := newSvc(mem)

	if _, err := svc.Append(context.Background(), "  ", convo.RoleUser, "x"); !perr.IsCode(err, perr.ErrorCodeMissingField) {
		t.Fatalf("blank pan err=%v", err)
	}
	if mem.Appends() != 0 {
		t.Fatal("blank pan reached the store")
	}

	mem.AppendErr = errors.New("sheet locked")
	_, err := svc.Append(context.Background(), "AB1234", convo.RoleUser, "x")
	if !perr.IsCode(err, perr.ErrorCodeHistoryWrite) {
		t.Fatalf("err=%v", err)
	}
	if got := testutil.ToFloat64(m.HistoryOps.WithLabelValues("append", "error")); got != 1 {
		t.Fatalf("append error=%v", got)
	}
}

func TestReadAll_FiltersByPAN(t *testing.T) {
	mem := memory.New().Seed("log",
		rowstore.Row{"t1", "XY9999", "user", "q1"},
		rowstore.Row{"t2", "AB1234", "user", "other"},
		rowstore.Row{"t3", "xy9999 ", "assistant", "a1"},
		rowstore.Row{"broken"},
		rowstore.Row{"t4", "AB1234", "assistant", "other answer"},
		rowstore.Row{"t5", "XY9999", "user", "q2"},
	)
	svc, _ := newSvc(mem)

	got, err := svc.ReadAll(context.Background(), "XY9999")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("turns=%+v", got)
	}
	for i, want := range []string{"q1", "a1", "q2"} {
		if got[i].Content != want {
			t.Fatalf("turn %d=%q want %q, store order must be kept", i, got[i].Content, want)
		}
	}

	none, err := svc.ReadAll(context.Background(), "ZZ0000")
	if err != nil || len(none) != 0 {
		t.Fatalf("none=%v err=%v", none, err)
	}
}

func TestReadAll_Errors(t *testing.T) {
	mem := memory.New()
	svc, _ := newSvc(mem)

	if _, err := svc.ReadAll(context.Background(), ""); !perr.IsCode(err, perr.ErrorCodeMissingField) {
		t.Fatalf("blank pan err=%v", err)
	}
	mem.LoadErr = errors.New("timeout")
	if _, err := svc.ReadAll(context.Background(), "AB1234"); !perr.IsCode(err, perr.ErrorCodeHistoryRead) {
		t.Fatalf("err=%v", err)
	}
}

func TestAppend_FoldsRole(t *testing.T) {
	mem := memory.New()
	svc, _ := newSvc(mem)
	ctx := context.Background()

	cases := map[convo.Role]convo.Role{"User": convo.RoleUser, " user ": convo.RoleUser, "Model": convo.RoleAssistant, "": convo.RoleAssistant}
	for in, want := range cases {
		turn, err := svc.Append(ctx, "AB1234", in, "x")
		if err != nil || turn.Role != want {
			t.Fatalf("%q: role=%q err=%v", in, turn.Role, err)
		}
	}
	rows, _ := mem.LoadAllRows(ctx, "log")
	for _, r := range rows {
		if r[repo.ColRole] != "user" && r[repo.ColRole] != "assistant" {
			t.Fatalf("stored role %v", r[repo.ColRole])
		}
	}
}

func TestReadAll_FoldsStoredRoles(t *testing.T) {
	mem := memory.New().Seed("log",
		rowstore.Row{"t1", "AB1234", "User", "q"},
		rowstore.Row{"t2", "AB1234", "bot", "a"},
	)
	svc, _ := newSvc(mem)

	got, err := svc.ReadAll(context.Background(), "AB1234")
	if err != nil || len(got) != 2 {
		t.Fatalf("got=%+v err=%v", got, err)
	}
	if got[0].Role != convo.RoleUser || got[1].Role != convo.RoleAssistant {
		t.Fatalf("roles %q %q", got[0].Role, got[1].Role)
	}
}

func TestAppendThenRead(t *testing.T) {
	svc, _ := newSvc(memory.New())
	ctx := context.Background()
	_, _ = svc.Append(ctx, "AB1234", convo.RoleUser, "q")
	_, _ = svc.Append(ctx, "CD5678", convo.RoleUser, "not mine")
	_, _ = svc.Append(ctx, "ab1234", convo.RoleAssistant, "a")

	got, _ := svc.ReadAll(ctx, "AB1234")
	if len(got) != 2 || got[0].Role != convo.RoleUser || got[1].Role != convo.RoleAssistant {
		t.Fatalf("got=%+v", got)
	}
}
