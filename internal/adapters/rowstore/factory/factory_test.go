package factory

import (
	"context"
	"errors"
	"testing"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/platform/config"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/store"
	"taxkaki/internal/platform/testkit"
)

func TestOpen_Memory(t *testing.T) {
	shared := memory.New()
	s, err := Open(context.Background(), DriverMemory, "", Backends{Memory: shared})
	if err != nil {
		t.Fatal(err)
	}
	if s != rowstore.Store(shared) {
		t.Fatal("expected the shared memory store")
	}

	s, err = Open(context.Background(), DriverMemory, "", Backends{})
	if err != nil || s == nil {
		t.Fatalf("fresh memory store: %v", err)
	}
}

func TestOpen_MissingBackends(t *testing.T) {
	for _, d := range []string{DriverSheets, DriverPG, DriverClickhouse} {
		_, err := Open(context.Background(), d, "Sheet1!A:I", Backends{Store: &store.Store{}})
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%s: err=%v", d, err)
		}
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "excel", "", Backends{})
	if !errors.Is(err, rowstore.ErrUnknownDriver) {
		t.Fatalf("err=%v", err)
	}
}

func TestTableFromConfig(t *testing.T) {
	testkit.Env(t, map[string]string{
		"T_LOG_DRIVER":   "",
		"T_DIR_DRIVER":   "Sheets",
		"T_DIR_SHEET_ID": "abc",
	})

	log := TableFromConfig(config.New().Prefix("T_LOG_"), "chatlog", "Sheet1!A:D")
	if log.Driver != DriverMemory || log.SheetID != "chatlog" || log.Range != "Sheet1!A:D" {
		t.Fatalf("memory defaults: %+v", log)
	}

	dir := TableFromConfig(config.New().Prefix("T_DIR_"), "directory", "Sheet1!A:I")
	if dir.Driver != DriverSheets || dir.SheetID != "abc" {
		t.Fatalf("sheets: %+v", dir)
	}
	if !Uses(DriverSheets, log, dir) || Uses(DriverPG, log, dir) {
		t.Fatal("Uses mismatch")
	}
}

func TestTableFromConfig_SheetIDRequired(t *testing.T) {
	testkit.Env(t, map[string]string{"T_X_DRIVER": "pg", "T_X_SHEET_ID": ""})
	testkit.MustPanic(t, func() { TableFromConfig(config.New().Prefix("T_X_"), "x", "") })
}

func TestOpenBackends_MemoryOnly(t *testing.T) {
	tables := []TableConfig{{Name: "directory", Driver: DriverMemory, SheetID: "dir"}, {Name: "chatlog", Driver: DriverMemory, SheetID: "log"}}
	be, err := OpenBackends(context.Background(), config.New(), tables...)
	if err != nil {
		t.Fatal(err)
	}
	if be.Store != nil || be.Sheets != nil || be.Memory == nil {
		t.Fatalf("backends: %+v", be)
	}
	if err := be.Close(); err != nil {
		t.Fatal(err)
	}

	be.Memory.Seed("dir", rowstore.Row{"x"})
	dir, err := Table(context.Background(), tables[0], be)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := dir.Load(context.Background())
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
	if dir.ID() != "dir" {
		t.Fatalf("id=%q", dir.ID())
	}
}

func TestTable_WrapsOpenError(t *testing.T) {
	_, err := Table(context.Background(), TableConfig{Name: "directory", Driver: DriverPG}, Backends{})
	e, ok := perr.As(err)
	if !ok || e.Op() != "open directory" {
		t.Fatalf("err=%v", err)
	}
}
