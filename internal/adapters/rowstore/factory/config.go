package factory

import (
	"context"
	"slices"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/adapters/rowstore/sheets"
	"taxkaki/internal/platform/config"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/logger"
	"taxkaki/internal/platform/store"
)

// TableConfig selects the driver and instance behind one logical table
type TableConfig struct {
	Name    string
	Driver  string
	SheetID string
	Range   string
}

// TableFromConfig reads DRIVER, SHEET_ID and RANGE under c
// memory tables default their id to name so a shared memory store keeps them apart
func TableFromConfig(c config.Conf, name, defRange string) TableConfig {
	t := TableConfig{
		Name:   name,
		Driver: c.MayEnum("DRIVER", DriverMemory, Drivers...),
		Range:  c.MayString("RANGE", defRange),
	}
	if t.Driver == DriverMemory {
		t.SheetID = c.MayString("SHEET_ID", name)
	} else {
		t.SheetID = c.MustString("SHEET_ID")
	}
	return t
}

// Uses reports whether any table is backed by driver
func Uses(driver string, tables ...TableConfig) bool {
	return slices.ContainsFunc(tables, func(t TableConfig) bool { return t.Driver == driver })
}

// OpenBackends opens only the shared clients the given tables need
// root is the unprefixed config; SERVICE_* keys are read from it
func OpenBackends(ctx context.Context, root config.Conf, tables ...TableConfig) (Backends, error) {
	be := Backends{Memory: memory.New()}

	if Uses(DriverSheets, tables...) {
		creds, err := sheets.LoadCredentials(root.MustString("SERVICE_SHEETS_CREDENTIALS_FILE"))
		if err != nil {
			return Backends{}, err
		}
		sc := root.Prefix("SERVICE_SHEETS_")
		be.Sheets = sheets.NewClient(creds, sheets.Options{
			BaseURL: sc.MayString("BASE_URL", ""),
			Timeout: sc.MayDuration("TIMEOUT", 0),
		})
	}

	pgOn, chOn := Uses(DriverPG, tables...), Uses(DriverClickhouse, tables...)
	if !pgOn && !chOn {
		return be, nil
	}
	cfg := store.Config{AppName: "taxkaki"}
	if pgOn {
		pc := root.Prefix("SERVICE_PGSQL_")
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pc.MustString("DBURL"),
			MaxConns:    int32(pc.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pc.MayInt("SLOW_MS", 500),
			LogSQL:      pc.MayBool("LOG_SQL", false),
		}
	}
	if chOn {
		cfg.CH = store.CHConfig{Enabled: true, URL: root.Prefix("SERVICE_CLICKHOUSE_").MustString("DBURL")}
	}
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		return Backends{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "open store")
	}
	be.Store = st
	return be, nil
}

// Close releases the shared database clients; sheets and memory hold nothing open
func (be Backends) Close() error {
	if be.Store == nil {
		return nil
	}
	return perr.WrapIf(be.Store.Close(), perr.ErrorCodeDB, "close store")
}

// Table opens t's driver and binds it to t's instance id
func Table(ctx context.Context, t TableConfig, be Backends) (rowstore.Table, error) {
	s, err := Open(ctx, t.Driver, t.Range, be)
	if err != nil {
		return nil, perr.WithOp(err, "open "+t.Name)
	}
	return rowstore.Bind(s, t.SheetID), nil
}
