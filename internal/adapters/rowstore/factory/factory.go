// Package factory opens a row store by driver name
package factory

import (
	"context"
	"fmt"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/chrows"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/adapters/rowstore/pgrows"
	"taxkaki/internal/adapters/rowstore/sheets"
	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/store"
)

// Driver names accepted in CORE_*_DRIVER
const (
	DriverMemory     = "memory"
	DriverSheets     = "sheets"
	DriverPG         = "pg"
	DriverClickhouse = "clickhouse"
)

// Drivers lists every supported driver
var Drivers = []string{DriverMemory, DriverSheets, DriverPG, DriverClickhouse}

// Backends are the shared clients a driver may need; unused ones may be nil
type Backends struct {
	Store  *store.Store
	Sheets *sheets.Client
	Memory *memory.Store
}

// Open returns the store for driver
// rng is the A1 range used by the sheets driver and ignored by the others
func Open(ctx context.Context, driver, rng string, be Backends) (rowstore.Store, error) {
	switch driver {
	case DriverMemory:
		if be.Memory == nil {
			return memory.New(), nil
		}
		return be.Memory, nil
	case DriverSheets:
		if be.Sheets == nil {
			return nil, perr.InvalidArgf("sheets driver needs SERVICE_SHEETS_CREDENTIALS_FILE")
		}
		return sheets.NewStore(be.Sheets, rng), nil
	case DriverPG:
		if be.Store == nil || be.Store.PG == nil {
			return nil, perr.InvalidArgf("pg driver needs SERVICE_PGSQL_DBURL")
		}
		s, err := pgrows.Open(ctx, be.Store.PG)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverClickhouse:
		if be.Store == nil || be.Store.CH == nil {
			return nil, perr.InvalidArgf("clickhouse driver needs SERVICE_CLICKHOUSE_DBURL")
		}
		s, err := chrows.Open(ctx, be.Store.CH)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w %q", rowstore.ErrUnknownDriver, driver)
}
