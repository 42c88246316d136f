//go:build integration_pg

package pg

import (
	"context"
	"testing"
	"time"

	"taxkaki/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_Integration(t *testing.T) {
	dsn := testkit.Postgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2}, nil, func(pc *pgxpool.Config) {
		pc.ConnConfig.RuntimeParams["application_name"] = "taxkaki-pg-integration"
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)

	var app string
	if err := p.Pool.QueryRow(ctx, "SELECT current_setting('application_name')").Scan(&app); err != nil {
		t.Fatal(err)
	}
	if app != "taxkaki-pg-integration" {
		t.Fatalf("application_name=%q", app)
	}
}
