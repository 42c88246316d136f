// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"taxkaki/internal/core/version"
	modkit "taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	str "taxkaki/internal/platform/strings"

	metahttp "taxkaki/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	checks    map[string]metahttp.Pinger
	startedAt time.Time
}

// New constructs a meta module; readiness pings the SQL stores that are configured
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	checks := map[string]metahttp.Pinger{"pg": nil, "ch": nil}
	if st := deps.Store; st != nil {
		if p, ok := st.PG.(metahttp.Pinger); ok && st.PG != nil {
			checks["pg"] = p
		}
		if p, ok := st.CH.(metahttp.Pinger); ok && st.CH != nil {
			checks["ch"] = p
		}
	}
	return &Module{b: b, checks: checks, startedAt: deps.ClockOrSystem().Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Checks:      m.checks,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
