// Package module wires auth into the API using modkit
package module

import (
	"context"

	modkit "taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/platform/net/middleware"
	str "taxkaki/internal/platform/strings"
	"taxkaki/internal/services/auth/domain"
	authhttp "taxkaki/internal/services/auth/http"
	authrepo "taxkaki/internal/services/auth/repo"
	authsvc "taxkaki/internal/services/auth/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	svc   authsvc.Service
	ports Ports
}

// Ports are what auth offers other modules
// Tokens is nil when session tokens are disabled
type Ports struct {
	Authenticator domain.AuthenticatePort
	Tokens        middleware.AuthPort
}

// New constructs the auth module over deps.Directory
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions is New with explicit options instead of env
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("auth"),
		modkit.WithPrefix("/auth"),
	}, opts...)...)

	sessions := authsvc.NewSessions(o.SessionSecret, o.SessionTTL, deps.ClockOrSystem())
	svc := authsvc.New(deps.Directory, authrepo.NewRows(), authsvc.Options{
		Location: o.Location,
		Clock:    deps.ClockOrSystem(),
		Sessions: sessions,
		Metrics:  deps.Metrics,
	})

	m := &Module{b: b, svc: svc}
	m.ports.Authenticator = adaptAuthPort{svc: svc}
	if sessions.Enabled() {
		m.ports.Tokens = httpkit.NewPortFunc(sessions.Parse)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { authhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptAuthPort struct{ svc authsvc.Service }

func (a adaptAuthPort) Authenticate(ctx context.Context, pan, pin string) (domain.Result, error) {
	return a.svc.Authenticate(ctx, pan, pin)
}
