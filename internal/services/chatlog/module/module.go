// Package module wires the chat log into the API using modkit
package module

import (
	"context"

	"taxkaki/internal/core/convo"
	modkit "taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/platform/net/middleware"
	str "taxkaki/internal/platform/strings"
	chathttp "taxkaki/internal/services/chatlog/http"
	chatrepo "taxkaki/internal/services/chatlog/repo"
	chatsvc "taxkaki/internal/services/chatlog/service"
)

// Ports declares what the chat log module needs injected
// a nil Auth leaves the routes open
type Ports struct {
	Auth middleware.AuthPort
}

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	in  Ports
	svc chatsvc.Service
}

// New constructs the chat log module over deps.Chatlog
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("chatlog"),
		modkit.WithPrefix("/history"),
	}, opts...)...)

	var in Ports
	if p, ok := b.Ports.(Ports); ok {
		in = p
	}
	svc := chatsvc.New(deps.Chatlog, chatrepo.NewRows(), deps.ClockOrSystem(), deps.Metrics)
	return &Module{b: b, in: in, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		httpkit.Protected(rr, m.in.Auth, func(pr httpkit.Router) { chathttp.Register(pr, m.svc) })
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports exposes the chat log to other modules
func (m *Module) Ports() any { return adaptHistory{svc: m.svc} }

type adaptHistory struct{ svc chatsvc.Service }

func (a adaptHistory) Append(ctx context.Context, pan string, role convo.Role, content string) (convo.Turn, error) {
	return a.svc.Append(ctx, pan, role, content)
}

func (a adaptHistory) ReadAll(ctx context.Context, pan string) ([]convo.Turn, error) {
	return a.svc.ReadAll(ctx, pan)
}
