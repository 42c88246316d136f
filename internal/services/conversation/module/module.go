// Package module wires conversations into the API using modkit
package module

import (
	"context"

	"taxkaki/internal/core/convo"
	modkit "taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/platform/net/middleware"
	str "taxkaki/internal/platform/strings"
	"taxkaki/internal/services/conversation/domain"
	convhttp "taxkaki/internal/services/conversation/http"
	convsvc "taxkaki/internal/services/conversation/service"
)

// Ports declares what the conversation module needs injected
// History is required, a nil Auth leaves the routes open
type Ports struct {
	History domain.HistoryReader
	Auth    middleware.AuthPort
}

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	in  Ports
	svc convsvc.Service
}

// New constructs the conversation module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions is New with explicit options instead of env
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("conversation"),
		modkit.WithPrefix("/chat"),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.History == nil {
		panic("conversation module requires the History port (from chatlog)")
	}
	svc := convsvc.New(in.History, deps.Completion, convsvc.Options{
		Model:  o.Model,
		Window: convo.Options{WindowSize: o.WindowSize, SystemPrompt: o.SystemPrompt},
	})
	return &Module{b: b, in: in, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		httpkit.Protected(rr, m.in.Auth, func(pr httpkit.Router) { convhttp.Register(pr, m.svc) })
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports exposes Respond to other modules
func (m *Module) Ports() any { return adaptRespond{svc: m.svc} }

type adaptRespond struct{ svc convsvc.Service }

func (a adaptRespond) Respond(ctx context.Context, pan, question string) (domain.Answer, error) {
	return a.svc.Respond(ctx, pan, question)
}
