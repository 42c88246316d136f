// Package api provides the HTTP API for the application
package api

import (
	"taxkaki/internal/platform/config"
	phttp "taxkaki/internal/platform/net/http"
	"taxkaki/internal/platform/net/middleware"

	"taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/modkit/module"
	"taxkaki/internal/modkit/swaggerkit"

	"taxkaki/internal/services/api/playground"
	authmod "taxkaki/internal/services/auth/module"
	chatmod "taxkaki/internal/services/chatlog/module"
	convdom "taxkaki/internal/services/conversation/domain"
	convmod "taxkaki/internal/services/conversation/module"

	metamod "taxkaki/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	EnableSwagger    bool
	EnableProfiler   bool
	EnableMetrics    bool
	EnablePlayground bool
	CORSOrigins      []string
}

// FromConfig reads CORE_API_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{
		EnableSwagger:    c.MayBool("SWAGGER", true),
		EnableProfiler:   c.MayBool("PROFILER", false),
		EnableMetrics:    c.MayBool("METRICS", true),
		EnablePlayground: c.MayBool("PLAYGROUND", true),
		CORSOrigins:      c.MayCSV("CORS_ORIGINS", []string{"*"}),
	}
}

// Modules builds the API modules in dependency order
// auth first for its token port, chatlog next for its history port, then conversation
func Modules(deps modkit.Deps) []module.Module {
	auth := authmod.New(deps)
	tokens, _ := module.PortsOf[middleware.AuthPort](auth)

	chat := chatmod.New(deps, modkit.WithPorts(chatmod.Ports{Auth: tokens}))
	conv := convmod.New(deps, modkit.WithPorts(convmod.Ports{
		History: module.MustPortsOf[convdom.HistoryReader](chat),
		Auth:    tokens,
	}))

	return []module.Module{metamod.New(deps), auth, chat, conv}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, deps modkit.Deps, opt Options) {
	mods := Modules(deps)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics && deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
	playground.Mount(r, "/", opt.EnablePlayground)

	stack := httpkit.CommonStack(httpkit.StackOptions{CORSOrigins: opt.CORSOrigins})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
