// @title         Tax Kaki API
// @version       0.1.0
// @description   Subscriber login and the per PAN chat log behind the tax assistant

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	cmpfactory "taxkaki/internal/adapters/completion/factory"
	"taxkaki/internal/adapters/rowstore/factory"
	"taxkaki/internal/modkit"
	"taxkaki/internal/platform/config"
	"taxkaki/internal/platform/logger"
	"taxkaki/internal/platform/metrics"
	phttp "taxkaki/internal/platform/net/http"
	"taxkaki/internal/platform/net/middleware"
	ptime "taxkaki/internal/platform/time"

	"taxkaki/internal/services/api"
)

func main() {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	l := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	dirCfg := factory.TableFromConfig(root.Prefix("CORE_DIRECTORY_"), "directory", "Sheet1!A:I")
	logCfg := factory.TableFromConfig(root.Prefix("CORE_CHATLOG_"), "chatlog", "Sheet1!A:D")

	be, err := factory.OpenBackends(ctx, root, dirCfg, logCfg)
	if err != nil {
		l.Panic().Err(err).Msg("open backends failed")
	}
	defer func() {
		if err := be.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	directory, err := factory.Table(ctx, dirCfg, be)
	if err != nil {
		l.Panic().Err(err).Str("driver", dirCfg.Driver).Msg("directory open failed")
	}
	chatlog, err := factory.Table(ctx, logCfg, be)
	if err != nil {
		l.Panic().Err(err).Str("driver", logCfg.Driver).Msg("chat log open failed")
	}

	m := metrics.New()
	deps := modkit.Deps{
		Log:        *l,
		Cfg:        root,
		Clock:      ptime.System{},
		Metrics:    m,
		Store:      be.Store,
		Directory:  directory,
		Chatlog:    chatlog,
		Completion: cmpfactory.FromConfig(root.Prefix("CORE_COMPLETION_"), m),
	}

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(root.Prefix("CORE_API_"), func(mux *chi.Mux) {
		mux.Use(middleware.Heartbeat("/ping"))
	})
	api.Mount(srv.Router(), deps, api.FromConfig(root))

	l.Info().
		Str("addr", srv.Addr()).
		Str("directory", dirCfg.Driver).
		Str("chatlog", logCfg.Driver).
		Msg("taxkaki api starting")

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
