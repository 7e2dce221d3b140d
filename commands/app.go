// Package commands implements the cafedesk console commands and the
// submission flows behind them.
package commands

import (
	"log/slog"
	"os"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/config"
	"github.com/cafedesk/cafedesk/form"
	"github.com/cafedesk/cafedesk/mutate"
	"github.com/cafedesk/cafedesk/query"
	"github.com/cafedesk/cafedesk/store"
	"github.com/cafedesk/cafedesk/upload"
)

// App wires the data-sync layer together: one gateway, one shared cache,
// and the coordinators on top. Commands receive the App rather than
// reaching into globals.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Gateway   *api.Gateway
	Cache     *query.Cache
	Store     *store.Store
	Mutations *mutate.Coordinator
	Uploads   *upload.Orchestrator
}

// NewApp builds the application from configuration.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	gateway := api.NewGateway(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
	)
	cache := query.NewCache(
		query.WithStaleAfter(cfg.Cache.StaleAfter),
		query.WithLogger(logger),
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Gateway:   gateway,
		Cache:     cache,
		Store:     store.New(gateway, cache),
		Mutations: mutate.NewCoordinator(gateway, cache, mutate.WithLogger(logger)),
		Uploads:   upload.NewOrchestrator(gateway, upload.WithLogger(logger)),
	}
}

// newFormGuard creates a guard for one form session with the leave
// interceptor bound to it. The interceptor prompts on the terminal and is
// armed only while the guard warns.
func newFormGuard(baseline form.Snapshot, app *App) (*form.Guard, *form.Interceptor) {
	guard := form.NewGuard(baseline)
	interceptor := form.NewInterceptor(
		form.WithConfirm(func(message string) bool {
			return confirm(os.Stdin, os.Stderr, message)
		}),
		form.WithInterceptorLogger(app.Logger),
	)
	interceptor.Bind(guard)
	return guard, interceptor
}

// NewLogger builds an slog logger at the configured level.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
