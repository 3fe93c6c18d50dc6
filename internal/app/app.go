package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/inmemorystore"
	"github.com/specialistvlad/ctrldeploy/internal/loader"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     *loader.Loader
	store      *inmemorystore.Store
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Results are written to
// outW, logs to logW. Each App has its own isolated logger and store.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader.NewLoader(cfg.Vars),
		store:  inmemorystore.New(),
	}
}

// Store returns the application's deployment store. This is primarily for testing.
func (a *App) Store() *inmemorystore.Store {
	return a.store
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
