package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/snapshot"
)

const shutdownTimeout = 5 * time.Second

// handler builds the HTTP routes. ctx carries the logger used by reloads.
func (a *App) handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /deployment", a.deploymentHandler)
	mux.HandleFunc("POST /reload", func(w http.ResponseWriter, r *http.Request) {
		a.reloadHandler(ctx, w, r)
	})
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) deploymentHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Deployment endpoint hit.", "remote_addr", r.RemoteAddr)
	rev := a.store.Current()
	if rev == nil {
		http.Error(w, "no deployment published", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Revision", rev.ID.String())
	if err := snapshot.Encode(w, snapshot.FormatJSON, rev.Deployment); err != nil {
		a.logger.Error("Failed to write deployment response.", "error", err)
	}
}

func (a *App) reloadHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	a.logger.Info("Reload requested.", "remote_addr", r.RemoteAddr)
	rev, err := a.reload(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("X-Revision", rev.ID.String())
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, rev.ID.String())
}

// serve runs the HTTP server until ctx is done, then shuts it down.
func (a *App) serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring HTTP server.")

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.HTTPPort))
	if err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	a.httpServer = &http.Server{
		Handler:           a.handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://%s/health", ln.Addr()))
		errCh <- a.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed unexpectedly", "error", err)
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return a.closeServer()
}

func (a *App) closeServer() error {
	a.logger.Debug("Closing HTTP server...")

	if a.httpServer == nil {
		a.logger.Debug("HTTP server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("🩺 Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("HTTP server shut down gracefully.")
	return nil
}
