// Package web serves the idea engine as a JSON HTTP API, plus an HTML
// preview of the session's export document.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/asismo/idea-management-mvp/internal/app"
)

// NewServer creates and configures the HTTP server for the idea API.
func NewServer(a *app.App, log zerolog.Logger, version, bind string, port int) *http.Server {
	h := &Handlers{
		app:     a,
		log:     log,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ideas", http.StatusFound)
	})
	mux.HandleFunc("GET /ideas", h.HandleListIdeas)
	mux.HandleFunc("POST /ideas", h.HandleCapture)
	mux.HandleFunc("GET /ideas/search", h.HandleSearch)
	mux.HandleFunc("PATCH /ideas/{id}", h.HandleUpdateIdea)
	mux.HandleFunc("DELETE /ideas/{id}", h.HandleDeleteIdea)

	mux.HandleFunc("GET /folders", h.HandleListFolders)
	mux.HandleFunc("POST /folders", h.HandleCreateFolder)
	mux.HandleFunc("POST /folders/merge", h.HandleMergeFolders)
	mux.HandleFunc("POST /folders/{id}/describe", h.HandleDescribeFolder)
	mux.HandleFunc("DELETE /folders/{id}", h.HandleDeleteFolder)

	mux.HandleFunc("GET /settings", h.HandleGetSettings)
	mux.HandleFunc("PATCH /settings", h.HandleUpdateSettings)

	mux.HandleFunc("GET /export", h.HandleExport)
	mux.HandleFunc("GET /preview", h.HandlePreview)

	mux.HandleFunc("GET /healthz", h.HandleHealth)

	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log zerolog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("addr", srv.Addr).Msg("idea API listening")

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn().Msg("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
