package dev

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ServerConfig configures the status server.
type ServerConfig struct {
	// Addr is the listen address, e.g. "127.0.0.1:7331".
	Addr string

	// Loop provides the last rebuild report. Required.
	Loop *Loop

	// Metrics is served on /metrics when set.
	Metrics *Metrics

	// Reload serves /_routegen/ws when set.
	Reload *ReloadServer

	Logger *slog.Logger
}

// Server exposes the watch state over HTTP.
type Server struct {
	config ServerConfig
	logger *slog.Logger
	router chi.Router
}

// NewServer creates a status server.
func NewServer(config ServerConfig) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{config: config, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get("/routes", s.handleRoutes)
	if s.config.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.config.Metrics.Handler())
	}
	if s.config.Reload != nil {
		r.Get("/_routegen/ws", s.config.Reload.HandleWebSocket)
	}
	return r
}

// handleRoutes writes the last rebuild report as JSON.
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	report, err := s.config.Loop.Last()

	body := struct {
		Report any    `json:"report"`
		Error  string `json:"error,omitempty"`
	}{Report: report}
	if err != nil {
		body.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if report == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode report", "error", err)
	}
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("status server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if s.config.Reload != nil {
		s.config.Reload.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}
