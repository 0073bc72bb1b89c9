// Package web hosts the browser-facing setup assistant service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/setupassistant/internal/plan"
	"github.com/louisbranch/setupassistant/internal/platform/timeouts"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
	"golang.org/x/text/language"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Catalog  *plan.Catalog
	// DefaultLanguage is used when a request expresses no supported
	// preference. The zero tag selects i18n.DefaultTag.
	DefaultLanguage language.Tag
	Logger          *log.Logger
}

// Server hosts the HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("plan catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	defaultLanguage := cfg.DefaultLanguage
	if defaultLanguage == language.Und {
		defaultLanguage = i18n.DefaultTag()
	}
	h := &handlers{
		catalog:         cfg.Catalog,
		defaultLanguage: defaultLanguage,
		logger:          logger,
		metrics:         newMetrics(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID())
	r.Use(withRequestLogger(logger))

	r.Get("/healthz", healthz)
	r.Method(http.MethodGet, "/metrics", h.metrics.handler())
	r.Get("/", h.index)
	r.Get("/plans/{plan}", h.showPlan)
	r.Post("/plans/{plan}/steps/{index}/toggle", h.toggleStep)
	return r, nil
}

// NewServer validates config and constructs a server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
