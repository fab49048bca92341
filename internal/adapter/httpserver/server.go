package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/bufferpad/internal/adapter/metrics"
	"github.com/pscheid92/bufferpad/internal/buffer"
	"github.com/pscheid92/bufferpad/internal/platform/config"
	"github.com/pscheid92/bufferpad/web"
)

type bufferStore interface {
	Snapshot(ctx context.Context) buffer.Snapshot
	Update(ctx context.Context, text string) buffer.Snapshot
	Check(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	clock  clockwork.Clock

	buffer bufferStore

	templates *template.Template

	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

// NewServer wires the echo instance. The buffer store is owned by the caller
// and shared by every request. healthChecks run after the store's own check
// on readiness.
func NewServer(cfg *config.Config, store bufferStore, clock clockwork.Clock, reg *prometheus.Registry, healthChecks []HealthCheck) (*Server, error) {
	templates, err := template.ParseFS(web.TemplateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.DebugMode()

	srv := &Server{
		echo:         e,
		config:       cfg,
		clock:        clock,
		buffer:       store,
		templates:    templates,
		registry:     reg,
		httpMetrics:  metrics.NewHTTPMetrics(reg),
		healthChecks: healthChecks,
		startTime:    clock.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Host, s.config.Port)
}

func (s *Server) Start() error {
	slog.Info("Starting server", "address", s.Address(), "debug", s.echo.Debug)
	if err := s.echo.Start(s.Address()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP exposes the full middleware chain, mostly for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) renderTemplate(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Template execution failed", "path", c.Request().URL.Path, "error", err)
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(http.StatusOK, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}
