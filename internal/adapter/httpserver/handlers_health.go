package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/bufferpad/internal/platform/version"
)

const (
	readinessTimeout = 2 * time.Second
	bufferCheckName  = "buffer"
)

// HealthCheck is an additional dependency checked on readiness.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type readyResponse struct {
	Status    string    `json:"status"`
	Revision  uint64    `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

type unhealthyResponse struct {
	Status      string `json:"status"`
	FailedCheck string `json:"failed_check"`
	Error       string `json:"error"`
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status": "ok",
		"uptime": s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

// handleReadiness verifies the buffer store before any extra checks and
// reports the revision and time of the last update when everything passes.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if name, err := s.firstFailingCheck(ctx); err != nil {
		resp := unhealthyResponse{Status: "unhealthy", FailedCheck: name, Error: err.Error()}
		if err := c.JSON(http.StatusServiceUnavailable, resp); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	snap := s.buffer.Snapshot(ctx)
	resp := readyResponse{Status: "ready", Revision: snap.Revision, UpdatedAt: snap.UpdatedAt.UTC()}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) firstFailingCheck(ctx context.Context) (string, error) {
	if err := s.buffer.Check(ctx); err != nil {
		return bufferCheckName, err
	}
	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			return hc.Name, err
		}
	}
	return "", nil
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
