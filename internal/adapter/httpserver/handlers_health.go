package httpserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/internal/domain"
	"github.com/mergington/activities/internal/platform/version"
)

const (
	startupProbeTimeout   = 2 * time.Second
	readinessProbeTimeout = 5 * time.Second
)

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/startup", s.handleStartup)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
}

func (s *Server) defaultHealthChecks() []HealthCheck {
	return []HealthCheck{
		{Name: "catalog", Check: s.checkCatalog},
		{Name: "static_assets", Check: s.checkStaticAssets},
	}
}

func (s *Server) checkCatalog(ctx context.Context) error {
	activities, err := s.app.ListActivities(ctx)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		return fmt.Errorf("catalog has no activities")
	}
	return nil
}

func (s *Server) checkStaticAssets(_ context.Context) error {
	if _, err := fs.Stat(s.staticFiles, indexFile); err != nil {
		return fmt.Errorf("%s: %w", indexFile, err)
	}
	return nil
}

func (s *Server) handleStartup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), startupProbeTimeout)
	defer cancel()

	if failed, err := s.runHealthChecks(ctx); err != nil {
		return writeUnhealthy(c, failed, err)
	}
	if err := c.JSON(http.StatusOK, map[string]string{"status": "started"}); err != nil {
		return fmt.Errorf("failed to write startup response: %w", err)
	}
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := s.clock.Since(s.startTime).Seconds()

	response := map[string]any{
		"status": "ok",
		"uptime": uptime,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}

	return nil
}

// handleReadiness runs every check, then reports activity and participant counts.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	if failed, err := s.runHealthChecks(ctx); err != nil {
		return writeUnhealthy(c, failed, err)
	}

	activities, err := s.app.ListActivities(ctx)
	if err != nil {
		return writeUnhealthy(c, "catalog", err)
	}

	response := map[string]any{
		"status":       "ready",
		"activities":   len(activities),
		"participants": countParticipants(activities),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write readiness response: %w", err)
	}
	return nil
}

// runHealthChecks stops at the first failing check and returns its name.
func (s *Server) runHealthChecks(ctx context.Context) (string, error) {
	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			return hc.Name, err
		}
	}
	return "", nil
}

func writeUnhealthy(c echo.Context, failedCheck string, checkErr error) error {
	response := map[string]any{
		"status":       "unhealthy",
		"failed_check": failedCheck,
		"error":        checkErr.Error(),
	}
	if err := c.JSON(http.StatusServiceUnavailable, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func countParticipants(activities domain.Catalog) int {
	n := 0
	for _, a := range activities {
		n += len(a.Participants)
	}
	return n
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
