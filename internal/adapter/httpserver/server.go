package httpserver

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/internal/adapter/metrics"
	"github.com/mergington/activities/internal/domain"
	"github.com/mergington/activities/internal/platform/config"
	"github.com/mergington/activities/web"
	"github.com/prometheus/client_golang/prometheus"
)

type appService interface {
	ListActivities(ctx context.Context) (domain.Catalog, error)
	SignUp(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app appService

	registry    *prometheus.Registry
	httpMetrics *metrics.HTTPMetrics
	staticFiles fs.FS

	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

// NewServer builds the Echo server and registers all routes.
// registry may be nil, in which case /metrics is not served. extraChecks run
// after the built-in catalog and static asset checks.
func NewServer(cfg *config.Config, app appService, registry *prometheus.Registry, clock clockwork.Clock, extraChecks ...HealthCheck) (*Server, error) {
	staticFiles, err := fs.Sub(web.StaticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	srv := &Server{
		echo:        newEcho(),
		config:      cfg,
		app:         app,
		registry:    registry,
		staticFiles: staticFiles,
		clock:       clock,
		startTime:   clock.Now(),
	}
	srv.healthChecks = append(srv.defaultHealthChecks(), extraChecks...)
	if registry != nil {
		srv.httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	srv.registerRoutes()

	return srv, nil
}

// newEcho configures the Echo instance. Client IPs come from the TCP peer
// address; X-Forwarded-For and X-Real-IP are ignored.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler
	e.IPExtractor = echo.ExtractIPDirect()
	return e
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
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
