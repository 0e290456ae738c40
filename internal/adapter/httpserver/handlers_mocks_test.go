package httpserver

import (
	"context"
	"io/fs"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/mergington/activities/internal/adapter/metrics"
	"github.com/mergington/activities/internal/domain"
	"github.com/mergington/activities/internal/platform/config"
	"github.com/mergington/activities/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockAppService struct {
	listActivitiesFn func(ctx context.Context) (domain.Catalog, error)
	signUpFn         func(ctx context.Context, activity, email string) (string, error)
	unregisterFn     func(ctx context.Context, activity, email string) (string, error)
}

func (m *mockAppService) ListActivities(ctx context.Context) (domain.Catalog, error) {
	if m.listActivitiesFn != nil {
		return m.listActivitiesFn(ctx)
	}
	return domain.Catalog{}, nil
}

func (m *mockAppService) SignUp(ctx context.Context, activity, email string) (string, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, activity, email)
	}
	return "", domain.ErrActivityNotFound
}

func (m *mockAppService) Unregister(ctx context.Context, activity, email string) (string, error) {
	if m.unregisterFn != nil {
		return m.unregisterFn(ctx, activity, email)
	}
	return "", domain.ErrActivityNotFound
}

// --- Test helpers ---

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	staticFiles, err := fs.Sub(web.StaticFiles, "static")
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	srv := &Server{
		echo:        newEcho(),
		config:      &config.Config{Port: "8000"},
		app:         app,
		staticFiles: staticFiles,
		clock:       clock,
		startTime:   clock.Now(),
	}
	srv.healthChecks = srv.defaultHealthChecks()

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func withStaticFiles(files fs.FS) func(*Server) {
	return func(s *Server) {
		s.staticFiles = files
	}
}

func withClock(clock clockwork.Clock) func(*Server) {
	return func(s *Server) {
		s.clock = clock
		s.startTime = clock.Now()
	}
}

func withRateLimit(perSecond float64, burst int) func(*Server) {
	return func(s *Server) {
		s.config.RateLimitPerSecond = perSecond
		s.config.RateLimitBurst = burst
	}
}

func withRegistry(reg *prometheus.Registry) func(*Server) {
	return func(s *Server) {
		s.registry = reg
		s.httpMetrics = metrics.NewHTTPMetrics(reg)
	}
}
