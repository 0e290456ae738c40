package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ServesRegistry(t *testing.T) {
	reg := NewRegistry()
	roster := NewRosterMetrics(reg)
	roster.SetParticipants("Chess Club", 3)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mergington_roster_participants{activity="Chess Club"} 3`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRosterMetrics_RecordChange(t *testing.T) {
	m := NewRosterMetrics(prometheus.NewRegistry())

	m.RecordChange("signup", ResultOK)
	m.RecordChange("signup", ResultOK)
	m.RecordChange("signup", ResultConflict)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.Changes.WithLabelValues("signup", ResultOK)), 0.0001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Changes.WithLabelValues("signup", ResultConflict)), 0.0001)
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.POST("/activities/:name/signup", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "/activities/:name/signup", "200"))
	assert.InDelta(t, 1.0, got, 0.0001)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.InFlightGauge), 0.0001)
}

func TestHTTPMetrics_SkipsOperationalRoutes(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, 0, testutil.CollectAndCount(m.RequestsTotal))
}

func TestHTTPMetrics_StatusFromReturnedError(t *testing.T) {
	tests := []struct {
		name    string
		handler echo.HandlerFunc
		want    string
	}{
		{
			name:    "http error",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusTooManyRequests) },
			want:    "429",
		},
		{
			name:    "plain error",
			handler: func(c echo.Context) error { return errors.New("boom") },
			want:    "500",
		},
		{
			name: "committed before error",
			handler: func(c echo.Context) error {
				_ = c.NoContent(http.StatusAccepted)
				return echo.ErrBadRequest
			},
			want: "202",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewHTTPMetrics(prometheus.NewRegistry())
			e := echo.New()
			e.Use(m.Middleware())
			e.POST("/activities/:name/signup", tt.handler)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/activities/Chess%20Club/signup", nil))

			got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "/activities/:name/signup", tt.want))
			assert.InDelta(t, 1.0, got, 0.0001)
			assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
		})
	}
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/activities", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope/abc123", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, UnmatchedRoute, "404"))
	assert.InDelta(t, 1.0, got, 0.0001)
}
