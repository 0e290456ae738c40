package httpserver

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	apperrors "github.com/mergington/activities/internal/platform/errors"
	"golang.org/x/time/rate"
)

const rateLimiterExpiry = 5 * time.Minute

// newRosterRateLimiter throttles roster changes per client IP. One instance is
// shared by the signup and unregister routes, so both draw from the same
// bucket. Listing is never limited.
func newRosterRateLimiter(ratePerSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: rateLimiterExpiry,
		},
	)
	retryAfter := retryAfterSeconds(ratePerSecond)

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			slog.WarnContext(c.Request().Context(), "Roster change rate limited",
				"client_ip", identifier,
				"route", c.Path(),
				"activity", c.Param("name"),
			)
			c.Response().Header().Set("Retry-After", retryAfter)
			return c.JSON(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Detail: "Rate limit exceeded",
			})
		},
	})
}

// retryAfterSeconds is the time for one token to refill, rounded up.
func retryAfterSeconds(ratePerSecond float64) string {
	secs := max(int(math.Ceil(1/ratePerSecond)), 1)
	return strconv.Itoa(secs)
}
