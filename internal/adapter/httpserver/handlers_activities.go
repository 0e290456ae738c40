package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/internal/domain"
	apperrors "github.com/mergington/activities/internal/platform/errors"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) registerActivityRoutes() {
	var limit []echo.MiddlewareFunc
	if s.config.RateLimitPerSecond > 0 {
		limit = append(limit, newRosterRateLimiter(s.config.RateLimitPerSecond, s.config.RateLimitBurst))
	}

	s.echo.GET("/activities", s.handleListActivities)
	s.echo.POST("/activities/:name/signup", s.handleSignup, limit...)
	s.echo.DELETE("/activities/:name/unregister", s.handleUnregister, limit...)
}

func (s *Server) handleListActivities(c echo.Context) error {
	activities, err := s.app.ListActivities(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list activities", err)
	}

	if err := c.JSON(http.StatusOK, activities); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSignup(c echo.Context) error {
	activity, err := activityParam(c)
	if err != nil {
		return err
	}
	email := c.QueryParam("email")

	msg, err := s.app.SignUp(c.Request().Context(), activity, email)
	if err != nil {
		return rosterError(err, activity, email)
	}

	if err := c.JSON(http.StatusOK, messageResponse{Message: msg}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUnregister(c echo.Context) error {
	activity, err := activityParam(c)
	if err != nil {
		return err
	}
	email := c.QueryParam("email")

	msg, err := s.app.Unregister(c.Request().Context(), activity, email)
	if err != nil {
		return rosterError(err, activity, email)
	}

	if err := c.JSON(http.StatusOK, messageResponse{Message: msg}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// activityParam returns the decoded :name segment. Echo routes on the decoded
// path unless the URL carries a distinct raw form (e.g. an encoded slash), in
// which case the parameter is still escaped.
func activityParam(c echo.Context) (string, error) {
	name := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return name, nil
	}

	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", apperrors.ValidationError("Invalid activity name").WithField("activity", name)
	}
	return decoded, nil
}

func rosterError(err error, activity, email string) error {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return apperrors.NotFoundError("Activity not found").WithField("activity", activity)
	case errors.Is(err, domain.ErrAlreadySignedUp):
		return apperrors.ConflictError("Student already signed up for this activity").
			WithField("activity", activity).
			WithField("email", email)
	case errors.Is(err, domain.ErrNotSignedUp):
		return apperrors.ConflictError("Student not signed up for this activity").
			WithField("activity", activity).
			WithField("email", email)
	case errors.Is(err, domain.ErrActivityFull):
		return apperrors.ConflictError("Activity is full").WithField("activity", activity)
	case errors.Is(err, domain.ErrEmailRequired):
		return apperrors.ValidationError("Email is required").WithField("activity", activity)
	default:
		return apperrors.InternalError("failed to update roster", err).WithField("activity", activity)
	}
}
