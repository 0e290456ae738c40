package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mergington/activities/internal/adapter/metrics"
	"github.com/mergington/activities/internal/domain"
	"github.com/mergington/activities/internal/platform/logging"
)

const (
	opSignup     = "signup"
	opUnregister = "unregister"
)

// Service orchestrates roster changes against the catalog store.
type Service struct {
	store   domain.CatalogStore
	metrics *metrics.RosterMetrics
}

// NewService creates the application layer service.
// rosterMetrics may be nil.
func NewService(store domain.CatalogStore, rosterMetrics *metrics.RosterMetrics) *Service {
	return &Service{
		store:   store,
		metrics: rosterMetrics,
	}
}

// ListActivities returns a snapshot of the whole catalog.
func (s *Service) ListActivities(ctx context.Context) (domain.Catalog, error) {
	catalog, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return catalog, nil
}

// SignUp adds email to the named activity and returns the confirmation message.
func (s *Service) SignUp(ctx context.Context, activity, email string) (string, error) {
	if email == "" {
		s.recordChange(opSignup, domain.ErrEmailRequired)
		return "", domain.ErrEmailRequired
	}

	err := s.store.AddParticipant(ctx, activity, email)
	s.recordChange(opSignup, err)
	if err != nil {
		return "", err
	}

	s.adjustRoster(activity, 1)
	logging.WithActivity(slog.Default(), activity).InfoContext(ctx, "Student signed up", "email", email)
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from the named activity and returns the confirmation message.
func (s *Service) Unregister(ctx context.Context, activity, email string) (string, error) {
	if email == "" {
		s.recordChange(opUnregister, domain.ErrEmailRequired)
		return "", domain.ErrEmailRequired
	}

	err := s.store.RemoveParticipant(ctx, activity, email)
	s.recordChange(opUnregister, err)
	if err != nil {
		return "", err
	}

	s.adjustRoster(activity, -1)
	logging.WithActivity(slog.Default(), activity).InfoContext(ctx, "Student unregistered", "email", email)
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

// SyncRosterMetrics sets the per-activity participant gauges from the store.
// Called once at startup; roster changes keep them current afterwards.
func (s *Service) SyncRosterMetrics(ctx context.Context) error {
	if s.metrics == nil {
		return nil
	}

	catalog, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	for name, activity := range catalog {
		s.metrics.SetParticipants(name, len(activity.Participants))
	}
	return nil
}

func (s *Service) recordChange(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordChange(operation, changeResult(err))
}

func (s *Service) adjustRoster(activity string, delta int) {
	if s.metrics == nil {
		return
	}
	s.metrics.AddParticipants(activity, delta)
}

func changeResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, domain.ErrActivityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrAlreadySignedUp), errors.Is(err, domain.ErrNotSignedUp):
		return metrics.ResultConflict
	case errors.Is(err, domain.ErrActivityFull):
		return metrics.ResultFull
	case errors.Is(err, domain.ErrEmailRequired):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
