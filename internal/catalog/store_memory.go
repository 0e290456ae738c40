package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mergington/activities/internal/domain"
)

type entry struct {
	mu       sync.Mutex
	activity domain.Activity
}

var _ domain.CatalogStore = (*InMemoryStore)(nil)

// InMemoryStore holds the activity catalog in process memory.
// The set of activities is fixed at construction; only rosters change.
type InMemoryStore struct {
	mode            LockMode
	enforceCapacity bool

	mu      sync.RWMutex
	entries map[string]*entry
}

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithLockMode sets the serialization strategy. The default is LockGlobal.
func WithLockMode(mode LockMode) Option {
	return func(s *InMemoryStore) {
		s.mode = mode
	}
}

// WithCapacityEnforcement makes AddParticipant reject signups once an
// activity reaches MaxParticipants.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *InMemoryStore) {
		s.enforceCapacity = enabled
	}
}

// NewInMemoryStore creates a store seeded with a copy of seed.
func NewInMemoryStore(seed domain.Catalog, opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		mode:    LockGlobal,
		entries: make(map[string]*entry, len(seed)),
	}
	for name, activity := range seed {
		s.entries[name] = &entry{activity: activity.Clone()}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a snapshot of the catalog.
func (s *InMemoryStore) List(_ context.Context) (domain.Catalog, error) {
	unlock := s.lockRead()
	defer unlock()

	out := make(domain.Catalog, len(s.entries))
	for name, e := range s.entries {
		unlockEntry := s.lockEntry(e)
		out[name] = e.activity.Clone()
		unlockEntry()
	}
	return out, nil
}

func (s *InMemoryStore) AddParticipant(_ context.Context, activity, email string) error {
	e, ok := s.entries[activity]
	if !ok {
		return fmt.Errorf("%q: %w", activity, domain.ErrActivityNotFound)
	}

	unlock := s.lockWrite(e)
	defer unlock()

	if e.activity.HasParticipant(email) {
		return fmt.Errorf("%q in %q: %w", email, activity, domain.ErrAlreadySignedUp)
	}
	if s.enforceCapacity && e.activity.IsFull() {
		return fmt.Errorf("%q: %w", activity, domain.ErrActivityFull)
	}

	e.activity.Participants = append(e.activity.Participants, email)
	return nil
}

func (s *InMemoryStore) RemoveParticipant(_ context.Context, activity, email string) error {
	e, ok := s.entries[activity]
	if !ok {
		return fmt.Errorf("%q: %w", activity, domain.ErrActivityNotFound)
	}

	unlock := s.lockWrite(e)
	defer unlock()

	idx := slices.Index(e.activity.Participants, email)
	if idx < 0 {
		return fmt.Errorf("%q in %q: %w", email, activity, domain.ErrNotSignedUp)
	}

	e.activity.Participants = slices.Delete(e.activity.Participants, idx, idx+1)
	return nil
}
