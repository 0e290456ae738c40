package catalog

import "fmt"

// LockMode selects how roster mutations are serialized.
type LockMode string

const (
	// LockGlobal serializes all mutations behind one RWMutex. List takes the read side.
	LockGlobal LockMode = "global"
	// LockActivity gives every activity its own mutex. List locks each activity while copying it.
	LockActivity LockMode = "activity"
	// LockNone performs no serialization. Concurrent writes to the same activity race.
	LockNone LockMode = "none"
)

// ParseLockMode converts a config value into a LockMode.
func ParseLockMode(s string) (LockMode, error) {
	switch mode := LockMode(s); mode {
	case LockGlobal, LockActivity, LockNone:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown lock mode %q (want global, activity or none)", s)
	}
}

func noop() {}

func (s *InMemoryStore) lockRead() func() {
	if s.mode != LockGlobal {
		return noop
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *InMemoryStore) lockWrite(e *entry) func() {
	switch s.mode {
	case LockGlobal:
		s.mu.Lock()
		return s.mu.Unlock
	case LockActivity:
		e.mu.Lock()
		return e.mu.Unlock
	default:
		return noop
	}
}

// lockEntry is taken per activity while List copies it.
func (s *InMemoryStore) lockEntry(e *entry) func() {
	if s.mode != LockActivity {
		return noop
	}
	e.mu.Lock()
	return e.mu.Unlock
}
