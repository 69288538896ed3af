package trialstore

import (
	"context"
	"sync"

	"biasaudit/domain/trial"
)

// InMemoryTrialStore is the append-only trial history of one session.
// Insertion order is chronological order; trials are never removed or
// reordered.
type InMemoryTrialStore struct {
	trials []trial.Trial
	mu     sync.RWMutex
}

// New creates an empty store
func New() *InMemoryTrialStore {
	return &InMemoryTrialStore{}
}

// Append validates and records a trial
func (s *InMemoryTrialStore) Append(ctx context.Context, t trial.Trial) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.trials = append(s.trials, t)
	return nil
}

// Len returns the number of recorded trials
func (s *InMemoryTrialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trials)
}

// Snapshot returns a copy of the history that later appends cannot affect
func (s *InMemoryTrialStore) Snapshot() []trial.Trial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]trial.Trial, len(s.trials))
	copy(out, s.trials)
	return out
}
