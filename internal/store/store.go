// Package store is the in-memory authoritative state for employee records
// and request status. Changes happen only through Dispatch.
package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/UnknownOlympus/staffdesk/internal/metrics"
)

// Store guards a State. Bubble Tea commands dispatch from their own
// goroutines, so every access takes the lock.
type Store struct {
	log     *slog.Logger
	metrics *metrics.Metrics

	mu    sync.RWMutex
	state State
}

// New returns an empty, unloaded store.
func New(log *slog.Logger, appMetrics *metrics.Metrics) *Store {
	return &Store{log: log, metrics: appMetrics}
}

// Dispatch applies action and returns the resulting snapshot.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.StoreActions.WithLabelValues(action.Name()).Inc()
	s.metrics.Employees.Set(float64(len(snapshot.Employees)))
	s.log.Debug("store action", "action", action.Name(), "employees", len(snapshot.Employees),
		"loading", snapshot.Loading, "error", snapshot.Error)

	return snapshot
}

// Snapshot returns a copy of the current state that is safe to keep.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Reset drops all state, as at the start of a session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	s.metrics.Employees.Set(0)
}

func (s *Store) snapshotLocked() State {
	snapshot := s.state
	snapshot.Employees = slices.Clone(s.state.Employees)
	return snapshot
}
