package store

import (
	"sync"

	"TrendLens/internal/model"
)

// Snapshot keeps the latest successfully loaded series set. Reads return
// copies so callers can never mutate what other readers see.
type Snapshot struct {
	mu      sync.RWMutex
	current *model.SeriesSet
	lastErr error
}

func NewSnapshot() *Snapshot { return &Snapshot{} }

// Set replaces the current series set and clears the last error.
func (s *Snapshot) Set(set *model.SeriesSet) {
	cp := set.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cp
	s.lastErr = nil
}

// Fail records a failed reload. The previous series set stays in place.
func (s *Snapshot) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Get returns a copy of the current series set, or nil before the first load.
func (s *Snapshot) Get() *model.SeriesSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// LastError returns the error of the most recent reload, if it failed.
func (s *Snapshot) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
