package core

import (
	"fmt"
	"sync"
)

// Stats tracks in-memory counters for beam lifecycle activity. It
// implements EventSink and is safe to share across goroutines, which
// matters when a parallel pipeline pre-materializes many detectors.
type Stats struct {
	mu sync.Mutex

	NumGaussianSynthesized uint64
	NumCoefficientsLoaded  uint64
	NumCacheInvalidations  uint64
	NumGhostsCreated       uint64
	NumStorageShared       uint64
}

// NewStats creates a Stats instance with all counters at zero.
func NewStats() *Stats {
	return &Stats{}
}

// GaussianSynthesized increments the synthesis counter.
func (s *Stats) GaussianSynthesized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NumGaussianSynthesized++
}

// CoefficientsLoaded increments the file-load counter.
func (s *Stats) CoefficientsLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NumCoefficientsLoaded++
}

// CacheInvalidated increments the invalidation counter.
func (s *Stats) CacheInvalidated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NumCacheInvalidations++
}

// GhostCreated increments the ghost-creation counter.
func (s *Stats) GhostCreated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NumGhostsCreated++
}

// StorageShared increments the storage-sharing counter.
func (s *Stats) StorageShared() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NumStorageShared++
}

// StatsSnapshot is a point-in-time copy of the counters, safe to read
// without holding the mutex.
type StatsSnapshot struct {
	NumGaussianSynthesized uint64
	NumCoefficientsLoaded  uint64
	NumCacheInvalidations  uint64
	NumGhostsCreated       uint64
	NumStorageShared       uint64
}

// Snapshot returns a copy of the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		NumGaussianSynthesized: s.NumGaussianSynthesized,
		NumCoefficientsLoaded:  s.NumCoefficientsLoaded,
		NumCacheInvalidations:  s.NumCacheInvalidations,
		NumGhostsCreated:       s.NumGhostsCreated,
		NumStorageShared:       s.NumStorageShared,
	}
}

// String returns a human-readable summary of the counters.
func (s *Stats) String() string {
	snap := s.Snapshot()
	return fmt.Sprintf("beam stats: synthesized=%d loaded=%d invalidated=%d ghosts=%d shared=%d",
		snap.NumGaussianSynthesized,
		snap.NumCoefficientsLoaded,
		snap.NumCacheInvalidations,
		snap.NumGhostsCreated,
		snap.NumStorageShared,
	)
}
