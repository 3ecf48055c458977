// Package focalplane keeps the main beams of an instrument's focal
// plane in a named, concurrency-safe registry and loads focal-plane
// layouts from JSON or TOML configuration files.
package focalplane

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/beamsim/core"
)

var (
	ErrBeamExists   = errors.New("beam already exists")
	ErrBeamNotFound = errors.New("beam not found")
	ErrEmptyName    = errors.New("empty beam name")
	ErrNilBeam      = errors.New("nil beam")
)

// FocalPlane is an in-memory registry of main beams keyed by name.
//
// The registry is concurrency-safe via an internal RWMutex so that a
// parallel pipeline can look beams up from multiple goroutines. The
// beams themselves are not synchronized; see core.Beam for the
// first-access contract.
type FocalPlane struct {
	mu sync.RWMutex

	beams map[string]*core.MainBeam
}

// New creates an empty focal plane.
func New() *FocalPlane {
	return &FocalPlane{
		beams: make(map[string]*core.MainBeam),
	}
}

// Add registers a named main beam. Unnamed beams cannot be
// registered; the name is the lookup key.
func (fp *FocalPlane) Add(b *core.MainBeam) error {
	if b == nil {
		return fmt.Errorf("%w", ErrNilBeam)
	}
	if b.Name() == "" {
		return fmt.Errorf("%w", ErrEmptyName)
	}

	fp.mu.Lock()
	defer fp.mu.Unlock()

	if _, exists := fp.beams[b.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrBeamExists, b.Name())
	}
	fp.beams[b.Name()] = b
	return nil
}

// Get returns the beam with the given name.
func (fp *FocalPlane) Get(name string) (*core.MainBeam, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	b, ok := fp.beams[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBeamNotFound, name)
	}
	return b, nil
}

// List returns all beams sorted by name.
func (fp *FocalPlane) List() []*core.MainBeam {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	names := make([]string, 0, len(fp.beams))
	for name := range fp.beams {
		names = append(names, name)
	}
	sort.Strings(names)

	res := make([]*core.MainBeam, 0, len(names))
	for _, name := range names {
		res = append(res, fp.beams[name])
	}
	return res
}

// NumBeams returns the number of registered main beams.
func (fp *FocalPlane) NumBeams() int {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	return len(fp.beams)
}

// NumGhosts returns the total ghost count across all main beams.
func (fp *FocalPlane) NumGhosts() int {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	n := 0
	for _, b := range fp.beams {
		n += b.GhostCount()
	}
	return n
}

// NumDead returns the number of dead main beams. Ghosts are not
// counted; their liveness follows the parent anyway.
func (fp *FocalPlane) NumDead() int {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	n := 0
	for _, b := range fp.beams {
		if b.Dead() {
			n++
		}
	}
	return n
}
