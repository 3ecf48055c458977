package core

import "github.com/signalsfoundry/beamsim/harmonics"

// coeffCache is the explicit lazy container for a beam's harmonic
// coefficient triplet. It only stores and invalidates; the decision
// of how to materialize lives with the variant dispatch in Beam.Blm.
//
// The cached value is a shared pointer: reuse between beams aliases
// the same *harmonics.Triplet, so an in-place mutation through one
// beam is visible through every alias. Invalidation is per cache and
// never reaches through to an alias.
type coeffCache struct {
	t *harmonics.Triplet
}

// isCached reports whether a triplet is materialized.
func (c *coeffCache) isCached() bool { return c.t != nil }

// get returns the cached triplet, nil when absent.
func (c *coeffCache) get() *harmonics.Triplet { return c.t }

// adopt stores t as the cached value, sharing its storage.
func (c *coeffCache) adopt(t *harmonics.Triplet) { c.t = t }

// invalidate drops the cached triplet and reports whether anything
// was actually cleared. Clearing an empty cache is a valid no-op.
func (c *coeffCache) invalidate() bool {
	if c.t == nil {
		return false
	}
	c.t = nil
	return true
}
