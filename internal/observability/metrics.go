// Package observability exposes Prometheus metrics for the beam
// pipeline. The collector implements core.EventSink, so it plugs
// straight into a beam's collaborator set.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// BeamCollector bundles Prometheus metrics for beam coefficient
// lifecycle activity and focal-plane population.
type BeamCollector struct {
	Synthesized   prometheus.Counter
	Loaded        prometheus.Counter
	Invalidations prometheus.Counter
	GhostsCreated prometheus.Counter
	Shared        prometheus.Counter

	FocalPlaneBeams  prometheus.Gauge
	FocalPlaneGhosts prometheus.Gauge
}

// NewBeamCollector registers beam metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// A collector already registered under the same names is reused.
func NewBeamCollector(reg prometheus.Registerer) (*BeamCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	synthesized, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beam_blm_synthesized_total",
		Help: "Total number of Gaussian coefficient triplets synthesized.",
	}), "beam_blm_synthesized_total")
	if err != nil {
		return nil, err
	}
	loaded, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beam_blm_loaded_total",
		Help: "Total number of coefficient triplets loaded from file.",
	}), "beam_blm_loaded_total")
	if err != nil {
		return nil, err
	}
	invalidations, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beam_blm_invalidations_total",
		Help: "Total number of coefficient cache invalidations.",
	}), "beam_blm_invalidations_total")
	if err != nil {
		return nil, err
	}
	ghosts, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beam_ghosts_created_total",
		Help: "Total number of ghost beams created.",
	}), "beam_ghosts_created_total")
	if err != nil {
		return nil, err
	}
	shared, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beam_blm_shared_total",
		Help: "Total number of coefficient storage sharing operations.",
	}), "beam_blm_shared_total")
	if err != nil {
		return nil, err
	}

	beams, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "focal_plane_beams",
		Help: "Current number of main beams on the focal plane.",
	}), "focal_plane_beams")
	if err != nil {
		return nil, err
	}
	ghostGauge, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "focal_plane_ghosts",
		Help: "Current number of ghost beams on the focal plane.",
	}), "focal_plane_ghosts")
	if err != nil {
		return nil, err
	}

	return &BeamCollector{
		Synthesized:      synthesized,
		Loaded:           loaded,
		Invalidations:    invalidations,
		GhostsCreated:    ghosts,
		Shared:           shared,
		FocalPlaneBeams:  beams,
		FocalPlaneGhosts: ghostGauge,
	}, nil
}

// GaussianSynthesized implements core.EventSink.
func (c *BeamCollector) GaussianSynthesized() { c.Synthesized.Inc() }

// CoefficientsLoaded implements core.EventSink.
func (c *BeamCollector) CoefficientsLoaded() { c.Loaded.Inc() }

// CacheInvalidated implements core.EventSink.
func (c *BeamCollector) CacheInvalidated() { c.Invalidations.Inc() }

// GhostCreated implements core.EventSink.
func (c *BeamCollector) GhostCreated() { c.GhostsCreated.Inc() }

// StorageShared implements core.EventSink.
func (c *BeamCollector) StorageShared() { c.Shared.Inc() }

// SetFocalPlaneSize records the current focal-plane population.
func (c *BeamCollector) SetFocalPlaneSize(beams, ghosts int) {
	c.FocalPlaneBeams.Set(float64(beams))
	c.FocalPlaneGhosts.Set(float64(ghosts))
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
