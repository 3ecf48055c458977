package core

import (
	"github.com/signalsfoundry/beamsim/blmfile"
	"github.com/signalsfoundry/beamsim/harmonics"
)

// EventSink receives beam lifecycle notifications. Implementations
// must tolerate calls from whatever goroutine owns the beam; the
// beams themselves never synchronize.
type EventSink interface {
	// GaussianSynthesized fires when a Gaussian triplet is generated.
	GaussianSynthesized()
	// CoefficientsLoaded fires when a triplet is populated from file.
	CoefficientsLoaded()
	// CacheInvalidated fires when a materialized cache is cleared.
	CacheInvalidated()
	// GhostCreated fires when a main beam spawns a ghost.
	GhostCreated()
	// StorageShared fires when a beam adopts a partner's storage.
	StorageShared()
}

type noopSink struct{}

func (noopSink) GaussianSynthesized() {}
func (noopSink) CoefficientsLoaded()  {}
func (noopSink) CacheInvalidated()    {}
func (noopSink) GhostCreated()        {}
func (noopSink) StorageShared()       {}

// Collaborators bundles the external functions a beam consumes to
// materialize coefficients. The zero value is unusable; construct
// with DefaultCollaborators and override individual fields as needed
// (tests substitute counting fakes here).
type Collaborators struct {
	// SynthesizeGaussian produces symmetric unpolarized beam
	// coefficients from a FWHM in arcmin and a band limit.
	SynthesizeGaussian func(fwhmArcmin float64, lmax int) []complex128

	// ExpandCopolar derives the spin -2 / spin +2 components from
	// co-polar coefficients.
	ExpandCopolar func(co []complex128, opts harmonics.ExpandOptions) *harmonics.Triplet

	// ScaleTriplet applies the deconvolution/normalization policy to
	// an explicit triplet, in place.
	ScaleTriplet func(t *harmonics.Triplet, opts harmonics.ScaleOptions)

	// LoadArray reads a coefficient array from disk. The default
	// appends the array-file extension when the path has none.
	LoadArray func(path string) (*blmfile.Array, error)

	// Events observes the beam lifecycle. Nil means no observation.
	Events EventSink
}

// DefaultCollaborators binds the harmonics and blmfile
// implementations with no event observation.
func DefaultCollaborators() Collaborators {
	return Collaborators{
		SynthesizeGaussian: harmonics.GaussBlm,
		ExpandCopolar:      harmonics.CopolExpand,
		ScaleTriplet:       harmonics.ScaleBlm,
		LoadArray:          blmfile.Load,
		Events:             noopSink{},
	}
}

// withDefaults fills any nil fields from DefaultCollaborators so a
// partially specified set still works.
func (c Collaborators) withDefaults() Collaborators {
	def := DefaultCollaborators()
	if c.SynthesizeGaussian == nil {
		c.SynthesizeGaussian = def.SynthesizeGaussian
	}
	if c.ExpandCopolar == nil {
		c.ExpandCopolar = def.ExpandCopolar
	}
	if c.ScaleTriplet == nil {
		c.ScaleTriplet = def.ScaleTriplet
	}
	if c.LoadArray == nil {
		c.LoadArray = def.LoadArray
	}
	if c.Events == nil {
		c.Events = def.Events
	}
	return c
}
