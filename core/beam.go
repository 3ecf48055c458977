package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/beamsim/harmonics"
	"github.com/signalsfoundry/beamsim/model"
)

var (
	ErrUnknownBeamType = errors.New("unrecognized beam type")
	ErrNoBeamFile      = errors.New("no coefficient file configured")
	ErrNilPartner      = errors.New("nil partner beam")
)

// Beam models a single detector's optical beam: pointing offsets
// relative to boresight, polarization orientation, and the harmonic
// coefficient triplet describing its angular response.
//
// Beam is never used on its own; it is the shared core embedded in
// MainBeam and GhostBeam. Keeping the role-specific fields on those
// two types makes wrong-role access (a ghost owning ghosts, a main
// beam carrying a ghost index) unrepresentable instead of a runtime
// check.
//
// A Beam is not synchronized. Coefficients materialize lazily on
// first access, so concurrent use must either serialize that first
// access or pre-materialize before fanning out.
type Beam struct {
	name   string
	pol    string
	az     float64
	el     float64
	polang float64
	dead   bool

	btype     model.BeamType
	fwhm      float64 // arcmin
	lmax      int
	mmax      int
	amplitude float64

	poFile    string
	egFile    string
	crossPol  bool
	deconvQ   bool
	normalize bool

	blm coeffCache
	col Collaborators
}

// MainBeam is a detector's primary beam. It owns the ghost registry:
// an ordered list of spurious secondary images created through
// CreateGhost, and the counter handing out their indices.
type MainBeam struct {
	Beam

	ghosts     []*GhostBeam
	ghostCount int
}

// GhostBeam is a spurious secondary image owned by exactly one
// MainBeam for its whole lifetime. Ghosts cannot own ghosts; the
// type provides no CreateGhost. Ghosts sharing a ghost index
// represent the same physical image and typically share coefficient
// storage via ReuseBlm.
type GhostBeam struct {
	Beam

	ghostIdx int
}

// BeamRef is satisfied by *MainBeam and *GhostBeam and nothing else;
// it is how role-agnostic operations such as ReuseBlm accept either
// kind of beam.
type BeamRef interface {
	base() *Beam
	ghostIndex() (int, bool)
}

func (b *Beam) base() *Beam { return b }

func (*MainBeam) ghostIndex() (int, bool)    { return 0, false }
func (g *GhostBeam) ghostIndex() (int, bool) { return g.ghostIdx, true }

// NewBeam constructs a main beam from its configuration, resolving
// the band-limit/width block once via ResolveResolution. The default
// collaborator set (harmonics synthesis, .npy loading) is bound; use
// NewBeamWith to substitute collaborators.
func NewBeam(cfg model.BeamConfig) *MainBeam {
	return NewBeamWith(cfg, DefaultCollaborators())
}

// NewBeamWith is NewBeam with an explicit collaborator set. Nil
// collaborator fields fall back to the defaults.
func NewBeamWith(cfg model.BeamConfig, col Collaborators) *MainBeam {
	return &MainBeam{Beam: newBeam(cfg, col.withDefaults())}
}

// newBeam builds the shared beam core from a configuration. Role
// fields are left to the caller.
func newBeam(cfg model.BeamConfig, col Collaborators) Beam {
	res := ResolveResolution(cfg.FWHM, cfg.Lmax, cfg.Mmax)

	b := Beam{
		name:      cfg.Name,
		pol:       cfg.Pol,
		az:        cfg.Az,
		el:        cfg.El,
		polang:    cfg.Polang,
		dead:      cfg.Dead,
		btype:     cfg.BType,
		fwhm:      res.FWHM,
		lmax:      res.Lmax,
		mmax:      res.Mmax,
		amplitude: 1,
		poFile:    cfg.POFile,
		egFile:    cfg.EGFile,
		crossPol:  boolOr(cfg.CrossPol, true),
		deconvQ:   boolOr(cfg.DeconvQ, true),
		normalize: boolOr(cfg.Normalize, true),
		col:       col,
	}
	if b.pol == "" {
		b.pol = "A"
	}
	if b.btype == "" {
		b.btype = model.BeamGaussian
	}
	if cfg.Amplitude != nil {
		b.amplitude = *cfg.Amplitude
	}
	return b
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Name returns the beam's callsign, possibly empty.
func (b *Beam) Name() string { return b.name }

// Pol returns the polarization callsign.
func (b *Beam) Pol() string { return b.pol }

// BType returns the current response model selector.
func (b *Beam) BType() model.BeamType { return b.btype }

// FWHM returns the beam width in arcmin.
func (b *Beam) FWHM() float64 { return b.fwhm }

// Lmax returns the harmonic band limit.
func (b *Beam) Lmax() int { return b.lmax }

// Mmax returns the azimuthal band limit.
func (b *Beam) Mmax() int { return b.mmax }

// Amplitude returns the total-throughput scale.
func (b *Beam) Amplitude() float64 { return b.amplitude }

// Dead reports whether the detector is marked non-functioning.
func (b *Beam) Dead() bool { return b.dead }

// Offsets returns the unrotated detector offsets (az, el, polang),
// all in degrees, exactly as constructed.
//
// The offsets apply as the rotation sequence Rz(polang), Ry(el),
// Rx(az). Rz rotates around the boresight by polang, measured from
// the southern side of the local meridian clockwise when looking at
// the sky (the Healpix convention); Ry and Rx are elevation and
// azimuth rotations with respect to the local horizon and meridian.
func (b *Beam) Offsets() (az, el, polang float64) {
	return b.az, b.el, b.polang
}

// IsCached reports whether the coefficient triplet is materialized.
func (b *Beam) IsCached() bool { return b.blm.isCached() }

// Blm returns the beam's harmonic coefficient triplet, materializing
// and caching it on first access according to the response model:
// Gaussian beams are synthesized from (fwhm, lmax); PO and EG beams
// load their configured coefficient file. Any other selector is a
// configuration error.
//
// The cached triplet persists until explicitly deleted; nothing
// recomputes it implicitly, not even a change of response model.
func (b *Beam) Blm() (*harmonics.Triplet, error) {
	if b.blm.isCached() {
		return b.blm.get(), nil
	}

	switch b.btype {
	case model.BeamGaussian:
		b.genGaussianBlm()
	case model.BeamPO:
		if b.poFile == "" {
			return nil, fmt.Errorf("%w: PO beam %q", ErrNoBeamFile, b.name)
		}
		if err := b.LoadBlm(b.poFile); err != nil {
			return nil, err
		}
	case model.BeamEG:
		if b.egFile == "" {
			return nil, fmt.Errorf("%w: EG beam %q", ErrNoBeamFile, b.name)
		}
		if err := b.LoadBlm(b.egFile); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBeamType, b.btype)
	}

	return b.blm.get(), nil
}

// genGaussianBlm synthesizes and caches the symmetric Gaussian
// triplet from the resolved (fwhm, lmax), scaled by amplitude.
func (b *Beam) genGaussianBlm() {
	co := b.col.SynthesizeGaussian(b.fwhm, b.lmax)
	if b.amplitude != 1 {
		scaleCoefficients(co, b.amplitude)
	}
	t := b.col.ExpandCopolar(co, harmonics.ExpandOptions{C2FWHM: b.fwhm})

	b.btype = model.BeamGaussian
	b.blm.adopt(t)
	b.col.Events.GaussianSynthesized()
}

// LoadBlm populates the coefficient cache from the array at path,
// appending the default array extension when the path has none.
//
// An array with leading dimension 3 is treated as an explicit
// co / spin -2 / spin +2 triplet when cross-polar response is
// enabled: it is scaled per the deconv/normalize policy and then by
// amplitude. Any other shape contributes only its first row as
// co-polar data, scaled by amplitude and expanded into spin
// components. Loading leaves the response model selector untouched.
func (b *Beam) LoadBlm(path string) error {
	if path == "" {
		return fmt.Errorf("%w: beam %q", ErrNoBeamFile, b.name)
	}

	arr, err := b.col.LoadArray(path)
	if err != nil {
		return err
	}

	if arr.NumRows() == 3 && b.crossPol {
		t := &harmonics.Triplet{
			Co:     arr.Row(0),
			SpinM2: arr.Row(1),
			SpinP2: arr.Row(2),
		}
		b.col.ScaleTriplet(t, harmonics.ScaleOptions{
			DeconvQ:   b.deconvQ,
			Normalize: b.normalize,
		})
		if b.amplitude != 1 {
			t.Scale(complex(b.amplitude, 0))
		}
		b.blm.adopt(t)
	} else {
		co := arr.Row(0)
		if b.amplitude != 1 {
			scaleCoefficients(co, b.amplitude)
		}
		t := b.col.ExpandCopolar(co, harmonics.ExpandOptions{
			DeconvQ:   b.deconvQ,
			Normalize: b.normalize,
		})
		b.blm.adopt(t)
	}

	b.col.Events.CoefficientsLoaded()
	return nil
}

// DeleteBlm clears this beam's coefficient cache. Clearing an absent
// cache is a valid no-op; the coefficients can be re-derived on the
// next Blm call.
func (b *Beam) DeleteBlm() {
	if b.blm.invalidate() {
		b.col.Events.CacheInvalidated()
	}
}

// reuseBlm adopts the partner's materialized coefficient storage and
// the parameters that describe it. The partner materializes first if
// needed; its error aborts the adoption with this beam unchanged.
func (b *Beam) reuseBlm(partner BeamRef) error {
	if partner == nil {
		return ErrNilPartner
	}
	p := partner.base()

	t, err := p.Blm()
	if err != nil {
		return err
	}

	b.blm.adopt(t)
	b.btype = p.btype
	b.lmax = p.lmax
	b.mmax = p.mmax
	b.amplitude = p.amplitude

	b.col.Events.StorageShared()
	return nil
}

// ReuseBlm aliases this beam's coefficient storage, response model,
// band limits and amplitude to the partner's current values. The
// storage is shared, not copied: mutating the triplet through either
// beam is visible through the other. Each beam keeps its own cache
// slot, so deleting one side's blm does not clear the other's.
func (m *MainBeam) ReuseBlm(partner BeamRef) error {
	return m.reuseBlm(partner)
}

// ReuseBlm is the ghost-side alias operation. When the partner is
// also a ghost this beam additionally adopts the partner's ghost
// index, recording that the two are the same physical image sampled
// twice.
func (g *GhostBeam) ReuseBlm(partner BeamRef) error {
	if err := g.reuseBlm(partner); err != nil {
		return err
	}
	if idx, ok := partner.ghostIndex(); ok {
		g.ghostIdx = idx
	}
	return nil
}

// SetDead marks the main beam dead or alive and cascades the same
// value onto all currently owned ghosts. Ghosts created afterwards
// start from whatever value is current at their creation; they are
// not retroactively re-inherited.
func (m *MainBeam) SetDead(dead bool) {
	m.dead = dead
	for _, g := range m.ghosts {
		g.dead = dead
	}
}

// SetDead marks the ghost dead or alive. Only this ghost changes.
func (g *GhostBeam) SetDead(dead bool) {
	g.dead = dead
}

// Ghosts returns the owned ghost beams in creation order. The slice
// is shared; callers must not append to it.
func (m *MainBeam) Ghosts() []*GhostBeam { return m.ghosts }

// GhostCount returns the next ghost index to assign, i.e. the number
// of ghosts created so far.
func (m *MainBeam) GhostCount() int { return m.ghostCount }

// GhostIdx identifies which generation of the parent this ghost
// represents. Ghosts sharing an index share a physical origin and
// usually coefficient storage.
func (g *GhostBeam) GhostIdx() int { return g.ghostIdx }

// DeleteBlm clears the main beam's coefficient cache and, when
// delGhostsBlm is set, each owned ghost's cache as well. Absent
// caches are skipped silently in both cases.
func (m *MainBeam) DeleteBlm(delGhostsBlm bool) {
	m.Beam.DeleteBlm()
	if !delGhostsBlm {
		return
	}
	for _, g := range m.ghosts {
		g.Beam.DeleteBlm()
	}
}

// String summarizes the beam for logs and debugging.
func (b *Beam) String() string {
	return fmt.Sprintf("name=%q btype=%s alive=%t fwhm=%.2f arcmin az=%.3f deg el=%.3f deg polang=%.3f deg",
		b.name, b.btype, !b.dead, b.fwhm, b.az, b.el, b.polang)
}

// scaleCoefficients multiplies coefficients in place by a real scale.
func scaleCoefficients(blm []complex128, s float64) {
	cs := complex(s, 0)
	for i := range blm {
		blm[i] *= cs
	}
}
