package core

import "github.com/signalsfoundry/beamsim/model"

// GhostOverrides selects which ghost attributes diverge from the
// parent's copied configuration. Nil fields keep the default: the
// parent's current az, el, polang, pol, btype, fwhm, dead, lmax and
// mmax are copied, while amplitude, file paths and loading policy
// start from the ordinary construction defaults.
type GhostOverrides struct {
	Az     *float64
	El     *float64
	Polang *float64
	Pol    *string

	BType *model.BeamType
	FWHM  *float64
	Lmax  *int
	Mmax  *int

	Dead      *bool
	Amplitude *float64

	POFile *string
	EGFile *string

	CrossPol  *bool
	DeconvQ   *bool
	Normalize *bool
}

// CreateGhost appends a new ghost beam to the registry and returns
// it. The ghost's name is parent name and tag joined by "_" (just
// the tag when the parent is unnamed, the parent's name unchanged
// when the tag is empty). Its index is the parent's current ghost
// count, which then increments.
//
// Creation copies configuration; it never touches the parent's own
// parameters or coefficients, and the ghost's coefficients stay
// unmaterialized until first access. Share storage explicitly with
// ReuseBlm when two ghosts are optically indistinguishable.
func (m *MainBeam) CreateGhost(tag string, ov GhostOverrides) *GhostBeam {
	cfg := model.BeamConfig{
		Az:     m.az,
		El:     m.el,
		Polang: m.polang,
		Name:   ghostName(m.name, tag),
		Pol:    m.pol,
		BType:  m.btype,
		FWHM:   &m.fwhm,
		Dead:   m.dead,
		Lmax:   &m.lmax,
		Mmax:   &m.mmax,
	}
	applyOverrides(&cfg, ov)

	g := &GhostBeam{
		Beam:     newBeam(cfg, m.col),
		ghostIdx: m.ghostCount,
	}
	m.ghostCount++
	m.ghosts = append(m.ghosts, g)

	m.col.Events.GhostCreated()
	return g
}

// ghostName derives the ghost's callsign from the parent's name and
// the tag.
func ghostName(parentName, tag string) string {
	if tag == "" {
		return parentName
	}
	if parentName == "" {
		return tag
	}
	return parentName + "_" + tag
}

// applyOverrides lays the supplied override fields over the copied
// parent defaults. The ghost role and computed name are fixed by
// CreateGhost and cannot be overridden.
func applyOverrides(cfg *model.BeamConfig, ov GhostOverrides) {
	if ov.Az != nil {
		cfg.Az = *ov.Az
	}
	if ov.El != nil {
		cfg.El = *ov.El
	}
	if ov.Polang != nil {
		cfg.Polang = *ov.Polang
	}
	if ov.Pol != nil {
		cfg.Pol = *ov.Pol
	}
	if ov.BType != nil {
		cfg.BType = *ov.BType
	}
	if ov.FWHM != nil {
		cfg.FWHM = ov.FWHM
	}
	if ov.Lmax != nil {
		cfg.Lmax = ov.Lmax
	}
	if ov.Mmax != nil {
		cfg.Mmax = ov.Mmax
	}
	if ov.Dead != nil {
		cfg.Dead = *ov.Dead
	}
	if ov.Amplitude != nil {
		cfg.Amplitude = ov.Amplitude
	}
	if ov.POFile != nil {
		cfg.POFile = *ov.POFile
	}
	if ov.EGFile != nil {
		cfg.EGFile = *ov.EGFile
	}
	if ov.CrossPol != nil {
		cfg.CrossPol = ov.CrossPol
	}
	if ov.DeconvQ != nil {
		cfg.DeconvQ = ov.DeconvQ
	}
	if ov.Normalize != nil {
		cfg.Normalize = ov.Normalize
	}
}
