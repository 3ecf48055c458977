package core

import "math"

const (
	// NyquistOversample is the empirical factor applied to the naive
	// Nyquist harmonic scale implied by the beam width when deriving
	// one of lmax/fwhm from the other.
	NyquistOversample = 1.4

	// DefaultLmax is the band limit used when neither lmax nor fwhm
	// is supplied at construction. Without either the resolution is
	// underdetermined; rather than produce a degenerate zero-width
	// beam we fall back to a typical CMB-experiment band limit.
	DefaultLmax = 700

	arcminPerDegree = 60.0
)

// Resolution is the fully resolved band-limit/width block of a beam.
type Resolution struct {
	FWHM float64 // arcmin
	Lmax int
	Mmax int
}

// ResolveResolution derives the mutually dependent lmax/fwhm/mmax
// attributes from a partially filled configuration, in one shot.
//
// Precedence:
//  1. A supplied lmax wins and is clamped to >= 0. Otherwise lmax is
//     derived from fwhm as floor(2pi / radians(fwhm/60) * 1.4), and
//     when fwhm is also absent lmax falls back to DefaultLmax.
//  2. A supplied non-zero fwhm wins as |fwhm|. Otherwise fwhm is
//     derived from the resolved lmax as degrees(1.4 * 2pi / lmax) * 60.
//     A resolved lmax of zero leaves fwhm at zero; there is no width
//     to derive from.
//  3. A supplied mmax is clamped to the resolved lmax; absent, it
//     defaults to lmax.
//
// Resolving everything here, once, removes the assignment-order
// dependency a pair of self-deriving setters would have.
func ResolveResolution(fwhm *float64, lmax, mmax *int) Resolution {
	var r Resolution

	switch {
	case lmax != nil:
		r.Lmax = *lmax
		if r.Lmax < 0 {
			r.Lmax = 0
		}
	case fwhm != nil && *fwhm != 0:
		fwhmRad := math.Abs(*fwhm) / arcminPerDegree * math.Pi / 180.0
		r.Lmax = int(2 * math.Pi / fwhmRad * NyquistOversample)
	default:
		r.Lmax = DefaultLmax
	}

	if fwhm != nil && *fwhm != 0 {
		r.FWHM = math.Abs(*fwhm)
	} else if r.Lmax > 0 {
		fwhmRad := NyquistOversample * 2 * math.Pi / float64(r.Lmax)
		r.FWHM = fwhmRad * 180.0 / math.Pi * arcminPerDegree
	}

	if mmax != nil && *mmax < r.Lmax {
		r.Mmax = *mmax
	} else {
		r.Mmax = r.Lmax
	}

	return r
}
