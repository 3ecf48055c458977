package harmonics

import "math"

// ExpandOptions controls CopolExpand.
type ExpandOptions struct {
	// DeconvQ multiplies input coefficients by sqrt(4pi/(2l+1))
	// before expansion. Needed when the input holds true spherical
	// harmonic coefficients rather than quadrature weights.
	DeconvQ bool

	// Normalize rescales the co-polar component to unit b_00 before
	// expansion. Applied after DeconvQ when both are set.
	Normalize bool

	// C2FWHM, in arcmin, attenuates the spin +-2 components by the
	// finite-width factor exp(-2 sigma^2) of a beam with this FWHM.
	// Zero disables the correction.
	C2FWHM float64
}

// ScaleOptions controls ScaleBlm.
type ScaleOptions struct {
	DeconvQ   bool
	Normalize bool
}

// CopolExpand builds the spin -2 and spin +2 components of a
// perfectly co-polarized beam from its co-polar coefficients.
//
// Under perfect co-polarity the polarized response reproduces the
// co-polar pattern with the azimuthal index shifted by two, so
// spin_{lm} = co_{l,m-2} for m >= 2 and vanishes below, and the two
// spin components coincide. The input slice is copied, never mutated.
func CopolExpand(co []complex128, opts ExpandOptions) *Triplet {
	lmax := LmaxFromSize(len(co))

	c := make([]complex128, len(co))
	copy(c, co)
	if opts.DeconvQ {
		deconvQ(c, lmax)
	}
	if opts.Normalize {
		normalizeTo00(c, nil)
	}

	c2 := 1.0
	if opts.C2FWHM > 0 {
		sigma := fwhmToSigma(opts.C2FWHM)
		c2 = math.Exp(-2 * sigma * sigma)
	}

	spin := make([]complex128, len(c))
	if lmax >= 0 {
		for m := 2; m <= lmax; m++ {
			for ell := m; ell <= lmax; ell++ {
				spin[AlmIndex(lmax, ell, m)] =
					c[AlmIndex(lmax, ell, m-2)] * complex(c2, 0)
			}
		}
	}
	spinCopy := make([]complex128, len(spin))
	copy(spinCopy, spin)

	return &Triplet{Co: c, SpinM2: spin, SpinP2: spinCopy}
}

// ScaleBlm applies the loading-time scaling policy to a full triplet,
// in place: DeconvQ first, then Normalize, matching the order the
// options are documented in. Normalize divides all three components
// by the co-polar b_00, so the co-polar monopole ends up at unity.
func ScaleBlm(t *Triplet, opts ScaleOptions) {
	lmax := t.Lmax()
	if opts.DeconvQ {
		deconvQ(t.Co, lmax)
		deconvQ(t.SpinM2, lmax)
		deconvQ(t.SpinP2, lmax)
	}
	if opts.Normalize {
		normalizeTo00(t.Co, [][]complex128{t.SpinM2, t.SpinP2})
	}
}

// deconvQ multiplies each (l, m) entry by sqrt(4pi/(2l+1)).
func deconvQ(blm []complex128, lmax int) {
	if lmax < 0 {
		return
	}
	for m := 0; m <= lmax; m++ {
		for ell := m; ell <= lmax; ell++ {
			q := math.Sqrt(4 * math.Pi / float64(2*ell+1))
			blm[AlmIndex(lmax, ell, m)] *= complex(q, 0)
		}
	}
}

// normalizeTo00 divides co (and any extra components) by co's b_00.
// A vanishing b_00 leaves everything untouched; there is nothing
// meaningful to normalize against.
func normalizeTo00(co []complex128, extra [][]complex128) {
	if len(co) == 0 {
		return
	}
	b00 := co[0]
	if b00 == 0 {
		return
	}
	for i := range co {
		co[i] /= b00
	}
	for _, comp := range extra {
		for i := range comp {
			comp[i] /= b00
		}
	}
}
