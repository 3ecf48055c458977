package harmonics

import "math"

// fwhmToSigma converts a FWHM in arcmin to the Gaussian width sigma
// in radians.
func fwhmToSigma(fwhmArcmin float64) float64 {
	fwhmRad := fwhmArcmin / 60.0 * math.Pi / 180.0
	return fwhmRad / math.Sqrt(8.0*math.Ln2)
}

// GaussBlm synthesizes the harmonic coefficients of a symmetric,
// unpolarized Gaussian beam with the given FWHM (arcmin) and band
// limit. Only the m = 0 column is populated:
//
//	b_l0 = sqrt((2l+1)/4pi) * exp(-l(l+1) sigma^2 / 2)
//
// so that b_00 = 1/sqrt(4pi), i.e. unit throughput over the sphere.
// The result is deterministic in (fwhmArcmin, lmax).
func GaussBlm(fwhmArcmin float64, lmax int) []complex128 {
	blm := make([]complex128, AlmSize(lmax))
	sigma := fwhmToSigma(fwhmArcmin)
	s2 := sigma * sigma

	for ell := 0; ell <= lmax; ell++ {
		l := float64(ell)
		amp := math.Sqrt((2*l+1)/(4*math.Pi)) * math.Exp(-l*(l+1)*s2/2)
		blm[AlmIndex(lmax, ell, 0)] = complex(amp, 0)
	}
	return blm
}
