package harmonics

// Coefficient arrays use the Healpix-style packed layout: for a band
// limit lmax, the (ell, m) entry with 0 <= m <= ell <= lmax lives at
// AlmIndex(lmax, ell, m), and the full array has AlmSize(lmax) entries.
// Entries for negative m are implied by conjugate symmetry and never
// stored.

// AlmSize returns the number of packed (ell, m) coefficients for the
// given band limit.
func AlmSize(lmax int) int {
	if lmax < 0 {
		return 0
	}
	return (lmax + 1) * (lmax + 2) / 2
}

// AlmIndex returns the packed index of the (ell, m) coefficient.
// The caller must ensure 0 <= m <= ell <= lmax.
func AlmIndex(lmax, ell, m int) int {
	return m*(2*lmax+1-m)/2 + ell
}

// LmaxFromSize recovers the band limit from a packed array length.
// It returns -1 when n is not a valid packed size.
func LmaxFromSize(n int) int {
	for lmax := 0; ; lmax++ {
		size := AlmSize(lmax)
		if size == n {
			return lmax
		}
		if size > n {
			return -1
		}
	}
}

// Triplet bundles the three spin components of a beam response:
// the co-polar (spin 0) coefficients and the spin -2 / spin +2
// cross-polar coefficients. All three share one band limit.
//
// A Triplet is plain shared storage: beams that alias the same
// *Triplet observe each other's in-place mutations.
type Triplet struct {
	Co     []complex128
	SpinM2 []complex128
	SpinP2 []complex128
}

// Lmax returns the band limit implied by the co-polar array length,
// or -1 when the length is not a valid packed size.
func (t *Triplet) Lmax() int {
	return LmaxFromSize(len(t.Co))
}

// Scale multiplies all three components by s in place.
func (t *Triplet) Scale(s complex128) {
	for _, comp := range [][]complex128{t.Co, t.SpinM2, t.SpinP2} {
		for i := range comp {
			comp[i] *= s
		}
	}
}

// Copy returns a deep copy that shares no storage with t.
func (t *Triplet) Copy() *Triplet {
	cp := &Triplet{
		Co:     make([]complex128, len(t.Co)),
		SpinM2: make([]complex128, len(t.SpinM2)),
		SpinP2: make([]complex128, len(t.SpinP2)),
	}
	copy(cp.Co, t.Co)
	copy(cp.SpinM2, t.SpinM2)
	copy(cp.SpinP2, t.SpinP2)
	return cp
}
