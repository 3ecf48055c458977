package model

// BeamConfig is the construction-time description of a detector beam.
// Pointer fields distinguish "not supplied" from an explicit zero, so
// the resolver and defaulting logic can tell the two apart.
type BeamConfig struct {
	// Name is an optional callsign for the beam.
	Name string
	// Pol is the polarization callsign, conventionally "A" or "B".
	// Empty defaults to "A".
	Pol string

	// Az, El are the detector offsets relative to boresight, in
	// degrees. Polang is the polarization orientation in degrees,
	// measured from the local meridian (Healpix convention). Offsets
	// apply in the rotation order Rz(polang), Ry(el), Rx(az) and are
	// stored exactly as given; no wrap-around normalization.
	Az     float64
	El     float64
	Polang float64

	// BType selects the spatial response model. Empty defaults to
	// BeamGaussian.
	BType BeamType

	// FWHM is the beam resolution in arcmin. When nil (or zero) it is
	// derived from Lmax; see core.ResolveResolution for the precedence.
	FWHM *float64
	// Lmax is the harmonic band limit. When nil it is derived from
	// FWHM, falling back to core.DefaultLmax when both are absent.
	Lmax *int
	// Mmax is the azimuthal band limit. When nil it defaults to the
	// resolved Lmax; a supplied value is clamped to Lmax.
	Mmax *int

	// Dead marks a non-functioning detector.
	Dead bool

	// Amplitude is the total beam throughput over the sphere. Nil
	// defaults to 1.
	Amplitude *float64

	// POFile and EGFile point at the on-disk coefficient arrays for
	// the PO and EG response models. Paths without an extension get
	// the default array extension appended at load time.
	POFile string
	EGFile string

	// CrossPol enables use of the explicit cross-polar rows of a
	// loaded (3, N) coefficient array. Nil defaults to true.
	CrossPol *bool
	// DeconvQ multiplies loaded coefficients by sqrt(4pi/(2l+1))
	// before spin expansion, as needed for true spherical harmonic
	// coefficients. Nil defaults to true.
	DeconvQ *bool
	// Normalize rescales loaded coefficients to unit monopole, after
	// DeconvQ when both apply. Nil defaults to true.
	Normalize *bool
}
