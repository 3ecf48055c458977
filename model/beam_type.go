package model

// BeamType selects the spatial response model of a detector beam.
type BeamType string

const (
	// BeamGaussian is a symmetric Gaussian defined by centroid and FWHM.
	BeamGaussian BeamType = "Gaussian"
	// BeamGaussianMap is a symmetric Gaussian defined by centroid and a
	// map. It is a valid selector but has no synthesis path in this
	// library; materializing coefficients for it is a configuration
	// error.
	BeamGaussianMap BeamType = "Gaussian_map"
	// BeamEG is an elliptical Gaussian backed by a coefficient file.
	BeamEG BeamType = "EG"
	// BeamPO is a physical-optics beam backed by a coefficient file.
	BeamPO BeamType = "PO"
)

// ParseBeamType maps a config string to a BeamType. Known names match
// on their canonical or all-lowercase spellings; the empty string
// defaults to Gaussian. Unknown strings are passed through
// unchanged so that the configuration error surfaces at coefficient
// access, not silently remapped here.
func ParseBeamType(s string) BeamType {
	switch s {
	case "", "Gaussian", "gaussian":
		return BeamGaussian
	case "Gaussian_map", "gaussian_map":
		return BeamGaussianMap
	case "EG", "eg":
		return BeamEG
	case "PO", "po":
		return BeamPO
	default:
		return BeamType(s)
	}
}
