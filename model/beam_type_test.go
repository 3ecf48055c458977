package model

import "testing"

func TestParseBeamType(t *testing.T) {
	cases := []struct {
		in   string
		want BeamType
	}{
		{"", BeamGaussian},
		{"Gaussian", BeamGaussian},
		{"gaussian", BeamGaussian},
		{"Gaussian_map", BeamGaussianMap},
		{"EG", BeamEG},
		{"eg", BeamEG},
		{"PO", BeamPO},
		{"po", BeamPO},
		// Unknown selectors pass through so the error surfaces at
		// coefficient access instead of being remapped here.
		{"banana", BeamType("banana")},
	}
	for _, tc := range cases {
		if got := ParseBeamType(tc.in); got != tc.want {
			t.Errorf("ParseBeamType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
