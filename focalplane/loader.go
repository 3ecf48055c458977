package focalplane

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/signalsfoundry/beamsim/core"
	"github.com/signalsfoundry/beamsim/model"
)

// Summary describes what a loader call added to the focal plane.
// It's mainly useful for logging from main().
type Summary struct {
	BeamNames []string
	NumGhosts int
}

// internal config shapes - kept unexported so we're free to evolve
// them independently of model.BeamConfig.
type focalPlaneConfig struct {
	Beams []beamEntry `json:"beams" toml:"beams"`
}

type beamEntry struct {
	Name   string  `json:"name" toml:"name"`
	Pol    string  `json:"pol" toml:"pol"`
	Az     float64 `json:"az" toml:"az"`
	El     float64 `json:"el" toml:"el"`
	Polang float64 `json:"polang" toml:"polang"`

	BType string   `json:"btype" toml:"btype"`
	FWHM  *float64 `json:"fwhm" toml:"fwhm"`
	Lmax  *int     `json:"lmax" toml:"lmax"`
	Mmax  *int     `json:"mmax" toml:"mmax"`

	Dead      bool     `json:"dead" toml:"dead"`
	Amplitude *float64 `json:"amplitude" toml:"amplitude"`

	POFile    string `json:"po_file" toml:"po_file"`
	EGFile    string `json:"eg_file" toml:"eg_file"`
	CrossPol  *bool  `json:"cross_pol" toml:"cross_pol"`
	DeconvQ   *bool  `json:"deconv_q" toml:"deconv_q"`
	Normalize *bool  `json:"normalize" toml:"normalize"`

	Ghosts []ghostEntry `json:"ghosts" toml:"ghosts"`
}

type ghostEntry struct {
	Tag    string   `json:"tag" toml:"tag"`
	Az     *float64 `json:"az" toml:"az"`
	El     *float64 `json:"el" toml:"el"`
	Polang *float64 `json:"polang" toml:"polang"`

	FWHM      *float64 `json:"fwhm" toml:"fwhm"`
	Amplitude *float64 `json:"amplitude" toml:"amplitude"`
	Dead      *bool    `json:"dead" toml:"dead"`

	// ReuseIdx shares coefficient storage with the earlier ghost of
	// the same parent carrying this index. Sharing materializes the
	// partner's coefficients at load time.
	ReuseIdx *int `json:"reuse_idx" toml:"reuse_idx"`
}

// Load reads a JSON focal-plane layout from r, registers its beams
// (and their ghosts) on fp, and returns a summary of what was added.
// Beams are constructed with the given collaborator set; the zero
// Collaborators value means the library defaults.
//
// Load fails on structural errors: undecodable input, unnamed beams,
// duplicate names, dangling reuse references. Beam-level semantics
// (unknown btype, missing files) surface later, at coefficient
// access, exactly as they would for directly constructed beams.
func Load(fp *FocalPlane, r io.Reader, col core.Collaborators) (*Summary, error) {
	var payload focalPlaneConfig
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("focalplane: decode failed: %w", err)
	}
	return build(fp, &payload, col)
}

// LoadTOML is Load for TOML input.
func LoadTOML(fp *FocalPlane, r io.Reader, col core.Collaborators) (*Summary, error) {
	var payload focalPlaneConfig
	if _, err := toml.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("focalplane: decode failed: %w", err)
	}
	return build(fp, &payload, col)
}

// LoadFile loads a layout from path, dispatching on the extension:
// ".toml" selects the TOML decoder, everything else is parsed as
// JSON.
func LoadFile(fp *FocalPlane, path string, col core.Collaborators) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("focalplane: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(fp, f, col)
	}
	return Load(fp, f, col)
}

func build(fp *FocalPlane, payload *focalPlaneConfig, col core.Collaborators) (*Summary, error) {
	summary := &Summary{
		BeamNames: make([]string, 0, len(payload.Beams)),
	}

	for _, entry := range payload.Beams {
		if entry.Name == "" {
			return nil, fmt.Errorf("focalplane: beam with empty name")
		}

		beam := core.NewBeamWith(model.BeamConfig{
			Name:      entry.Name,
			Pol:       entry.Pol,
			Az:        entry.Az,
			El:        entry.El,
			Polang:    entry.Polang,
			BType:     model.ParseBeamType(entry.BType),
			FWHM:      entry.FWHM,
			Lmax:      entry.Lmax,
			Mmax:      entry.Mmax,
			Dead:      entry.Dead,
			Amplitude: entry.Amplitude,
			POFile:    entry.POFile,
			EGFile:    entry.EGFile,
			CrossPol:  entry.CrossPol,
			DeconvQ:   entry.DeconvQ,
			Normalize: entry.Normalize,
		}, col)

		for _, ge := range entry.Ghosts {
			ghost := beam.CreateGhost(ge.Tag, core.GhostOverrides{
				Az:        ge.Az,
				El:        ge.El,
				Polang:    ge.Polang,
				FWHM:      ge.FWHM,
				Amplitude: ge.Amplitude,
				Dead:      ge.Dead,
			})
			if ge.ReuseIdx != nil {
				partner := ghostByIdx(beam, *ge.ReuseIdx, ghost)
				if partner == nil {
					return nil, fmt.Errorf("focalplane: beam %q ghost %q reuses unknown ghost index %d",
						entry.Name, ghost.Name(), *ge.ReuseIdx)
				}
				if err := ghost.ReuseBlm(partner); err != nil {
					return nil, fmt.Errorf("focalplane: beam %q ghost %q: %w",
						entry.Name, ghost.Name(), err)
				}
			}
			summary.NumGhosts++
		}

		if err := fp.Add(beam); err != nil {
			return nil, fmt.Errorf("focalplane: %w", err)
		}
		summary.BeamNames = append(summary.BeamNames, entry.Name)
	}

	return summary, nil
}

// ghostByIdx finds an owned ghost by index, skipping the ghost that
// is doing the lookup.
func ghostByIdx(beam *core.MainBeam, idx int, self *core.GhostBeam) *core.GhostBeam {
	for _, g := range beam.Ghosts() {
		if g == self {
			continue
		}
		if g.GhostIdx() == idx {
			return g
		}
	}
	return nil
}
