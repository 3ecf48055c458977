package core

import (
	"errors"
	"testing"

	"github.com/signalsfoundry/beamsim/model"
)

func TestNewBeam_Defaults(t *testing.T) {
	b := NewBeam(model.BeamConfig{Name: "det1", FWHM: f64(43)})

	if b.Name() != "det1" {
		t.Errorf("Name = %q, want det1", b.Name())
	}
	if b.Pol() != "A" {
		t.Errorf("Pol = %q, want default A", b.Pol())
	}
	if b.BType() != model.BeamGaussian {
		t.Errorf("BType = %q, want default Gaussian", b.BType())
	}
	if b.Amplitude() != 1 {
		t.Errorf("Amplitude = %v, want default 1", b.Amplitude())
	}
	if b.Dead() {
		t.Errorf("Dead = true, want false")
	}
	if b.IsCached() {
		t.Errorf("fresh beam should not have materialized coefficients")
	}
	if b.GhostCount() != 0 || len(b.Ghosts()) != 0 {
		t.Errorf("fresh beam owns ghosts: count=%d len=%d", b.GhostCount(), len(b.Ghosts()))
	}
}

func TestOffsets_PassThroughUnchanged(t *testing.T) {
	// Degrees are stored as given, including values outside [0, 360).
	b := NewBeam(model.BeamConfig{Az: -371.25, El: 12.5, Polang: 450, FWHM: f64(30)})

	az, el, polang := b.Offsets()
	if az != -371.25 || el != 12.5 || polang != 450 {
		t.Errorf("Offsets = (%v, %v, %v), want (-371.25, 12.5, 450)", az, el, polang)
	}
}

func TestBlm_GaussianLazyMaterialization(t *testing.T) {
	b := NewBeam(model.BeamConfig{FWHM: f64(43), Lmax: intp(100)})

	if b.IsCached() {
		t.Fatalf("coefficients materialized before first access")
	}
	blm, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm: %v", err)
	}
	if !b.IsCached() {
		t.Fatalf("coefficients not cached after first access")
	}
	if blm == nil || len(blm.Co) == 0 {
		t.Fatalf("empty triplet from Gaussian synthesis")
	}

	again, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm (cached): %v", err)
	}
	if again != blm {
		t.Errorf("second access returned different storage; cache not reused")
	}
}

func TestBlm_GaussianAmplitudeScaling(t *testing.T) {
	unit := NewBeam(model.BeamConfig{FWHM: f64(43), Lmax: intp(50)})
	scaled := NewBeam(model.BeamConfig{FWHM: f64(43), Lmax: intp(50), Amplitude: f64(0.5)})

	bu, err := unit.Blm()
	if err != nil {
		t.Fatalf("Blm (unit): %v", err)
	}
	bs, err := scaled.Blm()
	if err != nil {
		t.Fatalf("Blm (scaled): %v", err)
	}
	if got, want := bs.Co[0], bu.Co[0]*complex(0.5, 0); got != want {
		t.Errorf("scaled b00 = %v, want %v", got, want)
	}
}

func TestBlm_UnknownBTypeFails(t *testing.T) {
	b := NewBeam(model.BeamConfig{BType: model.BeamType("EGG"), FWHM: f64(43)})

	_, err := b.Blm()
	if !errors.Is(err, ErrUnknownBeamType) {
		t.Fatalf("err = %v, want ErrUnknownBeamType", err)
	}
	if b.IsCached() {
		t.Errorf("failed materialization must not populate the cache")
	}
}

func TestBlm_GaussianMapHasNoSynthesisPath(t *testing.T) {
	b := NewBeam(model.BeamConfig{BType: model.BeamGaussianMap, FWHM: f64(43)})

	if _, err := b.Blm(); !errors.Is(err, ErrUnknownBeamType) {
		t.Fatalf("err = %v, want ErrUnknownBeamType", err)
	}
}

func TestBlm_FileBackedWithoutPathFails(t *testing.T) {
	for _, btype := range []model.BeamType{model.BeamPO, model.BeamEG} {
		b := NewBeam(model.BeamConfig{BType: btype, FWHM: f64(43)})
		if _, err := b.Blm(); !errors.Is(err, ErrNoBeamFile) {
			t.Errorf("btype %s: err = %v, want ErrNoBeamFile", btype, err)
		}
	}
}

func TestDeleteBlm_RederivesIdenticalGaussian(t *testing.T) {
	b := NewBeam(model.BeamConfig{FWHM: f64(43), Lmax: intp(80)})

	first, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm: %v", err)
	}
	firstCopy := first.Copy()

	b.DeleteBlm(true)
	if b.IsCached() {
		t.Fatalf("cache survived DeleteBlm")
	}

	second, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm (re-derived): %v", err)
	}
	if second == first {
		t.Fatalf("re-derivation returned the deleted storage")
	}
	for i := range firstCopy.Co {
		if second.Co[i] != firstCopy.Co[i] {
			t.Fatalf("Co[%d] = %v, want %v (synthesis not deterministic)", i, second.Co[i], firstCopy.Co[i])
		}
	}
	for i := range firstCopy.SpinM2 {
		if second.SpinM2[i] != firstCopy.SpinM2[i] || second.SpinP2[i] != firstCopy.SpinP2[i] {
			t.Fatalf("spin components differ at %d after re-derivation", i)
		}
	}
}

func TestDeleteBlm_AbsentCacheIsNoOp(t *testing.T) {
	b := NewBeam(model.BeamConfig{FWHM: f64(43)})
	b.DeleteBlm(true) // must not panic or error
	if b.IsCached() {
		t.Errorf("delete on empty cache materialized something")
	}
}

func TestStats_CountBeamLifecycle(t *testing.T) {
	stats := NewStats()
	col := DefaultCollaborators()
	col.Events = stats

	b := NewBeamWith(model.BeamConfig{Name: "det1", FWHM: f64(43), Lmax: intp(60)}, col)
	b.CreateGhost("ghost", GhostOverrides{})

	if _, err := b.Blm(); err != nil {
		t.Fatalf("Blm: %v", err)
	}
	b.DeleteBlm(true)

	snap := stats.Snapshot()
	if snap.NumGaussianSynthesized != 1 {
		t.Errorf("NumGaussianSynthesized = %d, want 1", snap.NumGaussianSynthesized)
	}
	if snap.NumGhostsCreated != 1 {
		t.Errorf("NumGhostsCreated = %d, want 1", snap.NumGhostsCreated)
	}
	if snap.NumCacheInvalidations != 1 {
		t.Errorf("NumCacheInvalidations = %d, want 1 (ghost cache was empty)", snap.NumCacheInvalidations)
	}
}
