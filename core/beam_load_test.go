package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/signalsfoundry/beamsim/blmfile"
	"github.com/signalsfoundry/beamsim/harmonics"
	"github.com/signalsfoundry/beamsim/model"
)

// fakeStore serves canned arrays and records expansion calls, so the
// tests can tell the explicit-triplet path from the co-polar path.
type fakeStore struct {
	arr         *blmfile.Array
	loads       int
	expansions  int
	scaleCalls  int
	lastExpand  harmonics.ExpandOptions
	lastScale   harmonics.ScaleOptions
	lastLoadArg string
}

func (f *fakeStore) collaborators() Collaborators {
	return Collaborators{
		LoadArray: func(path string) (*blmfile.Array, error) {
			f.loads++
			f.lastLoadArg = path
			return f.arr, nil
		},
		ExpandCopolar: func(co []complex128, opts harmonics.ExpandOptions) *harmonics.Triplet {
			f.expansions++
			f.lastExpand = opts
			return harmonics.CopolExpand(co, opts)
		},
		ScaleTriplet: func(t *harmonics.Triplet, opts harmonics.ScaleOptions) {
			f.scaleCalls++
			f.lastScale = opts
			harmonics.ScaleBlm(t, opts)
		},
	}
}

func tripletArray(n int) *blmfile.Array {
	data := make([]complex128, 3*n)
	for i := range data {
		data[i] = complex(float64(i+1), 0)
	}
	return &blmfile.Array{Shape: []int{3, n}, Data: data}
}

func rowArray(n int) *blmfile.Array {
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(float64(i+1), 0)
	}
	return &blmfile.Array{Shape: []int{n}, Data: data}
}

func TestLoadBlm_ExplicitTripletBypassesExpansion(t *testing.T) {
	store := &fakeStore{arr: tripletArray(harmonics.AlmSize(3))}
	no := false
	b := NewBeamWith(model.BeamConfig{
		BType:     model.BeamPO,
		POFile:    "beams/det1",
		Lmax:      intp(3),
		DeconvQ:   &no,
		Normalize: &no,
	}, store.collaborators())

	blm, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm: %v", err)
	}
	if store.expansions != 0 {
		t.Errorf("co-polar expansion ran %d times; explicit triplet must bypass it", store.expansions)
	}
	if store.scaleCalls != 1 {
		t.Errorf("scale ran %d times, want 1", store.scaleCalls)
	}
	n := harmonics.AlmSize(3)
	if blm.Co[0] != complex(1, 0) || blm.SpinM2[0] != complex(float64(n+1), 0) {
		t.Errorf("triplet rows not mapped in order: co[0]=%v spinm2[0]=%v", blm.Co[0], blm.SpinM2[0])
	}
}

func TestLoadBlm_SingleRowTriggersExpansion(t *testing.T) {
	store := &fakeStore{arr: rowArray(harmonics.AlmSize(3))}
	b := NewBeamWith(model.BeamConfig{
		BType:  model.BeamEG,
		EGFile: "beams/det1_eg",
		Lmax:   intp(3),
	}, store.collaborators())

	if _, err := b.Blm(); err != nil {
		t.Fatalf("Blm: %v", err)
	}
	if store.expansions != 1 {
		t.Errorf("co-polar expansion ran %d times, want 1", store.expansions)
	}
	if !store.lastExpand.DeconvQ || !store.lastExpand.Normalize {
		t.Errorf("scaling options not passed through to expansion: %+v", store.lastExpand)
	}
	if store.lastExpand.C2FWHM != 0 {
		t.Errorf("C2FWHM = %v in load path, want 0 (only Gaussian synthesis sets it)", store.lastExpand.C2FWHM)
	}
}

func TestLoadBlm_CrossPolDisabledForcesExpansion(t *testing.T) {
	no := false
	store := &fakeStore{arr: tripletArray(harmonics.AlmSize(3))}
	b := NewBeamWith(model.BeamConfig{
		BType:    model.BeamPO,
		POFile:   "beams/det1",
		Lmax:     intp(3),
		CrossPol: &no,
	}, store.collaborators())

	if _, err := b.Blm(); err != nil {
		t.Fatalf("Blm: %v", err)
	}
	if store.expansions != 1 {
		t.Errorf("expansion ran %d times, want 1 when cross_pol is off", store.expansions)
	}
	if store.scaleCalls != 0 {
		t.Errorf("triplet scaling ran %d times, want 0 on the co-polar path", store.scaleCalls)
	}
}

func TestLoadBlm_DoesNotChangeBType(t *testing.T) {
	store := &fakeStore{arr: rowArray(harmonics.AlmSize(2))}
	b := NewBeamWith(model.BeamConfig{BType: model.BeamGaussian, FWHM: f64(43)}, store.collaborators())

	if err := b.LoadBlm("beams/special"); err != nil {
		t.Fatalf("LoadBlm: %v", err)
	}
	if b.BType() != model.BeamGaussian {
		t.Errorf("BType = %q after LoadBlm, want untouched Gaussian", b.BType())
	}
	if !b.IsCached() {
		t.Errorf("LoadBlm did not populate the cache")
	}
}

func TestLoadBlm_AmplitudeScalesLoadedTriplet(t *testing.T) {
	no := false
	store := &fakeStore{arr: tripletArray(harmonics.AlmSize(2))}
	b := NewBeamWith(model.BeamConfig{
		BType:     model.BeamPO,
		POFile:    "beams/det1",
		Lmax:      intp(2),
		Amplitude: f64(2),
		DeconvQ:   &no,
		Normalize: &no,
	}, store.collaborators())

	blm, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm: %v", err)
	}
	if blm.Co[0] != complex(2, 0) {
		t.Errorf("co[0] = %v, want amplitude-scaled 2", blm.Co[0])
	}
}

func TestLoadBlm_FromDiskReloadsAfterDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "det1_blm") // extension left to the store

	n := harmonics.AlmSize(4)
	saved := rowArray(n)
	if err := blmfile.Save(path, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b := NewBeam(model.BeamConfig{
		BType:  model.BeamPO,
		POFile: path,
		Lmax:   intp(4),
	})

	first, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm: %v", err)
	}
	firstCopy := first.Copy()

	b.DeleteBlm(true)
	second, err := b.Blm()
	if err != nil {
		t.Fatalf("Blm (reload): %v", err)
	}
	for i := range firstCopy.Co {
		if second.Co[i] != firstCopy.Co[i] {
			t.Fatalf("Co[%d] = %v after reload, want %v", i, second.Co[i], firstCopy.Co[i])
		}
	}
}

func TestLoadBlm_PropagatesStoreError(t *testing.T) {
	wantErr := errors.New("disk gone")
	col := Collaborators{
		LoadArray: func(string) (*blmfile.Array, error) { return nil, wantErr },
	}
	b := NewBeamWith(model.BeamConfig{BType: model.BeamPO, POFile: "x", FWHM: f64(43)}, col)

	if _, err := b.Blm(); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want store error", err)
	}
	if b.IsCached() {
		t.Errorf("failed load populated the cache")
	}
}
