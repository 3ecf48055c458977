package main

import (
	"testing"

	"github.com/signalsfoundry/beamsim/core"
)

func TestFanoutSinkReachesEverySink(t *testing.T) {
	a := core.NewStats()
	b := core.NewStats()
	sink := fanoutSink{sinks: []core.EventSink{a, b}}

	sink.GaussianSynthesized()
	sink.CoefficientsLoaded()
	sink.CacheInvalidated()
	sink.GhostCreated()
	sink.StorageShared()

	for i, s := range []*core.Stats{a, b} {
		snap := s.Snapshot()
		if snap.NumGaussianSynthesized != 1 || snap.NumCoefficientsLoaded != 1 ||
			snap.NumCacheInvalidations != 1 || snap.NumGhostsCreated != 1 ||
			snap.NumStorageShared != 1 {
			t.Errorf("sink %d missed events: %+v", i, snap)
		}
	}
}
