// beaminfo loads a focal-plane layout, resolves every beam's
// band-limit/width block, and optionally materializes coefficients.
// It is a diagnostic driver around the beamsim library; the library
// itself carries no CLI surface.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/beamsim/core"
	"github.com/signalsfoundry/beamsim/focalplane"
	"github.com/signalsfoundry/beamsim/internal/logging"
	"github.com/signalsfoundry/beamsim/internal/observability"
)

// fanoutSink feeds beam lifecycle events to several sinks at once,
// here the plain counters and the Prometheus collector.
type fanoutSink struct {
	sinks []core.EventSink
}

func (f fanoutSink) GaussianSynthesized() {
	for _, s := range f.sinks {
		s.GaussianSynthesized()
	}
}

func (f fanoutSink) CoefficientsLoaded() {
	for _, s := range f.sinks {
		s.CoefficientsLoaded()
	}
}

func (f fanoutSink) CacheInvalidated() {
	for _, s := range f.sinks {
		s.CacheInvalidated()
	}
}

func (f fanoutSink) GhostCreated() {
	for _, s := range f.sinks {
		s.GhostCreated()
	}
}

func (f fanoutSink) StorageShared() {
	for _, s := range f.sinks {
		s.StorageShared()
	}
}

func main() {
	configPath := flag.String("config", "configs/focal_plane.json", "focal-plane layout file (JSON or TOML)")
	materialize := flag.Bool("materialize", false, "materialize all beam and ghost coefficients")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	collector, err := observability.NewBeamCollector(prometheus.DefaultRegisterer)
	if err != nil {
		log.Error(ctx, "metrics setup failed", logging.Any("error", err))
		os.Exit(1)
	}
	stats := core.NewStats()

	col := core.DefaultCollaborators()
	col.Events = fanoutSink{sinks: []core.EventSink{stats, collector}}

	fp := focalplane.New()
	summary, err := focalplane.LoadFile(fp, *configPath, col)
	if err != nil {
		log.Error(ctx, "focal plane load failed",
			logging.String("config", *configPath),
			logging.Any("error", err),
		)
		os.Exit(1)
	}
	collector.SetFocalPlaneSize(fp.NumBeams(), fp.NumGhosts())

	log.Info(ctx, "focal plane loaded",
		logging.String("config", *configPath),
		logging.Int("beams", len(summary.BeamNames)),
		logging.Int("ghosts", summary.NumGhosts),
	)

	failed := false
	for _, beam := range fp.List() {
		az, el, polang := beam.Offsets()
		log.Info(ctx, "beam",
			logging.String("name", beam.Name()),
			logging.String("pol", beam.Pol()),
			logging.String("btype", string(beam.BType())),
			logging.Bool("dead", beam.Dead()),
			logging.Float64("az_deg", az),
			logging.Float64("el_deg", el),
			logging.Float64("polang_deg", polang),
			logging.Float64("fwhm_arcmin", beam.FWHM()),
			logging.Int("lmax", beam.Lmax()),
			logging.Int("mmax", beam.Mmax()),
			logging.Int("ghosts", beam.GhostCount()),
		)

		if !*materialize {
			continue
		}
		if _, err := beam.Blm(); err != nil {
			log.Error(ctx, "coefficient materialization failed",
				logging.String("name", beam.Name()),
				logging.Any("error", err),
			)
			failed = true
			continue
		}
		for _, ghost := range beam.Ghosts() {
			if _, err := ghost.Blm(); err != nil {
				log.Error(ctx, "ghost coefficient materialization failed",
					logging.String("name", ghost.Name()),
					logging.Any("error", err),
				)
				failed = true
			}
		}
	}

	log.Info(ctx, stats.String())
	if failed {
		os.Exit(1)
	}
}
