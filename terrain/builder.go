// Package terrain runs the generate, extract and publish pipeline and
// records telemetry for each build.
package terrain

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/field"
	"github.com/pthm-cable/isoterrain/isosurface"
	"github.com/pthm-cable/isoterrain/telemetry"
)

// Settings are the per-build knobs that can change without rebuilding
// the generator.
type Settings struct {
	Offset    field.Offset
	Threshold float32
}

// Result holds everything produced by one build.
type Result struct {
	Run      int
	Settings Settings

	Grid       *field.Grid
	FieldStats field.Stats
	Mesh       *isosurface.Mesh

	Perf   telemetry.PerfSample
	Record telemetry.RunRecord
}

// Stage is an extra pipeline step run after extraction, timed as Phase.
type Stage struct {
	Phase string
	Run   func(*Result) error
}

// Builder produces terrain meshes from a fixed configuration.
type Builder struct {
	cfg    *config.Config
	gen    *field.Generator
	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager
	runs   int
}

// NewBuilder creates a builder. output may be nil to disable CSV output.
func NewBuilder(cfg *config.Config, output *telemetry.OutputManager) (*Builder, error) {
	gen, err := field.NewGenerator(field.ParamsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return &Builder{
		cfg:    cfg,
		gen:    gen,
		perf:   telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output: output,
	}, nil
}

// DefaultSettings returns the configured offset and threshold.
func (b *Builder) DefaultSettings() Settings {
	return Settings{
		Offset:    field.Offset(b.cfg.Field.Offset),
		Threshold: b.cfg.Mesh.Threshold,
	}
}

// Generator returns the underlying field generator.
func (b *Builder) Generator() *field.Generator {
	return b.gen
}

// Perf returns the build timing collector.
func (b *Builder) Perf() *telemetry.PerfCollector {
	return b.perf
}

// Runs returns the number of completed builds.
func (b *Builder) Runs() int {
	return b.runs
}

// Build generates the field, extracts the surface and then runs each
// stage in order. A failing stage aborts the build.
func (b *Builder) Build(s Settings, stages ...Stage) (*Result, error) {
	res := &Result{Run: b.runs, Settings: s}

	b.perf.StartRun()

	b.perf.StartPhase(telemetry.PhaseField)
	res.Grid = b.gen.Generate(b.cfg.Field.GridSize, s.Offset)
	res.FieldStats = field.ComputeStats(res.Grid.Values(), s.Threshold)

	b.perf.StartPhase(telemetry.PhaseMesh)
	if b.cfg.Derived.MeshWorkers > 1 {
		res.Mesh = isosurface.ExtractParallel(res.Grid, s.Threshold, b.cfg.Derived.MeshWorkers)
	} else {
		res.Mesh = isosurface.Extract(res.Grid, s.Threshold)
	}

	for _, st := range stages {
		b.perf.StartPhase(st.Phase)
		if err := st.Run(res); err != nil {
			b.perf.AbortRun()
			return nil, fmt.Errorf("%s stage: %w", st.Phase, err)
		}
	}

	res.Perf = b.perf.EndRun()
	res.Record = telemetry.NewRunRecord(res.Run, b.runConfig(s), res.FieldStats, res.Mesh, res.Perf)
	b.runs++

	if res.Mesh.IsEmpty() {
		slog.Warn("surface is empty", "threshold", s.Threshold, "offset", s.Offset)
	}
	slog.Info("terrain built", "run", res.Record)

	if err := b.output.WriteRun(res.Record); err != nil {
		return nil, err
	}
	if err := b.output.WritePerf(b.perf.Stats(), res.Run); err != nil {
		return nil, err
	}
	return res, nil
}

// runConfig returns a copy of the configuration with per-build settings applied.
func (b *Builder) runConfig(s Settings) *config.Config {
	c := *b.cfg
	c.Field.Offset = [3]int(s.Offset)
	c.Mesh.Threshold = s.Threshold
	return &c
}
