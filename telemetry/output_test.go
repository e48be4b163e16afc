package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/isoterrain/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All methods are no-ops on a nil manager
	if err := om.WriteRun(RunRecord{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Error(err)
	}
	if om.Path("terrain.stl") != "terrain.stl" {
		t.Errorf("expected path passthrough, got %q", om.Path("terrain.stl"))
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteRun(RunRecord{Run: i, GridSize: 32, Noise: "opensimplex", Triangles: 10 * i}); err != nil {
			t.Fatalf("write run %d: %v", i, err)
		}
		if err := om.WritePerf(PerfStats{Runs: i + 1}, i); err != nil {
			t.Fatalf("write perf %d: %v", i, err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "grid_size"); n != 1 {
		t.Errorf("expected a single header row, found %d", n)
	}

	var runs []RunRecord
	if err := gocsv.UnmarshalBytes(data, &runs); err != nil {
		t.Fatalf("parsing runs.csv: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[2].Triangles != 20 || runs[2].Noise != "opensimplex" {
		t.Errorf("unexpected last run: %+v", runs[2])
	}

	perfData, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var perf []PerfStatsCSV
	if err := gocsv.UnmarshalBytes(perfData, &perf); err != nil {
		t.Fatalf("parsing perf.csv: %v", err)
	}
	if len(perf) != 3 || perf[1].Window != 2 {
		t.Errorf("unexpected perf rows: %+v", perf)
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	reloaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reloading config snapshot: %v", err)
	}
	if reloaded.Field.Seed != cfg.Field.Seed {
		t.Errorf("expected seed %d, got %d", cfg.Field.Seed, reloaded.Field.Seed)
	}
	if om.Path("terrain.stl") != filepath.Join(dir, "terrain.stl") {
		t.Errorf("unexpected output path %q", om.Path("terrain.stl"))
	}
}
