package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Field.GridSize != 256 {
		t.Errorf("expected grid size 256, got %d", cfg.Field.GridSize)
	}
	if cfg.Field.Offset != [3]int{1, 1, 1} {
		t.Errorf("expected offset (1,1,1), got %v", cfg.Field.Offset)
	}
	if cfg.Field.Seed != 1024 {
		t.Errorf("expected seed 1024, got %d", cfg.Field.Seed)
	}
	if cfg.Mesh.Threshold != 0.9 {
		t.Errorf("expected threshold 0.9, got %f", cfg.Mesh.Threshold)
	}
	if cfg.Field.Noise != NoiseOpenSimplex {
		t.Errorf("expected opensimplex noise, got %q", cfg.Field.Noise)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	// global_scale 1.2 with 0.01 factors and a 150 baseline
	if math.Abs(cfg.Derived.NoiseScale-0.012) > 1e-12 {
		t.Errorf("expected noise scale 0.012, got %f", cfg.Derived.NoiseScale)
	}
	if math.Abs(cfg.Derived.Falloff-0.012) > 1e-12 {
		t.Errorf("expected falloff 0.012, got %f", cfg.Derived.Falloff)
	}
	if math.Abs(cfg.Derived.Baseline-180) > 1e-9 {
		t.Errorf("expected baseline 180, got %f", cfg.Derived.Baseline)
	}
	if cfg.Derived.FieldWorkers < 1 {
		t.Errorf("expected resolved field workers >= 1, got %d", cfg.Derived.FieldWorkers)
	}
	if cfg.Derived.MeshWorkers != 1 {
		t.Errorf("expected mesh workers 1, got %d", cfg.Derived.MeshWorkers)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("field:\n  grid_size: 32\n  noise: perlin\nmesh:\n  threshold: 0.25\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Field.GridSize != 32 {
		t.Errorf("expected overlaid grid size 32, got %d", cfg.Field.GridSize)
	}
	if cfg.Field.Noise != NoisePerlin {
		t.Errorf("expected overlaid noise perlin, got %q", cfg.Field.Noise)
	}
	if cfg.Mesh.Threshold != 0.25 {
		t.Errorf("expected overlaid threshold 0.25, got %f", cfg.Mesh.Threshold)
	}
	// Untouched fields keep their defaults
	if cfg.Field.Seed != 1024 {
		t.Errorf("expected default seed to survive overlay, got %d", cfg.Field.Seed)
	}
}

func TestLoadRejectsUnknownNoise(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("field:\n  noise: worley\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown noise kind")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAML(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Mesh.Threshold = 0.5

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if reloaded.Mesh.Threshold != 0.5 {
		t.Errorf("expected snapshot threshold 0.5, got %f", reloaded.Mesh.Threshold)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic when Cfg() is called before Init()")
		}
	}()
	Cfg()
}
