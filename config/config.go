// Package config provides configuration loading and access for terrain generation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Noise kinds accepted by FieldConfig.Noise.
const (
	NoiseOpenSimplex = "opensimplex"
	NoisePerlin      = "perlin"
)

// Config holds all generation and viewer configuration parameters.
type Config struct {
	Field     FieldConfig     `yaml:"field"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Texture   TextureConfig   `yaml:"texture"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds scalar field generation parameters.
type FieldConfig struct {
	GridSize       int     `yaml:"grid_size"`       // Lattice points per axis
	Offset         [3]int  `yaml:"offset"`          // Integer lattice shift applied before noise sampling
	Seed           int64   `yaml:"seed"`            // Noise seed
	GlobalScale    float64 `yaml:"global_scale"`    // Multiplies every spatial constant below
	ScaleFactor    float64 `yaml:"scale_factor"`    // Noise frequency before global scaling
	FalloffFactor  float64 `yaml:"falloff_factor"`  // Vertical bias slope before global scaling
	BaselineFactor float64 `yaml:"baseline_factor"` // Bias baseline height before global scaling
	Noise          string  `yaml:"noise"`           // opensimplex | perlin
	Workers        int     `yaml:"workers"`         // 0 = GOMAXPROCS
}

// MeshConfig holds isosurface extraction parameters.
type MeshConfig struct {
	Threshold float32 `yaml:"threshold"`
	Workers   int     `yaml:"workers"` // 1 = synchronous extraction
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the initial fly camera state.
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	Yaw              float32    `yaml:"yaw"`   // Degrees
	Pitch            float32    `yaml:"pitch"` // Degrees
	MovementSpeed    float32    `yaml:"movement_speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Fovy             float32    `yaml:"fovy"`
}

// TextureConfig holds the surface texture source.
// Source may be a local path or any go-getter address.
type TextureConfig struct {
	Source   string `yaml:"source"`
	CacheDir string `yaml:"cache_dir"`
}

// SnapshotConfig holds top-down snapshot settings.
type SnapshotConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Path   string `yaml:"path"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	NoiseScale   float64 // ScaleFactor * GlobalScale
	Falloff      float64 // FalloffFactor * GlobalScale
	Baseline     float64 // BaselineFactor * GlobalScale
	FieldWorkers int     // Field.Workers with 0 resolved to GOMAXPROCS
	MeshWorkers  int     // Mesh.Workers clamped to >= 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings that cannot be interpreted.
// Small or zero grid sizes are legal and produce empty output.
func (c *Config) validate() error {
	switch c.Field.Noise {
	case NoiseOpenSimplex, NoisePerlin:
	default:
		return fmt.Errorf("unknown noise kind %q", c.Field.Noise)
	}
	if c.Field.GridSize < 0 {
		return fmt.Errorf("field.grid_size must not be negative, got %d", c.Field.GridSize)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.NoiseScale = c.Field.ScaleFactor * c.Field.GlobalScale
	c.Derived.Falloff = c.Field.FalloffFactor * c.Field.GlobalScale
	c.Derived.Baseline = c.Field.BaselineFactor * c.Field.GlobalScale

	c.Derived.FieldWorkers = c.Field.Workers
	if c.Derived.FieldWorkers <= 0 {
		c.Derived.FieldWorkers = runtime.GOMAXPROCS(0)
	}
	c.Derived.MeshWorkers = c.Mesh.Workers
	if c.Derived.MeshWorkers < 1 {
		c.Derived.MeshWorkers = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
