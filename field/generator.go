package field

import (
	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/parallel"
)

// Offset shifts the lattice before noise sampling, in lattice units.
type Offset [3]int

// Params holds the constants that define a density field.
type Params struct {
	Seed     int64
	Noise    string  // opensimplex | perlin
	Scale    float64 // Noise frequency per lattice unit
	Falloff  float64 // Density lost per lattice unit of height above Baseline
	Baseline float64 // Height where the vertical bias is zero
	Workers  int     // Parallel slab workers (0 = GOMAXPROCS)
}

// DefaultParams returns the reference terrain constants:
// global scale 1.2, frequency and falloff 0.01 each, baseline 150, seed 1024.
func DefaultParams() Params {
	const globalScale = 1.2
	return Params{
		Seed:     1024,
		Noise:    config.NoiseOpenSimplex,
		Scale:    0.01 * globalScale,
		Falloff:  0.01 * globalScale,
		Baseline: 150 * globalScale,
	}
}

// ParamsFromConfig builds field parameters from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Seed:     cfg.Field.Seed,
		Noise:    cfg.Field.Noise,
		Scale:    cfg.Derived.NoiseScale,
		Falloff:  cfg.Derived.Falloff,
		Baseline: cfg.Derived.Baseline,
		Workers:  cfg.Derived.FieldWorkers,
	}
}

// Generator samples densities: noise at the shifted lattice point minus a
// linear bias that grows with height. Densities trend high (solid) near
// y = 0 and low (empty) far above Baseline.
type Generator struct {
	noise  Noise
	params Params
}

// NewGenerator creates a generator for the given parameters.
func NewGenerator(p Params) (*Generator, error) {
	noise, err := NewNoise(p.Noise, p.Seed)
	if err != nil {
		return nil, err
	}
	return &Generator{noise: noise, params: p}, nil
}

// NewGeneratorWithNoise creates a generator around an existing noise source.
// p.Noise and p.Seed are ignored.
func NewGeneratorWithNoise(noise Noise, p Params) *Generator {
	return &Generator{noise: noise, params: p}
}

// Params returns the generator parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Density returns the density at lattice point (x, y, z) under offset.
// It is a pure function of its inputs and the generator parameters.
func (g *Generator) Density(x, y, z int, offset Offset) float32 {
	s := g.params.Scale
	n := g.noise.Noise3D(
		(float64(x)+float64(offset[0]))*s,
		(float64(y)+float64(offset[1]))*s,
		(float64(z)+float64(offset[2]))*s,
	)
	bias := (float64(y) - g.params.Baseline) * g.params.Falloff
	return float32(n - bias)
}

// Generate fills a size³ grid, one x-slab per work item across the worker pool.
// A non-positive size returns an empty grid.
func (g *Generator) Generate(size int, offset Offset) *Grid {
	grid := NewGrid(size)
	n := grid.Size()
	parallel.Run(n, g.params.Workers, 1, func(x0, x1 int) {
		g.fillSlab(grid.Slab(x0, x1), n, offset, x0, x1)
	})
	return grid
}

// GenerateSlab returns the x-major values of a size³ grid restricted to
// x in [x0, x1). Concatenating the slabs of a partition of [0, size)
// reproduces Generate(size, offset).Values().
func (g *Generator) GenerateSlab(size int, offset Offset, x0, x1 int) []float32 {
	if size <= 0 {
		return nil
	}
	x0 = max(x0, 0)
	x1 = min(x1, size)
	if x1 <= x0 {
		return nil
	}
	dst := make([]float32, (x1-x0)*size*size)
	g.fillSlab(dst, size, offset, x0, x1)
	return dst
}

// fillSlab writes x in [x0, x1) into dst, which holds exactly that range.
func (g *Generator) fillSlab(dst []float32, size int, offset Offset, x0, x1 int) {
	i := 0
	for x := x0; x < x1; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				dst[i] = g.Density(x, y, z, offset)
				i++
			}
		}
	}
}
