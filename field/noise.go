package field

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a deterministic coherent noise source.
// Implementations must be safe for concurrent reads.
type Noise interface {
	Noise3D(x, y, z float64) float64
}

// NewNoise returns the noise source named by kind ("opensimplex" or "perlin").
func NewNoise(kind string, seed int64) (Noise, error) {
	switch kind {
	case "opensimplex":
		return NewOpenSimplex(seed), nil
	case "perlin":
		return NewPerlinNoise(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

// OpenSimplex adapts opensimplex-go to the Noise interface.
type OpenSimplex struct {
	noise opensimplex.Noise
}

// NewOpenSimplex creates an OpenSimplex noise source. Output lies roughly in [-1, 1].
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{noise: opensimplex.New(seed)}
}

// Noise3D returns the noise value at (x, y, z).
func (o *OpenSimplex) Noise3D(x, y, z float64) float64 {
	return o.noise.Eval3(x, y, z)
}

// PerlinNoise generates classic gradient noise from a seeded permutation table.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewSource(seed))

	// Identity permutation, Fisher-Yates shuffled by the seed
	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate so corner hashing never needs a wrap
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Noise3D returns a noise value for 3D coordinates, zero at integer lattice points.
func (p *PerlinNoise) Noise3D(x, y, z float64) float64 {
	// Unit cube containing the point
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	// Position inside the cube
	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Corner hashes
	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	// Blend the 8 corner gradients
	return lerp(w, lerp(v, lerp(u, grad3D(p.perm[AA], x, y, z),
		grad3D(p.perm[BA], x-1, y, z)),
		lerp(u, grad3D(p.perm[AB], x, y-1, z),
			grad3D(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad3D(p.perm[AA+1], x, y, z-1),
			grad3D(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1),
				grad3D(p.perm[BB+1], x-1, y-1, z-1))))
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad3D dots the offset with one of 12 cube-edge gradients picked by hash.
func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
