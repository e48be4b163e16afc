package isosurface

import "github.com/chewxy/math32"

// edgeParameter returns where along an edge the threshold is crossed.
// Equal endpoint densities have no crossing point, so the midpoint is used.
func edgeParameter(v1, v2, threshold float32) float32 {
	if v1 == v2 {
		return 0.5
	}
	t := (threshold - v1) / (v2 - v1)
	if math32.IsNaN(t) || math32.IsInf(t, 0) {
		return 0.5
	}
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// interpolate places the threshold crossing between corner positions p1 and p2.
func interpolate(v1, v2, threshold float32, p1, p2 [3]float32) [3]float32 {
	t := edgeParameter(v1, v2, threshold)
	return [3]float32{
		p1[0] + t*(p2[0]-p1[0]),
		p1[1] + t*(p2[1]-p1[1]),
		p1[2] + t*(p2[2]-p1[2]),
	}
}

// cornerPosition returns the lattice position of a cube corner.
func cornerPosition(corner, x, y, z int) [3]float32 {
	return [3]float32{
		float32(x + corner&1),
		float32(y + (corner>>1)&1),
		float32(z + (corner>>2)&1),
	}
}
