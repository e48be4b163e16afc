// Package field generates dense 3D density grids from layered coherent noise.
package field

// Grid is a dense cubic lattice of densities.
// Values are stored x-major so each x-slab is one contiguous range.
type Grid struct {
	size   int
	values []float32
}

// NewGrid allocates a zeroed grid with size points per axis.
// A non-positive size yields an empty grid.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{
		size:   size,
		values: make([]float32, size*size*size),
	}
}

// Size returns the number of lattice points per axis.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the total number of lattice points.
func (g *Grid) Len() int {
	return len(g.values)
}

// Index returns the flat offset of (x, y, z).
func (g *Grid) Index(x, y, z int) int {
	return (x*g.size+y)*g.size + z
}

// At returns the density at (x, y, z). Coordinates must be in range.
func (g *Grid) At(x, y, z int) float32 {
	return g.values[g.Index(x, y, z)]
}

// Set stores the density at (x, y, z).
func (g *Grid) Set(x, y, z int, v float32) {
	g.values[g.Index(x, y, z)] = v
}

// Values returns the backing slice in x-major order.
func (g *Grid) Values() []float32 {
	return g.values
}

// Slab returns the contiguous backing range holding x in [x0, x1).
func (g *Grid) Slab(x0, x1 int) []float32 {
	plane := g.size * g.size
	return g.values[x0*plane : x1*plane]
}
