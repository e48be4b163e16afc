package isosurface

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/isoterrain/field"
)

// funcField samples a density function on a cubic lattice.
type funcField struct {
	size int
	fn   func(x, y, z int) float32
}

func (f funcField) Size() int              { return f.size }
func (f funcField) At(x, y, z int) float32 { return f.fn(x, y, z) }

func constField(size int, v float32) funcField {
	return funcField{size: size, fn: func(x, y, z int) float32 { return v }}
}

// stepField is solid (1) below height k and empty (0) from k upward.
func stepField(size, k int) funcField {
	return funcField{size: size, fn: func(x, y, z int) float32 {
		if y < k {
			return 1
		}
		return 0
	}}
}

// sphereField is negative inside a sphere centred between lattice points.
func sphereField(size int, radius float64) funcField {
	c := float64(size-1) / 2
	return funcField{size: size, fn: func(x, y, z int) float32 {
		dx, dy, dz := float64(x)-c, float64(y)-c, float64(z)-c
		return float32(math.Sqrt(dx*dx+dy*dy+dz*dz) - radius)
	}}
}

// randomField holds independent uniform densities in [0, 1).
func randomField(size int, seed int64) *field.Grid {
	rng := rand.New(rand.NewSource(seed))
	g := field.NewGrid(size)
	values := g.Values()
	for i := range values {
		values[i] = rng.Float32()
	}
	return g
}

func checkIndexInvariants(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d out of range for %d vertices", i, idx, len(m.Vertices))
		}
		// Unwelded output: each corner gets the next fresh vertex
		if int(idx) != i {
			t.Fatalf("index %d = %d, expected sequential indices", i, idx)
		}
	}
}

func TestExtractSmallGridsEmpty(t *testing.T) {
	for _, size := range []int{0, 1} {
		m := Extract(constField(size, 0), 0.5)
		if !m.IsEmpty() || len(m.Vertices) != 0 {
			t.Errorf("size %d: expected empty mesh", size)
		}
		if m := ExtractParallel(constField(size, 0), 0.5, 4); !m.IsEmpty() {
			t.Errorf("size %d: expected empty parallel mesh", size)
		}
	}
}

func TestExtractUniformFieldEmpty(t *testing.T) {
	testCases := []struct {
		value, threshold float32
	}{
		{1, 0.5},   // all solid
		{0, 0.5},   // all empty
		{0.5, 0.5}, // exactly at threshold counts as outside everywhere
		{-3, 10},
	}
	for _, tc := range testCases {
		m := Extract(constField(6, tc.value), tc.threshold)
		if !m.IsEmpty() {
			t.Errorf("value %v threshold %v: expected empty mesh, got %d triangles",
				tc.value, tc.threshold, m.TriangleCount())
		}
	}
}

func TestExtractPlanarStep(t *testing.T) {
	const size, k = 7, 3
	m := Extract(stepField(size, k), 0.5)
	checkIndexInvariants(t, m)

	// Two triangles per cube in the layer that straddles the step
	wantTris := 2 * (size - 1) * (size - 1)
	if m.TriangleCount() != wantTris {
		t.Errorf("expected %d triangles, got %d", wantTris, m.TriangleCount())
	}

	for i, v := range m.Vertices {
		if v.Position[1] != k-0.5 {
			t.Fatalf("vertex %d at y=%f, expected flat plane at %f", i, v.Position[1], k-0.5)
		}
	}

	// The surface faces away from the solid side
	for i, tri := range m.Triangles() {
		u := [3]float64{tri[1].X - tri[0].X, tri[1].Y - tri[0].Y, tri[1].Z - tri[0].Z}
		w := [3]float64{tri[2].X - tri[0].X, tri[2].Y - tri[0].Y, tri[2].Z - tri[0].Z}
		ny := u[2]*w[0] - u[0]*w[2]
		if ny <= 0 {
			t.Fatalf("triangle %d faces down (normal y %f)", i, ny)
		}
	}

	if area := m.SurfaceArea(); math.Abs(area-float64((size-1)*(size-1))) > 1e-6 {
		t.Errorf("expected plane area %d, got %f", (size-1)*(size-1), area)
	}
}

func TestExtractTexCoords(t *testing.T) {
	m := Extract(sphereField(10, 3.3), 0)
	if m.IsEmpty() {
		t.Fatal("expected sphere surface")
	}
	for i, v := range m.Vertices {
		if v.TexCoord[0] != v.Position[0]/16 || v.TexCoord[1] != v.Position[2]/16 {
			t.Fatalf("vertex %d: texcoord %v does not match position %v", i, v.TexCoord, v.Position)
		}
	}
}

func TestExtractSingleCubeConfigurations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const threshold = 0.5

	for config := 0; config < 256; config++ {
		g := field.NewGrid(2)
		for i := 0; i < 8; i++ {
			x, y, z := i&1, (i>>1)&1, (i>>2)&1
			if config&(1<<i) != 0 {
				g.Set(x, y, z, rng.Float32()*0.49) // inside: below threshold
			} else {
				g.Set(x, y, z, 0.5+rng.Float32()*0.5)
			}
		}

		m := Extract(g, threshold)
		checkIndexInvariants(t, m)

		want := 0
		for triangulation[config][want] != -1 {
			want++
		}
		if len(m.Vertices) != want {
			t.Fatalf("config %d: expected %d vertices, got %d", config, want, len(m.Vertices))
		}
		if edgeMasks[config] == 0 && !m.IsEmpty() {
			t.Fatalf("config %d: inactive cube produced geometry", config)
		}

		// Each vertex lies on an active edge, between its two corners
		for _, v := range m.Vertices {
			if !onActiveEdge(v.Position, edgeMasks[config]) {
				t.Fatalf("config %d: vertex %v is not on an active edge", config, v.Position)
			}
		}
	}
}

func onActiveEdge(p [3]float32, mask uint16) bool {
	for e, pair := range edgeCorners {
		if mask&(1<<e) == 0 {
			continue
		}
		a := cornerPosition(pair[0], 0, 0, 0)
		b := cornerPosition(pair[1], 0, 0, 0)
		on := true
		for axis := 0; axis < 3; axis++ {
			lo, hi := min(a[axis], b[axis]), max(a[axis], b[axis])
			if p[axis] < lo || p[axis] > hi {
				on = false
			}
		}
		if on {
			return true
		}
	}
	return false
}

func TestExtractRandomFieldInvariants(t *testing.T) {
	g := randomField(9, 42)
	m := Extract(g, 0.5)
	checkIndexInvariants(t, m)
	if m.IsEmpty() {
		t.Fatal("expected random field to produce triangles")
	}

	lo, hi, ok := m.Bounds()
	if !ok {
		t.Fatal("expected bounds for non-empty mesh")
	}
	if lo.X < 0 || lo.Y < 0 || lo.Z < 0 || hi.X > 8 || hi.Y > 8 || hi.Z > 8 {
		t.Errorf("vertices escape the lattice: %v .. %v", lo, hi)
	}
}

// edgeKey identifies the lattice edge a surface vertex lies on.
// Two coordinates of such a vertex are exact integers.
type edgeKey [4]int

func latticeEdge(p [3]float32) (edgeKey, bool) {
	var key edgeKey
	fractional := -1
	for axis := 0; axis < 3; axis++ {
		f := math.Floor(float64(p[axis]))
		key[axis] = int(f)
		if float64(p[axis]) != f {
			if fractional >= 0 {
				return key, false
			}
			fractional = axis
		}
	}
	key[3] = fractional
	return key, fractional >= 0
}

func TestExtractClosedSurface(t *testing.T) {
	m := Extract(sphereField(12, 4), 0)
	checkIndexInvariants(t, m)
	if m.IsEmpty() {
		t.Fatal("expected sphere surface")
	}

	// Every directed edge must be matched by exactly one opposite edge:
	// the surface is closed and consistently wound across cubes.
	directed := make(map[[2]edgeKey]int)
	for i := 0; i < len(m.Indices); i += 3 {
		var keys [3]edgeKey
		for j := 0; j < 3; j++ {
			k, ok := latticeEdge(m.Vertices[m.Indices[i+j]].Position)
			if !ok {
				t.Fatalf("vertex %v is not on a lattice edge", m.Vertices[m.Indices[i+j]].Position)
			}
			keys[j] = k
		}
		for j := 0; j < 3; j++ {
			directed[[2]edgeKey{keys[j], keys[(j+1)%3]}]++
		}
	}
	for e, n := range directed {
		if n != 1 {
			t.Fatalf("directed edge %v used %d times", e, n)
		}
		if directed[[2]edgeKey{e[1], e[0]}] != 1 {
			t.Fatalf("directed edge %v has no opposite", e)
		}
	}

	// Normals point toward the low-density interior
	c := 5.5
	for i, tri := range m.Triangles() {
		u := [3]float64{tri[1].X - tri[0].X, tri[1].Y - tri[0].Y, tri[1].Z - tri[0].Z}
		w := [3]float64{tri[2].X - tri[0].X, tri[2].Y - tri[0].Y, tri[2].Z - tri[0].Z}
		n := [3]float64{u[1]*w[2] - u[2]*w[1], u[2]*w[0] - u[0]*w[2], u[0]*w[1] - u[1]*w[0]}
		out := [3]float64{
			(tri[0].X+tri[1].X+tri[2].X)/3 - c,
			(tri[0].Y+tri[1].Y+tri[2].Y)/3 - c,
			(tri[0].Z+tri[1].Z+tri[2].Z)/3 - c,
		}
		if n[0]*out[0]+n[1]*out[1]+n[2]*out[2] >= 0 {
			t.Fatalf("triangle %d faces away from the interior", i)
		}
	}
}

func TestExtractParallelMatchesSerial(t *testing.T) {
	g := randomField(14, 3)
	serial := Extract(g, 0.5)

	for _, workers := range []int{1, 2, 5, 32} {
		par := ExtractParallel(g, 0.5, workers)
		if len(par.Vertices) != len(serial.Vertices) || len(par.Indices) != len(serial.Indices) {
			t.Fatalf("workers %d: size mismatch %d/%d vs %d/%d", workers,
				len(par.Vertices), len(par.Indices), len(serial.Vertices), len(serial.Indices))
		}
		for i := range serial.Vertices {
			if par.Vertices[i] != serial.Vertices[i] {
				t.Fatalf("workers %d: vertex %d differs", workers, i)
			}
		}
		for i := range serial.Indices {
			if par.Indices[i] != serial.Indices[i] {
				t.Fatalf("workers %d: index %d differs", workers, i)
			}
		}
	}
}

func TestExtractGeneratedTerrain(t *testing.T) {
	p := field.DefaultParams()
	p.Baseline = 20 // Bring the surface into a small grid
	p.Scale = 0.08
	p.Falloff = 0.05
	gen, err := field.NewGenerator(p)
	if err != nil {
		t.Fatal(err)
	}
	grid := gen.Generate(32, field.Offset{1, 1, 1})

	m := ExtractParallel(grid, 0.9, 4)
	checkIndexInvariants(t, m)
	if m.IsEmpty() {
		t.Fatal("expected terrain surface inside the grid")
	}

	for i, v := range m.Vertices {
		for axis := 0; axis < 3; axis++ {
			c := float64(v.Position[axis])
			if math.IsNaN(c) || c < 0 || c > 31 {
				t.Fatalf("vertex %d coordinate %f outside lattice", i, c)
			}
		}
	}
}
