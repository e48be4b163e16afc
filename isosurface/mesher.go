// Package isosurface extracts triangle meshes from density grids with marching cubes.
package isosurface

import "github.com/pthm-cable/isoterrain/parallel"

// texelScale is world units per texture repeat along x and z.
const texelScale = 16

// Field is a cubic lattice of densities.
type Field interface {
	Size() int
	At(x, y, z int) float32
}

// Extract builds the surface where the field crosses threshold, visiting
// cubes in ascending x, y, z order. Lattice points below the threshold are
// inside. Fields smaller than 2 per axis produce an empty mesh.
func Extract(f Field, threshold float32) *Mesh {
	m := &Mesh{}
	n := f.Size()
	if n < 2 {
		return m
	}
	for x := 0; x < n-1; x++ {
		extractSlab(f, threshold, x, m)
	}
	return m
}

// ExtractParallel is Extract with each x-slab of cubes meshed into its own
// buffer across workers, then merged in ascending x. The result is
// identical to Extract.
func ExtractParallel(f Field, threshold float32, workers int) *Mesh {
	n := f.Size()
	if n < 2 {
		return &Mesh{}
	}
	if parallel.Workers(workers) <= 1 {
		return Extract(f, threshold)
	}

	slabs := make([]Mesh, n-1)
	parallel.Run(n-1, workers, 1, func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			extractSlab(f, threshold, x, &slabs[x])
		}
	})
	return merge(slabs)
}

// merge concatenates slab meshes in order, rebasing their indices.
func merge(slabs []Mesh) *Mesh {
	var numVerts, numIndices int
	for i := range slabs {
		numVerts += len(slabs[i].Vertices)
		numIndices += len(slabs[i].Indices)
	}

	out := &Mesh{
		Vertices: make([]Vertex, 0, numVerts),
		Indices:  make([]uint32, 0, numIndices),
	}
	for i := range slabs {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, slabs[i].Vertices...)
		for _, idx := range slabs[i].Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}

// extractSlab meshes every cube whose minimum corner has the given x.
func extractSlab(f Field, threshold float32, x int, m *Mesh) {
	n := f.Size()
	for y := 0; y < n-1; y++ {
		for z := 0; z < n-1; z++ {
			polygonise(f, threshold, x, y, z, m)
		}
	}
}

// polygonise appends the triangles of the cube with minimum corner (x, y, z).
func polygonise(f Field, threshold float32, x, y, z int, m *Mesh) {
	var values [8]float32
	config := 0
	for i := 0; i < 8; i++ {
		values[i] = f.At(x+i&1, y+(i>>1)&1, z+(i>>2)&1)
		if values[i] < threshold {
			config |= 1 << i
		}
	}

	mask := edgeMasks[config]
	if mask == 0 {
		return
	}

	var points [12][3]float32
	for e := 0; e < 12; e++ {
		if mask&(1<<e) == 0 {
			continue
		}
		a, b := edgeCorners[e][0], edgeCorners[e][1]
		points[e] = interpolate(values[a], values[b], threshold,
			cornerPosition(a, x, y, z), cornerPosition(b, x, y, z))
	}

	row := &triangulation[config]
	for i := 0; row[i] != -1; i += 3 {
		m.appendVertex(points[row[i]])
		m.appendVertex(points[row[i+1]])
		m.appendVertex(points[row[i+2]])
	}
}
