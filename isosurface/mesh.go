package isosurface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is the layout consumed by the renderer: position then texcoord.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// Mesh is an unwelded triangle list. Every triangle corner owns its own
// vertex, so Indices is always 0, 1, 2, ... len(Vertices)-1.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// Bounds returns the axis-aligned bounding box of all vertices.
// ok is false for an empty mesh.
func (m *Mesh) Bounds() (lo, hi r3.Vec, ok bool) {
	if len(m.Vertices) == 0 {
		return r3.Vec{}, r3.Vec{}, false
	}
	lo = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		p := vec(v.Position)
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi, true
}

// Triangles returns the mesh as a list of triangles in index order.
func (m *Mesh) Triangles() []r3.Triangle {
	tris := make([]r3.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, r3.Triangle{
			vec(m.Vertices[m.Indices[i]].Position),
			vec(m.Vertices[m.Indices[i+1]].Position),
			vec(m.Vertices[m.Indices[i+2]].Position),
		})
	}
	return tris
}

// SurfaceArea returns the summed area of all triangles.
func (m *Mesh) SurfaceArea() float64 {
	var area float64
	for _, t := range m.Triangles() {
		area += r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))) / 2
	}
	return area
}

// MeanHeight returns the average vertex y, or NaN for an empty mesh.
func (m *Mesh) MeanHeight() float64 {
	if len(m.Vertices) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range m.Vertices {
		sum += float64(v.Position[1])
	}
	return sum / float64(len(m.Vertices))
}

// Flatten splits vertices into tightly packed position and texcoord arrays.
func (m *Mesh) Flatten() (positions, texcoords []float32) {
	positions = make([]float32, 0, len(m.Vertices)*3)
	texcoords = make([]float32, 0, len(m.Vertices)*2)
	for _, v := range m.Vertices {
		positions = append(positions, v.Position[0], v.Position[1], v.Position[2])
		texcoords = append(texcoords, v.TexCoord[0], v.TexCoord[1])
	}
	return positions, texcoords
}

// appendVertex emits a fresh vertex at p and records its index.
func (m *Mesh) appendVertex(p [3]float32) {
	m.Indices = append(m.Indices, uint32(len(m.Vertices)))
	m.Vertices = append(m.Vertices, Vertex{
		Position: p,
		TexCoord: [2]float32{p[0] / texelScale, p[2] / texelScale},
	})
}

func vec(p [3]float32) r3.Vec {
	return r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}
