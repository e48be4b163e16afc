// Package export writes extracted terrain meshes to interchange formats.
package export

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/pthm-cable/isoterrain/isosurface"
)

// ToModel converts an extracted mesh into a model3d mesh.
// Vertices shared between triangles by position are welded.
func ToModel(m *isosurface.Mesh) *model3d.Mesh {
	tris := make([]*model3d.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, &model3d.Triangle{
			coord(m.Vertices[m.Indices[i]].Position),
			coord(m.Vertices[m.Indices[i+1]].Position),
			coord(m.Vertices[m.Indices[i+2]].Position),
		})
	}
	return model3d.NewMeshTriangles(tris)
}

// WriteSTL saves the mesh as a binary STL file.
func WriteSTL(path string, m *isosurface.Mesh) error {
	if m == nil || m.IsEmpty() {
		return errors.New("write stl: mesh is empty")
	}
	if err := ToModel(m).SaveGroupedSTL(path); err != nil {
		return errors.Wrap(err, "write stl")
	}
	return nil
}

func coord(p [3]float32) model3d.Coord3D {
	return model3d.Coord3D{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}
