// Package renderer draws extracted terrain meshes with raylib.
package renderer

import (
	"log/slog"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/camera"
	"github.com/pthm-cable/isoterrain/isosurface"
)

// Fallback texture used when the configured image cannot be loaded.
var (
	checkerA = rl.NewColor(86, 125, 70, 255)
	checkerB = rl.NewColor(64, 98, 52, 255)
)

// TerrainRenderer owns the GPU copy of a terrain mesh and its texture.
type TerrainRenderer struct {
	mesh     rl.Mesh
	material rl.Material
	texture  rl.Texture2D

	// CPU arrays backing the mesh, pinned while raylib reads them
	positions []float32
	texcoords []float32

	hasMesh     bool
	initialized bool
}

// NewTerrainRenderer creates a renderer. Init must be called once a
// raylib window exists.
func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{}
}

// Init loads the surface texture from path, falling back to a checker
// pattern when the image is missing or unreadable.
func (r *TerrainRenderer) Init(texturePath string) {
	if r.initialized {
		return
	}

	var img *rl.Image
	if texturePath != "" && rl.FileExists(texturePath) {
		img = rl.LoadImage(texturePath)
	}
	if img == nil || img.Width == 0 {
		slog.Warn("texture unavailable, using checker", "path", texturePath)
		img = rl.GenImageChecked(64, 64, 8, 8, checkerA, checkerB)
	}
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	rl.GenTextureMipmaps(&r.texture)
	rl.SetTextureFilter(r.texture, rl.FilterTrilinear)
	rl.SetTextureWrap(r.texture, rl.WrapRepeat)

	r.material = rl.LoadMaterialDefault()
	rl.SetMaterialTexture(&r.material, rl.MapDiffuse, r.texture)

	r.initialized = true
}

// Upload replaces the GPU mesh with m. Vertices are drawn in order,
// so the sequential index buffer is not uploaded.
func (r *TerrainRenderer) Upload(m *isosurface.Mesh) {
	r.unloadMesh()
	if m == nil || m.IsEmpty() {
		return
	}

	r.positions, r.texcoords = m.Flatten()
	r.mesh = rl.Mesh{
		VertexCount:   int32(len(m.Vertices)),
		TriangleCount: int32(m.TriangleCount()),
		Vertices:      &r.positions[0],
		Texcoords:     &r.texcoords[0],
	}

	var pinner runtime.Pinner
	pinner.Pin(&r.positions[0])
	pinner.Pin(&r.texcoords[0])
	rl.UploadMesh(&r.mesh, false)
	pinner.Unpin()

	// The GPU holds its own copy; raylib must not free Go memory on unload
	r.mesh.Vertices = nil
	r.mesh.Texcoords = nil
	r.positions, r.texcoords = nil, nil
	r.hasMesh = true

	slog.Debug("mesh uploaded", "vertices", r.mesh.VertexCount, "triangles", r.mesh.TriangleCount)
}

// HasMesh reports whether a non-empty mesh is uploaded.
func (r *TerrainRenderer) HasMesh() bool {
	return r.hasMesh
}

// Draw renders the terrain from the fly camera. Must be called between
// BeginDrawing and EndDrawing.
func (r *TerrainRenderer) Draw(cam *camera.Camera) {
	rl.BeginMode3D(Camera3D(cam))
	r.drawMesh()
	rl.EndMode3D()
}

func (r *TerrainRenderer) drawMesh() {
	if !r.hasMesh {
		return
	}
	rl.DrawMesh(r.mesh, r.material, rl.MatrixIdentity())
}

// Camera3D converts the fly camera into a raylib perspective camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	target := cam.Target()
	return rl.Camera3D{
		Position:   rl.NewVector3(cam.Position.X(), cam.Position.Y(), cam.Position.Z()),
		Target:     rl.NewVector3(target.X(), target.Y(), target.Z()),
		Up:         rl.NewVector3(cam.Up.X(), cam.Up.Y(), cam.Up.Z()),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func (r *TerrainRenderer) unloadMesh() {
	if r.hasMesh {
		rl.UnloadMesh(&r.mesh)
		r.mesh = rl.Mesh{}
		r.hasMesh = false
	}
}

// Unload frees GPU resources.
func (r *TerrainRenderer) Unload() {
	r.unloadMesh()
	if r.initialized {
		// The material only references the texture; unload it directly
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}
