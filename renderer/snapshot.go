package renderer

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Top-down snapshot framing.
var (
	snapshotEye    = rl.NewVector3(10, 500, 10)
	snapshotTarget = rl.NewVector3(0, 0, 0)
)

// snapshotExtent is the half-width of the orthographic view volume.
const snapshotExtent = 200

// SnapshotCamera returns the orthographic camera looking down on the terrain.
func SnapshotCamera() rl.Camera3D {
	return rl.Camera3D{
		Position: snapshotEye,
		Target:   snapshotTarget,
		Up:       rl.NewVector3(0, 1, 0),
		// For orthographic cameras Fovy is the full view height
		Fovy:       2 * snapshotExtent,
		Projection: rl.CameraOrthographic,
	}
}

// SaveSnapshot renders a width x height top-down view into an offscreen
// target and writes it to path as PNG. Must be called outside
// BeginDrawing/EndDrawing.
func (r *TerrainRenderer) SaveSnapshot(path string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
	}

	target := rl.LoadRenderTexture(int32(width), int32(height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(SnapshotCamera())
	r.drawMesh()
	rl.EndMode3D()
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)

	// Render textures are stored bottom-up
	rl.ImageFlipVertical(img)

	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("exporting snapshot to %s", path)
	}
	slog.Info("snapshot saved", "path", path, "width", width, "height", height)
	return nil
}
