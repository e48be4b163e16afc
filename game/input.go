package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/camera"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.setMouseCaptured(!g.mouseCaptured)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.pending.Snapshot = true
	}

	g.camera.Update(g.readCameraInput())
}

// readCameraInput samples the fly camera controls. Mouse look only
// applies while the cursor is captured.
func (g *Game) readCameraInput() camera.InputState {
	in := camera.InputState{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
	}
	if g.mouseCaptured {
		delta := rl.GetMouseDelta()
		// Screen Y grows downward
		in.MouseDX = delta.X
		in.MouseDY = -delta.Y
	}
	return in
}

func (g *Game) setMouseCaptured(captured bool) {
	g.mouseCaptured = captured
	if captured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

// handleResize keeps UI anchors in place when the window changes size.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.panel.SetPosition(w-panelWidth-10, 10)
}
