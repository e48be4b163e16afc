package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	FPS           int32
	Run           int
	Vertices      int
	Triangles     int
	SolidFraction float64
	MeanHeight    float64
	CameraPos     [3]float32
	MouseCaptured bool
	ScreenHeight  int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	const x, width = 10, 300

	r.DrawPanel(x-6, 4, width, 150)
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	y := int32(36)
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Build", fmt.Sprintf("#%d", data.Run))
	y = r.DrawLabelValue(x, y, "Mesh", fmt.Sprintf("%d tris / %d verts", data.Triangles, data.Vertices))
	y = r.DrawBar(x, y, "Solid", float32(data.SolidFraction), width-12)
	y = r.DrawLabelValue(x, y, "Mean y", fmt.Sprintf("%.1f", data.MeanHeight))
	r.DrawLabelValue(x, y, "Camera", fmt.Sprintf("%.0f, %.0f, %.0f", data.CameraPos[0], data.CameraPos[1], data.CameraPos[2]))

	if !data.MouseCaptured {
		rl.DrawText("Mouse released (Tab to capture)", x, 160, 14, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the build phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Build Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s over %d builds", stats.AvgRunDuration.Round(time.Millisecond), stats.Runs), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-8s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
