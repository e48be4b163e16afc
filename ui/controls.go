package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/terrain"
)

// Slider ranges for the terrain panel.
const (
	thresholdMin = -1.5
	thresholdMax = 1.5
	offsetRange  = 512
)

// PanelAction reports what the user asked for this frame.
type PanelAction struct {
	Regenerate bool
	Snapshot   bool
	Export     bool
}

// TerrainPanel renders the right-side controls for threshold and offset.
// Edits are staged until Regenerate is pressed or AutoRegen is on.
type TerrainPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	defaults  terrain.Settings
	pending   terrain.Settings
	autoRegen bool
}

// NewTerrainPanel creates a new terrain panel starting at defaults.
func NewTerrainPanel(x, y, width int32, defaults terrain.Settings) *TerrainPanel {
	return &TerrainPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		defaults: defaults,
		pending:  defaults,
	}
}

// Settings returns the staged settings.
func (c *TerrainPanel) Settings() terrain.Settings {
	return c.pending
}

// SetPosition updates the panel position.
func (c *TerrainPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *TerrainPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the requested actions.
func (c *TerrainPanel) Draw(current terrain.Settings) PanelAction {
	var action PanelAction
	if !c.visible {
		return action
	}

	r := c.renderer
	padding := r.Theme.Padding
	fx := float32(c.x + padding)
	sliderW := float32(c.width - padding*2 - 60)

	r.DrawPanel(c.x, c.y, c.width, 330)
	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Terrain")

	changed := false

	y = r.DrawCaption(c.x+padding, y, "Threshold", fmt.Sprintf("%.3f", c.pending.Threshold))
	threshold := gui.SliderBar(
		rl.Rectangle{X: fx, Y: float32(y), Width: sliderW, Height: 18},
		"", fmt.Sprintf("%.2f", c.pending.Threshold),
		c.pending.Threshold, thresholdMin, thresholdMax,
	)
	if threshold != c.pending.Threshold {
		c.pending.Threshold = threshold
		changed = true
	}
	y += 30

	for axis, name := range []string{"Offset X", "Offset Y", "Offset Z"} {
		y = r.DrawCaption(c.x+padding, y, name, fmt.Sprintf("%d", c.pending.Offset[axis]))
		v := gui.SliderBar(
			rl.Rectangle{X: fx, Y: float32(y), Width: sliderW, Height: 18},
			"", "",
			float32(c.pending.Offset[axis]), -offsetRange, offsetRange,
		)
		if off := int(math.Round(float64(v))); off != c.pending.Offset[axis] {
			c.pending.Offset[axis] = off
			changed = true
		}
		y += 30
	}

	c.autoRegen = gui.CheckBox(rl.Rectangle{X: fx, Y: float32(y), Width: 16, Height: 16}, "Auto regenerate", c.autoRegen)
	y += 28

	dirty := c.pending != current
	label := "Regenerate"
	if dirty {
		label = "Regenerate *"
	}
	if gui.Button(rl.Rectangle{X: fx, Y: float32(y), Width: 120, Height: 28}, label) {
		action.Regenerate = true
	}
	if gui.Button(rl.Rectangle{X: fx + 130, Y: float32(y), Width: 100, Height: 28}, "Reset") {
		c.pending = c.defaults
		changed = true
	}
	y += 36

	if gui.Button(rl.Rectangle{X: fx, Y: float32(y), Width: 120, Height: 28}, "Snapshot [P]") {
		action.Snapshot = true
	}
	if gui.Button(rl.Rectangle{X: fx + 130, Y: float32(y), Width: 100, Height: 28}, "Export STL") {
		action.Export = true
	}

	if changed && c.autoRegen {
		action.Regenerate = true
	}
	return action
}
