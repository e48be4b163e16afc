package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed HUD primitives.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered backing rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader returns the y of the first line below the title.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws "label: value" in two columns and advances one line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawCaption draws a slider caption with its current value right after it.
func (r *Renderer) DrawCaption(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	w := rl.MeasureText(label, r.Theme.FontSize)
	rl.DrawText(value, x+w+8, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a ground/air split for a fraction in [0, 1].
// The ground share fills from the left.
func (r *Renderer) DrawBar(x, y int32, label string, fraction float32, width int32) int32 {
	fraction = min(max(fraction, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50
	ground := int32(float32(barWidth) * fraction)

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.AirFill)
	rl.DrawRectangle(barX, y+2, ground, r.Theme.BarHeight, r.Theme.GroundFill)
	rl.DrawRectangleLines(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.PanelBorder)
	rl.DrawText(fmt.Sprintf("%.0f%%", fraction*100), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}
