// Density field preview tool - interactive slice view with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/field"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// SliceMode selects which plane of the field is shown.
type SliceMode int

const (
	SliceHorizontal SliceMode = iota // constant y, x right, z down
	SliceVertical                    // constant z, x right, y up
)

// PreviewParams holds the adjustable field and view parameters.
type PreviewParams struct {
	Scale     float32
	Falloff   float32
	Baseline  float32
	Seed      int64
	Threshold float32
	Level     int
	Mode      SliceMode
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	gridSize := flag.Int("grid-size", 256, "Slice resolution in lattice points")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	size := *gridSize

	defaults := PreviewParams{
		Scale:     float32(cfg.Derived.NoiseScale),
		Falloff:   float32(cfg.Derived.Falloff),
		Baseline:  float32(cfg.Derived.Baseline),
		Seed:      cfg.Field.Seed,
		Threshold: cfg.Mesh.Threshold,
		Level:     size / 2,
		Mode:      SliceVertical,
	}
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Density Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	slice := make([]float32, size*size)
	img := rl.GenImageColor(size, size, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var stats field.Stats
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			gen, err := newGenerator(cfg, params)
			if err != nil {
				slog.Error("creating generator", "error", err)
				return
			}
			sampleSlice(slice, size, gen, field.Offset(cfg.Field.Offset), params)
			stats = field.ComputeStats(slice, params.Threshold)
			updateTexture(texture, slice, params.Threshold)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(size), Height: float32(size)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Mean: %.3f  Std: %.3f", stats.Min, stats.Max, stats.Mean, stats.StdDev), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Solid: %.1f%%", stats.SolidFraction*100), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Density Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if v, ok := slider(&panelY, panelX, "Scale (noise frequency)", params.Scale, 0.001, 0.1, "%.4f"); ok {
			params.Scale = v
			needsRegen = true
		}
		if v, ok := slider(&panelY, panelX, "Falloff (vertical bias)", params.Falloff, 0, 0.1, "%.4f"); ok {
			params.Falloff = v
			needsRegen = true
		}
		if v, ok := slider(&panelY, panelX, "Baseline height", params.Baseline, 0, float32(size), "%.1f"); ok {
			params.Baseline = v
			needsRegen = true
		}
		if v, ok := slider(&panelY, panelX, "Threshold", params.Threshold, -1.5, 1.5, "%.3f"); ok {
			params.Threshold = v
			needsRegen = true
		}
		if v, ok := slider(&panelY, panelX, "Slice level", float32(params.Level), 0, float32(size-1), "%.0f"); ok {
			if level := int(v); level != params.Level {
				params.Level = level
				needsRegen = true
			}
		}
		if v, ok := slider(&panelY, panelX, "Seed", float32(params.Seed), 0, 99999, "%.0f"); ok {
			if seed := int64(v); seed != params.Seed {
				params.Seed = seed
				needsRegen = true
			}
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, modeLabel(params.Mode)) {
			params.Mode = 1 - params.Mode
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := configYAML(cfg, params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider and advances y. ok reports a change.
func slider(y *float32, x float32, label string, value, min, max float32, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v, v != value
}

func modeLabel(m SliceMode) string {
	if m == SliceHorizontal {
		return "View: Plan"
	}
	return "View: Section"
}

// newGenerator builds a generator from cfg with preview overrides.
func newGenerator(cfg *config.Config, p PreviewParams) (*field.Generator, error) {
	fp := field.ParamsFromConfig(cfg)
	fp.Scale = float64(p.Scale)
	fp.Falloff = float64(p.Falloff)
	fp.Baseline = float64(p.Baseline)
	fp.Seed = p.Seed
	return field.NewGenerator(fp)
}

// sampleSlice fills dst row-major with densities from the selected plane.
// Section rows run top to bottom from high y to low y.
func sampleSlice(dst []float32, size int, gen *field.Generator, offset field.Offset, p PreviewParams) {
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			var v float32
			if p.Mode == SliceHorizontal {
				v = gen.Density(col, p.Level, row, offset)
			} else {
				v = gen.Density(col, size-1-row, p.Level, offset)
			}
			dst[row*size+col] = v
		}
	}
}

// updateTexture colors solid samples earthy and empty samples sky-blue,
// shaded by distance from the threshold.
func updateTexture(texture rl.Texture2D, slice []float32, threshold float32) {
	pixels := make([]color.RGBA, len(slice))
	for i, v := range slice {
		d := v - threshold
		if d >= 0 {
			t := clamp01(d)
			pixels[i] = color.RGBA{R: uint8(150 - t*90), G: uint8(120 - t*70), B: uint8(70 - t*40), A: 255}
		} else {
			t := clamp01(-d)
			pixels[i] = color.RGBA{R: uint8(170 - t*120), G: uint8(210 - t*110), B: uint8(240 - t*60), A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
}

func configYAML(cfg *config.Config, p PreviewParams) string {
	g := cfg.Field.GlobalScale
	if g == 0 {
		g = 1
	}
	return fmt.Sprintf(`field:
  seed: %d
  scale_factor: %.5f
  falloff_factor: %.5f
  baseline_factor: %.2f
mesh:
  threshold: %.3f`,
		p.Seed, float64(p.Scale)/g, float64(p.Falloff)/g, float64(p.Baseline)/g, p.Threshold)
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
