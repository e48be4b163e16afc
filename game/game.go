// Package game wires terrain builds to the interactive viewer and the
// headless batch mode.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/assets"
	"github.com/pthm-cable/isoterrain/camera"
	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/export"
	"github.com/pthm-cable/isoterrain/renderer"
	"github.com/pthm-cable/isoterrain/telemetry"
	"github.com/pthm-cable/isoterrain/terrain"
	"github.com/pthm-cable/isoterrain/ui"
)

const (
	title        = "isoterrain"
	panelWidth   = 280
	fetchTimeout = 30 * time.Second
	controlsText = "WASD move | mouse look | Tab release mouse | G panel | F3 perf | P snapshot | F11 fullscreen"
)

// Game holds the viewer state.
type Game struct {
	cfg     *config.Config
	opts    Options
	builder *terrain.Builder
	output  *telemetry.OutputManager

	// Rendering
	terrain   *renderer.TerrainRenderer
	camera    *camera.Camera
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	panel     *ui.TerrainPanel

	// State
	current       terrain.Settings
	last          *terrain.Result
	pending       ui.PanelAction
	mouseCaptured bool
	showPerf      bool

	screenWidth, screenHeight int32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window
// must already be open.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	builder, err := terrain.NewBuilder(cfg, output)
	if err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		opts:    opts,
		builder: builder,
		output:  output,
		current: builder.DefaultSettings(),
	}

	if !opts.Headless {
		g.initGraphics()
	}
	return g, nil
}

// initGraphics sets up the renderer, camera and UI.
func (g *Game) initGraphics() {
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())

	g.terrain = renderer.NewTerrainRenderer()
	g.terrain.Init(g.texturePath())

	g.camera = camera.FromConfig(g.cfg.Camera)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 185)
	g.panel = ui.NewTerrainPanel(g.screenWidth-panelWidth-10, 10, panelWidth, g.current)

	g.setMouseCaptured(true)
}

// texturePath resolves the configured texture, downloading it if remote.
// Returns "" when unavailable so the renderer falls back to a checker.
func (g *Game) texturePath() string {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	path, err := assets.Fetch(ctx, g.cfg.Texture.Source, g.cfg.Texture.CacheDir)
	if err != nil {
		slog.Warn("texture fetch failed", "source", g.cfg.Texture.Source, "error", err)
		return ""
	}
	return path
}

// Start performs the initial build with the configured settings.
func (g *Game) Start() error {
	return g.Build(g.current)
}

// Build regenerates the terrain with s, exporting and uploading as configured.
// Export runs before upload so a failed export leaves the displayed mesh
// and the HUD on the previous build.
func (g *Game) Build(s terrain.Settings) error {
	res, err := g.builder.Build(s, g.stages()...)
	if err != nil {
		return err
	}
	g.current = s
	g.last = res
	return nil
}

func (g *Game) stages() []terrain.Stage {
	var stages []terrain.Stage
	if g.opts.STLPath != "" {
		stages = append(stages, g.exportStage())
	}
	if g.terrain != nil {
		stages = append(stages, terrain.Stage{Phase: telemetry.PhaseUpload, Run: func(r *terrain.Result) error {
			g.terrain.Upload(r.Mesh)
			return nil
		}})
	}
	return stages
}

func (g *Game) exportStage() terrain.Stage {
	path := g.output.Path(g.opts.STLPath)
	return terrain.Stage{Phase: telemetry.PhaseExport, Run: func(r *terrain.Result) error {
		if r.Mesh.IsEmpty() {
			slog.Warn("skipping stl export of empty mesh", "path", path)
			return nil
		}
		if err := export.WriteSTL(path, r.Mesh); err != nil {
			return err
		}
		slog.Info("stl exported", "path", path, "triangles", r.Mesh.TriangleCount())
		return nil
	}}
}

// RunHeadless performs a single build without a window, then renders a
// snapshot offscreen when one was requested.
func (g *Game) RunHeadless() error {
	slog.Info("starting headless build",
		"grid_size", g.cfg.Field.GridSize,
		"seed", g.cfg.Field.Seed,
		"noise", g.cfg.Field.Noise,
		"threshold", g.current.Threshold,
	)

	if err := g.Start(); err != nil {
		return err
	}
	g.builder.Perf().Stats().LogStats()

	if g.opts.SnapshotPath == "" {
		return nil
	}
	return g.headlessSnapshot()
}

// headlessSnapshot opens a hidden window to render the top-down view.
func (g *Game) headlessSnapshot() error {
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(g.cfg.Snapshot.Width), int32(g.cfg.Snapshot.Height), title)
	defer rl.CloseWindow()

	r := renderer.NewTerrainRenderer()
	defer r.Unload()
	r.Init(g.texturePath())
	r.Upload(g.last.Mesh)

	return r.SaveSnapshot(g.snapshotPath(), g.cfg.Snapshot.Width, g.cfg.Snapshot.Height)
}

func (g *Game) snapshotPath() string {
	path := g.cfg.Snapshot.Path
	if g.opts.SnapshotPath != "" {
		path = g.opts.SnapshotPath
	}
	return g.output.Path(path)
}

// Update processes input and any actions requested by the panel last frame.
func (g *Game) Update() {
	g.builder.Perf().RecordFrame()
	g.handleInput()

	action := g.pending
	g.pending = ui.PanelAction{}

	if action.Regenerate {
		if err := g.Build(g.panel.Settings()); err != nil {
			slog.Error("rebuild failed", "error", err)
		}
	}
	if action.Snapshot {
		g.saveSnapshot()
	}
	if action.Export {
		g.exportCurrent()
	}
}

func (g *Game) saveSnapshot() {
	if err := g.terrain.SaveSnapshot(g.snapshotPath(), g.cfg.Snapshot.Width, g.cfg.Snapshot.Height); err != nil {
		slog.Error("snapshot failed", "error", err)
	}
}

func (g *Game) exportCurrent() {
	if g.last == nil {
		return
	}
	path := g.opts.STLPath
	if path == "" {
		path = fmt.Sprintf("terrain-%d.stl", g.last.Run)
	}
	path = g.output.Path(path)
	if err := export.WriteSTL(path, g.last.Mesh); err != nil {
		slog.Error("stl export failed", "error", err)
		return
	}
	slog.Info("stl exported", "path", path)
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(135, 180, 220, 255))

	g.terrain.Draw(g.camera)
	if !g.terrain.HasMesh() {
		msg := "No surface at this threshold"
		w := rl.MeasureText(msg, 20)
		rl.DrawText(msg, (g.screenWidth-w)/2, g.screenHeight/2, 20, rl.DarkGray)
	}

	hud := ui.HUDData{
		Title:         title,
		FPS:           rl.GetFPS(),
		CameraPos:     [3]float32(g.camera.Position),
		MouseCaptured: g.mouseCaptured,
		ScreenHeight:  g.screenHeight,
	}
	if g.last != nil {
		hud.Run = g.last.Run
		hud.Vertices = g.last.Record.Vertices
		hud.Triangles = g.last.Record.Triangles
		hud.SolidFraction = g.last.FieldStats.SolidFraction
		hud.MeanHeight = g.last.Record.MeanHeight
	}
	g.hud.Draw(hud)
	g.hud.DrawControls(g.screenHeight, controlsText)

	if g.showPerf {
		g.perfPanel.Draw(g.builder.Perf().Stats())
	}

	// The panel only takes input while the cursor is free
	if !g.mouseCaptured {
		g.pending = g.panel.Draw(g.current)
	}

	rl.EndDrawing()
}

// Unload frees resources and flushes output.
func (g *Game) Unload() {
	if g.terrain != nil {
		g.terrain.Unload()
	}
	if g.builder.Runs() > 0 {
		g.builder.Perf().Stats().LogStats()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
