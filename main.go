package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Build once without a window and exit")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and exports")
	stlPath := flag.String("stl", "", "Export each built mesh to this STL file")
	snapshotPath := flag.String("snapshot", "", "Top-down snapshot PNG path (headless: render one and exit)")
	gridSize := flag.Int("grid-size", 0, "Override field.grid_size (0 = use config)")
	threshold := flag.Float64("threshold", 0, "Override mesh.threshold")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyOverrides(cfg, set, *gridSize, *threshold)

	opts := game.Options{
		Headless:     *headless,
		OutputDir:    *outputDir,
		STLPath:      *stlPath,
		SnapshotPath: *snapshotPath,
	}

	if *headless {
		g, err := game.NewGameWithOptions(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		if err := g.RunHeadless(); err != nil {
			slog.Error("headless build failed", "error", err)
			g.Unload()
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "isoterrain")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	if err := g.Start(); err != nil {
		slog.Error("initial build failed", "error", err)
		return
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// applyOverrides copies explicitly set command-line values into cfg.
// Only flags present on the command line apply, so -threshold 0 is honoured.
func applyOverrides(cfg *config.Config, set map[string]bool, gridSize int, threshold float64) {
	if set["grid-size"] && gridSize > 0 {
		cfg.Field.GridSize = gridSize
	}
	if set["threshold"] {
		cfg.Mesh.Threshold = float32(threshold)
	}
}
