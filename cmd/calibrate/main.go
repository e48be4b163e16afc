// Command calibrate finds the mesh threshold that places the terrain
// surface at a target mean height.
//
// Usage: go run ./cmd/calibrate -target 120
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/unixpickle/essentials"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/field"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target", 0, "Target mean surface height (0 = half the grid)")
	gridSize := flag.Int("grid-size", 128, "Grid size used for calibration")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of threshold evaluations")
	outputDir := flag.String("output", "", "Directory for best_config.yaml (empty = print only)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	essentials.Must(config.Init(*configPath))
	cfg := config.Cfg()
	cfg.Field.GridSize = *gridSize

	if *target == 0 {
		*target = float64(*gridSize) / 2
	}

	gen, err := field.NewGenerator(field.ParamsFromConfig(cfg))
	essentials.Must(err)

	start := time.Now()
	grid := gen.Generate(cfg.Field.GridSize, field.Offset(cfg.Field.Offset))
	slog.Info("field generated", "grid_size", cfg.Field.GridSize, "elapsed_ms", time.Since(start).Milliseconds())

	cal := NewCalibrator(grid, *target, cfg.Derived.FieldWorkers)

	fmt.Printf("Calibrating threshold for mean height %.1f on a %d^3 grid (max %d evals)\n",
		*target, cfg.Field.GridSize, *maxEvals)

	best, err := cal.Solve(cfg.Mesh.Threshold, *maxEvals, func(ev Evaluation) {
		fmt.Printf("Eval %d: threshold=%.5f mean_y=%.2f triangles=%d cost=%.4g\n",
			cal.Evals(), ev.Threshold, ev.MeanHeight, ev.Triangles, ev.Cost)
	})
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	fmt.Printf("\nBest threshold: %.5f (mean height %.2f, %d triangles) after %d evals in %s\n",
		best.Threshold, best.MeanHeight, best.Triangles, cal.Evals(), time.Since(start).Round(time.Millisecond))

	if *outputDir == "" {
		return
	}
	essentials.Must(os.MkdirAll(*outputDir, 0755))

	bestCfg := bestConfig(cfg, best.Threshold)
	path := filepath.Join(*outputDir, "best_config.yaml")
	essentials.Must(bestCfg.WriteYAML(path))
	fmt.Printf("Best config saved to: %s\n", path)
}

// bestConfig returns a copy of the calibrated configuration, grid size and
// overrides included, with the winning threshold applied.
func bestConfig(cfg *config.Config, threshold float32) *config.Config {
	c := *cfg
	c.Mesh.Threshold = threshold
	return &c
}
