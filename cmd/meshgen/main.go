// Command meshgen builds a terrain mesh from a config and writes it as STL.
//
// Usage: go run ./cmd/meshgen -grid-size 128 -o terrain.stl
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/export"
	"github.com/pthm-cable/isoterrain/field"
	"github.com/pthm-cable/isoterrain/telemetry"
	"github.com/pthm-cable/isoterrain/terrain"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config.yaml (empty = use defaults)")
		gridSize   = flag.Int("grid-size", 0, "Override field.grid_size (0 = use config)")
		threshold  = flag.String("threshold", "", "Override mesh.threshold")
		offset     = flag.String("offset", "", "Override field.offset as x,y,z")
		outPath    = flag.String("o", "terrain.stl", "Output STL path")
		outputDir  = flag.String("output-dir", "", "Directory for runs.csv, perf.csv and config.yaml")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	essentials.Must(config.Init(*configPath))
	cfg := config.Cfg()
	if *gridSize > 0 {
		cfg.Field.GridSize = *gridSize
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	essentials.Must(err)
	defer om.Close()
	essentials.Must(om.WriteConfig(cfg))

	builder, err := terrain.NewBuilder(cfg, om)
	essentials.Must(err)

	settings := builder.DefaultSettings()
	if *threshold != "" {
		v, err := strconv.ParseFloat(*threshold, 32)
		essentials.Must(errors.Wrap(err, "parse threshold"))
		settings.Threshold = float32(v)
	}
	if *offset != "" {
		settings.Offset, err = parseOffset(*offset)
		essentials.Must(err)
	}

	res, err := builder.Build(settings, terrain.Stage{
		Phase: telemetry.PhaseExport,
		Run: func(r *terrain.Result) error {
			return export.WriteSTL(*outPath, r.Mesh)
		},
	})
	essentials.Must(err)

	fmt.Printf("Wrote %d triangles to %s (%.0f ms)\n", res.Mesh.TriangleCount(), *outPath, res.Record.TotalMS)
}

// parseOffset parses "x,y,z" into a lattice offset.
func parseOffset(s string) (field.Offset, error) {
	var off field.Offset
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return off, errors.Errorf("parse offset %q: want x,y,z", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return off, errors.Wrapf(err, "parse offset %q", s)
		}
		off[i] = v
	}
	return off, nil
}
