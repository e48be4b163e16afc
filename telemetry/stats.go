package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/field"
	"github.com/pthm-cable/isoterrain/isosurface"
)

// RunRecord summarizes one terrain build.
type RunRecord struct {
	Run int `csv:"run"`

	// Inputs
	GridSize  int     `csv:"grid_size"`
	OffsetX   int     `csv:"offset_x"`
	OffsetY   int     `csv:"offset_y"`
	OffsetZ   int     `csv:"offset_z"`
	Seed      int64   `csv:"seed"`
	Noise     string  `csv:"noise"`
	Threshold float32 `csv:"threshold"`

	// Field distribution
	DensityMean   float64 `csv:"density_mean"`
	DensityStd    float64 `csv:"density_std"`
	DensityMin    float64 `csv:"density_min"`
	DensityMax    float64 `csv:"density_max"`
	SolidFraction float64 `csv:"solid_fraction"`

	// Output mesh
	Vertices    int     `csv:"vertices"`
	Triangles   int     `csv:"triangles"`
	SurfaceArea float64 `csv:"surface_area"`
	MeanHeight  float64 `csv:"mean_height"`

	// Phase timings
	FieldMS  float64 `csv:"field_ms"`
	MeshMS   float64 `csv:"mesh_ms"`
	UploadMS float64 `csv:"upload_ms"`
	ExportMS float64 `csv:"export_ms"`
	TotalMS  float64 `csv:"total_ms"`
}

// NewRunRecord builds a record from a finished build.
func NewRunRecord(run int, cfg *config.Config, fs field.Stats, mesh *isosurface.Mesh, perf PerfSample) RunRecord {
	r := RunRecord{
		Run:           run,
		GridSize:      cfg.Field.GridSize,
		OffsetX:       cfg.Field.Offset[0],
		OffsetY:       cfg.Field.Offset[1],
		OffsetZ:       cfg.Field.Offset[2],
		Seed:          cfg.Field.Seed,
		Noise:         cfg.Field.Noise,
		Threshold:     cfg.Mesh.Threshold,
		DensityMean:   fs.Mean,
		DensityStd:    fs.StdDev,
		DensityMin:    fs.Min,
		DensityMax:    fs.Max,
		SolidFraction: fs.SolidFraction,
		FieldMS:       ms(perf.Phases[PhaseField]),
		MeshMS:        ms(perf.Phases[PhaseMesh]),
		UploadMS:      ms(perf.Phases[PhaseUpload]),
		ExportMS:      ms(perf.Phases[PhaseExport]),
		TotalMS:       ms(perf.RunDuration),
	}

	if mesh != nil {
		r.Vertices = len(mesh.Vertices)
		r.Triangles = mesh.TriangleCount()
		r.SurfaceArea = mesh.SurfaceArea()
		if !mesh.IsEmpty() {
			r.MeanHeight = mesh.MeanHeight()
		}
	}
	return r
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", r.Run),
		slog.Int("grid_size", r.GridSize),
		slog.Float64("threshold", float64(r.Threshold)),
		slog.Float64("solid_fraction", r.SolidFraction),
		slog.Int("vertices", r.Vertices),
		slog.Int("triangles", r.Triangles),
		slog.Float64("mean_height", r.MeanHeight),
		slog.Float64("total_ms", r.TotalMS),
	)
}
