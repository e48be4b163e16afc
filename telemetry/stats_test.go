package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/isoterrain/config"
	"github.com/pthm-cable/isoterrain/field"
	"github.com/pthm-cable/isoterrain/isosurface"
)

func TestNewRunRecord(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	mesh := &isosurface.Mesh{
		Vertices: []isosurface.Vertex{
			{Position: [3]float32{0, 2, 0}},
			{Position: [3]float32{0, 2, 1}},
			{Position: [3]float32{1, 2, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	fs := field.Stats{Mean: 0.1, StdDev: 0.2, Min: -1, Max: 1, SolidFraction: 0.25}
	perf := PerfSample{
		RunDuration: 30 * time.Millisecond,
		Phases: map[string]time.Duration{
			PhaseField: 20 * time.Millisecond,
			PhaseMesh:  10 * time.Millisecond,
		},
	}

	r := NewRunRecord(3, cfg, fs, mesh, perf)

	if r.Run != 3 || r.GridSize != cfg.Field.GridSize || r.Seed != 1024 {
		t.Errorf("unexpected identity fields: %+v", r)
	}
	if r.OffsetX != 1 || r.OffsetY != 1 || r.OffsetZ != 1 {
		t.Errorf("expected offset (1,1,1), got (%d,%d,%d)", r.OffsetX, r.OffsetY, r.OffsetZ)
	}
	if r.Vertices != 3 || r.Triangles != 1 {
		t.Errorf("expected 3 vertices / 1 triangle, got %d / %d", r.Vertices, r.Triangles)
	}
	if math.Abs(r.SurfaceArea-0.5) > 1e-9 {
		t.Errorf("expected area 0.5, got %f", r.SurfaceArea)
	}
	if math.Abs(r.MeanHeight-2) > 1e-9 {
		t.Errorf("expected mean height 2, got %f", r.MeanHeight)
	}
	if r.SolidFraction != 0.25 {
		t.Errorf("expected solid fraction 0.25, got %f", r.SolidFraction)
	}
	if r.FieldMS != 20 || r.MeshMS != 10 || r.TotalMS != 30 || r.UploadMS != 0 {
		t.Errorf("unexpected timings: field %f mesh %f upload %f total %f",
			r.FieldMS, r.MeshMS, r.UploadMS, r.TotalMS)
	}
}

func TestNewRunRecordEmptyMesh(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	r := NewRunRecord(0, cfg, field.Stats{}, &isosurface.Mesh{}, PerfSample{})
	if r.Triangles != 0 || r.MeanHeight != 0 {
		t.Errorf("expected zero counts for empty mesh, got %+v", r)
	}

	r = NewRunRecord(0, cfg, field.Stats{}, nil, PerfSample{})
	if r.Vertices != 0 {
		t.Errorf("expected zero vertices for nil mesh, got %d", r.Vertices)
	}
}
