package field

import (
	"math"
	"testing"
)

func TestComputeStats(t *testing.T) {
	values := []float32{0, 1, 2, 3}
	s := ComputeStats(values, 2)

	if s.Mean != 1.5 {
		t.Errorf("expected mean 1.5, got %f", s.Mean)
	}
	if s.Min != 0 || s.Max != 3 {
		t.Errorf("expected range [0,3], got [%f,%f]", s.Min, s.Max)
	}
	// Sample standard deviation of 0..3
	if math.Abs(s.StdDev-math.Sqrt(5.0/3.0)) > 1e-9 {
		t.Errorf("expected std %f, got %f", math.Sqrt(5.0/3.0), s.StdDev)
	}
	if s.SolidFraction != 0.5 {
		t.Errorf("expected solid fraction 0.5, got %f", s.SolidFraction)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if s := ComputeStats(nil, 0); s != (Stats{}) {
		t.Errorf("expected zero stats for empty input, got %+v", s)
	}
}
