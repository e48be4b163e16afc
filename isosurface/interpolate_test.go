package isosurface

import (
	"math"
	"testing"
)

func TestEdgeParameter(t *testing.T) {
	testCases := []struct {
		v1, v2, threshold, want float32
	}{
		{0, 1, 0.5, 0.5},
		{0, 1, 0.25, 0.25},
		{1, 0, 0.25, 0.75},
		{-2, 2, 0, 0.5},
		{0.9, 0.9, 0.9, 0.5}, // equal densities fall back to the midpoint
		{3, 3, 0, 0.5},
		{0, 1, 0, 0},
		{0, 1, 1, 1},
		{0, 1, 2, 1}, // outside the segment clamps
	}

	for _, tc := range testCases {
		got := edgeParameter(tc.v1, tc.v2, tc.threshold)
		if math.Abs(float64(got-tc.want)) > 1e-6 {
			t.Errorf("edgeParameter(%v, %v, %v) = %v, expected %v", tc.v1, tc.v2, tc.threshold, got, tc.want)
		}
	}
}

func TestEdgeParameterNonFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	got := edgeParameter(-inf, inf, 0)
	if math.IsNaN(float64(got)) || got != 0.5 {
		t.Errorf("expected midpoint for non-finite parameter, got %v", got)
	}
}

func TestInterpolate(t *testing.T) {
	p := interpolate(0, 1, 0.25, [3]float32{2, 3, 4}, [3]float32{2, 4, 4})
	if p != [3]float32{2, 3.25, 4} {
		t.Errorf("expected (2, 3.25, 4), got %v", p)
	}

	// Degenerate edge lands halfway
	p = interpolate(1, 1, 1, [3]float32{0, 0, 0}, [3]float32{0, 0, 1})
	if p != [3]float32{0, 0, 0.5} {
		t.Errorf("expected midpoint (0, 0, 0.5), got %v", p)
	}
}

func TestCornerPosition(t *testing.T) {
	for corner := 0; corner < 8; corner++ {
		p := cornerPosition(corner, 10, 20, 30)
		want := [3]float32{
			float32(10 + corner&1),
			float32(20 + (corner>>1)&1),
			float32(30 + (corner>>2)&1),
		}
		if p != want {
			t.Errorf("corner %d: expected %v, got %v", corner, want, p)
		}
	}
	if p := cornerPosition(6, 0, 0, 0); p != [3]float32{0, 1, 1} {
		t.Errorf("corner 6 should be at (0,1,1), got %v", p)
	}
}
