package field

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the distribution of densities in a grid.
type Stats struct {
	Mean          float64
	StdDev        float64
	Min           float64
	Max           float64
	SolidFraction float64 // Share of samples at or above the threshold
}

// ComputeStats summarizes values against threshold.
// Samples below the threshold count as empty space.
func ComputeStats(values []float32, threshold float32) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	xs := make([]float64, len(values))
	solid := 0
	for i, v := range values {
		xs[i] = float64(v)
		if v >= threshold {
			solid++
		}
	}

	mean, std := stat.MeanStdDev(xs, nil)
	return Stats{
		Mean:          mean,
		StdDev:        std,
		Min:           floats.Min(xs),
		Max:           floats.Max(xs),
		SolidFraction: float64(solid) / float64(len(xs)),
	}
}
