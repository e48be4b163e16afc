package main

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/isoterrain/field"
	"github.com/pthm-cable/isoterrain/isosurface"
)

// emptyPenalty dominates any reachable squared height error.
const emptyPenalty = 1e6

// Calibrator searches for the threshold whose surface sits at a target
// mean height over a fixed field.
type Calibrator struct {
	grid    *field.Grid
	stats   field.Stats
	target  float64
	workers int

	evals int
}

// Evaluation is one probed threshold.
type Evaluation struct {
	Threshold  float32
	MeanHeight float64
	Triangles  int
	Cost       float64
}

// NewCalibrator creates a calibrator for grid aiming at target height.
func NewCalibrator(grid *field.Grid, target float64, workers int) *Calibrator {
	return &Calibrator{
		grid:    grid,
		stats:   field.ComputeStats(grid.Values(), 0),
		target:  target,
		workers: workers,
	}
}

// Evaluate extracts the surface at threshold and scores it by squared
// distance of its mean height from the target. Thresholds that leave no
// surface score above every non-empty one, growing with distance from
// the field's value range.
func (c *Calibrator) Evaluate(threshold float32) Evaluation {
	c.evals++
	ev := Evaluation{Threshold: threshold}

	mesh := isosurface.ExtractParallel(c.grid, threshold, c.workers)
	ev.Triangles = mesh.TriangleCount()
	if mesh.IsEmpty() {
		ev.MeanHeight = math.NaN()
		ev.Cost = emptyPenalty * (1 + c.outsideRange(float64(threshold)))
		return ev
	}

	ev.MeanHeight = mesh.MeanHeight()
	d := ev.MeanHeight - c.target
	ev.Cost = d * d
	return ev
}

func (c *Calibrator) outsideRange(t float64) float64 {
	switch {
	case t < c.stats.Min:
		return c.stats.Min - t
	case t > c.stats.Max:
		return t - c.stats.Max
	}
	return 0
}

// Evals returns how many thresholds have been probed.
func (c *Calibrator) Evals() int {
	return c.evals
}

// Solve runs a Nelder-Mead search starting from init. onEval, if not nil,
// observes every probe.
func (c *Calibrator) Solve(init float32, maxEvals int, onEval func(Evaluation)) (Evaluation, error) {
	best := Evaluation{Cost: math.Inf(1)}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			ev := c.Evaluate(float32(x[0]))
			if ev.Cost < best.Cost {
				best = ev
			}
			if onEval != nil {
				onEval(ev)
			}
			return ev.Cost
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-8,
			Iterations: 40,
		},
	}

	method := &optimize.NelderMead{SimplexSize: 0.1}

	_, err := optimize.Minimize(problem, []float64{float64(init)}, settings, method)
	return best, err
}
