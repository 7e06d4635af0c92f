// Package staging splits a total capacity into the fixed stage sequence
// used by multi-speed and multistage equipment.
package staging

import (
	"errors"
	"math"
)

const (
	DefaultMaxStages = 4
	DefaultUnitStep  = 66000.0 // W

	// padding keeps unused stages strictly increasing
	padding = 0.1
)

var (
	ErrInvalidStageCount   = errors.New("at least two stages are required")
	ErrNonPositiveCapacity = errors.New("total capacity must be positive")
	ErrInvalidUnitStep     = errors.New("unit step must be positive")
)

// StageCount returns how many stages are physically meaningful for the
// total capacity: round(total/unitStep), clamped to [1, maxStages].
func StageCount(total float64, maxStages int, unitStep float64) int {
	if unitStep <= 0 || total <= 0 {
		return 1
	}
	n := int(math.Round(total / unitStep))
	return max(1, min(maxStages, n))
}

// Capacities returns exactly maxStages strictly increasing stage
// capacities, in the units of total and unitStep.
//
// A single real stage is split into total/2 and total. Two or more real
// stages are whole multiples of unitStep. Stages past the real ones are
// padded by a small fixed increment over the previous stage.
func Capacities(total float64, maxStages int, unitStep float64) ([]float64, error) {
	if maxStages < 2 {
		return nil, ErrInvalidStageCount
	}
	if unitStep <= 0 {
		return nil, ErrInvalidUnitStep
	}
	if total <= 0 || math.IsNaN(total) {
		return nil, ErrNonPositiveCapacity
	}

	n := StageCount(total, maxStages, unitStep)
	out := make([]float64, maxStages)
	filled := n
	if n == 1 {
		out[0] = total / 2
		out[1] = total
		filled = 2
	} else {
		for i := range n {
			out[i] = float64(i+1) * unitStep
		}
	}
	for i := filled; i < maxStages; i++ {
		out[i] = out[i-1] + padding
	}
	return out, nil
}

// Flows distributes refFlow, the flow at the largest stage, across stages
// in proportion to capacity. A non-positive total yields zero flows.
func Flows(capacities []float64, total, refFlow float64) []float64 {
	out := make([]float64, len(capacities))
	if total <= 0 {
		return out
	}
	for i, c := range capacities {
		out[i] = refFlow * c / total
	}
	return out
}
