package sampler

import (
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/rng"
)

// SampleValueFunction draws one monotone piecewise-linear realization u
// from shape's admissible [Lower,Upper] envelope (spec.md §4.7): at each
// breakpoint, in x-direction order, draw u(x_k) uniformly from the slice
// of [Lower(x_k),Upper(x_k)] that both respects the envelope and stays
// monotone with whatever was already drawn at the previous breakpoint.
// ratio (>= 1) is the problem's VFMonotonicityRatio: when > 1, each new
// increment must be at least ratio times the previous one, enforcing
// accelerating (rather than merely non-decreasing) steps along the
// ordinal axis — this is the spec's least-committal reading of "minimum
// ratio between consecutive value-function increments" (an Open
// Question per spec.md §9; see DESIGN.md).
//
// Drawing proceeds ascending in x for a gain (Output) factor and
// descending in x for a cost (Input) factor, so in both cases the walk
// moves from the envelope's 0-valued end toward its 1-valued end and
// "already drawn" always means "the lower neighbour in u."
func SampleValueFunction(shape dea.ValueFunctionShape, ratio float64, stream rng.Stream) dea.PiecewiseLinear {
	n := len(shape.Lower.X)
	u := make([]float64, n)
	if n == 0 {
		return dea.PiecewiseLinear{}
	}
	if ratio < 1 {
		ratio = 1
	}

	order := make([]int, n)
	if shape.Direction == dea.Input {
		for i := range order {
			order[i] = n - 1 - i
		}
	} else {
		for i := range order {
			order[i] = i
		}
	}

	prevU := 0.0
	prevDelta := 0.0
	for step, k := range order {
		lo, hi := shape.Lower.U[k], shape.Upper.U[k]
		floor := lo
		if step > 0 {
			required := prevU + ratio*prevDelta
			if required > floor {
				floor = required
			}
			if floor < prevU {
				floor = prevU
			}
		}
		if floor > hi {
			floor = hi // envelope collapsed to a point at this breakpoint
		}
		v := floor + stream.Float64()*(hi-floor)
		if step > 0 {
			prevDelta = v - prevU
		}
		prevU = v
		u[k] = v
	}

	return dea.PiecewiseLinear{X: append([]float64(nil), shape.Lower.X...), U: u}
}
