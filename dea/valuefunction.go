package dea

import "sort"

// PiecewiseLinear is a monotone piecewise-linear marginal value function
// given by characteristic points (X[k], U[k]) with strictly increasing
// X. Evaluation between breakpoints is linear interpolation; outside
// [X[0], X[len-1]] the endpoint value holds (no extrapolation).
type PiecewiseLinear struct {
	X []float64
	U []float64
}

// At evaluates the function at x.
func (p PiecewiseLinear) At(x float64) float64 {
	n := len(p.X)
	if n == 0 {
		return 0
	}
	if x <= p.X[0] {
		return p.U[0]
	}
	if x >= p.X[n-1] {
		return p.U[n-1]
	}
	k := sort.SearchFloat64s(p.X, x)
	if p.X[k] == x {
		return p.U[k]
	}
	// x lies strictly between breakpoints k-1 and k.
	x0, x1 := p.X[k-1], p.X[k]
	u0, u1 := p.U[k-1], p.U[k]
	t := (x - x0) / (x1 - x0)
	return u0 + t*(u1-u0)
}

// ValueFunctionShape is the admissible range of marginal value functions
// for one factor: every monotone piecewise-linear u with Lower(x) ≤
// u(x) ≤ Upper(x) at every breakpoint is admissible. Lower and Upper
// share the same abscissae. A factor specified with a single shape has
// Lower and Upper pointing at (or equal to) the same envelope.
type ValueFunctionShape struct {
	Lower, Upper PiecewiseLinear
	Direction    Direction // Output("gain"): u(xMin)=0,u(xMax)=1; Input("cost"): inverted
}

// Validate checks the invariants of spec.md §3: shared abscissae,
// Lower≤Upper at every breakpoint, strictly increasing X, both
// envelopes monotone in the stated direction, and the correct boundary
// values for that direction.
func (v ValueFunctionShape) Validate(factor string, tol float64) error {
	if len(v.Lower.X) < 2 || len(v.Lower.X) != len(v.Upper.X) {
		return configErrFactor("value function must have >=2 matching breakpoints on both envelopes", factor)
	}
	n := len(v.Lower.X)
	for k := 0; k < n; k++ {
		if v.Lower.X[k] != v.Upper.X[k] {
			return configErrFactor("value function envelopes must share the same abscissae", factor)
		}
		if k > 0 && v.Lower.X[k] <= v.Lower.X[k-1] {
			return configErrFactor("value function breakpoints must be strictly increasing", factor)
		}
		if v.Lower.U[k] > v.Upper.U[k]+tol {
			return configErrFactor("lower envelope exceeds upper envelope at a breakpoint", factor)
		}
		if k > 0 {
			for _, env := range []PiecewiseLinear{v.Lower, v.Upper} {
				step := env.U[k] - env.U[k-1]
				if (v.Direction == Input && step > tol) || (v.Direction != Input && step < -tol) {
					return configErrFactor("value function envelope is not monotone in its direction", factor)
				}
			}
		}
	}
	lo, hi := 0.0, 1.0
	if v.Direction == Input {
		lo, hi = 1.0, 0.0
	}
	if absDiff(v.Lower.U[0], lo) > tol || absDiff(v.Upper.U[0], lo) > tol {
		return configErrFactor("value function does not satisfy the required boundary value at its minimum abscissa", factor)
	}
	if absDiff(v.Lower.U[n-1], hi) > tol || absDiff(v.Upper.U[n-1], hi) > tol {
		return configErrFactor("value function does not satisfy the required boundary value at its maximum abscissa", factor)
	}
	return nil
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
