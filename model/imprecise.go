package model

import (
	"fmt"
	"math"

	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
)

// bestIntervalPerformance resolves factor f's performance for dmu k to a
// single constant: its precise baseline, or (when imprecise) whichever
// interval endpoint most favours sign*value given f's monotonic
// direction and the LP's optimization sense. Every admissible weight
// benefits from this same endpoint regardless of its own value (weights
// are non-negative in both VDEA and CCR), so fixing it ahead of time
// loses no optimality.
func bestIntervalPerformance(p *dea.Problem, f string, k int, sign float64, dir solver.Direction) float64 {
	info := p.Imprecise()
	interval, ok := info.Interval(f, k)
	if !ok {
		return p.Performance(k, f)
	}
	fDir, _ := p.FactorDirection(f)
	increasing := sign > 0
	if fDir == dea.Input {
		increasing = !increasing
	}
	wantHigh := (dir == solver.Maximize) == increasing
	if wantHigh {
		return interval[1]
	}
	return interval[0]
}

// extremeValue returns the best (dir==Maximize) or worst (dir==Minimize)
// value u_f can take at dmu's resolved performance, given f's admissible
// [Lower,Upper] envelope. A factor with no configured shape simply
// returns the resolved performance itself (spec.md's "fixed" VDEA
// reading, matching BuildVDEAEfficiency).
func extremeValue(p *dea.Problem, f string, dmu int, dir solver.Direction) float64 {
	shape, ok := p.ValueFunction(f)
	if !ok {
		// The value is the raw performance, which rises with x for inputs
		// too, so undo bestIntervalPerformance's input inversion.
		sign := 1.0
		if fDir, _ := p.FactorDirection(f); fDir == dea.Input {
			sign = -1
		}
		return bestIntervalPerformance(p, f, dmu, sign, dir)
	}
	x := bestIntervalPerformance(p, f, dmu, 1, dir)
	if dir == solver.Maximize {
		return shape.Upper.At(x)
	}
	return shape.Lower.At(x)
}

// extremeBracket returns the best (dir==Maximize) or worst
// (dir==Minimize) achievable value of u_f(p_{f,a}) − u_f(p_{f,b}) for a
// SINGLE monotone realization u_f within [Lower,Upper]. Since u_f must
// be one consistent function, the two endpoints cannot always be chosen
// independently: when a's and b's performances fall in an order that
// opposes the bracket's preferred direction, monotonicity forces the
// two values together and the extreme bracket value is 0 rather than
// the naively-independent Upper−Lower combination.
func extremeBracket(p *dea.Problem, f string, a, b int, dir solver.Direction) float64 {
	shape, ok := p.ValueFunction(f)
	fDir, _ := p.FactorDirection(f)
	if !ok {
		// Raw performance is the value: undo the input inversion.
		sign := 1.0
		if fDir == dea.Input {
			sign = -1
		}
		return bestIntervalPerformance(p, f, a, sign, dir) - bestIntervalPerformance(p, f, b, -sign, dir)
	}
	xa := bestIntervalPerformance(p, f, a, 1, dir)
	xb := bestIntervalPerformance(p, f, b, -1, dir)
	nondecreasing := fDir != dea.Input

	// Reorient so "ahead" means "u is weakly larger at xa than at xb"
	// under the factor's own monotonic direction.
	aAhead := xa >= xb
	if !nondecreasing {
		aAhead = xa <= xb
	}

	if dir == solver.Maximize {
		if aAhead {
			return math.Max(0, shape.Upper.At(xa)-shape.Lower.At(xb))
		}
		return -math.Max(0, shape.Upper.At(xb)-shape.Lower.At(xa))
	}
	if aAhead {
		return math.Min(0, shape.Lower.At(xa)-shape.Upper.At(xb))
	}
	return -math.Min(0, shape.Lower.At(xb)-shape.Upper.At(xa))
}

// BuildImpreciseVDEA builds subject's additive-value efficiency LP when
// factors may carry interval performances and/or an admissible
// [lower,upper] value-function envelope. Because every weight w_f is
// non-negative, the optimal shape/performance realization for each
// factor can be resolved independently of w (extremeValue), which
// reduces the joint (weight × shape × performance) optimization to a
// plain linear program over w alone — exactly as spec.md's "otherwise
// it is an LP" describes.
func BuildImpreciseVDEA(p *dea.Problem, subject int, dir solver.Direction) ModelSpec {
	obj := make(constraint.Expr, len(p.Factors()))
	for _, f := range p.FactorNames() {
		obj[f] = extremeValue(p, f, subject, dir)
	}
	return ModelSpec{
		Vars:        vdeaWeightVars(p),
		Objective:   obj,
		Direction:   dir,
		Constraints: vdeaConstraints(p),
	}
}

// BuildImpreciseVDEAGap is BuildVDEAGap's imprecise-information
// counterpart: the per-factor coefficient is the extreme achievable
// bracket u_f(p_a)−u_f(p_b) (extremeBracket) rather than a fixed
// difference, again reducing to a plain LP over the weight simplex.
func BuildImpreciseVDEAGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	obj := make(constraint.Expr, len(p.Factors()))
	for _, f := range p.FactorNames() {
		obj[f] = extremeBracket(p, f, a, b, dir)
	}
	return ModelSpec{
		Vars:        vdeaWeightVars(p),
		Objective:   obj,
		Direction:   dir,
		Constraints: vdeaConstraints(p),
	}
}

// resolveOrdinal returns a canonical, strictly positive realization of
// an ordinal factor's ranks: the minimal chain consistent with
// OrdinalMin and OrdinalRatio (value(rank 1) = OrdinalMin, or a small
// positive floor when OrdinalMin is 0; value(rank r+1) = OrdinalRatio *
// value(rank r)).
// This is one concrete witness of the admissible ordinal space, not an
// exploration of it — sampler.SampleOrdinalRealization covers the full space for
// SMAA-style drivers; the exact LP built here only needs one.
func resolveOrdinal(info *dea.ImpreciseInfo, factor string, n int) []float64 {
	ranks := info.OrdinalRanks[factor]
	floor := info.OrdinalMin
	if floor <= 0 {
		floor = 1e-6
	}
	byRank := make([]float64, n+1)
	v := floor
	byRank[1] = v
	for r := 2; r <= n; r++ {
		v *= info.OrdinalRatio
		byRank[r] = v
	}
	out := make([]float64, n)
	for dmu, r := range ranks {
		out[dmu] = byRank[r]
	}
	return out
}

// ccrPerformance resolves CCR input/output performance to a constant
// for use in the Charnes–Cooper LP: precise value or canonical ordinal
// realization. Interval performances are handled separately, via the
// ξ-substitution in BuildImpreciseCCR, because they interact with the
// (v,u) multiplier variables rather than collapsing to a constant.
func ccrPerformance(p *dea.Problem, f string, k int) float64 {
	info := p.Imprecise()
	if info != nil && info.IsOrdinal(f) {
		return resolveOrdinal(info, f, p.NumDMU())[k]
	}
	return p.Performance(k, f)
}

// ccrTerm returns the linear contribution of factor f's performance at
// DMU k to a CCR multiplier row: for precise/ordinal performance this
// is just a coefficient on the weight variable f; for an interval
// performance it instead introduces a substitution variable
// ξ = weight·performance, bounded by [lo·weight, hi·weight] via two
// linear inequalities. Because performance ranges freely over the
// interval independent of the weight variable, those two inequalities
// exactly characterize the achievable set of ξ for any non-negative
// weight — an exact reformulation, not a relaxation.
func ccrTerm(p *dea.Problem, f string, k int) (constraint.Expr, *Var, []constraint.Constraint) {
	if info := p.Imprecise(); info != nil {
		if lohi, ok := info.Interval(f, k); ok {
			xi := fmt.Sprintf("xi:%s:%d", f, k)
			v := Var{Name: xi, Lo: math.Inf(-1), Hi: math.Inf(1)}
			lo := constraint.NewConstraint(constraint.GE, 0, constraint.Expr{xi: 1, f: -lohi[0]})
			hi := constraint.NewConstraint(constraint.LE, 0, constraint.Expr{xi: 1, f: -lohi[1]})
			return constraint.Expr{xi: 1}, &v, []constraint.Constraint{lo, hi}
		}
	}
	return constraint.Expr{f: ccrPerformance(p, f, k)}, nil, nil
}

// BuildImpreciseCCR builds the Charnes–Cooper LP for subject's ratio
// efficiency when input/output data includes interval or ordinal
// performance (ccrTerm).
func BuildImpreciseCCR(p *dea.Problem, subject int, dir solver.Direction) ModelSpec {
	vars := weightVars(p)
	var cs []constraint.Constraint
	seenXi := make(map[string]bool)

	addTerm := func(into constraint.Expr, f string, k int, sign float64) {
		e, v, extraCs := ccrTerm(p, f, k)
		if v != nil && !seenXi[v.Name] {
			seenXi[v.Name] = true
			vars = append(vars, *v)
			cs = append(cs, extraCs...)
		}
		for name, coeff := range e {
			into[name] += sign * coeff
		}
	}

	norm := constraint.Expr{}
	for _, f := range p.Inputs() {
		addTerm(norm, f, subject, 1)
	}
	cs = append(cs, constraint.NewConstraint(constraint.EQ, 1, norm))

	for k := 0; k < p.NumDMU(); k++ {
		row := constraint.Expr{}
		for _, f := range p.Outputs() {
			addTerm(row, f, k, 1)
		}
		for _, f := range p.Inputs() {
			addTerm(row, f, k, -1)
		}
		cs = append(cs, constraint.NewConstraint(constraint.LE, 0, row))
	}
	cs = append(cs, p.WeightConstraints()...)

	obj := constraint.Expr{}
	for _, f := range p.Outputs() {
		addTerm(obj, f, subject, 1)
	}

	return ModelSpec{Vars: vars, Objective: obj, Direction: dir, Constraints: cs}
}

// BuildImpreciseCCRGap is BuildCCRGap's imprecise-information
// counterpart, built the same way BuildImpreciseCCR is: subject a's
// Charnes–Cooper normalization anchors the envelope, and every
// interval-valued term goes through ccrTerm's exact ξ=weight·performance
// substitution rather than collapsing the interval to a constant. Like
// BuildCCRGap's multi-output fallback, this compares a's and b's virtual
// scores under Σv x_a=1 rather than solving the true cross-multiplied
// ratio inequality — the same documented approximation, extended to
// imprecise performance.
func BuildImpreciseCCRGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	vars := weightVars(p)
	var cs []constraint.Constraint
	seenXi := make(map[string]bool)

	addTerm := func(into constraint.Expr, f string, k int, sign float64) {
		e, v, extraCs := ccrTerm(p, f, k)
		if v != nil && !seenXi[v.Name] {
			seenXi[v.Name] = true
			vars = append(vars, *v)
			cs = append(cs, extraCs...)
		}
		for name, coeff := range e {
			into[name] += sign * coeff
		}
	}

	norm := constraint.Expr{}
	for _, f := range p.Inputs() {
		addTerm(norm, f, a, 1)
	}
	cs = append(cs, constraint.NewConstraint(constraint.EQ, 1, norm))

	for k := 0; k < p.NumDMU(); k++ {
		row := constraint.Expr{}
		for _, f := range p.Outputs() {
			addTerm(row, f, k, 1)
		}
		for _, f := range p.Inputs() {
			addTerm(row, f, k, -1)
		}
		cs = append(cs, constraint.NewConstraint(constraint.LE, 0, row))
	}
	cs = append(cs, p.WeightConstraints()...)

	obj := constraint.Expr{}
	for _, f := range p.Outputs() {
		addTerm(obj, f, a, 1)
		addTerm(obj, f, b, -1)
	}

	return ModelSpec{Vars: vars, Objective: obj, Direction: dir, Constraints: cs}
}
