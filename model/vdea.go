package model

import (
	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
)

// vdeaWeightVars returns one weight variable per factor, bounded to
// [0, 1] (the simplex constraint Σw=1 handles the upper coupling; the
// per-variable bound just rules out negative weights redundantly with
// the ≥0 constraint the simplex adds, matching how the source's LP
// builders double up bound and constraint for solver robustness).
func vdeaWeightVars(p *dea.Problem) []Var {
	names := p.FactorNames()
	vars := make([]Var, len(names))
	for i, n := range names {
		vars[i] = Var{Name: n, Lo: 0, Hi: 1}
	}
	return vars
}

func vdeaConstraints(p *dea.Problem) []constraint.Constraint {
	cs := append([]constraint.Constraint(nil), p.SimplexConstraints()...)
	return append(cs, p.WeightConstraints()...)
}

// fixedValue evaluates factor f's value-function shape at DMU dmu's
// baseline performance, using the Lower envelope; it does not check
// that Lower ≡ Upper. A factor with no shape returns the performance
// itself. A genuine [lower,upper] envelope is the Imprecise-VDEA
// question instead.
func fixedValue(p *dea.Problem, f string, dmu int) float64 {
	shape, ok := p.ValueFunction(f)
	if !ok {
		return p.Performance(dmu, f)
	}
	return shape.Lower.At(p.Performance(dmu, f))
}

func vdeaObjective(p *dea.Problem, dmu int) constraint.Expr {
	expr := make(constraint.Expr, len(p.Factors()))
	for _, f := range p.FactorNames() {
		expr[f] = fixedValue(p, f, dmu)
	}
	return expr
}

// BuildVDEAEfficiency builds the LP for subject's additive-value
// efficiency under an admissible weight vector: max (or min, by dir)
// over w in the simplex of Σ_f w_f·u_f(p_{f,subject}).
func BuildVDEAEfficiency(p *dea.Problem, subject int, dir solver.Direction) ModelSpec {
	return ModelSpec{
		Vars:        vdeaWeightVars(p),
		Objective:   vdeaObjective(p, subject),
		Direction:   dir,
		Constraints: vdeaConstraints(p),
	}
}

// BuildVDEAGap builds the LP comparing two DMUs' additive-value scores
// under a shared weight vector: optimize (by dir) Σ_f w_f·(u_f(p_{f,a})
// − u_f(p_{f,b})) over the admissible weight simplex. With
// dir=Minimize this is the necessary-preference test (a≿b iff the
// optimum is ≥0); with dir=Maximize it is the possible-preference test.
func BuildVDEAGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	expr := make(constraint.Expr, len(p.Factors()))
	for _, f := range p.FactorNames() {
		expr[f] = fixedValue(p, f, a) - fixedValue(p, f, b)
	}
	return ModelSpec{
		Vars:        vdeaWeightVars(p),
		Objective:   expr,
		Direction:   dir,
		Constraints: vdeaConstraints(p),
	}
}

// BuildVDEADistance builds the epigraph LP for the minimum attainable
// distance-to-best: min over w in the simplex of (z − E(subject,w))
// subject to z ≥ E(k,w) for every DMU k. Minimizing z pulls it down to
// exactly max_k E(k,w) at the optimal w, so this single LP gives the
// true minimum distance; the maximum distance is instead the max over
// rivals k of BuildVDEAGap(p,k,subject,Maximize)'s optimum (the two
// max operators commute, so no epigraph trick is needed there).
func BuildVDEADistance(p *dea.Problem, subject int) ModelSpec {
	vars := append(vdeaWeightVars(p), Var{Name: "__z", Lo: 0, Hi: 1})

	cs := append([]constraint.Constraint(nil), vdeaConstraints(p)...)
	for k := 0; k < p.NumDMU(); k++ {
		expr := make(constraint.Expr, len(p.Factors())+1)
		expr["__z"] = -1
		for _, f := range p.FactorNames() {
			expr[f] = fixedValue(p, f, k)
		}
		// Σ w_f u_f(p_{f,k}) - z <= 0  <=>  z >= E(k,w)
		cs = append(cs, constraint.NewConstraint(constraint.LE, 0, expr))
	}

	obj := make(constraint.Expr, len(p.Factors())+1)
	obj["__z"] = 1
	for _, f := range p.FactorNames() {
		obj[f] = -fixedValue(p, f, subject)
	}

	return ModelSpec{Vars: vars, Objective: obj, Direction: solver.Minimize, Constraints: cs}
}
