package model

import (
	"math"

	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
)

// ccrEpsilon is the non-Archimedean lower bound CCR multipliers must
// clear (u,v ≥ ccrEpsilon) so the optimizer cannot zero out a factor
// entirely. spec.md §4.1 names this as part of the CCR admissible
// region without pinning a value; 1e-6 matches the tolerance Charnes–
// Cooper-style formulations in the literature commonly use.
const ccrEpsilon = 1e-6

func weightVars(p *dea.Problem) []Var {
	names := p.FactorNames()
	vars := make([]Var, len(names))
	for i, n := range names {
		vars[i] = Var{Name: n, Lo: ccrEpsilon, Hi: math.Inf(1)}
	}
	return vars
}

// ccrEnvelope returns, for every DMU k, the constraint
// Σ_r u_r y_{r,k} - Σ_i v_i x_{i,k} ≤ 0, the standard CCR multiplier
// feasibility region (every DMU's virtual efficiency is at most 1).
func ccrEnvelope(p *dea.Problem) []constraint.Constraint {
	cs := make([]constraint.Constraint, 0, p.NumDMU())
	for k := 0; k < p.NumDMU(); k++ {
		expr := make(constraint.Expr)
		for _, f := range p.Outputs() {
			expr[f] = p.Performance(k, f)
		}
		for _, f := range p.Inputs() {
			expr[f] -= p.Performance(k, f)
		}
		cs = append(cs, constraint.NewConstraint(constraint.LE, 0, expr))
	}
	return cs
}

func ccrNormalization(p *dea.Problem, subject int) constraint.Constraint {
	expr := make(constraint.Expr)
	for _, f := range p.Inputs() {
		expr[f] = p.Performance(subject, f)
	}
	return constraint.NewConstraint(constraint.EQ, 1, expr)
}

func ccrObjective(p *dea.Problem, subject int) constraint.Expr {
	expr := make(constraint.Expr)
	for _, f := range p.Outputs() {
		expr[f] = p.Performance(subject, f)
	}
	return expr
}

// ccrModel builds the shared skeleton for max/min/super-efficiency: the
// Charnes–Cooper-normalized LP maximizing (or minimizing) subject's
// virtual output, subject to every envelope DMU's virtual efficiency
// being at most 1. excludeSelf drops subject from the envelope, giving
// the Andersen–Petersen super-efficiency variant.
func ccrModel(p *dea.Problem, subject int, dir solver.Direction, excludeSelf bool) ModelSpec {
	envelope := ccrEnvelope(p)
	if excludeSelf {
		filtered := envelope[:0:0]
		for k, c := range envelope {
			if k != subject {
				filtered = append(filtered, c)
			}
		}
		envelope = filtered
	}
	cs := append([]constraint.Constraint{ccrNormalization(p, subject)}, envelope...)
	cs = append(cs, p.WeightConstraints()...)
	return ModelSpec{
		Vars:        weightVars(p),
		Objective:   ccrObjective(p, subject),
		Direction:   dir,
		Constraints: cs,
	}
}

// BuildCCRMaxEfficiency builds the classic CCR LP: the best score
// subject can earn under any admissible multiplier vector.
func BuildCCRMaxEfficiency(p *dea.Problem, subject int) ModelSpec {
	return ccrModel(p, subject, solver.Maximize, false)
}

// BuildCCRMinEfficiency builds the anti-ideal CCR LP: the worst score
// subject can be forced down to while every DMU (including subject
// itself) stays within the envelope.
func BuildCCRMinEfficiency(p *dea.Problem, subject int) ModelSpec {
	return ccrModel(p, subject, solver.Minimize, false)
}

// BuildCCRSuperEfficiency builds the Andersen–Petersen super-efficiency
// LP: subject is dropped from its own envelope, letting its score
// exceed 1 when it is strictly on the frontier.
func BuildCCRSuperEfficiency(p *dea.Problem, subject int) ModelSpec {
	return ccrModel(p, subject, solver.Maximize, true)
}

// BuildCCRGap builds the LP used to test preference relations and rank
// bounds under the CCR model: whether, across
// the admissible multiplier region, DMU a's ratio efficiency can be
// forced above or below DMU b's.
//
// The general multi-input/multi-output comparison of two ratios under
// one shared multiplier vector is a bilinear (non-LP) feasibility
// question: cross-multiplying E(a)≥E(b) gives (Σu y_a)(Σv x_b) ≥
// (Σu y_b)(Σv x_a), a product of an output-side and an input-side
// linear form. When the problem has exactly one output, u is a single
// positive scalar that cancels out of both products, collapsing the
// test to the linear comparison y_a·(Σv x_b) ≥ y_b·(Σv x_a) over v
// alone; BuildCCRGap uses that exact reduction whenever len(Outputs())
// == 1. Outside that case it falls back to the anchor-normalized
// virtual-score difference Σu y_a − Σu y_b under Σv x_a = 1, which is
// an approximation of the true ratio gap (documented in DESIGN.md)
// rather than an exact reformulation.
func BuildCCRGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	if len(p.Outputs()) == 1 {
		return ccrSingleOutputGap(p, a, b, dir)
	}
	return ccrApproximateGap(p, a, b, dir)
}

func ccrSingleOutputGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	yOut := p.Outputs()[0]
	ya, yb := p.Performance(a, yOut), p.Performance(b, yOut)

	vars := make([]Var, len(p.Inputs()))
	for i, f := range p.Inputs() {
		vars[i] = Var{Name: f, Lo: ccrEpsilon, Hi: math.Inf(1)}
	}

	norm := make(constraint.Expr)
	for _, f := range p.Inputs() {
		norm[f] = 1
	}
	cs := []constraint.Constraint{constraint.NewConstraint(constraint.EQ, 1, norm)}
	cs = append(cs, p.WeightConstraints()...)

	obj := make(constraint.Expr)
	for _, f := range p.Inputs() {
		obj[f] = ya*p.Performance(b, f) - yb*p.Performance(a, f)
	}
	return ModelSpec{Vars: vars, Objective: obj, Direction: dir, Constraints: cs}
}

func ccrApproximateGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	cs := append([]constraint.Constraint{ccrNormalization(p, a)}, ccrEnvelope(p)...)
	cs = append(cs, p.WeightConstraints()...)

	obj := make(constraint.Expr)
	for _, f := range p.Outputs() {
		obj[f] = p.Performance(a, f) - p.Performance(b, f)
	}
	return ModelSpec{
		Vars:        weightVars(p),
		Objective:   obj,
		Direction:   dir,
		Constraints: cs,
	}
}
