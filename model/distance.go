package model

import (
	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
)

// BuildHierarchicalVDEADistance is BuildVDEADistance's hierarchical
// counterpart: the same epigraph construction (minimize z minus
// subject's score, subject to z dominating every DMU's score), but over
// hierarchy-weight variables and sibling-sum constraints instead of the
// flat simplex.
func BuildHierarchicalVDEADistance(p *dea.Problem, subject int) ModelSpec {
	h := p.Hierarchy()
	cs := hierarchyConstraints(h)
	cs = append(cs, p.WeightConstraints()...)

	vars := append(hierarchyVars(h), Var{Name: "__z", Lo: 0, Hi: 1})
	for k := 0; k < p.NumDMU(); k++ {
		expr := hierarchyObjective(p, h, k)
		expr["__z"] = -1
		cs = append(cs, constraint.NewConstraint(constraint.LE, 0, expr))
	}

	objSubject := hierarchyObjective(p, h, subject)
	obj := make(constraint.Expr, len(objSubject)+1)
	for k, v := range objSubject {
		obj[k] = -v
	}
	obj["__z"] = 1

	return ModelSpec{Vars: vars, Objective: obj, Direction: solver.Minimize, Constraints: cs}
}

// BuildImpreciseVDEADistance is BuildVDEADistance's imprecise-
// information counterpart. Each rival k's epigraph row uses the same
// per-factor extreme (extremeValue, dir=Maximize) BuildImpreciseVDEA
// itself uses to bound E(k,w) from above for any admissible shape/
// performance realization; this resolves each row's realization
// independently of the others, the same simplifying approximation
// BuildCCRGap documents for the multi-output case, extended here to the
// joint weight/shape/performance family rather than re-deriving an
// exact joint bound (see DESIGN.md).
func BuildImpreciseVDEADistance(p *dea.Problem, subject int) ModelSpec {
	vars := append(vdeaWeightVars(p), Var{Name: "__z", Lo: 0, Hi: 1})
	cs := append([]constraint.Constraint(nil), vdeaConstraints(p)...)

	for k := 0; k < p.NumDMU(); k++ {
		expr := make(constraint.Expr, len(p.Factors())+1)
		expr["__z"] = -1
		for _, f := range p.FactorNames() {
			expr[f] = extremeValue(p, f, k, solver.Maximize)
		}
		cs = append(cs, constraint.NewConstraint(constraint.LE, 0, expr))
	}

	obj := make(constraint.Expr, len(p.Factors())+1)
	obj["__z"] = 1
	for _, f := range p.FactorNames() {
		obj[f] = -extremeValue(p, f, subject, solver.Minimize)
	}

	return ModelSpec{Vars: vars, Objective: obj, Direction: solver.Minimize, Constraints: cs}
}
