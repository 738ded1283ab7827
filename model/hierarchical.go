package model

import (
	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
)

// hierarchyVars returns one weight variable per hierarchy node (leaf or
// internal), keyed by node name. The root's weight is pinned to 1 via
// its own bounds rather than left as a free variable equal to 1, since
// that is the resolved reading of spec.md's Open Question on hierarchy
// normalization (DESIGN.md).
func hierarchyVars(h *dea.Hierarchy) []Var {
	vars := make([]Var, len(h.Nodes))
	for i, n := range h.Nodes {
		if i == h.Root {
			vars[i] = Var{Name: n.Name, Lo: 1, Hi: 1}
			continue
		}
		vars[i] = Var{Name: n.Name, Lo: 0, Hi: 1}
	}
	return vars
}

// hierarchyConstraints returns, for every internal node, the
// sibling-sum-equals-parent constraint Σ_{c in children} w_c = w_node.
func hierarchyConstraints(h *dea.Hierarchy) []constraint.Constraint {
	var cs []constraint.Constraint
	for _, n := range h.Nodes {
		if len(n.Children) == 0 {
			continue
		}
		expr := make(constraint.Expr, len(n.Children)+1)
		for _, c := range n.Children {
			expr[h.Nodes[c].Name] += 1
		}
		expr[n.Name] -= 1
		cs = append(cs, constraint.NewConstraint(constraint.EQ, 0, expr))
	}
	return cs
}

func hierarchyObjective(p *dea.Problem, h *dea.Hierarchy, subject int) constraint.Expr {
	expr := make(constraint.Expr, len(h.Nodes))
	for _, n := range h.Nodes {
		if len(n.Children) != 0 {
			continue
		}
		expr[n.Name] = fixedValue(p, n.Factor, subject)
	}
	return expr
}

// BuildHierarchicalVDEA builds the LP for subject's efficiency under a
// hierarchical additive value model: leaf weights aggregate up through
// internal nodes via sibling-sum-equals-parent, with the root fixed to
// 1, replacing the flat simplex BuildVDEAEfficiency uses.
func BuildHierarchicalVDEA(p *dea.Problem, subject int, dir solver.Direction) ModelSpec {
	h := p.Hierarchy()
	cs := hierarchyConstraints(h)
	cs = append(cs, p.WeightConstraints()...)
	return ModelSpec{
		Vars:        hierarchyVars(h),
		Objective:   hierarchyObjective(p, h, subject),
		Direction:   dir,
		Constraints: cs,
	}
}

// BuildHierarchicalVDEAGap is BuildVDEAGap's hierarchical-weight
// counterpart: compares DMUs a and b under a shared hierarchical weight
// assignment instead of a flat simplex one.
func BuildHierarchicalVDEAGap(p *dea.Problem, a, b int, dir solver.Direction) ModelSpec {
	h := p.Hierarchy()
	cs := hierarchyConstraints(h)
	cs = append(cs, p.WeightConstraints()...)

	objA := hierarchyObjective(p, h, a)
	objB := hierarchyObjective(p, h, b)
	expr := make(constraint.Expr, len(objA))
	for k, v := range objA {
		expr[k] += v
	}
	for k, v := range objB {
		expr[k] -= v
	}

	return ModelSpec{
		Vars:        hierarchyVars(h),
		Objective:   expr,
		Direction:   dir,
		Constraints: cs,
	}
}
