// Package model builds solver-agnostic LP/MILP instances for every
// (efficiency model × question) pair spec.md §4.1–§4.4 names. It
// replaces the source system's class-inheritance-per-model design with
// free-standing constructors over one narrow ModelSpec record
// (spec.md §9), so adding a new question never means subclassing.
package model

import (
	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/solver"
)

// Var is one decision variable of a ModelSpec.
type Var struct {
	Name    string
	Lo, Hi  float64
	Integer bool
}

// ModelSpec is the narrow intermediate form every model builder
// produces: an ordered variable list, a linear objective over variable
// names, and a constraint set. Build turns it into a solver.Instance.
type ModelSpec struct {
	Vars        []Var
	Objective   constraint.Expr
	Direction   solver.Direction
	Constraints []constraint.Constraint
}

// Build assembles the ModelSpec into a solver.Instance.
func (m ModelSpec) Build() solver.Instance {
	names := make([]string, len(m.Vars))
	bounds := make([]solver.Bounds, len(m.Vars))
	integrality := make([]bool, len(m.Vars))
	hasInteger := false
	for i, v := range m.Vars {
		names[i] = v.Name
		bounds[i] = solver.Bounds{Lo: v.Lo, Hi: v.Hi}
		integrality[i] = v.Integer
		hasInteger = hasInteger || v.Integer
	}

	poly := constraint.Assemble(names, m.Constraints)
	obj := make([]float64, len(m.Vars))
	for i, name := range names {
		obj[i] = m.Objective[name]
	}

	inst := solver.Instance{
		Direction: m.Direction,
		Obj:       obj,
		VarBounds: bounds,
		Eq:        poly.A,
		EqRHS:     poly.B,
		Leq:       poly.G,
		LeqRHS:    poly.H,
		VarNames:  names,
	}
	if hasInteger {
		inst.Integrality = integrality
	}
	return inst
}

// VarIndex returns the position of the named variable in m.Vars, or -1.
func (m ModelSpec) VarIndex(name string) int {
	for i, v := range m.Vars {
		if v.Name == name {
			return i
		}
	}
	return -1
}
