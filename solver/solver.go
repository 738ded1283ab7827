// Package solver defines the narrow interface between robustdea's model
// builders and an external LP/MILP oracle. robustdea itself never assumes
// a particular solver backend; solver/simplex ships one reference
// implementation, but any Adapter satisfying this interface can be
// substituted without touching model, sampler, or analysis.
package solver

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Status is the outcome of a solve.
type Status int

const (
	// OPTIMAL means ObjectiveValue and Variables are a verified optimum.
	OPTIMAL Status = iota
	// INFEASIBLE means the admissible region described by the instance
	// is empty.
	INFEASIBLE
	// UNBOUNDED means the objective is unbounded in the feasible
	// direction the solver found.
	UNBOUNDED
	// NUMERICAL_ERROR means the solver could not certify a result, e.g.
	// due to ill-conditioning or iteration exhaustion.
	NUMERICAL_ERROR
)

func (s Status) String() string {
	switch s {
	case OPTIMAL:
		return "OPTIMAL"
	case INFEASIBLE:
		return "INFEASIBLE"
	case UNBOUNDED:
		return "UNBOUNDED"
	case NUMERICAL_ERROR:
		return "NUMERICAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Direction is the sense of the objective.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Bounds is a variable's lower/upper bound. Use math.Inf(±1) for an
// unbounded side.
type Bounds struct {
	Lo, Hi float64
}

// Instance is a solver-agnostic LP or MILP. Equalities and Inequalities
// are the two halves of a constraint.Polytope; Integrality, when
// non-nil, marks which variables are constrained to integer values
// (making this a MILP rather than an LP).
type Instance struct {
	Direction    Direction
	Obj          []float64 // objective coefficients, one per variable
	VarBounds    []Bounds  // one per variable
	Eq           *mat.Dense
	EqRHS        []float64
	Leq          *mat.Dense
	LeqRHS       []float64
	Integrality  []bool // nil means a pure LP
	VarNames     []string
	WarmStart    *Basis // optional, from a prior related solve
}

// Basis is an opaque warm-start handle: the index set of basic variables
// at a prior optimum. Adapters that do not support warm-starting may
// ignore it.
type Basis struct {
	VarIdx []int
}

// Result is the outcome of a Solve call.
type Result struct {
	Status    Status
	Objective float64
	Variables []float64
	Basis     *Basis // populated on OPTIMAL if the adapter supports warm-start
}

// Adapter is the abstract LP/MILP oracle. Implementations must honour
// ctx cancellation between iterations of their internal method; a
// cancelled ctx should return (Result{}, ctx.Err()).
type Adapter interface {
	Solve(ctx context.Context, inst Instance) (Result, error)
}
