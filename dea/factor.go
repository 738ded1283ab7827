package dea

import "github.com/dea-toolkit/robustdea/constraint"

// Direction is whether a factor is an input (lower is better, for CCR)
// or an output. For VDEA-family models the direction only matters
// insofar as it constrains the polarity of the factor's marginal value
// function (see ValueFunctionShape).
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// Factor is a named criterion a DMU is measured on.
type Factor struct {
	Name      string
	Direction Direction
}

// WeightConstraint is a single admissible-region constraint on the
// value-function / CCR weight vector: Σ coeffs[f]·w[f] op rhs. It is a
// thin domain-named alias over constraint.Constraint so dea's public API
// speaks in the vocabulary of spec.md §3 without introducing a second
// type.
type WeightConstraint = constraint.Constraint
