// Package constraint implements the linear-expression algebra that the
// rest of robustdea builds admissible regions from: named-factor linear
// expressions, the three constraint operators, and assembly of a set of
// constraints into the dense matrix form an LP/MILP solver expects.
package constraint

import "fmt"

// Op is a constraint relational operator.
type Op int

const (
	LE Op = iota // ≤
	GE           // ≥
	EQ           // =
)

func (op Op) String() string {
	switch op {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Expr is a linear expression over named factors: Σ coeffs[f]·x[f].
// A nil or empty Expr is the zero expression.
type Expr map[string]float64

// Clone returns an independent copy of e.
func (e Expr) Clone() Expr {
	if e == nil {
		return nil
	}
	out := make(Expr, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Set adds coeff·factor into the expression, combining with any existing
// coefficient for that factor.
func (e Expr) Set(factor string, coeff float64) Expr {
	if e == nil {
		e = Expr{}
	}
	e[factor] += coeff
	return e
}

// Dot evaluates the expression at the given factor->value assignment,
// treating any factor absent from the assignment as zero.
func (e Expr) Dot(values map[string]float64) float64 {
	var total float64
	for f, c := range e {
		total += c * values[f]
	}
	return total
}

// Constraint is a single linear constraint Σ coeffs[f]·w[f] op rhs.
type Constraint struct {
	Op    Op
	RHS   float64
	Expr  Expr
	Label string // optional, for diagnostics; not interpreted
}

// NewConstraint builds a Constraint from a coefficient map.
func NewConstraint(op Op, rhs float64, coeffs map[string]float64) Constraint {
	return Constraint{Op: op, RHS: rhs, Expr: Expr(coeffs).Clone()}
}

// Holds reports whether the constraint is satisfied (within tol) by the
// given factor->value assignment.
func (c Constraint) Holds(values map[string]float64, tol float64) bool {
	lhs := c.Expr.Dot(values)
	switch c.Op {
	case LE:
		return lhs <= c.RHS+tol
	case GE:
		return lhs >= c.RHS-tol
	case EQ:
		d := lhs - c.RHS
		return d <= tol && d >= -tol
	default:
		return false
	}
}

// Negate returns the constraint restated with operator LE (flips GE to
// LE by negating both sides); EQ is returned unchanged since an equality
// has no orientation to flip.
func (c Constraint) Negate() Constraint {
	if c.Op != GE {
		return c
	}
	neg := make(Expr, len(c.Expr))
	for f, v := range c.Expr {
		neg[f] = -v
	}
	return Constraint{Op: LE, RHS: -c.RHS, Expr: neg, Label: c.Label}
}
