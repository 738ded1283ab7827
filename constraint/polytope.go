package constraint

import "gonum.org/v1/gonum/mat"

// Polytope is a constraint set assembled into the dense row-major form an
// LP/MILP solver consumes: equalities A·x = b and inequalities G·x ≤ h,
// over the variable ordering given to Assemble.
type Polytope struct {
	Vars []string
	A    *mat.Dense // may be nil if there are no equalities
	B    []float64
	G    *mat.Dense // may be nil if there are no inequalities
	H    []float64
}

// Assemble builds a Polytope over the given variable order from a list of
// constraints. GE constraints are restated as LE by negating both sides
// before being placed in G; EQ constraints go to A,b; LE constraints go
// to G,h directly.
func Assemble(vars []string, cs []Constraint) Polytope {
	idx := make(map[string]int, len(vars))
	for i, v := range vars {
		idx[v] = i
	}
	n := len(vars)

	var aRows [][]float64
	var bVals []float64
	var gRows [][]float64
	var hVals []float64

	for _, c := range cs {
		row := make([]float64, n)
		for f, coeff := range c.Expr {
			if j, ok := idx[f]; ok {
				row[j] += coeff
			}
		}
		switch c.Op {
		case EQ:
			aRows = append(aRows, row)
			bVals = append(bVals, c.RHS)
		case LE:
			gRows = append(gRows, row)
			hVals = append(hVals, c.RHS)
		case GE:
			neg := make([]float64, n)
			for i, v := range row {
				neg[i] = -v
			}
			gRows = append(gRows, neg)
			hVals = append(hVals, -c.RHS)
		}
	}

	p := Polytope{Vars: vars, B: bVals, H: hVals}
	if len(aRows) > 0 {
		p.A = mat.NewDense(len(aRows), n, flatten(aRows))
	}
	if len(gRows) > 0 {
		p.G = mat.NewDense(len(gRows), n, flatten(gRows))
	}
	return p
}

func flatten(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	n := len(rows[0])
	out := make([]float64, 0, len(rows)*n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

// SimplexConstraints returns the standard VDEA-family admissible-region
// constraints over the given factor names: w[f] ≥ 0 for every factor, plus
// Σ w[f] = 1.
func SimplexConstraints(factors []string) []Constraint {
	out := make([]Constraint, 0, len(factors)+1)
	for _, f := range factors {
		out = append(out, NewConstraint(GE, 0, map[string]float64{f: 1}))
	}
	sum := Expr{}
	for _, f := range factors {
		sum.Set(f, 1)
	}
	out = append(out, Constraint{Op: EQ, RHS: 1, Expr: sum})
	return out
}
