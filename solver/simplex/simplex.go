// Package simplex is a reference solver.Adapter: a two-phase primal
// simplex method for LP instances, extended to MILP instances by
// branch-and-bound. It exists so robustdea is testable end-to-end
// without an external solver dependency; robustdea's own packages never
// import it directly — they depend only on solver.Adapter.
package simplex

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/solver"
)

// Options configures the reference adapter's numerical behaviour.
type Options struct {
	Tol        float64 // feasibility / optimality tolerance, default 1e-9
	MaxIters   int     // per-phase iteration cap, default 10000
}

// DefaultOptions returns the adapter's default tolerances.
func DefaultOptions() Options {
	return Options{Tol: 1e-9, MaxIters: 10000}
}

// Adapter is a solver.Adapter backed by the two-phase simplex method
// (LP instances) and branch-and-bound over it (MILP instances, i.e.
// instances with a non-nil Integrality).
type Adapter struct {
	Opts Options
}

// New returns an Adapter with default options.
func New() *Adapter { return &Adapter{Opts: DefaultOptions()} }

// Solve implements solver.Adapter.
func (a *Adapter) Solve(ctx context.Context, inst solver.Instance) (solver.Result, error) {
	if err := ctx.Err(); err != nil {
		return solver.Result{}, err
	}
	opts := a.Opts
	if opts.Tol == 0 {
		opts.Tol = DefaultOptions().Tol
	}
	if opts.MaxIters == 0 {
		opts.MaxIters = DefaultOptions().MaxIters
	}
	hasInteger := false
	for _, b := range inst.Integrality {
		if b {
			hasInteger = true
			break
		}
	}
	if hasInteger {
		return solveMILP(ctx, inst, opts)
	}
	return solveLP(ctx, inst, opts)
}

// solveLP converts inst to standard form and runs the two-phase simplex.
func solveLP(ctx context.Context, inst solver.Instance, opts Options) (solver.Result, error) {
	std, err := standardize(inst)
	if err != nil {
		return solver.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return solver.Result{}, err
	}

	status, obj, y, basis, err := twoPhase(ctx, std, opts)
	if err != nil {
		return solver.Result{}, err
	}
	if status != solver.OPTIMAL {
		return solver.Result{Status: status}, nil
	}

	x := std.toOriginal(y)
	if inst.Direction == solver.Maximize {
		obj = -obj
	}
	return solver.Result{
		Status:    solver.OPTIMAL,
		Objective: obj,
		Variables: x,
		Basis:     &solver.Basis{VarIdx: basis},
	}, nil
}

// standardForm is an LP in the form minimize c^T y s.t. A y = b, y >= 0,
// together with the bookkeeping needed to map y back to the caller's
// original (possibly bounded, possibly free) variables.
type standardForm struct {
	A    *mat.Dense // nil when rows==0
	rows int
	b    []float64
	c    []float64
	nVar int // number of structural+slack columns (excludes artificials)

	// recover maps each original variable index to how it was encoded
	// in y: Offset + Sign*y[Pos] for a shifted/reflected variable, or
	// Offset + y[Pos] - y[NegPos] for a split free variable (NegPos>=0).
	recover []varEncoding
}

type varEncoding struct {
	Offset float64
	Sign   float64
	Pos    int
	NegPos int // -1 unless the variable was split as free
}

func (s standardForm) toOriginal(y []float64) []float64 {
	x := make([]float64, len(s.recover))
	for i, e := range s.recover {
		v := y[e.Pos]
		if e.NegPos >= 0 {
			v -= y[e.NegPos]
		}
		x[i] = e.Offset + e.Sign*v
	}
	return x
}

// standardize builds a standardForm from a solver.Instance: equality and
// (via slacks) inequality rows, variable bound elimination via shifting,
// reflection, free-variable splitting, and an explicit upper-bound row
// for any variable bounded on both sides.
func standardize(inst solver.Instance) (standardForm, error) {
	nOrig := len(inst.Obj)
	bounds := inst.VarBounds
	if bounds == nil {
		bounds = make([]solver.Bounds, nOrig)
		for i := range bounds {
			bounds[i] = solver.Bounds{Lo: 0, Hi: math.Inf(1)}
		}
	}

	recover := make([]varEncoding, nOrig)
	nCols := 0
	var extraUpper []struct {
		pos int
		rhs float64
	}
	for i, b := range bounds {
		loInf := math.IsInf(b.Lo, -1)
		hiInf := math.IsInf(b.Hi, 1)
		switch {
		case loInf && hiInf:
			recover[i] = varEncoding{Offset: 0, Sign: 1, Pos: nCols, NegPos: nCols + 1}
			nCols += 2
		case !loInf && hiInf:
			recover[i] = varEncoding{Offset: b.Lo, Sign: 1, Pos: nCols, NegPos: -1}
			nCols++
		case loInf && !hiInf:
			recover[i] = varEncoding{Offset: b.Hi, Sign: -1, Pos: nCols, NegPos: -1}
			nCols++
		default:
			recover[i] = varEncoding{Offset: b.Lo, Sign: 1, Pos: nCols, NegPos: -1}
			extraUpper = append(extraUpper, struct {
				pos int
				rhs float64
			}{nCols, b.Hi - b.Lo})
			nCols++
		}
	}

	type row struct {
		coeffs []float64 // over the nCols structural columns, before slacks
		rhs    float64
	}
	var rows []row

	addRow := func(origCoeffs []float64, rhs float64) row {
		rc := make([]float64, nCols)
		offsetContribution := 0.0
		for i, coeff := range origCoeffs {
			if coeff == 0 {
				continue
			}
			e := recover[i]
			rc[e.Pos] += e.Sign * coeff
			if e.NegPos >= 0 {
				rc[e.NegPos] -= e.Sign * coeff
			}
			offsetContribution += coeff * e.Offset
		}
		return row{coeffs: rc, rhs: rhs - offsetContribution}
	}

	if inst.Eq != nil {
		r, _ := inst.Eq.Dims()
		for i := 0; i < r; i++ {
			rows = append(rows, addRow(mat.Row(nil, i, inst.Eq), inst.EqRHS[i]))
		}
	}

	nSlack := 0
	var slackRows []row
	if inst.Leq != nil {
		r, _ := inst.Leq.Dims()
		for i := 0; i < r; i++ {
			rr := addRow(mat.Row(nil, i, inst.Leq), inst.LeqRHS[i])
			slackRows = append(slackRows, rr)
			nSlack++
		}
	}
	for _, eu := range extraUpper {
		rc := make([]float64, nCols)
		rc[eu.pos] = 1
		slackRows = append(slackRows, row{coeffs: rc, rhs: eu.rhs})
		nSlack++
	}

	totalCols := nCols + nSlack
	allRows := append(rows, slackRows...)
	var A *mat.Dense
	if len(allRows) > 0 {
		A = mat.NewDense(len(allRows), totalCols, nil)
	}
	b := make([]float64, len(allRows))
	slackCursor := nCols
	for i, r := range rows {
		for j, v := range r.coeffs {
			A.Set(i, j, v)
		}
		b[i] = r.rhs
	}
	for k, r := range slackRows {
		i := len(rows) + k
		for j, v := range r.coeffs {
			A.Set(i, j, v)
		}
		A.Set(i, slackCursor+k, 1)
		b[i] = r.rhs
	}

	c := make([]float64, totalCols)
	for i, coeff := range inst.Obj {
		e := recover[i]
		sign := 1.0
		if inst.Direction == solver.Maximize {
			sign = -1.0
		}
		c[e.Pos] += sign * coeff
		if e.NegPos >= 0 {
			c[e.NegPos] -= sign * coeff
		}
	}

	return standardForm{A: A, rows: len(allRows), b: b, c: c, nVar: totalCols, recover: recover}, nil
}

// twoPhase runs phase 1 (minimize artificial-variable sum to find a
// feasible basis) followed by phase 2 (optimize std.c over that basis),
// using Bland's rule throughout to guarantee termination.
func twoPhase(ctx context.Context, std standardForm, opts Options) (solver.Status, float64, []float64, []int, error) {
	m, n := std.rows, std.nVar
	if m == 0 {
		// No constraints at all: the origin (all zero y) is feasible,
		// and since every y>=0, unbounded iff any cost is negative.
		for _, cj := range std.c {
			if cj < -opts.Tol {
				return solver.UNBOUNDED, 0, nil, nil, nil
			}
		}
		return solver.OPTIMAL, 0, make([]float64, n), nil, nil
	}

	// Normalize rows to non-negative RHS so artificials start feasible.
	Arows := make([][]float64, m)
	b := make([]float64, m)
	for i := 0; i < m; i++ {
		row := mat.Row(nil, i, std.A)
		if std.b[i] < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			b[i] = -std.b[i]
		} else {
			b[i] = std.b[i]
		}
		Arows[i] = row
	}

	total := n + m
	tab := mat.NewDense(m, total, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			tab.Set(i, j, Arows[i][j])
		}
		tab.Set(i, n+i, 1)
	}
	basis := make([]int, m)
	for i := range basis {
		basis[i] = n + i
	}

	phase1Cost := make([]float64, total)
	for i := 0; i < m; i++ {
		phase1Cost[n+i] = 1
	}

	status, obj, err := runSimplex(ctx, tab, b, phase1Cost, basis, total, opts)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	if status != solver.OPTIMAL {
		return status, 0, nil, nil, nil
	}
	if obj > opts.Tol {
		return solver.INFEASIBLE, 0, nil, nil, nil
	}

	// Drive any artificial still basic (at zero level, degenerate) out
	// of the basis before dropping the artificial columns.
	for i, bi := range basis {
		if bi < n {
			continue
		}
		pivoted := false
		for j := 0; j < n; j++ {
			if math.Abs(tab.At(i, j)) > opts.Tol {
				pivot(tab, b, i, j)
				basis[i] = j
				pivoted = true
				break
			}
		}
		_ = pivoted // if the row is all zero, it is a redundant constraint; leave as is
	}

	phase2Cost := make([]float64, total)
	copy(phase2Cost, std.c)

	status, obj, err = runSimplex(ctx, tab, b, phase2Cost, basis, n, opts)
	if err != nil {
		return 0, 0, nil, nil, err
	}
	if status != solver.OPTIMAL {
		return status, 0, nil, nil, nil
	}

	y := make([]float64, n)
	for i, bi := range basis {
		if bi < n {
			y[bi] = b[i]
		}
	}
	return solver.OPTIMAL, obj, y, basis, nil
}

// runSimplex pivots tab (with current RHS b and basis) to optimality
// against cost, considering only the first limitCols columns as
// candidate entering variables (so phase 2 ignores artificial columns).
// Uses Bland's rule (lowest index) for both entering and leaving choices
// to guarantee termination without cycling.
func runSimplex(ctx context.Context, tab *mat.Dense, b []float64, cost []float64, basis []int, limitCols int, opts Options) (solver.Status, float64, error) {
	m, _ := tab.Dims()
	for iter := 0; iter < opts.MaxIters; iter++ {
		if iter%64 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}
		}
		// reduced costs: cost[j] - cost[basis]·tab[:,j]
		reduced := make([]float64, limitCols)
		for j := 0; j < limitCols; j++ {
			var zj float64
			for i := 0; i < m; i++ {
				zj += cost[basis[i]] * tab.At(i, j)
			}
			reduced[j] = cost[j] - zj
		}

		enter := -1
		for j := 0; j < limitCols; j++ {
			if reduced[j] < -opts.Tol {
				enter = j
				break // Bland's rule: smallest index with negative reduced cost
			}
		}
		if enter == -1 {
			var obj float64
			for i := 0; i < m; i++ {
				obj += cost[basis[i]] * b[i]
			}
			return solver.OPTIMAL, obj, nil
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			aij := tab.At(i, enter)
			if aij <= opts.Tol {
				continue
			}
			ratio := b[i] / aij
			if ratio < bestRatio-opts.Tol || (ratio < bestRatio+opts.Tol && (leave == -1 || basis[i] < basis[leave])) {
				bestRatio = ratio
				leave = i
			}
		}
		if leave == -1 {
			return solver.UNBOUNDED, 0, nil
		}

		pivot(tab, b, leave, enter)
		basis[leave] = enter
	}
	return solver.NUMERICAL_ERROR, 0, nil
}

// pivot performs a Gauss-Jordan elimination step on tab/b around
// (row,col), so that column col becomes the unit vector e_row.
func pivot(tab *mat.Dense, b []float64, row, col int) {
	m, n := tab.Dims()
	piv := tab.At(row, col)
	for j := 0; j < n; j++ {
		tab.Set(row, j, tab.At(row, j)/piv)
	}
	b[row] /= piv
	for i := 0; i < m; i++ {
		if i == row {
			continue
		}
		factor := tab.At(i, col)
		if factor == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			tab.Set(i, j, tab.At(i, j)-factor*tab.At(row, j))
		}
		b[i] -= factor * b[row]
	}
}
