package simplex

import (
	"context"
	"math"

	"github.com/dea-toolkit/robustdea/solver"
)

// solveMILP resolves a mixed-integer instance by branch-and-bound over
// solveLP: each node's LP relaxation is solved, and any variable flagged
// Integrality[i] that lands on a fractional value spawns two child nodes
// with that variable's bound tightened to floor/ceil respectively. This
// is the same worklist-of-bounded-relaxations shape as gonum's lp.BNB,
// adapted to tighten solver.Bounds directly on the branching variable
// rather than appending rows to a separate inequality matrix.
func solveMILP(ctx context.Context, inst solver.Instance, opts Options) (solver.Result, error) {
	rootBounds := make([]solver.Bounds, len(inst.Obj))
	if inst.VarBounds != nil {
		copy(rootBounds, inst.VarBounds)
	} else {
		for i := range rootBounds {
			rootBounds[i] = solver.Bounds{Lo: 0, Hi: math.Inf(1)}
		}
	}

	type node struct{ bounds []solver.Bounds }
	queue := []node{{bounds: rootBounds}}

	var best solver.Result
	haveBest := false
	better := func(obj float64) bool {
		if !haveBest {
			return true
		}
		if inst.Direction == solver.Maximize {
			return obj > best.Objective+opts.Tol
		}
		return obj < best.Objective-opts.Tol
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return solver.Result{}, err
		}
		n := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		sub := inst
		sub.VarBounds = n.bounds
		sub.Integrality = nil // LP relaxation: drop the integrality flags
		res, err := solveLP(ctx, sub, opts)
		if err != nil {
			return solver.Result{}, err
		}
		if res.Status != solver.OPTIMAL {
			continue // infeasible or unbounded sub-node: prune
		}
		if haveBest && !better(res.Objective) {
			// The relaxation is already no better than the incumbent;
			// no integer-feasible refinement of it can be better either.
			continue
		}

		branchVar, branchVal, isInteger := firstFractional(res.Variables, inst.Integrality, opts.Tol)
		if isInteger {
			if better(res.Objective) {
				best = res
				haveBest = true
			}
			continue
		}

		lo := n.bounds[branchVar]
		hi := n.bounds[branchVar]
		lo.Hi = math.Floor(branchVal)
		hi.Lo = math.Ceil(branchVal)

		loBounds := append([]solver.Bounds(nil), n.bounds...)
		loBounds[branchVar] = lo
		hiBounds := append([]solver.Bounds(nil), n.bounds...)
		hiBounds[branchVar] = hi

		queue = append(queue, node{bounds: loBounds}, node{bounds: hiBounds})
	}

	if !haveBest {
		return solver.Result{Status: solver.INFEASIBLE}, nil
	}
	return best, nil
}

// firstFractional returns the index and value of the first variable
// flagged integral whose relaxed value is not within tol of an integer.
func firstFractional(x []float64, integrality []bool, tol float64) (idx int, val float64, allInteger bool) {
	for i, isInt := range integrality {
		if !isInt {
			continue
		}
		v := x[i]
		if math.Abs(v-math.Round(v)) > tol {
			return i, v, false
		}
	}
	return 0, 0, true
}
