package analysis

import (
	"context"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/internal/workerpool"
	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/solver"
)

// PreferenceResult holds the necessary- and possible-preference
// relations over every ordered DMU pair (spec.md §4.4): Necessary[s][t]
// is true iff s necessarily precedes t for every admissible weight,
// Possible[s][t] iff some admissible weight makes s precede (or tie)
// t. Diagonal entries are always true (a DMU weakly precedes itself).
type PreferenceResult struct {
	Necessary [][]bool
	Possible  [][]bool
}

// PreferenceRelations computes the full necessary/possible preference
// matrices, fanning the DMU-indexed outer loop out across
// opts.Parallelism workers; each worker solves n−1 necessary and n−1
// possible LPs for its row.
func PreferenceRelations(ctx context.Context, p *dea.Problem, family model.Family, adapter solver.Adapter, opts PreferenceOptions) (PreferenceResult, Diagnostics, error) {
	opts = opts.resolved()
	n := p.NumDMU()

	type row struct {
		necessary, possible []bool
	}
	rows, errs := workerpool.Run(ctx, opts.Parallelism, n, func(ctx context.Context, s int) (row, error) {
		r := row{necessary: make([]bool, n), possible: make([]bool, n)}
		r.necessary[s] = true
		r.possible[s] = true
		for t := 0; t < n; t++ {
			if t == s {
				continue
			}
			necRes, err := adapter.Solve(ctx, model.BuildNecessaryPreference(p, family, s, t).Build())
			necHolds, necErr := evalSign(necRes, err, s, opts.Epsilon)
			if necErr != nil {
				return r, necErr
			}
			r.necessary[t] = necHolds

			posRes, err := adapter.Solve(ctx, model.BuildPossiblePreference(p, family, s, t).Build())
			posHolds, posErr := evalSign(posRes, err, s, opts.Epsilon)
			if posErr != nil {
				return r, posErr
			}
			r.possible[t] = posHolds
		}
		return r, nil
	})
	diag, fatal := classify(errs)
	if fatal != nil {
		return PreferenceResult{}, diag, fatal
	}

	necessary := make([][]bool, n)
	possible := make([][]bool, n)
	for s, r := range rows {
		necessary[s] = r.necessary
		possible[s] = r.possible
	}
	return PreferenceResult{Necessary: necessary, Possible: possible}, diag, nil
}
