package analysis

import (
	"context"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/internal/workerpool"
	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/solver"
)

// ExtremeEfficiencyResult holds, for every DMU index, the minimum and
// maximum efficiency score achievable over the admissible weight region
// (spec.md §4.2).
type ExtremeEfficiencyResult struct {
	Min []float64
	Max []float64
}

// ExtremeEfficiency solves, for every DMU, the two LPs bounding its
// efficiency score across the admissible weight region. DMU-indexed
// tasks fan out across opts.Parallelism workers via internal/workerpool.
func ExtremeEfficiency(ctx context.Context, p *dea.Problem, family model.Family, adapter solver.Adapter, opts ExtremeEfficiencyOptions) (ExtremeEfficiencyResult, Diagnostics, error) {
	opts = opts.resolved()
	n := p.NumDMU()

	minVals, minErrs := workerpool.Run(ctx, opts.Parallelism, n, func(ctx context.Context, s int) (float64, error) {
		spec := buildEfficiency(p, family, s, solver.Minimize, false)
		res, err := adapter.Solve(ctx, spec.Build())
		return resultToValue(res, err, s)
	})
	minDiag, fatal := classify(minErrs)
	if fatal != nil {
		return ExtremeEfficiencyResult{}, minDiag, fatal
	}

	maxVals, maxErrs := workerpool.Run(ctx, opts.Parallelism, n, func(ctx context.Context, s int) (float64, error) {
		spec := buildEfficiency(p, family, s, solver.Maximize, opts.SuperEfficiency)
		res, err := adapter.Solve(ctx, spec.Build())
		return resultToValue(res, err, s)
	})
	maxDiag, fatal := classify(maxErrs)
	if fatal != nil {
		return ExtremeEfficiencyResult{}, maxDiag, fatal
	}

	diag := mergeDiagnostics(minDiag, maxDiag)
	return ExtremeEfficiencyResult{Min: minVals, Max: maxVals}, diag, nil
}

// ExtremeDistanceResult holds, for every DMU index, the minimum distance
// to the current best achievable over the admissible weight region
// (spec.md §4.1's VDEA-family "distance to the best").
type ExtremeDistanceResult struct {
	Min []float64
}

// ExtremeDistance solves, for every DMU, the epigraph LP minimizing its
// distance to whichever rival is best under the same weight vector.
// Only defined for VDEA, HierarchicalVDEA, and ImpreciseVDEA families;
// returns ErrDistanceNotApplicable for CCR/ImpreciseCCR.
func ExtremeDistance(ctx context.Context, p *dea.Problem, family model.Family, adapter solver.Adapter, opts ExtremeDistanceOptions) (ExtremeDistanceResult, Diagnostics, error) {
	if _, ok := buildDistance(p, family, 0); !ok {
		return ExtremeDistanceResult{}, Diagnostics{}, ErrDistanceNotApplicable
	}
	opts = opts.resolved()
	n := p.NumDMU()

	vals, errs := workerpool.Run(ctx, opts.Parallelism, n, func(ctx context.Context, s int) (float64, error) {
		spec, _ := buildDistance(p, family, s)
		res, err := adapter.Solve(ctx, spec.Build())
		return resultToValue(res, err, s)
	})
	diag, fatal := classify(errs)
	if fatal != nil {
		return ExtremeDistanceResult{}, diag, fatal
	}
	return ExtremeDistanceResult{Min: vals}, diag, nil
}

// ExtremeRankResult holds, for every DMU index, the best (min) and worst
// (max) rank it can achieve across the admissible weight region
// (spec.md §4.3).
type ExtremeRankResult struct {
	MinRank []int
	MaxRank []int
}

// ExtremeRank solves, for every (DMU, rival) pair, the necessary- and
// possible-preference LPs spec.md §4.3 reduces rank bounds to: minRank(s)
// counts rivals that necessarily precede s (unavoidable in s's best
// case), maxRank(s) counts rivals that possibly precede s (the most that
// could gang up on s in its worst case). Both bounds satisfy spec.md
// §8's invariant that minRank(s) == 1 iff s is maximally efficient for
// some admissible weight, since minRank(s) == 1 means no rival
// necessarily beats s, i.e. some weight exists leaving s unbeaten.
func ExtremeRank(ctx context.Context, p *dea.Problem, family model.Family, adapter solver.Adapter, opts ExtremeRankOptions) (ExtremeRankResult, Diagnostics, error) {
	opts = opts.resolved()
	n := p.NumDMU()

	type bounds struct {
		necessary, possible int
	}
	perDMU, errs := workerpool.Run(ctx, opts.Parallelism, n, func(ctx context.Context, s int) (bounds, error) {
		var b bounds
		for k := 0; k < n; k++ {
			if k == s {
				continue
			}
			necRes, err := adapter.Solve(ctx, model.BuildNecessaryPreference(p, family, k, s).Build())
			necHolds, necErr := evalSign(necRes, err, s, opts.Epsilon)
			if necErr != nil {
				return b, necErr
			}
			if necHolds {
				b.necessary++
			}

			posRes, err := adapter.Solve(ctx, model.BuildPossiblePreference(p, family, k, s).Build())
			posHolds, posErr := evalSign(posRes, err, s, opts.Epsilon)
			if posErr != nil {
				return b, posErr
			}
			if posHolds {
				b.possible++
			}
		}
		return b, nil
	})
	diag, fatal := classify(errs)
	if fatal != nil {
		return ExtremeRankResult{}, diag, fatal
	}

	minRank := make([]int, n)
	maxRank := make([]int, n)
	for s, b := range perDMU {
		minRank[s] = 1 + b.necessary
		maxRank[s] = 1 + b.possible
	}
	return ExtremeRankResult{MinRank: minRank, MaxRank: maxRank}, diag, nil
}

func mergeDiagnostics(ds ...Diagnostics) Diagnostics {
	var out Diagnostics
	seen := make(map[int]bool)
	for _, d := range ds {
		for _, i := range d.FailedDMUs {
			if !seen[i] {
				seen[i] = true
				out.FailedDMUs = append(out.FailedDMUs, i)
			}
		}
		out.FailedSamples += d.FailedSamples
	}
	return out
}
