package analysis

import (
	"context"
	"errors"
	"math"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/internal/workerpool"
	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/rng"
	"github.com/dea-toolkit/robustdea/sampler"
	"github.com/dea-toolkit/robustdea/solver"
)

// Indicator selects which per-sample quantity SMAA aggregates.
type Indicator int

const (
	EfficiencyIndicator Indicator = iota
	DistanceIndicator
	RankIndicator
)

// SMAAResult holds one indicator's aggregated distributions (spec.md
// §4.5/§6): Histogram is n rows, each summing to 1 within 1e-9 over
// Columns bins (B for efficiency/distance, n for rank); Expected is the
// length-n sample mean.
type SMAAResult struct {
	Histogram [][]float64
	Expected  []float64
	Columns   int
}

func newWeightSampler(ctx context.Context, p *dea.Problem, adapter solver.Adapter) (*sampler.WeightSampler, error) {
	if p.Hierarchy() != nil {
		return sampler.NewHierarchicalWeightSampler(ctx, p, adapter)
	}
	return sampler.NewWeightSampler(ctx, p, adapter)
}

// wrapSamplerErr maps sampler-package errors onto analysis's error
// taxonomy (spec.md §7): an empty admissible region is always fatal.
func wrapSamplerErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sampler.ErrEmptyAdmissibleRegion) {
		return &InfeasibleAdmissibleRegionError{DMU: -1, Status: solver.INFEASIBLE}
	}
	return err
}

type smaaAccumulator struct {
	sum    []float64
	counts [][]int
	failed int
}

func newSMAAAccumulator(n, columns int) *smaaAccumulator {
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, columns)
	}
	return &smaaAccumulator{sum: make([]float64, n), counts: counts}
}

func binIndex(v float64, bins int) int {
	if v <= 1.0/float64(bins) {
		return 0
	}
	if v >= 1 {
		return bins - 1
	}
	i := int(math.Ceil(v*float64(bins))) - 1
	if i < 0 {
		i = 0
	}
	if i >= bins {
		i = bins - 1
	}
	return i
}

// accumulate folds one sample's per-DMU scores into the accumulator,
// translating raw scores into the requested indicator's reported value
// first (distance: gap to the sample's best; rank: 1-based position).
func (a *smaaAccumulator) accumulate(indicator Indicator, scores []float64, bins int) {
	n := len(scores)
	switch indicator {
	case RankIndicator:
		for s := 0; s < n; s++ {
			rank := 1
			for k := 0; k < n; k++ {
				if k != s && scores[k] > scores[s] {
					rank++
				}
			}
			a.sum[s] += float64(rank)
			a.counts[s][rank-1]++
		}
	case DistanceIndicator:
		best := scores[0]
		for _, v := range scores[1:] {
			if v > best {
				best = v
			}
		}
		for s := 0; s < n; s++ {
			d := best - scores[s]
			a.sum[s] += d
			a.counts[s][binIndex(d, bins)]++
		}
	default: // EfficiencyIndicator
		for s := 0; s < n; s++ {
			a.sum[s] += scores[s]
			a.counts[s][binIndex(scores[s], bins)]++
		}
	}
}

func (a *smaaAccumulator) merge(o *smaaAccumulator) {
	for i := range a.sum {
		a.sum[i] += o.sum[i]
		for b := range a.counts[i] {
			a.counts[i][b] += o.counts[i][b]
		}
	}
	a.failed += o.failed
}

// sampleBlocks splits [0,total) into `workers` contiguous ranges so each
// worker's block assignment is fixed independent of scheduling order
// (spec.md §5's determinism requirement).
func sampleBlocks(total, workers int) [][2]int {
	blocks := make([][2]int, workers)
	for w := 0; w < workers; w++ {
		blocks[w] = [2]int{w * total / workers, (w + 1) * total / workers}
	}
	return blocks
}

// SMAA draws opts.Samples admissible weight/performance/value-function
// realizations (sharded across opts.Parallelism workers, each with its
// own WeightSampler chain and rng.Split sub-stream) and aggregates the
// requested indicator per DMU into a histogram and expectation
// (spec.md §4.5). DistanceIndicator is only defined for VDEA-family
// models (ErrDistanceNotApplicable otherwise, matching ExtremeDistance).
func SMAA(ctx context.Context, p *dea.Problem, family model.Family, indicator Indicator, adapter solver.Adapter, opts SMAAOptions) (SMAAResult, Diagnostics, error) {
	if indicator == DistanceIndicator {
		if _, ok := buildDistance(p, family, 0); !ok {
			return SMAAResult{}, Diagnostics{}, ErrDistanceNotApplicable
		}
	}
	opts = opts.resolved()
	n := p.NumDMU()
	columns := opts.Bins
	if indicator == RankIndicator {
		columns = n
	}
	blocks := sampleBlocks(opts.Samples, opts.Parallelism)

	accs, errs := workerpool.Run(ctx, opts.Parallelism, opts.Parallelism, func(ctx context.Context, w int) (*smaaAccumulator, error) {
		acc := newSMAAAccumulator(n, columns)
		ws, err := newWeightSampler(ctx, p, adapter)
		if err != nil {
			return acc, wrapSamplerErr(err)
		}
		stream := rng.Split(opts.Seed, w)
		lo, hi := blocks[w][0], blocks[w][1]
		for m := lo; m < hi; m++ {
			if err := ctx.Err(); err != nil {
				return acc, err
			}
			weights, err := ws.Next(ctx, stream)
			if err != nil {
				return acc, wrapSamplerErr(err)
			}
			d := drawSample(p, family, stream)
			scores := make([]float64, n)
			valid := true
			for dmu := 0; dmu < n; dmu++ {
				s := scoreOf(p, family, weights, d, dmu)
				if math.IsNaN(s) || math.IsInf(s, 0) {
					valid = false
					break
				}
				scores[dmu] = s
			}
			if !valid {
				acc.failed++
				continue
			}
			acc.accumulate(indicator, scores, columns)
		}
		return acc, nil
	})
	diag, fatal := classify(errs)
	if fatal != nil {
		return SMAAResult{}, diag, fatal
	}

	total := newSMAAAccumulator(n, columns)
	for _, a := range accs {
		total.merge(a)
	}
	diag.FailedSamples = total.failed
	if total.failed*10 > opts.Samples {
		return SMAAResult{}, diag, &ExcessiveSampleFailuresError{Failed: total.failed, Total: opts.Samples}
	}

	succeeded := opts.Samples - total.failed
	hist := make([][]float64, n)
	expected := make([]float64, n)
	for s := 0; s < n; s++ {
		hist[s] = make([]float64, columns)
		if succeeded == 0 {
			continue
		}
		for b := 0; b < columns; b++ {
			hist[s][b] = float64(total.counts[s][b]) / float64(succeeded)
		}
		expected[s] = total.sum[s] / float64(succeeded)
	}
	return SMAAResult{Histogram: hist, Expected: expected, Columns: columns}, diag, nil
}

// PEOIResult is the pairwise efficiency outranking index matrix
// (spec.md §4.6): PEOI[s][t] is the fraction of samples where s's score
// is at least t's. Diagonal is always 1.
type PEOIResult struct {
	PEOI [][]float64
}

// SMAAPreferences computes the PEOI matrix under the same sampling
// procedure SMAA uses, sharing its determinism and worker-sharding
// guarantees.
func SMAAPreferences(ctx context.Context, p *dea.Problem, family model.Family, adapter solver.Adapter, opts SMAAPreferenceOptions) (PEOIResult, Diagnostics, error) {
	opts = opts.resolved()
	n := p.NumDMU()
	blocks := sampleBlocks(opts.Samples, opts.Parallelism)

	type peoiAcc struct {
		counts [][]int
		failed int
	}
	newAcc := func() *peoiAcc {
		counts := make([][]int, n)
		for i := range counts {
			counts[i] = make([]int, n)
		}
		return &peoiAcc{counts: counts}
	}

	accs, errs := workerpool.Run(ctx, opts.Parallelism, opts.Parallelism, func(ctx context.Context, w int) (*peoiAcc, error) {
		acc := newAcc()
		ws, err := newWeightSampler(ctx, p, adapter)
		if err != nil {
			return acc, wrapSamplerErr(err)
		}
		stream := rng.Split(opts.Seed, w)
		lo, hi := blocks[w][0], blocks[w][1]
		for m := lo; m < hi; m++ {
			if err := ctx.Err(); err != nil {
				return acc, err
			}
			weights, err := ws.Next(ctx, stream)
			if err != nil {
				return acc, wrapSamplerErr(err)
			}
			d := drawSample(p, family, stream)
			scores := make([]float64, n)
			valid := true
			for dmu := 0; dmu < n; dmu++ {
				s := scoreOf(p, family, weights, d, dmu)
				if math.IsNaN(s) || math.IsInf(s, 0) {
					valid = false
					break
				}
				scores[dmu] = s
			}
			if !valid {
				acc.failed++
				continue
			}
			for s := 0; s < n; s++ {
				for t := 0; t < n; t++ {
					if scores[s] >= scores[t] {
						acc.counts[s][t]++
					}
				}
			}
		}
		return acc, nil
	})
	diag, fatal := classify(errs)
	if fatal != nil {
		return PEOIResult{}, diag, fatal
	}

	total := newAcc()
	for _, a := range accs {
		for i := range total.counts {
			for j := range total.counts[i] {
				total.counts[i][j] += a.counts[i][j]
			}
		}
		total.failed += a.failed
	}
	diag.FailedSamples = total.failed
	if total.failed*10 > opts.Samples {
		return PEOIResult{}, diag, &ExcessiveSampleFailuresError{Failed: total.failed, Total: opts.Samples}
	}

	succeeded := opts.Samples - total.failed
	peoi := make([][]float64, n)
	for s := range peoi {
		peoi[s] = make([]float64, n)
		for t := range peoi[s] {
			if s == t {
				peoi[s][t] = 1
				continue
			}
			if succeeded > 0 {
				peoi[s][t] = float64(total.counts[s][t]) / float64(succeeded)
			}
		}
	}
	return PEOIResult{PEOI: peoi}, diag, nil
}
