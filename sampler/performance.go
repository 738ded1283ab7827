package sampler

import (
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/rng"
)

// SamplePerformance resolves DMU dmu's value on factor f for one SMAA
// draw: its precise baseline when no imprecise information is attached
// or the factor carries no interval for that DMU, otherwise a uniform
// draw from the recorded [lo,hi] interval (spec.md §4.5 point 1).
func SamplePerformance(p *dea.Problem, f string, dmu int, stream rng.Stream) float64 {
	info := p.Imprecise()
	if lohi, ok := info.Interval(f, dmu); ok {
		return lohi[0] + stream.Float64()*(lohi[1]-lohi[0])
	}
	return p.Performance(dmu, f)
}

// SampleOrdinalRealization draws one admissible precise-value
// realization of an ordinal factor's ranks, respecting OrdinalMin (the
// floor for the lowest rank) and OrdinalRatio (the minimum multiplicative
// gap between adjacent ranks), returned indexed by DMU. Each gap is
// drawn as ratio * (1 + stream.Float64()), so the minimum gap is exactly
// OrdinalRatio and the realization still varies sample to sample —
// unlike model.BuildImpreciseCCR's canonical witness, which fixes the
// minimal chain once for LP construction.
func SampleOrdinalRealization(info *dea.ImpreciseInfo, factor string, n int, stream rng.Stream) []float64 {
	ranks := info.OrdinalRanks[factor]
	floor := info.OrdinalMin
	if floor <= 0 {
		floor = 1e-6
	}
	byRank := make([]float64, n+1)
	v := floor
	byRank[1] = v
	for r := 2; r <= n; r++ {
		gap := info.OrdinalRatio * (1 + stream.Float64())
		v *= gap
		byRank[r] = v
	}
	out := make([]float64, n)
	for dmu, r := range ranks {
		out[dmu] = byRank[r]
	}
	return out
}
