package analysis

import (
	"math"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/rng"
	"github.com/dea-toolkit/robustdea/sampler"
)

// draw is one SMAA sample's realized data: performance per factor per
// DMU (after interval/ordinal resolution) and, for additive-value
// families, the realized marginal value per factor per DMU (after
// value-function envelope resolution). Both are resolved once per
// sample and shared across every DMU's score (spec.md §4.5's "sample
// independence across DMUs" guarantee).
type draw struct {
	perf  map[string][]float64
	value map[string][]float64
}

func additiveFamily(family model.Family) bool {
	return family == model.VDEA || family == model.HierarchicalVDEA || family == model.ImpreciseVDEA
}

// drawSample realizes one SMAA sample's performance and (for additive
// families) value-function data, consuming stream in a fixed order
// (factor by factor, performance before value) so that two runs with
// the same seed and parallelism reproduce it identically.
func drawSample(p *dea.Problem, family model.Family, stream rng.Stream) draw {
	n := p.NumDMU()
	info := p.Imprecise()
	d := draw{perf: make(map[string][]float64, len(p.Factors())), value: make(map[string][]float64, len(p.Factors()))}

	for _, f := range p.FactorNames() {
		var perf []float64
		if info != nil && info.IsOrdinal(f) {
			perf = sampler.SampleOrdinalRealization(info, f, n, stream)
		} else {
			perf = make([]float64, n)
			for k := 0; k < n; k++ {
				perf[k] = sampler.SamplePerformance(p, f, k, stream)
			}
		}
		d.perf[f] = perf

		if !additiveFamily(family) {
			continue
		}
		shape, ok := p.ValueFunction(f)
		if !ok {
			d.value[f] = perf
			continue
		}
		ratio := 1.0
		if info != nil && info.VFMonotonicityRatio > 1 {
			ratio = info.VFMonotonicityRatio
		}
		realized := sampler.SampleValueFunction(shape, ratio, stream)
		vals := make([]float64, n)
		for k := 0; k < n; k++ {
			vals[k] = realized.At(perf[k])
		}
		d.value[f] = vals
	}
	return d
}

// scoreOf evaluates DMU dmu's score under sampled weights w and realized
// sample data d, analytically (no LP), per spec.md §4.5 point 2: a ratio
// contraction for the two CCR families, an additive contraction (over
// leaf factors only, for the hierarchical family) otherwise. Returns NaN
// if a CCR ratio's denominator is non-positive, signalling the sample
// should be skipped for this evaluation.
func scoreOf(p *dea.Problem, family model.Family, w map[string]float64, d draw, dmu int) float64 {
	switch family {
	case model.CCR, model.ImpreciseCCR:
		var num, den float64
		for _, f := range p.Outputs() {
			num += w[f] * d.perf[f][dmu]
		}
		for _, f := range p.Inputs() {
			den += w[f] * d.perf[f][dmu]
		}
		if den <= 0 {
			return math.NaN()
		}
		return num / den
	case model.HierarchicalVDEA:
		h := p.Hierarchy()
		var score float64
		for _, node := range h.Nodes {
			if len(node.Children) != 0 {
				continue
			}
			score += w[node.Name] * d.value[node.Factor][dmu]
		}
		return score
	default: // VDEA, ImpreciseVDEA
		var score float64
		for _, f := range p.FactorNames() {
			score += w[f] * d.value[f][dmu]
		}
		return score
	}
}
