package sampler

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/rng"
)

func TestSamplePerformanceWithinInterval(t *testing.T) {
	inputs := mat.NewDense(2, 1, []float64{1, 2})
	outputs := mat.NewDense(2, 1, []float64{1, 2})
	info := &dea.ImpreciseInfo{
		Intervals: map[string]map[int][2]float64{
			"x": {0: {0.5, 1.5}},
		},
	}
	p, err := dea.NewBuilder([]string{"x"}, []string{"y"}, inputs, outputs).WithImprecise(info).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	stream := rng.New(11)
	for i := 0; i < 50; i++ {
		v := SamplePerformance(p, "x", 0, stream)
		if v < 0.5 || v > 1.5 {
			t.Fatalf("draw %d: SamplePerformance = %v, want in [0.5,1.5]", i, v)
		}
	}
	// DMU 1 has no interval: always the precise baseline.
	if v := SamplePerformance(p, "x", 1, stream); v != 2 {
		t.Errorf("precise DMU: SamplePerformance = %v, want 2", v)
	}
}

func TestSampleOrdinalRealizationRespectsRatio(t *testing.T) {
	info := &dea.ImpreciseInfo{
		OrdinalFactors: map[string]bool{"x": true},
		OrdinalRanks:   map[string][]int{"x": {2, 1, 3}},
		OrdinalRatio:   1.5,
		OrdinalMin:     0.1,
	}
	stream := rng.New(21)
	vals := SampleOrdinalRealization(info, "x", 3, stream)
	// rank order by value should match rank order: DMU1 (rank1) < DMU0 (rank2) < DMU2 (rank3)
	if !(vals[1] < vals[0] && vals[0] < vals[2]) {
		t.Fatalf("ordinal realization %v does not respect rank order", vals)
	}
	if vals[1] < info.OrdinalMin-1e-9 {
		t.Errorf("lowest-ranked value %v below OrdinalMin %v", vals[1], info.OrdinalMin)
	}
	if vals[0]/vals[1] < info.OrdinalRatio-1e-9 {
		t.Errorf("adjacent-rank ratio %v below OrdinalRatio %v", vals[0]/vals[1], info.OrdinalRatio)
	}
}
