package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/solver/simplex"
)

// TestSMAADeterminism checks spec scenario S4: two SMAA-efficiency
// invocations with identical seed and parallelism produce bitwise
// identical histograms and expectations.
func TestSMAADeterminism(t *testing.T) {
	p := s1Problem(t)
	adapter := simplex.New()
	opts := SMAAOptions{Samples: 100, Bins: 10, Seed: 5, Parallelism: 1}

	run := func() SMAAResult {
		res, _, err := SMAA(context.Background(), p, model.CCR, EfficiencyIndicator, adapter, opts)
		if err != nil {
			t.Fatalf("SMAA() error = %v", err)
		}
		return res
	}
	a, b := run(), run()
	for i := range a.Histogram {
		for j := range a.Histogram[i] {
			if a.Histogram[i][j] != b.Histogram[i][j] {
				t.Fatalf("histogram[%d][%d]: %v != %v", i, j, a.Histogram[i][j], b.Histogram[i][j])
			}
		}
		if a.Expected[i] != b.Expected[i] {
			t.Fatalf("expected[%d]: %v != %v", i, a.Expected[i], b.Expected[i])
		}
	}
}

// TestSMAAHistogramRowsSumToOne checks invariant 6.
func TestSMAAHistogramRowsSumToOne(t *testing.T) {
	p := s1Problem(t)
	adapter := simplex.New()
	opts := SMAAOptions{Samples: 200, Bins: 10, Seed: 1, Parallelism: 2}

	res, _, err := SMAA(context.Background(), p, model.CCR, EfficiencyIndicator, adapter, opts)
	if err != nil {
		t.Fatalf("SMAA() error = %v", err)
	}
	for i, row := range res.Histogram {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d sums to %v, want 1", i, sum)
		}
	}
}

// TestPEOIComplementarity checks spec scenario S5 and invariant 5: the
// diagonal is 1, and for i != j, PEOI(i,j)+PEOI(j,i) is at least
// 1-2/samples.
func TestPEOIComplementarity(t *testing.T) {
	p := s1Problem(t)
	adapter := simplex.New()
	opts := SMAAPreferenceOptions{Samples: 500, Seed: 7, Parallelism: 1}

	res, _, err := SMAAPreferences(context.Background(), p, model.CCR, adapter, opts)
	if err != nil {
		t.Fatalf("SMAAPreferences() error = %v", err)
	}
	n := p.NumDMU()
	for i := 0; i < n; i++ {
		if res.PEOI[i][i] != 1 {
			t.Errorf("PEOI[%d][%d] = %v, want 1", i, i, res.PEOI[i][i])
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sum := res.PEOI[i][j] + res.PEOI[j][i]
			if sum < 1-2.0/float64(opts.Samples)-1e-9 {
				t.Errorf("PEOI[%d][%d]+PEOI[%d][%d] = %v, want >= ~1", i, j, j, i, sum)
			}
		}
	}
}
