package sampler

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/rng"
	"github.com/dea-toolkit/robustdea/solver/simplex"
)

func s1Problem(t *testing.T) *dea.Problem {
	t.Helper()
	inputs := mat.NewDense(5, 2, []float64{
		1, 2,
		5, 7,
		4, 2,
		7, 4,
		3, 8,
	})
	outputs := mat.NewDense(5, 1, []float64{1, 10, 5, 7, 12})
	p, err := dea.NewBuilder([]string{"x1", "x2"}, []string{"y1"}, inputs, outputs).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestWeightSamplerStaysInSimplex(t *testing.T) {
	p := s1Problem(t)
	adapter := simplex.New()
	ws, err := NewWeightSampler(context.Background(), p, adapter)
	if err != nil {
		t.Fatalf("NewWeightSampler() error = %v", err)
	}
	stream := rng.New(1)
	for i := 0; i < 20; i++ {
		w, err := ws.Next(context.Background(), stream)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		var sum float64
		for _, f := range p.FactorNames() {
			v := w[f]
			if v < -1e-6 {
				t.Fatalf("sample %d: weight[%s] = %v, want >= 0", i, f, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("sample %d: weights sum to %v, want 1", i, sum)
		}
	}
	if ws.State() != Producing {
		t.Errorf("State() = %v, want Producing", ws.State())
	}
}

func TestWeightSamplerDeterministic(t *testing.T) {
	p := s1Problem(t)
	adapter := simplex.New()

	run := func() []map[string]float64 {
		ws, err := NewWeightSampler(context.Background(), p, adapter)
		if err != nil {
			t.Fatalf("NewWeightSampler() error = %v", err)
		}
		stream := rng.New(99)
		var out []map[string]float64
		for i := 0; i < 10; i++ {
			w, err := ws.Next(context.Background(), stream)
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			out = append(out, w)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		for f := range a[i] {
			if a[i][f] != b[i][f] {
				t.Fatalf("sample %d factor %s: %v != %v, want identical across runs", i, f, a[i][f], b[i][f])
			}
		}
	}
}
