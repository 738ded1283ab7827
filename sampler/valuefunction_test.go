package sampler

import (
	"testing"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/rng"
)

func TestSampleValueFunctionRespectsEnvelope(t *testing.T) {
	shape := dea.ValueFunctionShape{
		Lower:     dea.PiecewiseLinear{X: []float64{0, 0.5, 1}, U: []float64{0, 0.2, 1}},
		Upper:     dea.PiecewiseLinear{X: []float64{0, 0.5, 1}, U: []float64{0, 0.6, 1}},
		Direction: dea.Output,
	}
	stream := rng.New(7)
	for i := 0; i < 50; i++ {
		u := SampleValueFunction(shape, 1, stream)
		for k := range u.X {
			if u.U[k] < shape.Lower.U[k]-1e-9 || u.U[k] > shape.Upper.U[k]+1e-9 {
				t.Fatalf("draw %d breakpoint %d: u=%v outside [%v,%v]", i, k, u.U[k], shape.Lower.U[k], shape.Upper.U[k])
			}
		}
		for k := 1; k < len(u.U); k++ {
			if u.U[k] < u.U[k-1]-1e-9 {
				t.Fatalf("draw %d: realization not monotone at breakpoint %d: %v < %v", i, k, u.U[k], u.U[k-1])
			}
		}
	}
}

func TestSampleValueFunctionCostDirection(t *testing.T) {
	shape := dea.ValueFunctionShape{
		Lower:     dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{1, 0}},
		Upper:     dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{1, 0}},
		Direction: dea.Input,
	}
	stream := rng.New(3)
	u := SampleValueFunction(shape, 1, stream)
	if u.U[0] != 1 || u.U[1] != 0 {
		t.Errorf("degenerate shape should have no freedom: got %v", u.U)
	}
}
