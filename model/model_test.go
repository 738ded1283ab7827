package model

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
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
	p, err := dea.NewBuilder([]string{"x1", "x2"}, []string{"y1"}, inputs, outputs).
		WithDMUNames([]string{"A", "B", "C", "D", "E"}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func solve(t *testing.T, spec ModelSpec) solver.Result {
	t.Helper()
	adapter := simplex.New()
	res, err := adapter.Solve(context.Background(), spec.Build())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	return res
}

func TestBuildCCRMaxEfficiencyS1(t *testing.T) {
	p := s1Problem(t)
	want := map[string]float64{"A": 0.25, "B": 0.9047, "C": 0.625, "D": 0.4375, "E": 1.0}
	names := []string{"A", "B", "C", "D", "E"}
	for i, name := range names {
		res := solve(t, BuildCCRMaxEfficiency(p, i))
		if res.Status != solver.OPTIMAL {
			t.Fatalf("%s: status = %v, want OPTIMAL", name, res.Status)
		}
		if math.Abs(res.Objective-want[name]) > 2e-3 {
			t.Errorf("%s: maxEfficiency = %v, want %v", name, res.Objective, want[name])
		}
	}
}

func TestBuildCCRSuperEfficiencyEAboveOne(t *testing.T) {
	p := s1Problem(t)
	res := solve(t, BuildCCRSuperEfficiency(p, 4))
	if res.Status != solver.OPTIMAL {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	if res.Objective <= 1.0 {
		t.Errorf("superEfficiency(E) = %v, want > 1", res.Objective)
	}
}

func TestBuildCCRGapNecessaryPreferenceS2(t *testing.T) {
	p := s1Problem(t)
	// N[E][A]: does E necessarily precede A?
	res := solve(t, BuildNecessaryPreference(p, CCR, 4, 0))
	if res.Status != solver.OPTIMAL {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	if res.Objective < -1e-6 {
		t.Errorf("min gap E-A = %v, want >= 0 (necessary preference)", res.Objective)
	}

	// N[A][E]: does A necessarily precede E? Should fail.
	res2 := solve(t, BuildNecessaryPreference(p, CCR, 0, 4))
	if res2.Status == solver.OPTIMAL && res2.Objective >= -1e-6 {
		t.Errorf("min gap A-E = %v, want < 0 (no necessary preference)", res2.Objective)
	}
}

func s3Problem(t *testing.T) *dea.Problem {
	t.Helper()
	inputs := mat.NewDense(3, 1, []float64{0.0, 0.5, 1.0})
	outputs := mat.NewDense(3, 1, []float64{1.0, 0.5, 0.0})
	shapeIn := dea.ValueFunctionShape{
		Lower:     dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{1, 0}},
		Upper:     dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{1, 0}},
		Direction: dea.Input,
	}
	shapeOut := dea.ValueFunctionShape{
		Lower:     dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{0, 1}},
		Upper:     dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{0, 1}},
		Direction: dea.Output,
	}
	p, err := dea.NewBuilder([]string{"x"}, []string{"y"}, inputs, outputs).
		WithValueFunction("x", shapeIn).
		WithValueFunction("y", shapeOut).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestBuildVDEAEfficiencyS3(t *testing.T) {
	p := s3Problem(t)
	want := []float64{1, 0.5, 0}
	for i, w := range want {
		res := solve(t, BuildVDEAEfficiency(p, i, solver.Maximize))
		if res.Status != solver.OPTIMAL {
			t.Fatalf("dmu %d: status = %v, want OPTIMAL", i, res.Status)
		}
		if math.Abs(res.Objective-w) > 1e-6 {
			t.Errorf("dmu %d: maxEfficiency = %v, want %v", i, res.Objective, w)
		}
		resMin := solve(t, BuildVDEAEfficiency(p, i, solver.Minimize))
		if math.Abs(resMin.Objective-w) > 1e-6 {
			t.Errorf("dmu %d: minEfficiency = %v, want %v (weights are irrelevant here)", i, resMin.Objective, w)
		}
	}
}

func TestBuildVDEADistanceNonNegative(t *testing.T) {
	p := s3Problem(t)
	res := solve(t, BuildVDEADistance(p, 1))
	if res.Status != solver.OPTIMAL {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	if res.Objective < -1e-6 {
		t.Errorf("minDistance = %v, want >= 0", res.Objective)
	}
}
