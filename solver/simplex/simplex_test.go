package simplex

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/solver"
)

func TestSolveLPClassicMax(t *testing.T) {
	inst := solver.Instance{
		Direction: solver.Maximize,
		Obj:       []float64{3, 5},
		VarBounds: []solver.Bounds{{Lo: 0, Hi: math.Inf(1)}, {Lo: 0, Hi: math.Inf(1)}},
		Leq:       mat.NewDense(3, 2, []float64{1, 0, 0, 2, 3, 2}),
		LeqRHS:    []float64{4, 12, 18},
	}
	res, err := New().Solve(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != solver.OPTIMAL {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	if !floats.EqualWithinAbsOrRel(res.Objective, 36, 1e-6, 1e-6) {
		t.Errorf("objective = %v, want 36", res.Objective)
	}
	want := []float64{2, 6}
	for i := range want {
		if !floats.EqualWithinAbsOrRel(res.Variables[i], want[i], 1e-6, 1e-6) {
			t.Errorf("x[%d] = %v, want %v", i, res.Variables[i], want[i])
		}
	}
}

func TestSolveLPInfeasible(t *testing.T) {
	inst := solver.Instance{
		Direction: solver.Minimize,
		Obj:       []float64{1},
		VarBounds: []solver.Bounds{{Lo: 5, Hi: 1}},
	}
	res, err := New().Solve(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != solver.INFEASIBLE {
		t.Fatalf("status = %v, want INFEASIBLE", res.Status)
	}
}

func TestSolveLPUnbounded(t *testing.T) {
	inst := solver.Instance{
		Direction: solver.Maximize,
		Obj:       []float64{1},
		VarBounds: []solver.Bounds{{Lo: 0, Hi: math.Inf(1)}},
	}
	res, err := New().Solve(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != solver.UNBOUNDED {
		t.Fatalf("status = %v, want UNBOUNDED", res.Status)
	}
}

func TestSolveMILPKnapsackLike(t *testing.T) {
	// maximize 5x+4y s.t. 6x+4y<=24, x+2y<=6, x,y integer in [0,10]
	inst := solver.Instance{
		Direction:   solver.Maximize,
		Obj:         []float64{5, 4},
		VarBounds:   []solver.Bounds{{Lo: 0, Hi: 10}, {Lo: 0, Hi: 10}},
		Leq:         mat.NewDense(2, 2, []float64{6, 4, 1, 2}),
		LeqRHS:      []float64{24, 6},
		Integrality: []bool{true, true},
	}
	res, err := New().Solve(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != solver.OPTIMAL {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	if !floats.EqualWithinAbsOrRel(res.Objective, 21, 1e-6, 1e-6) {
		t.Errorf("objective = %v, want 21", res.Objective)
	}
	for _, v := range res.Variables {
		if math.Abs(v-math.Round(v)) > 1e-6 {
			t.Errorf("variable %v is not integral", v)
		}
	}
}

func TestSolveLPEqualityConstraint(t *testing.T) {
	// minimize x+y s.t. x+y=1, x,y>=0: optimum is 1 anywhere on the simplex.
	inst := solver.Instance{
		Direction: solver.Minimize,
		Obj:       []float64{1, 1},
		VarBounds: []solver.Bounds{{Lo: 0, Hi: math.Inf(1)}, {Lo: 0, Hi: math.Inf(1)}},
		Eq:        mat.NewDense(1, 2, []float64{1, 1}),
		EqRHS:     []float64{1},
	}
	res, err := New().Solve(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != solver.OPTIMAL {
		t.Fatalf("status = %v, want OPTIMAL", res.Status)
	}
	if !floats.EqualWithinAbsOrRel(res.Objective, 1, 1e-6, 1e-6) {
		t.Errorf("objective = %v, want 1", res.Objective)
	}
}
