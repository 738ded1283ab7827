package analysis

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/solver/simplex"
)

func vdeaS3Problem(t *testing.T) *dea.Problem {
	t.Helper()
	inputs := mat.NewDense(3, 1, []float64{0.0, 0.5, 1.0})
	outputs := mat.NewDense(3, 1, []float64{1.0, 0.5, 0.0})

	uIn := dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{1, 0}}
	uOut := dea.PiecewiseLinear{X: []float64{0, 1}, U: []float64{0, 1}}

	p, err := dea.NewBuilder([]string{"x"}, []string{"y"}, inputs, outputs).
		WithValueFunction("x", dea.ValueFunctionShape{Lower: uIn, Upper: uIn, Direction: dea.Input}).
		WithValueFunction("y", dea.ValueFunctionShape{Lower: uOut, Upper: uOut, Direction: dea.Output}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

// TestExtremeEfficiencyS3 checks spec scenario S3: a VDEA problem whose
// value functions collapse each DMU's weighted score to a fixed point
// regardless of the admissible weight.
func TestExtremeEfficiencyS3(t *testing.T) {
	p := vdeaS3Problem(t)
	adapter := simplex.New()
	res, _, err := ExtremeEfficiency(context.Background(), p, model.VDEA, adapter, DefaultExtremeEfficiencyOptions())
	if err != nil {
		t.Fatalf("ExtremeEfficiency() error = %v", err)
	}
	want := []float64{1, 0.5, 0}
	for i, w := range want {
		if math.Abs(res.Max[i]-w) > 1e-9 {
			t.Errorf("maxEfficiency[%d] = %v, want %v", i, res.Max[i], w)
		}
		if math.Abs(res.Min[i]-w) > 1e-9 {
			t.Errorf("minEfficiency[%d] = %v, want %v", i, res.Min[i], w)
		}
	}
}

// TestImpreciseVDEAReducesToPrecise checks spec scenario S6: an
// Imprecise-VDEA problem with degenerate (lo==hi) intervals everywhere
// and no ordinal factors matches plain VDEA on the same precise data.
func TestImpreciseVDEAReducesToPrecise(t *testing.T) {
	inputs := mat.NewDense(5, 2, []float64{
		1, 2,
		5, 7,
		4, 2,
		7, 4,
		3, 8,
	})
	outputs := mat.NewDense(5, 1, []float64{1, 10, 5, 7, 12})

	precise, err := dea.NewBuilder([]string{"x1", "x2"}, []string{"y1"}, inputs, outputs).Build()
	if err != nil {
		t.Fatalf("Build(precise) error = %v", err)
	}

	info := &dea.ImpreciseInfo{
		Intervals:           map[string]map[int][2]float64{},
		OrdinalRatio:        1.0001,
		VFMonotonicityRatio: 1,
	}
	for _, f := range []string{"x1", "x2", "y1"} {
		info.Intervals[f] = map[int][2]float64{}
		for dmu := 0; dmu < 5; dmu++ {
			v := precise.Performance(dmu, f)
			info.Intervals[f][dmu] = [2]float64{v, v}
		}
	}
	imprecise, err := dea.NewBuilder([]string{"x1", "x2"}, []string{"y1"}, inputs, outputs).WithImprecise(info).Build()
	if err != nil {
		t.Fatalf("Build(imprecise) error = %v", err)
	}

	adapter := simplex.New()
	preciseRes, _, err := ExtremeEfficiency(context.Background(), precise, model.VDEA, adapter, DefaultExtremeEfficiencyOptions())
	if err != nil {
		t.Fatalf("ExtremeEfficiency(precise) error = %v", err)
	}
	impreciseRes, _, err := ExtremeEfficiency(context.Background(), imprecise, model.ImpreciseVDEA, adapter, DefaultExtremeEfficiencyOptions())
	if err != nil {
		t.Fatalf("ExtremeEfficiency(imprecise) error = %v", err)
	}
	for i := range preciseRes.Max {
		if math.Abs(preciseRes.Max[i]-impreciseRes.Max[i]) > 1e-6 {
			t.Errorf("maxEfficiency[%d]: precise=%v imprecise=%v", i, preciseRes.Max[i], impreciseRes.Max[i])
		}
		if math.Abs(preciseRes.Min[i]-impreciseRes.Min[i]) > 1e-6 {
			t.Errorf("minEfficiency[%d]: precise=%v imprecise=%v", i, preciseRes.Min[i], impreciseRes.Min[i])
		}
	}
}
