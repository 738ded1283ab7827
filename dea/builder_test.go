package dea

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/constraint"
)

func s1Problem(t *testing.T) *Problem {
	t.Helper()
	inputs := mat.NewDense(5, 2, []float64{
		1, 2,
		5, 7,
		4, 2,
		7, 4,
		3, 8,
	})
	outputs := mat.NewDense(5, 1, []float64{1, 10, 5, 7, 12})
	p, err := NewBuilder([]string{"x1", "x2"}, []string{"y1"}, inputs, outputs).
		WithDMUNames([]string{"A", "B", "C", "D", "E"}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestBuildS1(t *testing.T) {
	p := s1Problem(t)
	if p.NumDMU() != 5 {
		t.Fatalf("NumDMU() = %d, want 5", p.NumDMU())
	}
	if got := p.Performance(1, "x1"); got != 5 {
		t.Errorf("Performance(B,x1) = %v, want 5", got)
	}
	if got := p.Performance(4, "y1"); got != 12 {
		t.Errorf("Performance(E,y1) = %v, want 12", got)
	}
}

func TestBuildRejectsEmptyInputs(t *testing.T) {
	outputs := mat.NewDense(2, 1, []float64{1, 2})
	_, err := NewBuilder(nil, []string{"y"}, mat.NewDense(2, 0, nil), outputs).Build()
	if err == nil {
		t.Fatal("expected a ConfigurationError for empty inputs")
	}
	var ce *ConfigurationError
	if !asConfigErr(err, &ce) {
		t.Fatalf("error = %v, want *ConfigurationError", err)
	}
}

func TestBuildRejectsNameCollision(t *testing.T) {
	inputs := mat.NewDense(2, 1, []float64{1, 2})
	outputs := mat.NewDense(2, 1, []float64{1, 2})
	_, err := NewBuilder([]string{"x"}, []string{"x"}, inputs, outputs).Build()
	if err == nil {
		t.Fatal("expected a ConfigurationError for a factor name collision")
	}
}

func TestBuildRejectsUnknownConstraintFactor(t *testing.T) {
	inputs := mat.NewDense(2, 1, []float64{1, 2})
	outputs := mat.NewDense(2, 1, []float64{1, 2})
	_, err := NewBuilder([]string{"x"}, []string{"y"}, inputs, outputs).
		AddWeightConstraint(constraint.NewConstraint(constraint.LE, 1, map[string]float64{"z": 1})).
		Build()
	if err == nil {
		t.Fatal("expected a ConfigurationError for an unknown constraint factor")
	}
}

func TestHierarchyValidation(t *testing.T) {
	inputs := mat.NewDense(2, 1, []float64{1, 2})
	outputs := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	h := &Hierarchy{
		Root: 0,
		Nodes: []HierarchyNode{
			{Name: "root", Parent: -1, Children: []int{1, 2}},
			{Name: "x", Parent: 0, Factor: "x"},
			{Name: "y1", Parent: 0, Factor: "y1"},
		},
	}
	// Missing the y2 leaf: should be rejected.
	_, err := NewBuilder([]string{"x"}, []string{"y1", "y2"}, inputs, outputs).
		WithHierarchy(h).
		Build()
	if err == nil {
		t.Fatal("expected a ConfigurationError for missing hierarchy leaf")
	}

	h.Nodes = append(h.Nodes, HierarchyNode{Name: "y2", Parent: 0, Factor: "y2"})
	h.Nodes[0].Children = []int{1, 2, 3}
	_, err = NewBuilder([]string{"x"}, []string{"y1", "y2"}, inputs, outputs).
		WithHierarchy(h).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
}

func asConfigErr(err error, target **ConfigurationError) bool {
	ce, ok := err.(*ConfigurationError)
	if !ok {
		return false
	}
	*target = ce
	return true
}
