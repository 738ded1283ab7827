package constraint

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestConstraintHolds(t *testing.T) {
	c := NewConstraint(LE, 1, map[string]float64{"a": 1, "b": 1})
	cases := []struct {
		values map[string]float64
		want   bool
	}{
		{map[string]float64{"a": 0.4, "b": 0.4}, true},
		{map[string]float64{"a": 0.6, "b": 0.6}, false},
		{map[string]float64{"a": 1, "b": 0}, true},
	}
	for _, c2 := range cases {
		if got := c.Holds(c2.values, 1e-9); got != c2.want {
			t.Errorf("Holds(%v) = %v, want %v", c2.values, got, c2.want)
		}
	}
}

func TestSimplexConstraintsAssemble(t *testing.T) {
	factors := []string{"x", "y", "z"}
	cs := SimplexConstraints(factors)
	p := Assemble(factors, cs)

	if p.A == nil {
		t.Fatal("expected an equality block for Σw=1")
	}
	r, c := p.A.Dims()
	if r != 1 || c != 3 {
		t.Fatalf("A dims = (%d,%d), want (1,3)", r, c)
	}
	if !floats.EqualWithinAbsOrRel(p.B[0], 1, 1e-12, 1e-12) {
		t.Errorf("B[0] = %v, want 1", p.B[0])
	}

	if p.G == nil {
		t.Fatal("expected an inequality block for w>=0")
	}
	gr, gc := p.G.Dims()
	if gr != 3 || gc != 3 {
		t.Fatalf("G dims = (%d,%d), want (3,3)", gr, gc)
	}
	for i := 0; i < 3; i++ {
		if p.G.At(i, i) != -1 {
			t.Errorf("G[%d][%d] = %v, want -1 (w>=0 negated to -w<=0)", i, i, p.G.At(i, i))
		}
		if p.H[i] != 0 {
			t.Errorf("H[%d] = %v, want 0", i, p.H[i])
		}
	}
}

func TestNegateGE(t *testing.T) {
	c := NewConstraint(GE, 2, map[string]float64{"a": 3})
	n := c.Negate()
	if n.Op != LE || n.RHS != -2 || n.Expr["a"] != -3 {
		t.Errorf("Negate() = %+v, want LE -2 {a:-3}", n)
	}
}
