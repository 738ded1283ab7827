package dea

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/constraint"
)

// Problem is an immutable DEA problem instance: DMUs, factors, the
// admissible weight region, and (depending on the model family) value
// functions, a hierarchy, and imprecise performance information. It is
// built once via Builder.Build and never mutated afterward (spec.md
// §3's lifecycle invariant) — every analysis driver reads it
// concurrently without synchronization.
type Problem struct {
	factors     []Factor
	factorIndex map[string]int

	dmus []DMU

	inputValues  *mat.Dense // n x len(inputs)
	outputValues *mat.Dense // n x len(outputs)

	weightConstraints []WeightConstraint
	valueFunctions    map[string]ValueFunctionShape
	hierarchy         *Hierarchy
	imprecise         *ImpreciseInfo
}

// NumDMU returns the number of DMUs, n.
func (p *Problem) NumDMU() int { return len(p.dmus) }

// Factors returns the full ordered factor list (inputs, then outputs).
func (p *Problem) Factors() []Factor { return p.factors }

// FactorNames returns the names of every factor in the order of Factors.
func (p *Problem) FactorNames() []string {
	names := make([]string, len(p.factors))
	for i, f := range p.factors {
		names[i] = f.Name
	}
	return names
}

// Inputs returns the input factor names, in declaration order.
func (p *Problem) Inputs() []string { return namesWithDirection(p.factors, Input) }

// Outputs returns the output factor names, in declaration order.
func (p *Problem) Outputs() []string { return namesWithDirection(p.factors, Output) }

func namesWithDirection(factors []Factor, dir Direction) []string {
	var out []string
	for _, f := range factors {
		if f.Direction == dir {
			out = append(out, f.Name)
		}
	}
	return out
}

// DMU returns the DMU at the given index.
func (p *Problem) DMU(i int) DMU { return p.dmus[i] }

// WeightConstraints returns the user-added weight constraints (the
// implicit simplex/CCR-normalization constraints are not included here;
// model builders add those themselves).
func (p *Problem) WeightConstraints() []WeightConstraint { return p.weightConstraints }

// ValueFunction returns the admissible shape for factor f and whether
// one is configured (VDEA-family problems only).
func (p *Problem) ValueFunction(factor string) (ValueFunctionShape, bool) {
	if p.valueFunctions == nil {
		return ValueFunctionShape{}, false
	}
	v, ok := p.valueFunctions[factor]
	return v, ok
}

// Hierarchy returns the problem's criteria hierarchy, or nil if flat.
func (p *Problem) Hierarchy() *Hierarchy { return p.hierarchy }

// Imprecise returns the problem's imprecise-information record, or nil
// if every factor is precise.
func (p *Problem) Imprecise() *ImpreciseInfo { return p.imprecise }

// Performance returns DMU i's precise baseline value on factor f. For
// DMUs with an interval override this is the value used whenever the
// caller asks for a single nominal performance (e.g. plotting, or a
// model that deliberately ignores imprecision); model builders that
// honour the interval use Problem.Imprecise instead.
func (p *Problem) Performance(dmu int, factor string) float64 {
	idx, ok := p.factorIndex[factor]
	if !ok {
		return 0
	}
	if idx < len(p.Inputs()) {
		return p.inputValues.At(dmu, idx)
	}
	return p.outputValues.At(dmu, idx-len(p.Inputs()))
}

// InputMatrix returns the n×len(Inputs()) dense input-performance matrix.
func (p *Problem) InputMatrix() *mat.Dense { return p.inputValues }

// OutputMatrix returns the n×len(Outputs()) dense output-performance matrix.
func (p *Problem) OutputMatrix() *mat.Dense { return p.outputValues }

// FactorDirection returns the direction of factor f.
func (p *Problem) FactorDirection(factor string) (Direction, bool) {
	idx, ok := p.factorIndex[factor]
	if !ok {
		return 0, false
	}
	return p.factors[idx].Direction, true
}

// SimplexConstraints returns the baseline VDEA-family admissible-region
// constraints (w>=0, Σw=1) over this problem's factors.
func (p *Problem) SimplexConstraints() []constraint.Constraint {
	return constraint.SimplexConstraints(p.FactorNames())
}
