package dea

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/constraint"
)

// Builder constructs a Problem incrementally and validates it once, at
// Build. A Builder is single-use; mutating one does not affect any
// Problem already built from it (spec.md §9's note on avoiding a
// shared-mutable-config post-construction-mutation pattern).
type Builder struct {
	inputNames, outputNames   []string
	inputValues, outputValues *mat.Dense
	dmuNames                  []string

	weightConstraints []WeightConstraint
	valueFunctions    map[string]ValueFunctionShape
	hierarchy         *Hierarchy
	imprecise         *ImpreciseInfo

	err error // first error encountered by an Add*/With* call, surfaced by Build
}

// NewBuilder starts a Builder from the dense rectangular input/output
// performance matrices (n×len(inputNames), n×len(outputNames)) and
// their factor names.
func NewBuilder(inputNames, outputNames []string, inputValues, outputValues *mat.Dense) *Builder {
	return &Builder{
		inputNames:  append([]string(nil), inputNames...),
		outputNames: append([]string(nil), outputNames...),
		inputValues: inputValues,
		outputValues: outputValues,
	}
}

// WithDMUNames attaches display names to DMUs (optional; purely for
// diagnostics).
func (b *Builder) WithDMUNames(names []string) *Builder {
	b.dmuNames = append([]string(nil), names...)
	return b
}

// AddWeightConstraint appends one constraint to the ordered collection
// of admissible-region constraints. The constraint's factors must be
// known to the builder's input/output names, or Build will report a
// ConfigurationError.
func (b *Builder) AddWeightConstraint(c constraint.Constraint) *Builder {
	b.weightConstraints = append(b.weightConstraints, c)
	return b
}

// WithValueFunction configures the admissible marginal-value-function
// range for a factor (VDEA-family problems only).
func (b *Builder) WithValueFunction(factor string, shape ValueFunctionShape) *Builder {
	if b.valueFunctions == nil {
		b.valueFunctions = make(map[string]ValueFunctionShape)
	}
	b.valueFunctions[factor] = shape
	return b
}

// WithHierarchy attaches a criteria hierarchy.
func (b *Builder) WithHierarchy(h *Hierarchy) *Builder {
	b.hierarchy = h
	return b
}

// WithImprecise attaches imprecise-information.
func (b *Builder) WithImprecise(info *ImpreciseInfo) *Builder {
	b.imprecise = info
	return b
}

// Build validates every invariant in spec.md §3 and, if they all hold,
// returns a Problem. Build never mutates the Builder's inputs in place.
// It copies the performance matrices, the weight-constraint slice and
// the value-function map; the constraints' coefficient maps, the
// value functions' breakpoint slices, the Hierarchy and the
// ImpreciseInfo are shared with the caller, not copied.
func (b *Builder) Build() (*Problem, error) {
	if len(b.inputNames) == 0 || len(b.outputNames) == 0 {
		return nil, configErr("inputs and outputs must both be non-empty")
	}
	if b.inputValues == nil || b.outputValues == nil {
		return nil, configErr("input and output performance matrices are required")
	}
	n, mIn := b.inputValues.Dims()
	n2, mOut := b.outputValues.Dims()
	if n != n2 {
		return nil, configErr("input and output matrices must have the same number of DMUs")
	}
	if n == 0 {
		return nil, configErr("problem has no DMUs")
	}
	if mIn != len(b.inputNames) {
		return nil, configErr("input matrix column count does not match the number of input factor names")
	}
	if mOut != len(b.outputNames) {
		return nil, configErr("output matrix column count does not match the number of output factor names")
	}

	seen := make(map[string]bool, mIn+mOut)
	factors := make([]Factor, 0, mIn+mOut)
	factorIndex := make(map[string]int, mIn+mOut)
	for i, name := range b.inputNames {
		if seen[name] {
			return nil, configErrFactor("factor name collision between inputs and/or outputs", name)
		}
		seen[name] = true
		factorIndex[name] = i
		factors = append(factors, Factor{Name: name, Direction: Input})
	}
	for i, name := range b.outputNames {
		if seen[name] {
			return nil, configErrFactor("factor name collision between inputs and/or outputs", name)
		}
		seen[name] = true
		factorIndex[name] = mIn + i
		factors = append(factors, Factor{Name: name, Direction: Output})
	}

	for _, c := range b.weightConstraints {
		for f := range c.Expr {
			if _, ok := factorIndex[f]; !ok {
				return nil, configErrFactor("weight constraint references unknown factor", f)
			}
		}
	}

	for f, shape := range b.valueFunctions {
		if _, ok := factorIndex[f]; !ok {
			return nil, configErrFactor("value function references unknown factor", f)
		}
		if err := shape.Validate(f, 1e-9); err != nil {
			return nil, err
		}
	}

	if b.hierarchy != nil {
		if err := b.hierarchy.validate(namesOf(factors)); err != nil {
			return nil, err
		}
	}

	if err := b.imprecise.validate(namesOf(factors), n); err != nil {
		return nil, err
	}

	dmus := make([]DMU, n)
	for i := range dmus {
		name := ""
		if i < len(b.dmuNames) {
			name = b.dmuNames[i]
		}
		dmus[i] = DMU{Index: i, Name: name}
	}

	return &Problem{
		factors:           factors,
		factorIndex:       factorIndex,
		dmus:              dmus,
		inputValues:       cloneDense(b.inputValues),
		outputValues:      cloneDense(b.outputValues),
		weightConstraints: append([]WeightConstraint(nil), b.weightConstraints...),
		valueFunctions:    cloneValueFunctions(b.valueFunctions),
		hierarchy:         b.hierarchy,
		imprecise:         b.imprecise,
	}, nil
}

func namesOf(factors []Factor) []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.Name
	}
	return out
}

func cloneDense(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(m)
	return out
}

func cloneValueFunctions(in map[string]ValueFunctionShape) map[string]ValueFunctionShape {
	if in == nil {
		return nil
	}
	out := make(map[string]ValueFunctionShape, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
