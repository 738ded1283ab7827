package sampler

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dea-toolkit/robustdea/constraint"
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/rng"
	"github.com/dea-toolkit/robustdea/solver"
)

// svdTol is the singular-value threshold below which a direction is
// treated as belonging to the polytope's equality null space rather
// than to its range.
const svdTol = 1e-9

// WeightSampler draws uniform samples from the admissible weight
// polytope (simplex constraints + problem-specific weight constraints)
// by hit-and-run: starting from a Chebyshev-center interior point, each
// step picks a uniformly random direction within the polytope's affine
// hull and jumps to a uniform-random point on the feasible segment along
// that direction (spec.md §4.5). One WeightSampler instance is a single
// Markov chain and is not safe for concurrent use; SMAA-style drivers
// give each worker its own instance (and its own rng.Stream, via
// rng.Split) so parallel sample streams stay reproducible.
type WeightSampler struct {
	vars  []string
	poly  constraint.Polytope
	basis *mat.Dense // n x dim null-space basis of poly.A; nil means full R^n
	dim   int

	x []float64 // current chain state
	state State

	burnIn int
	thin   int
}

// NewWeightSampler builds a WeightSampler for problem p's admissible
// weight region (its simplex constraints plus any user-added weight
// constraints), finding an interior starting point via a Chebyshev-
// center LP solved through adapter.
func NewWeightSampler(ctx context.Context, p *dea.Problem, adapter solver.Adapter) (*WeightSampler, error) {
	vars := p.FactorNames()
	cs := append([]constraint.Constraint(nil), p.SimplexConstraints()...)
	cs = append(cs, p.WeightConstraints()...)
	return newWeightSampler(ctx, vars, cs, adapter)
}

// NewHierarchicalWeightSampler is NewWeightSampler's counterpart for a
// hierarchical-VDEA problem: the polytope is over one weight variable
// per hierarchy node (leaf or internal), with sibling-sum-equals-parent
// constraints replacing the flat simplex.
func NewHierarchicalWeightSampler(ctx context.Context, p *dea.Problem, adapter solver.Adapter) (*WeightSampler, error) {
	h := p.Hierarchy()
	vars := make([]string, len(h.Nodes))
	var cs []constraint.Constraint
	for i, n := range h.Nodes {
		vars[i] = n.Name
		if i == h.Root {
			// An equality, so the pin shapes the affine hull the chain walks in.
			cs = append(cs, constraint.NewConstraint(constraint.EQ, 1, constraint.Expr{n.Name: 1}))
		} else {
			cs = append(cs, constraint.NewConstraint(constraint.GE, 0, constraint.Expr{n.Name: 1}))
			cs = append(cs, constraint.NewConstraint(constraint.LE, 1, constraint.Expr{n.Name: 1}))
		}
		if len(n.Children) > 0 {
			expr := make(constraint.Expr, len(n.Children)+1)
			for _, c := range n.Children {
				expr[h.Nodes[c].Name] += 1
			}
			expr[n.Name] -= 1
			cs = append(cs, constraint.Constraint{Op: constraint.EQ, RHS: 0, Expr: expr})
		}
	}
	cs = append(cs, p.WeightConstraints()...)
	return newWeightSampler(ctx, vars, cs, adapter)
}

func newWeightSampler(ctx context.Context, vars []string, cs []constraint.Constraint, adapter solver.Adapter) (*WeightSampler, error) {
	poly := constraint.Assemble(vars, cs)
	n := len(vars)

	x0, err := chebyshevCenter(ctx, poly, n, adapter)
	if err != nil {
		return nil, err
	}

	basis, dim := nullSpaceBasis(poly.A, n)
	return &WeightSampler{
		vars:   vars,
		poly:   poly,
		basis:  basis,
		dim:    dim,
		x:      x0,
		state:  Uninitialized,
		burnIn: 10 * max(dim, 1),
		thin:   max(dim, 1),
	}, nil
}

// chebyshevCenter finds a point maximally interior to the polytope by
// solving max r s.t. A x = b, G_i·x + r·‖G_i‖ ≤ h_i ∀i, r ≥ 0 — the
// standard Chebyshev-center LP, over one extra variable r appended to
// the caller's n weight variables.
func chebyshevCenter(ctx context.Context, poly constraint.Polytope, n int, adapter solver.Adapter) ([]float64, error) {
	bounds := make([]solver.Bounds, n+1)
	for i := 0; i < n; i++ {
		bounds[i] = solver.Bounds{Lo: math.Inf(-1), Hi: math.Inf(1)}
	}
	bounds[n] = solver.Bounds{Lo: 0, Hi: math.Inf(1)}

	var eq *mat.Dense
	if poly.A != nil {
		r, c := poly.A.Dims()
		eq = mat.NewDense(r, c+1, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				eq.Set(i, j, poly.A.At(i, j))
			}
		}
	}

	var leq *mat.Dense
	leqRHS := poly.H
	if poly.G != nil {
		r, c := poly.G.Dims()
		leq = mat.NewDense(r, c+1, nil)
		for i := 0; i < r; i++ {
			var norm float64
			for j := 0; j < c; j++ {
				v := poly.G.At(i, j)
				leq.Set(i, j, v)
				norm += v * v
			}
			leq.Set(i, c, math.Sqrt(norm))
		}
	}

	obj := make([]float64, n+1)
	obj[n] = 1

	inst := solver.Instance{
		Direction: solver.Maximize,
		Obj:       obj,
		VarBounds: bounds,
		Eq:        eq,
		EqRHS:     poly.B,
		Leq:       leq,
		LeqRHS:    leqRHS,
	}
	res, err := adapter.Solve(ctx, inst)
	if err != nil {
		return nil, err
	}
	if res.Status != solver.OPTIMAL {
		return nil, fmt.Errorf("sampler: chebyshev-center solve returned %v: %w", res.Status, ErrEmptyAdmissibleRegion)
	}
	return res.Variables[:n], nil
}

// nullSpaceBasis returns an n x dim orthonormal basis for the null
// space of A (the affine hull's direction space), via the right
// singular vectors of A whose singular value is ~0. A nil A (no
// equality constraints) has the full R^n as its null space.
func nullSpaceBasis(A *mat.Dense, n int) (*mat.Dense, int) {
	if A == nil {
		basis := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			basis.Set(i, i, 1)
		}
		return basis, n
	}

	var svd mat.SVD
	svd.U = mat.SVDNone
	svd.V = mat.SVDFull
	if !svd.Factorize(A) {
		basis := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			basis.Set(i, i, 1)
		}
		return basis, n
	}
	values := svd.Values(nil)
	rank := 0
	for _, s := range values {
		if s > svdTol {
			rank++
		}
	}
	v := svd.VTo(nil)
	dim := n - rank
	if dim <= 0 {
		return mat.NewDense(n, 0, nil), 0
	}
	basis := mat.NewDense(n, dim, nil)
	for j := 0; j < dim; j++ {
		col := mat.Col(nil, rank+j, v)
		basis.SetCol(j, col)
	}
	return basis, dim
}

// gaussian draws a standard-normal value from stream via the
// Box-Muller transform.
func gaussian(stream rng.Stream) float64 {
	u1 := stream.Float64()
	if u1 < 1e-300 {
		u1 = 1e-300
	}
	u2 := stream.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// randomDirection draws a uniformly random direction within the
// polytope's affine hull: a standard-normal combination of the null-
// space basis columns, which is rotationally symmetric and therefore
// uniform in direction regardless of the basis chosen.
func (s *WeightSampler) randomDirection(stream rng.Stream) []float64 {
	n := len(s.vars)
	d := make([]float64, n)
	if s.dim == 0 {
		return d
	}
	coeffs := make([]float64, s.dim)
	for i := range coeffs {
		coeffs[i] = gaussian(stream)
	}
	dv := mat.NewVecDense(n, nil)
	dv.MulVec(s.basis, mat.NewVecDense(s.dim, coeffs))
	for i := 0; i < n; i++ {
		d[i] = dv.AtVec(i)
	}
	norm := floats.Norm(d, 2)
	if norm > 1e-12 {
		floats.Scale(1/norm, d)
	}
	return d
}

// feasibleSegment computes [tMin,tMax] such that x+t·d satisfies every
// inequality G·x ≤ h, by ratio test against each row.
func (s *WeightSampler) feasibleSegment(d []float64) (tMin, tMax float64) {
	tMin, tMax = math.Inf(-1), math.Inf(1)
	if s.poly.G == nil {
		return tMin, tMax
	}
	r, _ := s.poly.G.Dims()
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, s.poly.G)
		ad := floats.Dot(row, d)
		ax := floats.Dot(row, s.x)
		slack := s.poly.H[i] - ax
		switch {
		case ad > 1e-12:
			tMax = math.Min(tMax, slack/ad)
		case ad < -1e-12:
			tMin = math.Max(tMin, slack/ad)
		}
	}
	return tMin, tMax
}

// step advances the Markov chain by one hit-and-run move.
func (s *WeightSampler) step(ctx context.Context, stream rng.Stream) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.dim == 0 {
		return nil // degenerate polytope: a single admissible point, nothing to walk
	}
	d := s.randomDirection(stream)
	tMin, tMax := s.feasibleSegment(d)
	if tMin > tMax {
		return nil // numerically degenerate segment; hold position this step
	}
	t := tMin + stream.Float64()*(tMax-tMin)
	for i := range s.x {
		s.x[i] += t * d[i]
	}
	return nil
}

// Next advances the chain (running burn-in on the first call, thinning
// on every subsequent call) and returns the resulting weight
// assignment, one value per factor/hierarchy-node name.
func (s *WeightSampler) Next(ctx context.Context, stream rng.Stream) (map[string]float64, error) {
	steps := s.thin
	if s.state == Uninitialized {
		s.state = BurningIn
		steps = s.burnIn
	}
	for i := 0; i < steps; i++ {
		if err := s.step(ctx, stream); err != nil {
			return nil, err
		}
	}
	if s.state == BurningIn {
		s.state = Producing
	}
	out := make(map[string]float64, len(s.vars))
	for i, v := range s.vars {
		out[v] = s.x[i]
	}
	return out, nil
}

// State reports the sampler's current lifecycle state.
func (s *WeightSampler) State() State { return s.state }
