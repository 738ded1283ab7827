package sampler

import "errors"

// ErrEmptyAdmissibleRegion is wrapped into the error returned when the
// Chebyshev-center LP underlying a WeightSampler comes back infeasible
// or unbounded: the weight constraints given to the sampler describe an
// empty (or degenerate-to-unbounded) admissible region, which spec.md
// §7 treats as a fatal, caller-visible condition rather than a
// per-sample failure.
var ErrEmptyAdmissibleRegion = errors.New("sampler: empty admissible weight region")
