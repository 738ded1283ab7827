// Package sampler implements the admissible-region samplers spec.md
// §4.5–§4.7 need: a uniform hit-and-run sampler over the weight
// polytope, and direct (non-Markov) samplers for value-function shape
// realizations, imprecise performance realizations, and ordinal-rank
// realizations. Only the weight sampler is a Markov chain; the others
// draw one i.i.d. sample per call given a stream, since the shape and
// performance envelopes are independent boxes rather than a polytope
// that needs a random-walk to cover uniformly.
package sampler

// State is the hit-and-run sampler's lifecycle, spec.md §4.9: a fresh
// sampler starts Uninitialized, transitions to BurningIn on its first
// draw, and reaches Producing once the burn-in walk (B0 = 10·dim steps)
// completes. Every draw after that point is a production sample.
type State int

const (
	Uninitialized State = iota
	BurningIn
	Producing
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case BurningIn:
		return "BurningIn"
	case Producing:
		return "Producing"
	default:
		return "State(?)"
	}
}
