// Package analysis implements the six robustness-analysis drivers
// spec.md §4.2–§4.6 define: ExtremeEfficiency, ExtremeDistance,
// ExtremeRank, PreferenceRelations, SMAA (efficiency/distance/rank
// distributions), and SMAAPreferences (PEOI). Drivers are free
// functions over (problem, model family, solver.Adapter, options)
// rather than methods on per-model driver types, following the same
// "narrow record + free-standing constructor" discipline model.ModelSpec
// established (spec.md §9) — polymorphism here is over model.Family,
// not over a driver class hierarchy.
package analysis

// ExtremeEfficiencyOptions configures ExtremeEfficiency (spec.md §6).
type ExtremeEfficiencyOptions struct {
	// Epsilon is reserved for strict-inequality comparisons a future
	// super-efficiency tie-break might need; present for symmetry with
	// ExtremeRankOptions/PreferenceOptions and spec.md §6's table.
	Epsilon float64
	// SuperEfficiency selects the Andersen–Petersen variant for the
	// maximum-efficiency question. It is honoured for the CCR family only;
	// for every other family, ImpreciseCCR included, it has no effect.
	SuperEfficiency bool
	// Parallelism bounds the number of concurrent solver calls across
	// DMUs; 0 resolves to 1 (sequential).
	Parallelism int
}

// DefaultExtremeEfficiencyOptions returns spec.md §6's defaults.
func DefaultExtremeEfficiencyOptions() ExtremeEfficiencyOptions {
	return ExtremeEfficiencyOptions{Epsilon: 1e-9, Parallelism: 1}
}

func (o ExtremeEfficiencyOptions) resolved() ExtremeEfficiencyOptions {
	if o.Epsilon == 0 {
		o.Epsilon = 1e-9
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}

// ExtremeDistanceOptions configures ExtremeDistance. spec.md §6 lists no
// options beyond the common solver/concurrency knobs.
type ExtremeDistanceOptions struct {
	Parallelism int
}

// DefaultExtremeDistanceOptions returns the driver's defaults.
func DefaultExtremeDistanceOptions() ExtremeDistanceOptions {
	return ExtremeDistanceOptions{Parallelism: 1}
}

func (o ExtremeDistanceOptions) resolved() ExtremeDistanceOptions {
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}

// ExtremeRankOptions configures ExtremeRank.
type ExtremeRankOptions struct {
	// Epsilon is the strict-inequality tolerance spec.md §4.3 fixes at
	// 1e-9 but requires be configurable (§9 Open Questions).
	Epsilon     float64
	Parallelism int
}

// DefaultExtremeRankOptions returns spec.md §4.3/§9's default epsilon.
func DefaultExtremeRankOptions() ExtremeRankOptions {
	return ExtremeRankOptions{Epsilon: 1e-9, Parallelism: 1}
}

func (o ExtremeRankOptions) resolved() ExtremeRankOptions {
	if o.Epsilon == 0 {
		o.Epsilon = 1e-9
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}

// PreferenceOptions configures PreferenceRelations.
type PreferenceOptions struct {
	Epsilon     float64
	Parallelism int
}

// DefaultPreferenceOptions returns spec.md §4.4/§9's default epsilon.
func DefaultPreferenceOptions() PreferenceOptions {
	return PreferenceOptions{Epsilon: 1e-9, Parallelism: 1}
}

func (o PreferenceOptions) resolved() PreferenceOptions {
	if o.Epsilon == 0 {
		o.Epsilon = 1e-9
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}

// SMAAOptions configures SMAA (spec.md §6's table entry for "SMAA (any
// indicator)").
type SMAAOptions struct {
	Samples     int
	Bins        int
	Seed        uint64
	Parallelism int
}

// DefaultSMAAOptions returns a reasonable default sampling budget; spec.md
// requires Samples>0, Bins>0 be supplied by the caller (no silent default
// sample count is implied by the spec, but a default makes the zero value
// usable for quick exploratory calls).
func DefaultSMAAOptions() SMAAOptions {
	return SMAAOptions{Samples: 1000, Bins: 10, Seed: 1, Parallelism: 1}
}

func (o SMAAOptions) resolved() SMAAOptions {
	if o.Samples <= 0 {
		o.Samples = 1000
	}
	if o.Bins <= 0 {
		o.Bins = 10
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}

// SMAAPreferenceOptions configures SMAAPreferences (PEOI).
type SMAAPreferenceOptions struct {
	Samples     int
	Seed        uint64
	Parallelism int
}

// DefaultSMAAPreferenceOptions returns the driver's defaults.
func DefaultSMAAPreferenceOptions() SMAAPreferenceOptions {
	return SMAAPreferenceOptions{Samples: 1000, Seed: 1, Parallelism: 1}
}

func (o SMAAPreferenceOptions) resolved() SMAAPreferenceOptions {
	if o.Samples <= 0 {
		o.Samples = 1000
	}
	if o.Parallelism < 1 {
		o.Parallelism = 1
	}
	return o
}

// Diagnostics carries the non-fatal failure counters spec.md §7
// requires alongside a driver's result: which DMUs hit a
// NumericalFailureError (extremes/ranks/distances/preferences) and how
// many SMAA samples were skipped for numerical reasons.
type Diagnostics struct {
	FailedDMUs    []int
	FailedSamples int
}
