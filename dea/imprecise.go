package dea

// ImpreciseInfo records, per factor, which DMUs carry an interval
// performance rather than the precise baseline value, which factors are
// ordinal, and the numerical tolerances that govern how ordinal ranks
// and value-function monotonicity are enforced (spec.md §3, §9). It is
// immutable once built: a Builder produces a fresh Problem rather than
// mutating an existing one's ImpreciseInfo in place (spec.md §9's note
// on "shared mutable config").
type ImpreciseInfo struct {
	// Intervals maps factor name to DMU index to [lo,hi], for DMUs whose
	// performance on that factor is an interval rather than precise.
	Intervals map[string]map[int][2]float64

	// OrdinalFactors is the set of factor names whose performance is an
	// ordinal rank rather than a cardinal quantity.
	OrdinalFactors map[string]bool

	// OrdinalRanks maps factor name to a length-n slice of distinct
	// ranks 1..n, one per DMU, for each factor in OrdinalFactors.
	OrdinalRanks map[string][]int

	// OrdinalRatio is the minimum multiplicative gap required between
	// the realized precise values of two DMUs adjacent in ordinal rank.
	// Must be >= 1; default 1.0001.
	OrdinalRatio float64

	// OrdinalMin is the minimum realized precise value assignable to
	// the lowest-ranked DMU on an ordinal factor. Must be >= 0; default 0.
	OrdinalMin float64

	// VFMonotonicityRatio is the minimum ratio between consecutive
	// value-function increments along the ordinal axis. Must be >= 1;
	// default 1.
	VFMonotonicityRatio float64
}

// DefaultImpreciseTolerances returns the spec.md §3 defaults.
func DefaultImpreciseTolerances() ImpreciseInfo {
	return ImpreciseInfo{
		OrdinalRatio:        1.0001,
		OrdinalMin:          0,
		VFMonotonicityRatio: 1,
	}
}

// ImpreciseRobotsPreset returns the stress-test tolerance values used by
// the "robots" fixtures referenced in spec.md §9's Open Questions
// (ordinalRatio=1.1, ordinalMin=0.01); it is a named fixture, not a
// silent default, since spec.md is explicit that whether these are
// semantic tolerances or numeric stabilizers is unresolved.
func ImpreciseRobotsPreset() ImpreciseInfo {
	p := DefaultImpreciseTolerances()
	p.OrdinalRatio = 1.1
	p.OrdinalMin = 0.01
	return p
}

// IsInterval reports whether DMU i's performance on factor f is an
// interval rather than the precise baseline.
func (info *ImpreciseInfo) IsInterval(factor string, dmu int) bool {
	if info == nil || info.Intervals == nil {
		return false
	}
	_, ok := info.Intervals[factor][dmu]
	return ok
}

// Interval returns DMU i's [lo,hi] bound on factor f, and whether one is
// recorded.
func (info *ImpreciseInfo) Interval(factor string, dmu int) ([2]float64, bool) {
	if info == nil || info.Intervals == nil {
		return [2]float64{}, false
	}
	v, ok := info.Intervals[factor][dmu]
	return v, ok
}

// IsOrdinal reports whether factor f is ordinal.
func (info *ImpreciseInfo) IsOrdinal(factor string) bool {
	return info != nil && info.OrdinalFactors != nil && info.OrdinalFactors[factor]
}

func (info *ImpreciseInfo) validate(factors []string, n int) error {
	if info == nil {
		return nil
	}
	if info.OrdinalRatio < 1 {
		return configErr("ordinalRatio must be >= 1")
	}
	if info.OrdinalMin < 0 {
		return configErr("ordinalMin must be >= 0")
	}
	if info.VFMonotonicityRatio < 1 {
		return configErr("vfMonotonicityRatio must be >= 1")
	}
	known := make(map[string]bool, len(factors))
	for _, f := range factors {
		known[f] = true
	}
	for f, byDMU := range info.Intervals {
		if !known[f] {
			return configErrFactor("imprecise interval references unknown factor", f)
		}
		for dmu, bounds := range byDMU {
			if dmu < 0 || dmu >= n {
				return configErrDMU("imprecise interval references out-of-range DMU", dmu)
			}
			if bounds[0] > bounds[1] {
				return configErrFactor("imprecise interval has lo > hi", f)
			}
		}
	}
	for f := range info.OrdinalFactors {
		if !known[f] {
			return configErrFactor("ordinal factor set references unknown factor", f)
		}
		ranks, ok := info.OrdinalRanks[f]
		if !ok || len(ranks) != n {
			return configErrFactor("ordinal factor is missing a rank for every DMU", f)
		}
		seen := make([]bool, n+1)
		for _, r := range ranks {
			if r < 1 || r > n || seen[r] {
				return configErrFactor("ordinal rank is not a permutation of 1..n", f)
			}
			seen[r] = true
		}
	}
	return nil
}
