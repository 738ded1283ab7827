package model

import (
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/solver"
)

// Family selects which efficiency model a gap/preference query runs
// against; each corresponds to one of the BuildXGap constructors.
type Family int

const (
	CCR Family = iota
	VDEA
	HierarchicalVDEA
	ImpreciseVDEA
	ImpreciseCCR
)

func (f Family) String() string {
	switch f {
	case CCR:
		return "CCR"
	case VDEA:
		return "VDEA"
	case HierarchicalVDEA:
		return "HierarchicalVDEA"
	case ImpreciseVDEA:
		return "ImpreciseVDEA"
	case ImpreciseCCR:
		return "ImpreciseCCR"
	default:
		return "Family(?)"
	}
}

// gap dispatches to the family-specific Build*Gap constructor. It is
// the single place spec.md §4.3–§4.4's necessary/possible preference
// and rank-bound questions reduce to, parameterized only by direction.
func gap(p *dea.Problem, family Family, a, b int, dir solver.Direction) ModelSpec {
	switch family {
	case CCR:
		return BuildCCRGap(p, a, b, dir)
	case HierarchicalVDEA:
		return BuildHierarchicalVDEAGap(p, a, b, dir)
	case ImpreciseVDEA:
		return BuildImpreciseVDEAGap(p, a, b, dir)
	case ImpreciseCCR:
		return BuildImpreciseCCRGap(p, a, b, dir)
	default:
		return BuildVDEAGap(p, a, b, dir)
	}
}

// BuildNecessaryPreference builds the LP testing "s necessarily
// precedes t": min_w (E(s,w) − E(t,w)) over the admissible region.
// Necessary preference holds iff the optimal objective is ≥ 0 (within
// the caller's epsilon).
func BuildNecessaryPreference(p *dea.Problem, family Family, s, t int) ModelSpec {
	return gap(p, family, s, t, solver.Minimize)
}

// BuildPossiblePreference builds the LP testing "s possibly precedes
// t": max_w (E(s,w) − E(t,w)) over the admissible region. Possible
// preference holds iff the optimal objective is ≥ 0.
func BuildPossiblePreference(p *dea.Problem, family Family, s, t int) ModelSpec {
	return gap(p, family, s, t, solver.Maximize)
}

// BuildRankIndicator builds the LP testing whether there is an
// admissible weight making rival k at least (rank-)as efficient as s:
// max_w (E(k,w) − E(s,w)).
func BuildRankIndicator(p *dea.Problem, family Family, s, rival int) ModelSpec {
	return gap(p, family, rival, s, solver.Maximize)
}
