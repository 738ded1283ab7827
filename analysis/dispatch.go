package analysis

import (
	"github.com/dea-toolkit/robustdea/dea"
	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/solver"
)

// buildEfficiency dispatches to the family-specific efficiency
// constructor. super selects the Andersen–Petersen variant, honoured
// only for CCR's maximize question (spec.md §4.1).
func buildEfficiency(p *dea.Problem, family model.Family, subject int, dir solver.Direction, super bool) model.ModelSpec {
	switch family {
	case model.CCR:
		if super && dir == solver.Maximize {
			return model.BuildCCRSuperEfficiency(p, subject)
		}
		if dir == solver.Maximize {
			return model.BuildCCRMaxEfficiency(p, subject)
		}
		return model.BuildCCRMinEfficiency(p, subject)
	case model.HierarchicalVDEA:
		return model.BuildHierarchicalVDEA(p, subject, dir)
	case model.ImpreciseVDEA:
		return model.BuildImpreciseVDEA(p, subject, dir)
	case model.ImpreciseCCR:
		return model.BuildImpreciseCCR(p, subject, dir)
	default:
		return model.BuildVDEAEfficiency(p, subject, dir)
	}
}

// buildDistance dispatches to the family-specific distance-to-the-best
// constructor. CCR and ImpreciseCCR have none (see
// ErrDistanceNotApplicable).
func buildDistance(p *dea.Problem, family model.Family, subject int) (model.ModelSpec, bool) {
	switch family {
	case model.CCR, model.ImpreciseCCR:
		return model.ModelSpec{}, false
	case model.HierarchicalVDEA:
		return model.BuildHierarchicalVDEADistance(p, subject), true
	case model.ImpreciseVDEA:
		return model.BuildImpreciseVDEADistance(p, subject), true
	default:
		return model.BuildVDEADistance(p, subject), true
	}
}
