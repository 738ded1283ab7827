package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/dea-toolkit/robustdea/solver"
)

// InfeasibleAdmissibleRegionError reports that the admissible weight (or
// hierarchy-weight) region a driver built for a DMU was empty — spec.md
// §7's first fatal-error class. It always aborts the whole driver call.
type InfeasibleAdmissibleRegionError struct {
	DMU    int
	Status solver.Status
}

func (e *InfeasibleAdmissibleRegionError) Error() string {
	return fmt.Sprintf("analysis: admissible weight region is infeasible for DMU %d", e.DMU)
}

// UnboundedModelError reports that a driver's LP was unbounded in the
// feasible direction the solver explored — spec.md §7's second fatal
// class. An unbounded gap/efficiency query usually indicates a
// malformed weight constraint set (e.g. a missing upper bound).
type UnboundedModelError struct {
	DMU    int
	Status solver.Status
}

func (e *UnboundedModelError) Error() string {
	return fmt.Sprintf("analysis: model is unbounded for DMU %d", e.DMU)
}

// NumericalFailureError reports that the solver could not certify a
// result for one DMU (spec.md §7's non-fatal class): the driver
// continues with the remaining DMUs and records the failure in
// Diagnostics.FailedDMUs rather than aborting.
type NumericalFailureError struct {
	DMU int
}

func (e *NumericalFailureError) Error() string {
	return fmt.Sprintf("analysis: solver returned a numerical error for DMU %d", e.DMU)
}

// CancelledError reports that the caller's context was cancelled before
// every DMU/sample finished; Completed lists the indices that did.
type CancelledError struct {
	Completed []int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("analysis: cancelled after completing %d of the requested work", len(e.Completed))
}

func (e *CancelledError) Unwrap() error { return context.Canceled }

// DeadlineExceededError reports that the caller's context deadline
// elapsed before every DMU/sample finished; Completed lists the indices
// that did.
type DeadlineExceededError struct {
	Completed []int
}

func (e *DeadlineExceededError) Error() string {
	return fmt.Sprintf("analysis: deadline exceeded after completing %d of the requested work", len(e.Completed))
}

func (e *DeadlineExceededError) Unwrap() error { return context.DeadlineExceeded }

// ExcessiveSampleFailuresError reports that more than 10% of a SMAA-style
// driver's samples had to be skipped for numerical reasons (spec.md §7):
// the per-sample failure counter crossed the threshold where the
// resulting histogram/expectation would no longer be trustworthy.
type ExcessiveSampleFailuresError struct {
	Failed, Total int
}

func (e *ExcessiveSampleFailuresError) Error() string {
	return fmt.Sprintf("analysis: %d of %d samples failed, exceeding the 10%% tolerance", e.Failed, e.Total)
}

// ErrDistanceNotApplicable is returned by ExtremeDistance when asked to
// evaluate a ratio-model family: "distance to the best" (spec.md §4.1)
// is defined as a gap between additive value-function scores sharing one
// scale, which CCR/ImpreciseCCR's ratio scores do not.
var ErrDistanceNotApplicable = errors.New("analysis: distance to the best is only defined for VDEA-family models")

// classify partitions a workerpool.Run error slice into non-fatal
// per-index failures (recorded in Diagnostics) and the first fatal error
// (infeasible, unbounded, or context cancellation), which aborts the
// driver call per spec.md §7.
func classify(errs []error) (Diagnostics, error) {
	var diag Diagnostics
	var first error
	var completed []int
	for i, err := range errs {
		switch e := err.(type) {
		case nil:
			completed = append(completed, i)
		case *NumericalFailureError:
			diag.FailedDMUs = append(diag.FailedDMUs, i)
			completed = append(completed, i)
		default:
			if first == nil {
				first = e
			}
		}
	}
	var fatal error
	switch {
	case first == nil:
	case errors.Is(first, context.DeadlineExceeded):
		fatal = &DeadlineExceededError{Completed: completed}
	case errors.Is(first, context.Canceled):
		fatal = &CancelledError{Completed: completed}
	default:
		fatal = first
	}
	return diag, fatal
}

// resultToValue turns a solver.Result into a driver value or a typed
// error, per spec.md §7's status-to-error mapping.
func resultToValue(res solver.Result, err error, dmu int) (float64, error) {
	if err != nil {
		return 0, err
	}
	switch res.Status {
	case solver.OPTIMAL:
		return res.Objective, nil
	case solver.INFEASIBLE:
		return 0, &InfeasibleAdmissibleRegionError{DMU: dmu, Status: res.Status}
	case solver.UNBOUNDED:
		return 0, &UnboundedModelError{DMU: dmu, Status: res.Status}
	default:
		return 0, &NumericalFailureError{DMU: dmu}
	}
}

// evalSign resolves a gap-style LP (one whose objective is a preference
// margin E(a,w) − E(b,w) over the full admissible region, with no extra
// constraint beyond it) into a boolean "does the margin reach ≥ −epsilon"
// verdict. INFEASIBLE here means the admissible region itself is empty
// (there is no extra constraint that could make the gap LP infeasible on
// its own), so it is always fatal rather than a "no" answer.
func evalSign(res solver.Result, err error, dmu int, epsilon float64) (bool, error) {
	if err != nil {
		return false, err
	}
	switch res.Status {
	case solver.OPTIMAL:
		return res.Objective >= -epsilon, nil
	case solver.INFEASIBLE:
		return false, &InfeasibleAdmissibleRegionError{DMU: dmu, Status: res.Status}
	case solver.UNBOUNDED:
		return false, &UnboundedModelError{DMU: dmu, Status: res.Status}
	default:
		return false, &NumericalFailureError{DMU: dmu}
	}
}
