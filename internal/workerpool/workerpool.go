// Package workerpool provides the bounded, cancellable, order-preserving
// fan-out every analysis driver in package analysis needs: DMU-indexed
// tasks (extremes, rank bounds, PEOI rows) and sample-indexed tasks
// (SMAA) are both "run this function once per index, in any order, and
// hand me back a slice in index order." This collapses
// gonum.org/v1/gonum/optimize's GlobalMethod.RunGlobal
// operation/result-channel concurrent dispatch (optimize/global.go) —
// built there for one long-lived optimizer method — into one reusable
// function, since no driver here needs RunGlobal's richer
// MajorIteration/MethodDone iteration protocol.
package workerpool

import (
	"context"
	"sync"
)

// task pairs a work index with its position so results can be written
// back to the right slot regardless of completion order.
type task struct {
	index int
}

// Run executes fn once for every index in [0,n), using at most
// parallelism concurrent goroutines, and returns a length-n slice with
// results[i] = the value fn(ctx, i) returned for index i — independent
// of the order tasks actually complete in (spec.md §5's ordering
// guarantee). If fn returns an error for some index, that index's error
// is recorded but other in-flight and not-yet-started tasks still run;
// Run returns a length-n error slice (errs[i] is index i's error, or nil)
// alongside the partial results slice, and FirstError picks the first
// non-nil one in index order, so a cancelled or partially-failed call can
// still report what finished (spec.md §5, §7's partial-results
// contract). If ctx is cancelled, not-yet-started tasks are skipped and
// their slot keeps its zero value.
func Run[R any](ctx context.Context, parallelism, n int, fn func(ctx context.Context, i int) (R, error)) ([]R, []error) {
	results := make([]R, n)
	errs := make([]error, n)
	if n == 0 {
		return results, errs
	}
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > n {
		parallelism = n
	}

	tasks := make(chan task, n)
	for i := 0; i < n; i++ {
		tasks <- task{index: i}
	}
	close(tasks)

	var wg sync.WaitGroup
	wg.Add(parallelism)
	for w := 0; w < parallelism; w++ {
		go func() {
			defer wg.Done()
			for t := range tasks {
				if err := ctx.Err(); err != nil {
					errs[t.index] = err
					continue
				}
				r, err := fn(ctx, t.index)
				results[t.index] = r
				errs[t.index] = err
			}
		}()
	}
	wg.Wait()
	return results, errs
}

// FirstError returns the first non-nil error in errs, in index order,
// or nil if every task succeeded.
func FirstError(errs []error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
