package workerpool

import (
	"context"
	"errors"
	"testing"
)

func TestRunPreservesOrder(t *testing.T) {
	n := 50
	results, errs := Run(context.Background(), 8, n, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})
	if err := FirstError(errs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if r != i*i {
			t.Errorf("results[%d] = %d, want %d", i, r, i*i)
		}
	}
}

func TestRunIsolatesPerIndexErrors(t *testing.T) {
	n := 10
	sentinel := errors.New("boom")
	results, errs := Run(context.Background(), 4, n, func(_ context.Context, i int) (int, error) {
		if i == 3 {
			return 0, sentinel
		}
		return i, nil
	})
	if errs[3] != sentinel {
		t.Errorf("errs[3] = %v, want sentinel", errs[3])
	}
	for i, r := range results {
		if i == 3 {
			continue
		}
		if r != i {
			t.Errorf("results[%d] = %d, want %d", i, r, i)
		}
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, errs := Run(ctx, 2, 5, func(ctx context.Context, i int) (int, error) {
		return i, ctx.Err()
	})
	_ = results
	if err := FirstError(errs); err == nil {
		t.Fatal("expected a cancellation error")
	}
}

func TestRunZeroTasks(t *testing.T) {
	results, errs := Run(context.Background(), 4, 0, func(context.Context, int) (int, error) {
		t.Fatal("fn should not be called for n=0")
		return 0, nil
	})
	if len(results) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty slices, got %v %v", results, errs)
	}
}
