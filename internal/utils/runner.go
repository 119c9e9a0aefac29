package utils

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner runs tasks on an errgroup with at most a fixed number in flight.
// The first task error cancels Context and is returned by Wait.
type Runner struct {
	ctx context.Context
	eg  *errgroup.Group
	sem chan struct{}
}

// NewRunner creates a Runner bounded to maxConcurrency tasks. Values below 1
// use runtime.NumCPU().
func NewRunner(parent context.Context, maxConcurrency int) *Runner {
	if maxConcurrency < 1 {
		maxConcurrency = runtime.NumCPU()
	}
	eg, ctx := errgroup.WithContext(parent)
	return &Runner{
		ctx: ctx,
		eg:  eg,
		sem: make(chan struct{}, maxConcurrency),
	}
}

// Context is cancelled when a task fails or the parent is done.
func (r *Runner) Context() context.Context {
	return r.ctx
}

// Go schedules fn. It does not block the caller. Once Context is done fn is
// never started and the context error is reported instead.
func (r *Runner) Go(fn func(ctx context.Context) error) {
	r.eg.Go(func() error {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		select {
		case r.sem <- struct{}{}:
		case <-r.ctx.Done():
			return r.ctx.Err()
		}
		defer func() { <-r.sem }()
		return fn(r.ctx)
	})
}

// Wait blocks until every task returned and reports the first error.
func (r *Runner) Wait() error {
	return r.eg.Wait()
}
