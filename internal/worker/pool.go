// Package worker implements the fork-join fan-out the direct search path
// uses to spread queries across goroutines: a bounded set of workers, each
// statically assigned a contiguous range of queries, run under cooperative
// cancellation.
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool fans a query range out across a fixed number of goroutines.
type Pool struct {
	workers int
}

// New returns a pool with the given worker count, clamped to at least 1.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers reports the pool's configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// PartitionQueries splits [0, n) into at most p.Workers() contiguous,
// roughly equal ranges and invokes fn once per range concurrently, each
// call on its own goroutine. fn receives the worker's ordinal (useful for
// per-worker scratch state allocated once, not per query) and its
// half-open [i0, i1) range. The first non-nil error returned by any fn
// cancels ctx for the remaining workers and is returned from
// PartitionQueries. Cancellation of the caller's own context reaches fn
// only through its ctx argument; whatever error fn then returns is what
// PartitionQueries reports.
func (p *Pool) PartitionQueries(ctx context.Context, n int, fn func(ctx context.Context, worker, i0, i1 int) error) error {
	if n == 0 {
		return nil
	}

	workers := p.workers
	if workers > n {
		workers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		i0 := w * chunk
		if i0 >= n {
			break
		}
		i1 := min(i0+chunk, n)

		w := w
		g.Go(func() error {
			return fn(gctx, w, i0, i1)
		})
	}

	return g.Wait()
}
