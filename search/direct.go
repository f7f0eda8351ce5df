package search

import (
	"context"

	"github.com/flatvec/flatvec/internal/interrupt"
	"github.com/flatvec/flatvec/internal/worker"
)

// ScoreFunc computes one query-database score for a single pair of
// d-dimensional rows: an inner product or a squared-L2 distance.
type ScoreFunc func(a, b []float32) float32

// DirectTopK runs the small-batch scalar-loop path against a top-k
// handler: queries are partitioned across pool's workers, and each worker
// scores its assigned queries against every one of the ny database rows in
// turn. score is called once per (query, database row) pair.
func DirectTopK(ctx context.Context, x, y []float32, d, nx, ny int, score ScoreFunc, handler *TopKHandler, pool *worker.Pool, hook interrupt.Checker) error {
	return direct(ctx, x, y, d, nx, ny, score, pool, hook, func(i int, s float32, j int64) {
		handler.AddResult(i, s, j)
	}, handler.Begin)
}

// DirectRadius runs the small-batch scalar-loop path against a radius
// handler. Every candidate is offered to the handler with tile offset 0,
// since the direct path has no notion of database tiling.
func DirectRadius(ctx context.Context, x, y []float32, d, nx, ny int, score ScoreFunc, handler *RadiusHandler, pool *worker.Pool, hook interrupt.Checker) error {
	return direct(ctx, x, y, d, nx, ny, score, pool, hook, func(i int, s float32, j int64) {
		handler.AddResult(i, 0, s, j)
	}, nil)
}

func direct(ctx context.Context, x, y []float32, d, nx, ny int, score ScoreFunc, pool *worker.Pool, hook interrupt.Checker, add func(i int, s float32, j int64), begin func(i int)) error {
	if nx == 0 || ny == 0 {
		return nil
	}

	return pool.PartitionQueries(ctx, nx, func(ctx context.Context, _, i0, i1 int) error {
		for i := i0; i < i1; i++ {
			if begin != nil {
				begin(i)
			}

			xi := x[i*d : (i+1)*d]
			for j := 0; j < ny; j++ {
				yj := y[j*d : (j+1)*d]
				add(i, score(xi, yj), int64(j))
			}

			if hook.Tick() {
				return hook.Err()
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		return nil
	})
}
