// Package norm provides batch norm utilities used by the GEMM-tiled
// search path: computing and caching squared L2 norms, renormalizing
// rows to unit length, and converting a precomputed inner-product
// matrix into squared L2 distances in place.
package norm

import (
	"math"
	"runtime"
	"sync"

	"github.com/flatvec/flatvec/distance"
)

// parallelThreshold is the row count below which norm computation runs
// on the calling goroutine; below it, fan-out overhead would dominate.
const parallelThreshold = 4096

// L2SqrBatch computes the squared L2 norm of each of the n rows of
// dimension d packed row-major in x, writing into out (which must have
// length n). Rows are processed in parallel once n is large enough to
// be worth the fan-out.
func L2SqrBatch(x []float32, d, n int, out []float32) {
	if n == 0 {
		return
	}

	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			out[i] = distance.NormL2Sqr(x[i*d : (i+1)*d])
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := min(start+chunk, n)

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = distance.NormL2Sqr(x[i*d : (i+1)*d])
			}
		}(start, end)
	}
	wg.Wait()
}

// L2Batch computes the (non-squared) L2 norm of each row, i.e. the
// elementwise square root of L2SqrBatch.
func L2Batch(x []float32, d, n int, out []float32) {
	L2SqrBatch(x, d, n, out)
	for i := range out[:n] {
		out[i] = float32(math.Sqrt(float64(out[i])))
	}
}

// Renormalize scales each of the n rows of dimension d in place by
// 1/||row||, leaving zero rows untouched. No allocation.
func Renormalize(x []float32, d, n int) {
	for i := 0; i < n; i++ {
		row := x[i*d : (i+1)*d]
		normSqr := distance.NormL2Sqr(row)
		if normSqr <= 0 {
			continue
		}
		inv := float32(1.0 / math.Sqrt(float64(normSqr)))
		for j := range row {
			row[j] *= inv
		}
	}
}

// InnerProductToL2Sqr transforms dis, an n1 x n2 row-major matrix of
// precomputed inner products, into squared L2 distances in place using
// the identity dis[i,j] = normsX[i] + normsY[j] - 2*dis[i,j]. Negative
// results caused by floating-point cancellation are clamped to 0.
func InnerProductToL2Sqr(dis []float32, normsX, normsY []float32, n1, n2 int) {
	for i := 0; i < n1; i++ {
		row := dis[i*n2 : (i+1)*n2]
		nx := normsX[i]
		for j, ip := range row {
			v := nx + normsY[j] - 2*ip
			if v < 0 {
				v = 0
			}
			row[j] = v
		}
	}
}
