package flatvec

import (
	"context"

	"github.com/flatvec/flatvec/distance"
	"github.com/flatvec/flatvec/internal/interrupt"
	"github.com/flatvec/flatvec/internal/worker"
	"github.com/flatvec/flatvec/search"
)

// Result is a single (id, score) pair returned by a search call. Score is
// a squared-L2 distance (smaller is better) or an inner-product similarity
// (larger is better), depending on which method produced it.
type Result struct {
	ID    int64
	Score float32
}

// Searcher runs brute-force searches over a caller-owned query batch and
// database, choosing between a direct scalar-loop path and a GEMM-tiled
// path based on query count.
type Searcher struct {
	opts options
	pool *worker.Pool
}

// New constructs a Searcher. A single Searcher can be reused across many
// calls with different X, Y, d, nx and ny; it owns no database state of
// its own.
func New(opts ...Option) *Searcher {
	o := applyOptions(opts)
	return &Searcher{
		opts: o,
		pool: worker.New(o.workers),
	}
}

// KNNInnerProduct returns the k highest inner-product matches in Y for
// each of the nx queries in X, descending by similarity.
func (s *Searcher) KNNInnerProduct(ctx context.Context, x, y []float32, d, nx, ny, k int) ([][]Result, error) {
	return s.knn(ctx, x, y, d, nx, ny, k, search.MinHeapPolarity, distance.InnerProduct, nil)
}

// KNNL2Sqr returns the k smallest squared-L2 distances in Y for each of
// the nx queries in X, ascending by distance. yNorms, if non-nil, must
// hold the precomputed squared L2 norm of each of the ny rows of Y and is
// reused across calls instead of being recomputed; it is only consulted on
// the GEMM path.
func (s *Searcher) KNNL2Sqr(ctx context.Context, x, y []float32, d, nx, ny, k int, yNorms []float32) ([][]Result, error) {
	return s.knn(ctx, x, y, d, nx, ny, k, search.MaxHeapPolarity, distance.L2Sqr, yNorms)
}

func (s *Searcher) knn(ctx context.Context, x, y []float32, d, nx, ny, k int, polarity search.Polarity, score search.ScoreFunc, yNorms []float32) ([][]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	logger := s.opts.logger.WithDimension(d).WithBatch(nx, ny)
	if nx == 0 || ny == 0 {
		logger.LogSearch(ctx, "noop", k, nx, ny, nil)
		return make([][]Result, nx), nil
	}

	handler := search.NewTopKHandler(polarity, nx, k)
	hook := interrupt.NewHook(ctx)

	var err error
	var path string
	if nx < s.opts.blasThreshold {
		path = "direct"
		err = search.DirectTopK(ctx, x, y, d, nx, ny, score, handler, s.pool, hook)
	} else {
		path = "gemm"
		if polarity == search.MinHeapPolarity {
			err = search.GEMMInnerProduct(x, y, d, nx, ny, handler, s.opts.queryBS, s.opts.databaseBS, hook)
		} else {
			err = search.GEMML2Sqr(x, y, d, nx, ny, handler, yNorms, s.opts.queryBS, s.opts.databaseBS, hook)
		}
	}
	err = translateCancellation(err)
	logger.LogSearch(ctx, path, k, nx, ny, err)
	if err != nil {
		return nil, err
	}

	out := make([][]Result, nx)
	for i := 0; i < nx; i++ {
		ids, scores := handler.End(i)
		out[i] = zip(ids, scores)
	}
	return out, nil
}

// RangeSearchInnerProduct returns every (id, similarity) pair in Y whose
// similarity to query i is >= radius, for each of the nx queries in X. No
// ordering is guaranteed within a query's result slice.
func (s *Searcher) RangeSearchInnerProduct(ctx context.Context, x, y []float32, d, nx, ny int, radius float32) ([][]Result, error) {
	return s.rangeSearch(ctx, x, y, d, nx, ny, radius, search.MinHeapPolarity, distance.InnerProduct, nil)
}

// RangeSearchL2Sqr returns every (id, distance) pair in Y whose squared-L2
// distance to query i is <= radius, for each of the nx queries in X. No
// ordering is guaranteed within a query's result slice. yNorms behaves as
// in KNNL2Sqr.
func (s *Searcher) RangeSearchL2Sqr(ctx context.Context, x, y []float32, d, nx, ny int, radius float32, yNorms []float32) ([][]Result, error) {
	return s.rangeSearch(ctx, x, y, d, nx, ny, radius, search.MaxHeapPolarity, distance.L2Sqr, yNorms)
}

func (s *Searcher) rangeSearch(ctx context.Context, x, y []float32, d, nx, ny int, radius float32, polarity search.Polarity, score search.ScoreFunc, yNorms []float32) ([][]Result, error) {
	logger := s.opts.logger.WithDimension(d).WithBatch(nx, ny)
	if nx == 0 || ny == 0 {
		logger.LogRangeSearch(ctx, "noop", radius, nx, ny, 0, nil)
		return make([][]Result, nx), nil
	}

	handler := search.NewRadiusHandler(polarity, radius, nx)
	hook := interrupt.NewHook(ctx)

	var err error
	var path string
	if nx < s.opts.blasThreshold {
		path = "direct"
		err = search.DirectRadius(ctx, x, y, d, nx, ny, score, handler, s.pool, hook)
	} else {
		path = "gemm"
		if polarity == search.MinHeapPolarity {
			err = search.GEMMInnerProduct(x, y, d, nx, ny, handler, s.opts.queryBS, s.opts.databaseBS, hook)
		} else {
			err = search.GEMML2Sqr(x, y, d, nx, ny, handler, yNorms, s.opts.queryBS, s.opts.databaseBS, hook)
		}
	}
	err = translateCancellation(err)
	if err != nil {
		logger.LogRangeSearch(ctx, path, radius, nx, ny, 0, err)
		return nil, err
	}

	out := make([][]Result, nx)
	total := 0
	for i := 0; i < nx; i++ {
		results := handler.Finalize(i)
		out[i] = make([]Result, len(results))
		for j, r := range results {
			out[i][j] = Result{ID: r.ID, Score: r.Score}
		}
		total += len(results)
	}
	logger.LogRangeSearch(ctx, path, radius, nx, ny, total, nil)
	return out, nil
}

// KNNInnerProductByIdx restricts knn_inner_product to a per-query subset
// of Y named by ids: for query i, candidate j is Y row ids[i*ny+j].
// Negative entries in ids are skipped. The direct path is always used.
func (s *Searcher) KNNInnerProductByIdx(x, y []float32, ids []int64, d, nx, ny, k int) ([][]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	handler := search.NewTopKHandler(search.MinHeapPolarity, nx, k)
	search.KNNInnerProductByIdx(x, y, ids, d, nx, ny, handler)
	return endAll(handler, nx), nil
}

// KNNL2SqrByIdx is the squared-L2 counterpart of KNNInnerProductByIdx.
func (s *Searcher) KNNL2SqrByIdx(x, y []float32, ids []int64, d, nx, ny, k int) ([][]Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	handler := search.NewTopKHandler(search.MaxHeapPolarity, nx, k)
	search.KNNL2SqrByIdx(x, y, ids, d, nx, ny, handler)
	return endAll(handler, nx), nil
}

// PairwiseL2Sqr computes the dense nq x nb cross-distance matrix between
// xq and xb into the caller-allocated dis buffer. See search.PairwiseL2Sqr
// for the stride conventions.
func (s *Searcher) PairwiseL2Sqr(xq, xb []float32, d, nq, nb, ldq, ldb, ldd int, dis []float32) {
	search.PairwiseL2Sqr(xq, xb, d, nq, nb, ldq, ldb, ldd, dis)
}

// PairwiseIndexedInnerProduct computes len(out) independent inner products,
// the j-th between x row ix[j] and y row iy[j]. Pairs where either index is
// negative are skipped, leaving out[j] untouched.
func (s *Searcher) PairwiseIndexedInnerProduct(x, y []float32, ix, iy []int64, d int, out []float32) {
	search.PairwiseIndexedInnerProduct(x, y, ix, iy, distance.InnerProduct, d, out)
}

// PairwiseIndexedL2Sqr is the squared-L2 counterpart of
// PairwiseIndexedInnerProduct.
func (s *Searcher) PairwiseIndexedL2Sqr(x, y []float32, ix, iy []int64, d int, out []float32) {
	search.PairwiseIndexedL2Sqr(x, y, ix, iy, distance.L2Sqr, d, out)
}

func endAll(handler *search.TopKHandler, nx int) [][]Result {
	out := make([][]Result, nx)
	for i := 0; i < nx; i++ {
		ids, scores := handler.End(i)
		out[i] = zip(ids, scores)
	}
	return out
}

func zip(ids []int64, scores []float32) []Result {
	out := make([]Result, len(ids))
	for i := range ids {
		out[i] = Result{ID: ids[i], Score: scores[i]}
	}
	return out
}
