package search

import "github.com/flatvec/flatvec/distance"

// InnerProductByIdx computes, for each query i and each column j, the inner
// product of x row i against y row ids[i*ny+j], writing into out at the
// same position. Negative entries in ids are skipped: out[i*ny+j] is left
// at whatever value it already held.
func InnerProductByIdx(x, y []float32, ids []int64, score ScoreFunc, d, nx, ny int, out []float32) {
	byIdx(x, y, ids, score, d, nx, ny, out, true)
}

// L2SqrByIdx computes, for each query i and each column j, the squared-L2
// distance of x row i against y row ids[i*ny+j], writing into out at the
// same position.
//
// The reference this module is modeled on skips negative ids in its
// by-column inner-product and L2² kernels but not in its by-index top-k
// kernel — almost certainly an oversight rather than a deliberate
// difference. This implementation applies the negative-id skip
// consistently everywhere, including KNNL2SqrByIdx, rather than
// reproducing that inconsistency.
func L2SqrByIdx(x, y []float32, ids []int64, score ScoreFunc, d, nx, ny int, out []float32) {
	byIdx(x, y, ids, score, d, nx, ny, out, true)
}

func byIdx(x, y []float32, ids []int64, score ScoreFunc, d, nx, ny int, out []float32, skipNegative bool) {
	for i := 0; i < nx; i++ {
		xi := x[i*d : (i+1)*d]
		row := ids[i*ny : (i+1)*ny]
		for j, id := range row {
			if skipNegative && id < 0 {
				continue
			}
			out[i*ny+j] = score(xi, y[int(id)*d:(int(id)+1)*d])
		}
	}
}

// PairwiseIndexedInnerProduct computes n independent inner products, the
// j-th being between x row ix[j] and y row iy[j], writing into out[j].
// Pairs where either index is negative are skipped, leaving out[j]
// untouched.
func PairwiseIndexedInnerProduct(x, y []float32, ix, iy []int64, score ScoreFunc, d int, out []float32) {
	pairwiseIndexed(x, y, ix, iy, score, d, out)
}

// PairwiseIndexedL2Sqr computes n independent squared-L2 distances, the
// j-th being between x row ix[j] and y row iy[j], writing into out[j].
func PairwiseIndexedL2Sqr(x, y []float32, ix, iy []int64, score ScoreFunc, d int, out []float32) {
	pairwiseIndexed(x, y, ix, iy, score, d, out)
}

func pairwiseIndexed(x, y []float32, ix, iy []int64, score ScoreFunc, d int, out []float32) {
	for j := range out {
		a, b := ix[j], iy[j]
		if a < 0 || b < 0 {
			continue
		}
		out[j] = score(x[int(a)*d:(int(a)+1)*d], y[int(b)*d:(int(b)+1)*d])
	}
}

// KNNInnerProductByIdx runs the direct scalar-loop path restricted to the
// y-subset named per query in ids (row i's candidates are
// ids[i*ny+j], j in [0, ny)), feeding a top-k handler directly with no
// GEMM involved. Negative ids are skipped.
func KNNInnerProductByIdx(x, y []float32, ids []int64, d, nx, ny int, handler *TopKHandler) {
	knnByIdx(x, y, ids, distance.InnerProduct, d, nx, ny, handler)
}

// KNNL2SqrByIdx is the squared-L2 counterpart of KNNInnerProductByIdx. See
// L2SqrByIdx's doc comment for the negative-id skip decision this
// implementation makes uniformly, unlike the reference it is modeled on.
func KNNL2SqrByIdx(x, y []float32, ids []int64, d, nx, ny int, handler *TopKHandler) {
	knnByIdx(x, y, ids, distance.L2Sqr, d, nx, ny, handler)
}

func knnByIdx(x, y []float32, ids []int64, score ScoreFunc, d, nx, ny int, handler *TopKHandler) {
	for i := 0; i < nx; i++ {
		xi := x[i*d : (i+1)*d]
		row := ids[i*ny : (i+1)*ny]

		handler.Begin(i)
		for _, id := range row {
			if id < 0 {
				continue
			}
			handler.AddResult(i, score(xi, y[int(id)*d:(int(id)+1)*d]), id)
		}
	}
}
