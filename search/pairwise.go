package search

import (
	"github.com/flatvec/flatvec/distance"
	"github.com/flatvec/flatvec/internal/gemm"
)

// PairwiseL2Sqr computes the dense nq x nb cross-distance matrix
// dis[i,j] = ||xq[i] - xb[j]||^2 via a single GEMM call with alpha=-2,
// beta=1, after preloading dis[i,j] = ||xq[i]||^2 + ||xb[j]||^2 in place to
// avoid a separate allocation for the norm-sum term.
//
// ldq, ldb and ldd are the row strides (in elements) of xq, xb and dis
// respectively; passing -1 for any of them defaults to tight packing (d for
// ldq/ldb, nb for ldd).
func PairwiseL2Sqr(xq, xb []float32, d, nq, nb int, ldq, ldb, ldd int, dis []float32) {
	if ldq < 0 {
		ldq = d
	}
	if ldb < 0 {
		ldb = d
	}
	if ldd < 0 {
		ldd = nb
	}
	if nq == 0 || nb == 0 {
		return
	}

	qNorms := make([]float32, nq)
	for i := 0; i < nq; i++ {
		qNorms[i] = distance.NormL2Sqr(xq[i*ldq : i*ldq+d])
	}
	bNorms := make([]float32, nb)
	for j := 0; j < nb; j++ {
		bNorms[j] = distance.NormL2Sqr(xb[j*ldb : j*ldb+d])
	}

	for i := 0; i < nq; i++ {
		row := dis[i*ldd : i*ldd+nb]
		for j := range row {
			row[j] = qNorms[i] + bNorms[j]
		}
	}

	gemm.SGEMM(false, true, nq, nb, d, -2, xq, ldq, xb, ldb, 1, dis, ldd)

	for i := 0; i < nq; i++ {
		row := dis[i*ldd : i*ldd+nb]
		for j := range row {
			if row[j] < 0 {
				row[j] = 0
			}
		}
	}
}
