// Package gemm provides the single-precision tiled matrix-multiply used by
// the GEMM path of the search package. No vendor BLAS binding is available
// in this module's dependency set, so this is a hand-rolled, cache-blocked
// implementation of the one call shape the search package needs: a plain
// row-major C := alpha*op(A)*op(B) + beta*C.
package gemm

// blockSize is the edge length of the square sub-block the inner loop
// operates on. Chosen so three blockSize x blockSize float32 panels fit
// comfortably in a typical L1 data cache.
const blockSize = 64

// SGEMM computes C := alpha*op(A)*op(B) + beta*C for single-precision,
// row-major A, B, C, where op(A) is A (m x k, stride lda) when transA is
// false or Aᵀ (stored as k x m, stride lda) when transA is true, and
// symmetrically for op(B) and transB. C is m x n with row stride ldc.
//
// This is the one call shape the search package needs: transA=false,
// transB=true computes tile[i][j] = alpha * <A[i], B[j]> + beta*C[i][j],
// i.e. a block of pairwise dot products without materializing Bᵀ.
func SGEMM(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int, b []float32, ldb int, beta float32, c []float32, ldc int) {
	if m == 0 || n == 0 {
		return
	}

	scaleC(c, m, n, ldc, beta)
	if alpha == 0 || k == 0 {
		return
	}

	for i0 := 0; i0 < m; i0 += blockSize {
		i1 := min(i0+blockSize, m)
		for j0 := 0; j0 < n; j0 += blockSize {
			j1 := min(j0+blockSize, n)
			for p0 := 0; p0 < k; p0 += blockSize {
				p1 := min(p0+blockSize, k)
				multiplyBlock(transA, transB, a, lda, b, ldb, c, ldc, alpha, i0, i1, j0, j1, p0, p1)
			}
		}
	}
}

func scaleC(c []float32, m, n, ldc int, beta float32) {
	if beta == 1 {
		return
	}
	for i := 0; i < m; i++ {
		row := c[i*ldc : i*ldc+n]
		if beta == 0 {
			for j := range row {
				row[j] = 0
			}
			continue
		}
		for j := range row {
			row[j] *= beta
		}
	}
}

func multiplyBlock(transA, transB bool, a []float32, lda int, b []float32, ldb int, c []float32, ldc int, alpha float32, i0, i1, j0, j1, p0, p1 int) {
	for i := i0; i < i1; i++ {
		crow := c[i*ldc : i*ldc+j1]
		for j := j0; j < j1; j++ {
			var sum float32
			for p := p0; p < p1; p++ {
				sum += aAt(transA, a, lda, i, p) * bAt(transB, b, ldb, p, j)
			}
			crow[j] += alpha * sum
		}
	}
}

// aAt returns A's logical (row, col) entry: A[row][col] if !transA, else
// the transposed read Aᵀ[row][col] = A_stored[col][row].
func aAt(transA bool, a []float32, lda, row, col int) float32 {
	if transA {
		return a[col*lda+row]
	}
	return a[row*lda+col]
}

func bAt(transB bool, b []float32, ldb, row, col int) float32 {
	if transB {
		return b[col*ldb+row]
	}
	return b[row*ldb+col]
}
