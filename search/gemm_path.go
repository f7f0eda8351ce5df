package search

import (
	"github.com/flatvec/flatvec/internal/gemm"
	"github.com/flatvec/flatvec/internal/interrupt"
	"github.com/flatvec/flatvec/norm"
)

// tileConsumer is the per-tile handler shape both TopKHandler and
// RadiusHandler implement. It is used as a compile-time type parameter
// constraint, not an interface value, so GEMMInnerProduct and GEMML2Sqr
// carry no dynamic dispatch in their tile-consumption loop.
type tileConsumer interface {
	BeginTile(i0, i1 int)
	AddTileResults(i0, i1, j0 int, scores []float32, ids []int64)
	EndTile(i0, i1 int)
}

// GEMMInnerProduct runs the large-batch GEMM-tiled path for inner-product
// scoring: queries are processed in blocks of queryBS, database rows in
// blocks of dbBS, with each block's scores computed as one matrix multiply
// and handed directly to handler (no transform needed for IP).
func GEMMInnerProduct[H tileConsumer](x, y []float32, d, nx, ny int, handler H, queryBS, dbBS int, hook interrupt.Checker) error {
	return gemmTiled(x, y, nil, nil, d, nx, ny, handler, queryBS, dbBS, hook, false)
}

// GEMML2Sqr runs the GEMM-tiled path for squared-L2 distance: each
// inner-product tile is transformed in place into squared-L2 distance via
// the norm identity before reaching handler. xNorms is always recomputed
// locally; yNorms is reused from the caller if non-nil, otherwise computed
// and owned for this call.
func GEMML2Sqr[H tileConsumer](x, y []float32, d, nx, ny int, handler H, yNorms []float32, queryBS, dbBS int, hook interrupt.Checker) error {
	xNorms := make([]float32, nx)
	norm.L2SqrBatch(x, d, nx, xNorms)

	if yNorms == nil {
		yNorms = make([]float32, ny)
		norm.L2SqrBatch(y, d, ny, yNorms)
	}

	return gemmTiled(x, y, xNorms, yNorms, d, nx, ny, handler, queryBS, dbBS, hook, true)
}

func gemmTiled[H tileConsumer](x, y []float32, xNorms, yNorms []float32, d, nx, ny int, handler H, queryBS, dbBS int, hook interrupt.Checker, toL2Sqr bool) error {
	if nx == 0 || ny == 0 {
		return nil
	}

	tile := make([]float32, queryBS*dbBS)
	ids := make([]int64, dbBS)

	for i0 := 0; i0 < nx; i0 += queryBS {
		i1 := min(i0+queryBS, nx)
		bsX := i1 - i0

		handler.BeginTile(i0, i1)

		for j0 := 0; j0 < ny; j0 += dbBS {
			j1 := min(j0+dbBS, ny)
			bsY := j1 - j0

			block := tile[:bsX*bsY]
			gemm.SGEMM(false, true, bsX, bsY, d, 1, x[i0*d:i1*d], d, y[j0*d:j1*d], d, 0, block, bsY)

			if toL2Sqr {
				norm.InnerProductToL2Sqr(block, xNorms[i0:i1], yNorms[j0:j1], bsX, bsY)
			}

			for c := 0; c < bsY; c++ {
				ids[c] = int64(j0 + c)
			}
			handler.AddTileResults(i0, i1, j0, block, ids[:bsY])
		}

		handler.EndTile(i0, i1)

		if hook.Tick() {
			return hook.Err()
		}
	}

	return nil
}
