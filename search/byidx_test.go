package search

import (
	"testing"

	"github.com/flatvec/flatvec/distance"
	"github.com/stretchr/testify/assert"
)

func TestInnerProductByIdxSkipsNegative(t *testing.T) {
	x := []float32{1, 0, 0, 1}
	y := []float32{1, 0, 0, 1}
	ids := []int64{0, -1, 1, 0}
	out := make([]float32, 4)
	out[1] = 999 // sentinel: must be left untouched

	InnerProductByIdx(x, y, ids, distance.InnerProduct, 2, 2, 2, out)

	assert.Equal(t, float32(1), out[0])
	assert.Equal(t, float32(999), out[1])
	assert.Equal(t, float32(1), out[2])
	assert.Equal(t, float32(0), out[3])
}

func TestL2SqrByIdxSkipsNegative(t *testing.T) {
	x := []float32{0, 0}
	y := []float32{3, 4}
	ids := []int64{-1, 0}
	out := make([]float32, 2)
	out[0] = 7

	L2SqrByIdx(x, y, ids, distance.L2Sqr, 2, 1, 2, out)

	assert.Equal(t, float32(7), out[0])
	assert.InDelta(t, float32(25), out[1], 1e-5)
}

func TestPairwiseIndexedInnerProductSkipsEitherNegative(t *testing.T) {
	x := []float32{1, 0, 0, 1}
	y := []float32{1, 0, 0, 1}
	ix := []int64{0, -1, 1}
	iy := []int64{0, 0, -1}
	out := make([]float32, 3)
	out[1], out[2] = 111, 222

	PairwiseIndexedInnerProduct(x, y, ix, iy, distance.InnerProduct, 2, out)

	assert.Equal(t, float32(1), out[0])
	assert.Equal(t, float32(111), out[1])
	assert.Equal(t, float32(222), out[2])
}

func TestPairwiseIndexedL2Sqr(t *testing.T) {
	x := []float32{0, 0, 3, 4}
	y := []float32{0, 0}
	ix := []int64{0, 1}
	iy := []int64{0, 0}
	out := make([]float32, 2)

	PairwiseIndexedL2Sqr(x, y, ix, iy, distance.L2Sqr, 2, out)

	assert.InDelta(t, float32(0), out[0], 1e-5)
	assert.InDelta(t, float32(25), out[1], 1e-5)
}

func TestKNNInnerProductByIdxRestrictsToSubset(t *testing.T) {
	x := []float32{1, 0}
	y := []float32{1, 0, 0, 1, 0.5, 0.5}
	ids := []int64{2, 0, -1} // candidate subset for the single query: rows 2, 0 (row 1 excluded, and a skip)

	h := NewTopKHandler(MinHeapPolarity, 1, 2)
	KNNInnerProductByIdx(x, y, ids, 2, 1, 3, h)

	resultIDs, scores := h.End(0)
	assert.Equal(t, []int64{0, 2}, resultIDs)
	assert.InDeltaSlice(t, []float32{1, 0.5}, scores, 1e-5)
}

func TestKNNL2SqrByIdxRestrictsToSubset(t *testing.T) {
	x := []float32{0, 0}
	y := []float32{1, 0, 3, 4, 0, 0}
	ids := []int64{1, 2}

	h := NewTopKHandler(MaxHeapPolarity, 1, 2)
	KNNL2SqrByIdx(x, y, ids, 2, 1, 2, h)

	resultIDs, scores := h.End(0)
	assert.Equal(t, []int64{2, 1}, resultIDs)
	assert.InDeltaSlice(t, []float32{0, 25}, scores, 1e-5)
}
