package flatvec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKNNL2SqrS1(t *testing.T) {
	x := []float32{0, 0, 1, 0}
	y := []float32{0, 0, 1, 0, 0, 1}

	s := New()
	results, err := s.KNNL2Sqr(context.Background(), x, y, 2, 2, 3, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, int64(0), results[0][0].ID)
	assert.InDelta(t, float32(0), results[0][0].Score, 1e-5)
	assert.InDelta(t, float32(1), results[0][1].Score, 1e-5)

	assert.Equal(t, int64(1), results[1][0].ID)
	assert.InDelta(t, float32(0), results[1][0].Score, 1e-5)
	assert.InDelta(t, float32(1), results[1][1].Score, 1e-5)
}

func TestKNNInnerProductS2(t *testing.T) {
	x := []float32{1, 0, 0}
	y := []float32{1, 0, 0, 0.5, 0.5, 0}

	s := New()
	results, err := s.KNNInnerProduct(context.Background(), x, y, 3, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []int64{0, 1}, []int64{results[0][0].ID, results[0][1].ID})
	assert.InDelta(t, float32(1.0), results[0][0].Score, 1e-5)
	assert.InDelta(t, float32(0.5), results[0][1].Score, 1e-5)
}

func TestKNNL2SqrS3ForceGEMM(t *testing.T) {
	x := []float32{0, 0, 1, 0}
	y := []float32{0, 0, 1, 0, 0, 1}

	s := New(WithBlasThreshold(0))
	results, err := s.KNNL2Sqr(context.Background(), x, y, 2, 2, 3, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), results[0][0].ID)
	assert.InDelta(t, float32(0), results[0][0].Score, 1e-4)
	assert.InDelta(t, float32(1), results[0][1].Score, 1e-4)
}

func TestRangeSearchL2SqrS4(t *testing.T) {
	x := []float32{0}
	y := []float32{1, 2, 3}

	s := New()
	results, err := s.RangeSearchL2Sqr(context.Background(), x, y, 1, 1, 3, 4.5, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0], 2)

	byID := map[int64]float32{}
	for _, r := range results[0] {
		byID[r.ID] = r.Score
	}
	assert.InDelta(t, float32(1), byID[0], 1e-5)
	assert.InDelta(t, float32(4), byID[1], 1e-5)
}

func TestPairwiseL2SqrS5(t *testing.T) {
	xq := []float32{0, 0, 3, 4}
	xb := []float32{0, 0, 3, 4}
	dis := make([]float32, 4)

	s := New()
	s.PairwiseL2Sqr(xq, xb, 2, 2, 2, -1, -1, -1, dis)

	assert.InDeltaSlice(t, []float32{0, 25, 25, 0}, dis, 1e-4)
}

func TestKNNInvalidK(t *testing.T) {
	s := New()
	_, err := s.KNNL2Sqr(context.Background(), []float32{0}, []float32{0}, 1, 1, 1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestKNNEmptyBatchIsNoop(t *testing.T) {
	s := New()
	results, err := s.KNNL2Sqr(context.Background(), nil, nil, 2, 0, 0, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRangeSearchEmptyBatchIsNoop(t *testing.T) {
	s := New()
	results, err := s.RangeSearchL2Sqr(context.Background(), nil, nil, 2, 0, 0, 1.0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestKNNRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	x := make([]float32, 8*4)
	y := make([]float32, 4*4)

	s := New(WithBlasThreshold(1))
	_, err := s.KNNL2Sqr(ctx, x, y, 4, 8, 4, 2, nil)
	var cancelled *ErrCancelled
	assert.ErrorAs(t, err, &cancelled)
}

func TestKNNInnerProductByIdxSubset(t *testing.T) {
	x := []float32{1, 0}
	y := []float32{1, 0, 0, 1, 0.5, 0.5}
	ids := []int64{2, 0, -1}

	s := New()
	results, err := s.KNNInnerProductByIdx(x, y, ids, 2, 1, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(0), results[0][0].ID)
	assert.Equal(t, int64(2), results[0][1].ID)
}

func TestPairwiseIndexedL2SqrSkipsNegative(t *testing.T) {
	x := []float32{0, 0, 3, 4}
	y := []float32{0, 0}
	ix := []int64{0, 1}
	iy := []int64{0, -1}
	out := []float32{0, 42}

	s := New()
	s.PairwiseIndexedL2Sqr(x, y, ix, iy, 2, out)

	assert.InDelta(t, float32(0), out[0], 1e-5)
	assert.Equal(t, float32(42), out[1])
}
