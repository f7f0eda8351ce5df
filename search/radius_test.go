package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadiusHandlerL2KeepsWithinRadius(t *testing.T) {
	h := NewRadiusHandler(MaxHeapPolarity, 5, 1)
	h.AddResult(0, 0, 1, 1)
	h.AddResult(0, 0, 10, 2)
	h.AddResult(0, 0, 5, 3)

	results := h.Finalize(0)
	assert.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID)
	assert.Equal(t, int64(3), results[1].ID)
}

func TestRadiusHandlerIPKeepsAboveThreshold(t *testing.T) {
	h := NewRadiusHandler(MinHeapPolarity, 0.5, 1)
	h.AddResult(0, 0, 0.9, 1)
	h.AddResult(0, 0, 0.1, 2)
	h.AddResult(0, 0, 0.5, 3)

	results := h.Finalize(0)
	assert.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID)
	assert.Equal(t, int64(3), results[1].ID)
}

func TestRadiusHandlerMergesShardsInTileOrder(t *testing.T) {
	h := NewRadiusHandler(MaxHeapPolarity, 100, 1)
	h.AddResult(0, 8, 1, 30) // later tile, offered first
	h.AddResult(0, 0, 1, 10)
	h.AddResult(0, 4, 1, 20)

	results := h.Finalize(0)
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	assert.Equal(t, []int64{10, 20, 30}, ids)
}

func TestRadiusHandlerFinalizeClearsShards(t *testing.T) {
	h := NewRadiusHandler(MaxHeapPolarity, 100, 1)
	h.AddResult(0, 0, 1, 10)
	first := h.Finalize(0)
	assert.Len(t, first, 1)

	second := h.Finalize(0)
	assert.Empty(t, second)
}

func TestRadiusHandlerTileAPI(t *testing.T) {
	h := NewRadiusHandler(MaxHeapPolarity, 4, 2)
	scores := []float32{1, 5, 3, 6}
	ids := []int64{100, 101}
	h.AddTileResults(0, 2, 0, scores, ids)

	r0 := h.Finalize(0)
	r1 := h.Finalize(1)
	assert.Len(t, r0, 1)
	assert.Equal(t, int64(100), r0[0].ID)
	assert.Len(t, r1, 1)
	assert.Equal(t, int64(100), r1[0].ID)
}

func TestRadiusHandlerNoMatches(t *testing.T) {
	h := NewRadiusHandler(MaxHeapPolarity, 0.1, 1)
	h.AddResult(0, 0, 5, 1)
	results := h.Finalize(0)
	assert.Empty(t, results)
}
