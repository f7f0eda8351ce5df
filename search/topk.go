package search

import (
	"github.com/flatvec/flatvec/internal/queue"
)

// TopKHandler collects the k best-scoring (id, score) pairs for each of nx
// queries. It is safe to drive independent queries from independent
// goroutines; each query owns its own heap.
//
// Two call shapes are supported over the same handler: a per-query shape
// (Begin/AddResult/End), used by the direct scalar-loop path where one
// worker goroutine owns one query end to end, and a per-tile shape
// (BeginTile/AddTileResults/EndTile), used by the GEMM-tiled path where a
// single block of computed scores touches every query in a tile at once.
type TopKHandler struct {
	polarity Polarity
	k        int
	heaps    []*queue.PriorityQueue
}

// NewTopKHandler allocates a handler for nx queries, each retaining up to k
// results under the given polarity.
func NewTopKHandler(polarity Polarity, nx, k int) *TopKHandler {
	heaps := make([]*queue.PriorityQueue, nx)
	for i := range heaps {
		heaps[i] = newHeap(polarity, k)
	}
	return &TopKHandler{polarity: polarity, k: k, heaps: heaps}
}

func newHeap(p Polarity, k int) *queue.PriorityQueue {
	if p == MaxHeapPolarity {
		return queue.NewMax(k)
	}
	return queue.NewMin(k)
}

// Begin resets query i's heap, discarding any previously collected results.
// Call before a fresh pass of AddResult calls for that query.
func (h *TopKHandler) Begin(i int) {
	h.heaps[i].Reset()
}

// AddResult offers a single (score, id) candidate for query i. The
// candidate is admitted if the heap has fewer than k entries, or if score is
// strictly better than the current worst-kept entry under h's polarity.
// Ties with the current worst-kept entry are rejected.
func (h *TopKHandler) AddResult(i int, score float32, id int64) {
	hp := h.heaps[i]
	item := queue.PriorityQueueItem{ID: id, Distance: score}
	if hp.Len() < h.k {
		hp.PushItem(item)
		return
	}
	root, ok := hp.TopItem()
	if !ok || !h.polarity.admits(score, root.Distance) {
		return
	}
	hp.PopItem()
	hp.PushItem(item)
}

// BeginTile resets the heaps for every query in [i0, i1).
func (h *TopKHandler) BeginTile(i0, i1 int) {
	for i := i0; i < i1; i++ {
		h.Begin(i)
	}
}

// AddTileResults offers a dense block of scores for queries [i0, i1) against
// database rows [j0, j0+len(ids)), scores laid out row-major with one row
// per query. ids gives the database id for each column; j0 is accepted for
// interface symmetry with RadiusHandler.AddTileResults but is otherwise
// unused here, since a top-k heap needs no record of which tile a result
// came from.
func (h *TopKHandler) AddTileResults(i0, i1, j0 int, scores []float32, ids []int64) {
	ny := len(ids)
	for i := i0; i < i1; i++ {
		row := scores[(i-i0)*ny : (i-i0+1)*ny]
		for c, id := range ids {
			h.AddResult(i, row[c], id)
		}
	}
}

// End drains query i's heap into ascending score order for MaxHeapPolarity
// (best distance first) or descending score order for MinHeapPolarity
// (best similarity first), returning parallel id/score slices of length
// min(k, candidates offered).
func (h *TopKHandler) End(i int) (ids []int64, scores []float32) {
	return drain(h.heaps[i])
}

// EndTile is a no-op: a query's heap accumulates results across every
// database tile in its range, so there is nothing to finalize until the
// caller reads results back out per query with End, after the last tile.
// Present so TopKHandler exposes the same begin_multiple/end_multiple
// shape as RadiusHandler.
func (h *TopKHandler) EndTile(i0, i1 int) {}

// drain pops every item from pq and places it so the final array is sorted
// with the best-first result at index 0: repeated pops hand back
// worst-remaining-first, so the n-th pop (the globally best item, popped
// last) belongs at index 0.
func drain(pq *queue.PriorityQueue) ([]int64, []float32) {
	n := pq.Len()
	ids := make([]int64, n)
	scores := make([]float32, n)
	for i := n - 1; i >= 0; i-- {
		item, _ := pq.PopItem()
		ids[i] = item.ID
		scores[i] = item.Distance
	}
	return ids, scores
}
