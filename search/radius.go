package search

import (
	"sort"
	"sync"
)

// RadiusResult is a single (id, score) pair admitted by a radius search.
type RadiusResult struct {
	ID    int64
	Score float32
}

// RadiusHandler collects every candidate within a fixed radius for each of
// nx queries. Unlike TopKHandler it keeps no bound on how many results a
// query accumulates.
//
// Results arrive as partial shards keyed by the database tile offset j0
// that produced them: the GEMM-tiled path passes the offset of each
// database tile it visits, the direct path always passes 0. Appends to a
// query's shard registry are guarded by a per-query lock, so concurrent
// producers working on different queries never contend. Finalize merges a
// query's shards back into one slice ordered by j0, so results are
// deterministic regardless of tile scheduling.
type RadiusHandler struct {
	polarity Polarity
	radius   float32

	mu     []sync.Mutex
	shards []map[int][]RadiusResult
}

// NewRadiusHandler allocates a handler for nx queries, admitting candidates
// under the given polarity against the fixed radius.
func NewRadiusHandler(polarity Polarity, radius float32, nx int) *RadiusHandler {
	shards := make([]map[int][]RadiusResult, nx)
	for i := range shards {
		shards[i] = make(map[int][]RadiusResult)
	}
	return &RadiusHandler{
		polarity: polarity,
		radius:   radius,
		mu:       make([]sync.Mutex, nx),
		shards:   shards,
	}
}

// AddResult offers a single (score, id) candidate for query i, produced by
// the database tile starting at j0. Candidates outside the radius are
// silently dropped.
func (h *RadiusHandler) AddResult(i, j0 int, score float32, id int64) {
	if !h.polarity.satisfies(score, h.radius) {
		return
	}
	h.mu[i].Lock()
	h.shards[i][j0] = append(h.shards[i][j0], RadiusResult{ID: id, Score: score})
	h.mu[i].Unlock()
}

// AddTileResults offers a dense block of scores for queries [i0, i1) against
// database rows [j0, j0+len(ids)), scores laid out row-major with one row
// per query.
func (h *RadiusHandler) AddTileResults(i0, i1, j0 int, scores []float32, ids []int64) {
	ny := len(ids)
	for i := i0; i < i1; i++ {
		row := scores[(i-i0)*ny : (i-i0+1)*ny]
		for c, id := range ids {
			h.AddResult(i, j0, row[c], id)
		}
	}
}

// Finalize merges query i's shards into a single slice ordered by
// ascending tile offset, then clears the shard registry so the handler can
// be reused for another query pass.
func (h *RadiusHandler) Finalize(i int) []RadiusResult {
	h.mu[i].Lock()
	defer h.mu[i].Unlock()

	shard := h.shards[i]
	offsets := make([]int, 0, len(shard))
	for j0 := range shard {
		offsets = append(offsets, j0)
	}
	sort.Ints(offsets)

	var merged []RadiusResult
	for _, j0 := range offsets {
		merged = append(merged, shard[j0]...)
	}
	h.shards[i] = make(map[int][]RadiusResult)
	return merged
}
