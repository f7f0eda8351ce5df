package search

// BeginTile is a no-op: a radius bucket is created lazily on first write,
// so there is nothing to reset when a query range opens. Present so
// RadiusHandler exposes the same begin_multiple/end_multiple shape as
// TopKHandler, per the dual per-query/per-tile handler contract.
func (h *RadiusHandler) BeginTile(i0, i1 int) {}

// EndTile is a no-op: shards persist across tiles and are only drained by
// Finalize, once per query, at the very end of the call.
func (h *RadiusHandler) EndTile(i0, i1 int) {}
