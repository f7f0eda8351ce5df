// Package interrupt provides the cooperative cancellation hook the search
// kernels poll once per outer tile (one query on the direct path, one
// query block on the GEMM path) rather than per inner-loop iteration,
// where the check cost would swamp the actual distance computation.
package interrupt

import "context"

// Checker is polled once per outer tile. Tick reports whether the call
// should abort; Err returns the reason once it has.
type Checker interface {
	Tick() bool
	Err() error
}

// Hook polls a context.Context for cancellation. It is the production
// Checker: Tick is O(1) (a non-blocking channel receive) and safe to call
// from multiple goroutines concurrently.
type Hook struct {
	ctx context.Context
}

// NewHook wraps ctx in a polling hook. A nil ctx behaves as
// context.Background, i.e. the hook never reports cancellation.
func NewHook(ctx context.Context) *Hook {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Hook{ctx: ctx}
}

// Tick reports whether ctx has been cancelled.
func (h *Hook) Tick() bool {
	select {
	case <-h.ctx.Done():
		return true
	default:
		return false
	}
}

// Err returns ctx's error, or nil if it has not been cancelled.
func (h *Hook) Err() error {
	return h.ctx.Err()
}

var _ Checker = (*Hook)(nil)

// CountingHook is a deterministic Checker for tests that exercise
// cancellation-timeliness without real wall-clock timing: it reports
// cancelled once Tick has been called limit times, independent of any
// context.
type CountingHook struct {
	limit int
	count int
}

// NewCountingHook returns a Checker that cancels on its limit-th Tick
// call. A limit <= 0 never cancels.
func NewCountingHook(limit int) *CountingHook {
	return &CountingHook{limit: limit}
}

// Tick increments the call count and reports whether it has reached limit.
func (h *CountingHook) Tick() bool {
	if h.limit <= 0 {
		return false
	}
	h.count++
	return h.count >= h.limit
}

// Err reports context.Canceled once Tick has tripped, else nil.
func (h *CountingHook) Err() error {
	if h.limit > 0 && h.count >= h.limit {
		return context.Canceled
	}
	return nil
}

var _ Checker = (*CountingHook)(nil)
