// Package dedupe tracks record identifiers within a batch so duplicates can
// be rejected instead of double-counted.
package dedupe

import (
	"context"
	"sync"
)

// Tracker records seen record IDs for the lifetime of one batch.
type Tracker interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of distinct IDs recorded so far.
	Size() int
}

// batchTracker implements Tracker with a plain map. Batches are bounded and
// trackers are discarded with them, so no eviction is needed.
type batchTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewBatchTracker creates a Tracker sized for roughly n records.
func NewBatchTracker(n int) Tracker {
	if n < 0 {
		n = 0
	}
	return &batchTracker{
		seen: make(map[string]struct{}, n),
	}
}

func (t *batchTracker) SeenAndRecord(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[id]; ok {
		return true
	}
	t.seen[id] = struct{}{}
	return false
}

func (t *batchTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
