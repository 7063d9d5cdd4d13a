package repository

import (
	"context"
	"sync"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/metrics"
)

// MemStore implements Store with an RWMutex around the latest batch.
// Reads dominate between batch runs, writes replace everything at once.
type MemStore struct {
	mu      sync.RWMutex
	loaded  bool
	labeled []model.LabeledRecord
	summary model.BatchSummary
	skipped []model.SkippedRecord
}

// NewMemStore creates an empty in-memory result store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// SetBatch replaces the stored batch atomically.
func (s *MemStore) SetBatch(_ context.Context, labeled []model.LabeledRecord, summary model.BatchSummary, skipped []model.SkippedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.labeled = labeled
	s.summary = summary
	s.skipped = skipped

	metrics.UpdateStoredRecords(len(labeled))
}

// Summary returns the stored batch summary.
func (s *MemStore) Summary(_ context.Context) (model.BatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.BatchSummary{}, ErrNoBatch
	}
	return s.summary, nil
}

// Records returns stored records matching the filter, preserving batch order.
func (s *MemStore) Records(_ context.Context, filter Filter) ([]model.LabeledRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, ErrNoBatch
	}

	out := make([]model.LabeledRecord, 0, len(s.labeled))
	for _, r := range s.labeled {
		if filter.matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Skipped returns the stored validation side channel.
func (s *MemStore) Skipped(_ context.Context) []model.SkippedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SkippedRecord, len(s.skipped))
	copy(out, s.skipped)
	return out
}

// Count returns the number of stored labeled records.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.labeled)
}
