// Package repository defines the batch result store interface and errors.
package repository

import (
	"context"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// Filter narrows record reads. The zero Persona matches every persona; the
// engagement range mirrors the dashboard's slider filter.
type Filter struct {
	Persona       model.Persona
	MinEngagement float64
	MaxEngagement float64
}

// DefaultFilter matches all records.
func DefaultFilter() Filter {
	return Filter{MinEngagement: 0, MaxEngagement: 1}
}

func (f Filter) matches(r model.LabeledRecord) bool {
	if f.Persona != "" && r.Persona != f.Persona {
		return false
	}
	return r.Engagement >= f.MinEngagement && r.Engagement <= f.MaxEngagement
}

// Store holds the most recent batch result for the serving layer. Results
// live for the process lifetime only; there is no persistence.
type Store interface {
	// SetBatch replaces the stored batch atomically.
	SetBatch(ctx context.Context, labeled []model.LabeledRecord, summary model.BatchSummary, skipped []model.SkippedRecord)

	// Summary returns the stored batch summary.
	// Returns ErrNoBatch before the first batch has run.
	Summary(ctx context.Context) (model.BatchSummary, error)

	// Records returns stored labeled records matching the filter, in batch
	// order. Returns ErrNoBatch before the first batch has run.
	Records(ctx context.Context, filter Filter) ([]model.LabeledRecord, error)

	// Skipped returns the stored validation side channel.
	Skipped(ctx context.Context) []model.SkippedRecord

	// Count returns the number of stored labeled records.
	Count(ctx context.Context) int
}
