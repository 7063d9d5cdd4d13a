package pipeline

import (
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/persona"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/scoring"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
)

// Option applies a configuration option to the Pipeline. Calculator options
// are collected separately because the calculator is built after all options
// have run.
type Option func(*Pipeline, *[]scoring.Option)

// WithThresholds sets the classification cut points.
func WithThresholds(t persona.Thresholds) Option {
	return func(p *Pipeline, _ *[]scoring.Option) {
		p.thresholds = t
	}
}

// WithWorkerCount sets how many goroutines score records in parallel.
func WithWorkerCount(count int) Option {
	return func(p *Pipeline, _ *[]scoring.Option) {
		if count > 0 {
			p.workerCount = count
		}
	}
}

// WithSignalBounds forwards per-signal normalization bounds to the score
// calculator.
func WithSignalBounds(bounds map[string]scoring.Bounds) Option {
	return func(_ *Pipeline, calcOpts *[]scoring.Option) {
		*calcOpts = append(*calcOpts, scoring.WithSignalBounds(bounds))
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline, _ *[]scoring.Option) {
		if l != nil {
			p.logger = l
		}
	}
}
