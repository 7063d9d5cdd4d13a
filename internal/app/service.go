// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/adapters/repository"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/dataset"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/persona"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/scoring"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/pipeline"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/metrics"
)

// Service wires the pipeline and the result store behind one API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	pipe  *pipeline.Pipeline
	store repository.Store

	// Configuration
	weights     scoring.WeightConfig
	bounds      map[string]scoring.Bounds
	thresholds  persona.Thresholds
	workerCount int
	datasetPath string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWeights sets the score weight configuration.
func WithWeights(weights scoring.WeightConfig) Option {
	return func(s *Service) {
		s.weights = weights
	}
}

// WithSignalBounds sets per-signal normalization bounds.
func WithSignalBounds(bounds map[string]scoring.Bounds) Option {
	return func(s *Service) {
		s.bounds = bounds
	}
}

// WithThresholds sets the classification cut points.
func WithThresholds(t persona.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// WithWorkerCount sets the number of parallel scoring goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDatasetPath points the service at a CSV file to score on startup.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Weights must be supplied by the caller; the
// defaults boundary is the config package, not the core.
func New(opts ...Option) *Service {
	s := &Service{
		thresholds:  persona.DefaultThresholds(),
		workerCount: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the pipeline (validating the weight configuration eagerly)
// and optionally scores the preload dataset.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	pipe, err := pipeline.New(s.weights,
		pipeline.WithThresholds(s.thresholds),
		pipeline.WithWorkerCount(s.workerCount),
		pipeline.WithSignalBounds(s.bounds),
	)
	if err != nil {
		s.mu.Unlock()
		metrics.RecordConfigError()
		return fmt.Errorf("build pipeline: %w", err)
	}
	s.pipe = pipe
	s.store = repository.NewMemStore()
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "persona service started",
		logger.Int("workers", s.workerCount),
		logger.Float64("engagement_cut", s.thresholds.EngagementCut),
		logger.Float64("risk_cut", s.thresholds.RiskCut),
	)

	if s.datasetPath != "" {
		if err := s.preload(ctx); err != nil {
			return err
		}
	}
	return nil
}

// preload scores the configured dataset file so GET endpoints have data
// before the first upload.
func (s *Service) preload(ctx context.Context) error {
	records, err := dataset.LoadFile(s.datasetPath)
	if err != nil {
		return fmt.Errorf("preload dataset: %w", err)
	}
	result, err := s.RunBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("preload dataset: %w", err)
	}
	s.logger.Info(ctx, "preloaded dataset",
		logger.String("path", s.datasetPath),
		logger.Int("labeled", len(result.Labeled)),
		logger.Int("skipped", len(result.Skipped)),
	)
	return nil
}

// Stop releases the service. The store and pipeline hold no external
// resources, so this only flips state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// RunBatch scores and labels records, stores the result, and returns it.
func (s *Service) RunBatch(ctx context.Context, records []model.RawRecord) (pipeline.Result, error) {
	s.mu.RLock()
	pipe, store, started := s.pipe, s.store, s.started
	s.mu.RUnlock()

	if !started {
		return pipeline.Result{}, ErrNotStarted
	}

	result, err := pipe.Run(ctx, records)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("run batch: %w", err)
	}
	store.SetBatch(ctx, result.Labeled, result.Summary, result.Skipped)
	return result, nil
}

// Summary returns the stored batch summary.
func (s *Service) Summary(ctx context.Context) (model.BatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.BatchSummary{}, ErrNotStarted
	}
	return s.store.Summary(ctx)
}

// Records returns stored labeled records matching the filter.
func (s *Service) Records(ctx context.Context, filter repository.Filter) ([]model.LabeledRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Records(ctx, filter)
}

// Skipped returns the stored validation side channel.
func (s *Service) Skipped(ctx context.Context) []model.SkippedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil
	}
	return s.store.Skipped(ctx)
}

// GetStats exposes operational numbers for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"engagementCut":  s.thresholds.EngagementCut,
		"riskCut":        s.thresholds.RiskCut,
		"storedRecords":  0,
		"skippedRecords": 0,
	}
	if s.started {
		ctx := context.Background()
		stats["storedRecords"] = s.store.Count(ctx)
		stats["skippedRecords"] = len(s.store.Skipped(ctx))
	}
	return stats
}
