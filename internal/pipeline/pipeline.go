// Package pipeline orchestrates scoring and persona classification over a
// batch of customer records and aggregates the dashboard summary.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/dedupe"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/persona"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/scoring"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/metrics"
)

// Result bundles everything one batch run produces. Labeled preserves input
// order; Skipped is the side channel for rows excluded by validation.
type Result struct {
	Labeled []model.LabeledRecord `json:"labeled"`
	Summary model.BatchSummary    `json:"summary"`
	Skipped []model.SkippedRecord `json:"skipped"`
}

// Pipeline applies the score calculator then the persona classifier to every
// record independently. Safe for concurrent use; each Run is isolated.
type Pipeline struct {
	calc        *scoring.Calculator
	thresholds  persona.Thresholds
	workerCount int
	logger      logger.Logger
}

// New validates the weight configuration eagerly and builds a Pipeline.
// A config error here means no record is ever processed.
func New(weights scoring.WeightConfig, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		thresholds:  persona.DefaultThresholds(),
		workerCount: runtime.NumCPU(),
	}

	var calcOpts []scoring.Option
	for _, opt := range opts {
		opt(p, &calcOpts)
	}

	calc, err := scoring.NewCalculator(weights, calcOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	p.calc = calc

	if p.logger == nil {
		p.logger = logger.Get().Named("pipeline")
	}
	return p, nil
}

// Thresholds returns the cut points this pipeline classifies with.
func (p *Pipeline) Thresholds() persona.Thresholds {
	return p.thresholds
}

// job carries one record and the output slot it writes to. Slots keep output
// order equal to input order without any coordination between workers.
type job struct {
	slot   int
	record model.RawRecord
}

// Run scores and labels every valid record, fanning out across the worker
// pool, then reduces the labeled slice into a summary in a single pass.
// Malformed rows land in the skipped side channel and never abort the batch;
// only context cancellation returns an error.
func (p *Pipeline) Run(ctx context.Context, records []model.RawRecord) (Result, error) {
	start := time.Now()
	defer func() {
		metrics.RecordBatchLatency(float64(time.Since(start).Milliseconds()))
	}()

	jobs, skipped := p.validate(ctx, records)

	labeled := make([]model.LabeledRecord, len(jobs))
	if err := p.fanOut(ctx, jobs, labeled); err != nil {
		return Result{}, err
	}

	summary := Summarize(labeled, p.thresholds)

	metrics.RecordBatchProcessed()
	metrics.RecordRecordsScored(len(labeled))
	metrics.RecordRecordsSkipped(len(skipped))
	for pn, stats := range summary.Personas {
		metrics.UpdatePersonaCount(string(pn), stats.Count)
	}

	p.logger.Info(ctx, "batch complete",
		logger.Int("records", len(records)),
		logger.Int("labeled", len(labeled)),
		logger.Int("skipped", len(skipped)),
	)

	return Result{Labeled: labeled, Summary: summary, Skipped: skipped}, nil
}

// validate splits the input into scorable jobs and skipped rows. Duplicate
// detection is first-occurrence-wins, so this pass stays sequential.
func (p *Pipeline) validate(ctx context.Context, records []model.RawRecord) ([]job, []model.SkippedRecord) {
	tracker := dedupe.NewBatchTracker(len(records))
	jobs := make([]job, 0, len(records))
	skipped := make([]model.SkippedRecord, 0)

	for i, record := range records {
		if err := checkRecord(record); err != nil {
			skipped = append(skipped, model.SkippedRecord{Index: i, ID: record.ID, Reason: err.Error()})
			p.logger.Warn(ctx, "skipping malformed record",
				logger.Int("index", i),
				logger.String("id", record.ID),
				logger.Error(err),
			)
			continue
		}
		if tracker.SeenAndRecord(ctx, record.ID) {
			skipped = append(skipped, model.SkippedRecord{Index: i, ID: record.ID, Reason: ErrDuplicateID.Error()})
			p.logger.Warn(ctx, "skipping duplicate record",
				logger.Int("index", i),
				logger.String("id", record.ID),
			)
			continue
		}
		jobs = append(jobs, job{slot: len(jobs), record: record})
	}

	return jobs, skipped
}

// fanOut distributes jobs across the worker pool. Every worker writes only
// its own slots, so the output slice needs no locking.
func (p *Pipeline) fanOut(ctx context.Context, jobs []job, out []model.LabeledRecord) error {
	workers := p.workerCount
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers <= 1 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("batch canceled: %w", err)
			}
			out[j.slot] = p.process(j.record)
		}
		return nil
	}

	jobCh := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				out[j.slot] = p.process(j.record)
			}
		}()
	}

	var err error
feed:
	for _, j := range jobs {
		select {
		case jobCh <- j:
		case <-ctx.Done():
			err = fmt.Errorf("batch canceled: %w", ctx.Err())
			break feed
		}
	}
	close(jobCh)
	wg.Wait()
	return err
}

// process runs the calculator then the classifier for one record.
func (p *Pipeline) process(record model.RawRecord) model.LabeledRecord {
	scoreStart := time.Now()
	scored := p.calc.Score(record)
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Microseconds()) / 1000.0)

	return model.LabeledRecord{
		ScoredRecord: scored,
		Persona:      persona.Classify(scored, p.thresholds),
	}
}

// checkRecord rejects shapes the calculator cannot score. Missing signal
// values are fine (they default to neutral); NaN and infinities are not.
func checkRecord(record model.RawRecord) error {
	if record.ID == "" {
		return ErrEmptyID
	}
	for name, value := range record.Signals {
		if value == nil {
			continue
		}
		if math.IsNaN(*value) || math.IsInf(*value, 0) {
			return fmt.Errorf("signal %s: %w", name, ErrBadSignal)
		}
	}
	return nil
}

// Summarize reduces a labeled batch into the dashboard KPIs in one pass.
// Counts and sums are commutative, so record order never changes the result.
// An empty batch is valid: total 0, all percentages 0.0.
func Summarize(labeled []model.LabeledRecord, t persona.Thresholds) model.BatchSummary {
	summary := model.BatchSummary{
		Total:    len(labeled),
		Personas: make(map[model.Persona]model.PersonaStats, len(model.AllPersonas())),
	}

	type bucket struct {
		count                             int
		engagement, persistence, exposure float64
	}
	buckets := make(map[model.Persona]*bucket, len(model.AllPersonas()))
	for _, pn := range model.AllPersonas() {
		buckets[pn] = &bucket{}
	}

	for _, r := range labeled {
		b := buckets[r.Persona]
		b.count++
		b.engagement += r.Engagement
		b.persistence += r.Persistence
		b.exposure += r.FinancialExposure

		if r.Engagement >= t.EngagementCut {
			summary.HighEngagement++
		}
		if r.FinancialExposure >= t.RiskCut {
			summary.AtRisk++
		}
	}

	for _, pn := range model.AllPersonas() {
		b := buckets[pn]
		stats := model.PersonaStats{Count: b.count}
		if summary.Total > 0 {
			stats.Percent = pct(b.count, summary.Total)
		}
		if b.count > 0 {
			n := float64(b.count)
			stats.AvgEngagement = b.engagement / n
			stats.AvgPersistence = b.persistence / n
			stats.AvgExposure = b.exposure / n
		}
		summary.Personas[pn] = stats
	}

	if summary.Total > 0 {
		summary.HighEngagementPct = pct(summary.HighEngagement, summary.Total)
		summary.AtRiskPct = pct(summary.AtRisk, summary.Total)
	}

	return summary
}

func pct(count, total int) float64 {
	return float64(count) / float64(total) * 100.0
}
