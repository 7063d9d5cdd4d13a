// Package scoring computes the three normalized customer scores from raw
// signal values.
package scoring

import (
	"fmt"
	"math"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// Default scoring configuration constants.
const (
	// weightSumTolerance bounds the allowed drift of a category's weight sum
	// from 1.0.
	weightSumTolerance = 1e-6

	// neutralValue substitutes missing signal values so one absent field does
	// not collapse a whole category score.
	neutralValue = 0.5
)

// Category names used in validation errors.
const (
	categoryEngagement  = "engagement"
	categoryPersistence = "persistence"
	categoryFinancial   = "financial"
)

// Bounds holds the expected domain range of one raw signal. Values outside
// the range clamp to it.
type Bounds struct {
	Min float64 `koanf:"min" json:"min"`
	Max float64 `koanf:"max" json:"max"`
}

// WeightConfig maps signal names to non-negative weights, one map per score
// category. Each category's weights must sum to 1.0 within tolerance.
type WeightConfig struct {
	Engagement  map[string]float64 `koanf:"engagement" json:"engagement"`
	Persistence map[string]float64 `koanf:"persistence" json:"persistence"`
	Financial   map[string]float64 `koanf:"financial" json:"financial"`
}

// Validate checks every category eagerly so a bad configuration fails before
// any record is scored.
func (w WeightConfig) Validate() error {
	for _, c := range []struct {
		name    string
		weights map[string]float64
	}{
		{categoryEngagement, w.Engagement},
		{categoryPersistence, w.Persistence},
		{categoryFinancial, w.Financial},
	} {
		if err := validateCategory(c.name, c.weights); err != nil {
			return err
		}
	}
	return nil
}

func validateCategory(name string, weights map[string]float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("category %s has no weights: %w", name, ErrEmptyCategory)
	}
	var sum float64
	for signal, weight := range weights {
		if weight < 0 {
			return fmt.Errorf("category %s signal %s has weight %v: %w", name, signal, weight, ErrNegativeWeight)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("category %s weights sum to %v: %w", name, sum, ErrWeightSum)
	}
	return nil
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithSignalBounds sets the min-max normalization bounds per signal name.
// Signals without explicit bounds fall back to [0,1].
func WithSignalBounds(bounds map[string]Bounds) Option {
	return func(c *Calculator) {
		c.bounds = make(map[string]Bounds, len(bounds))
		for signal, b := range bounds {
			if b.Max > b.Min {
				c.bounds[signal] = b
			}
		}
	}
}

// Calculator derives the engagement, persistence, and financial exposure
// scores for a record. It is stateless after construction and safe for
// concurrent use.
type Calculator struct {
	weights WeightConfig
	bounds  map[string]Bounds
}

// NewCalculator validates weights and builds a Calculator. Validation is
// fail-fast: an invalid category aborts before any record is processed.
func NewCalculator(weights WeightConfig, opts ...Option) (*Calculator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	c := &Calculator{
		weights: weights,
		bounds:  make(map[string]Bounds),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Score computes the three scores for a record. Deterministic and free of
// side effects: the same record and configuration always produce the same
// output, and signal iteration order cannot change the result because the
// weighted sum is commutative.
func (c *Calculator) Score(record model.RawRecord) model.ScoredRecord {
	return model.ScoredRecord{
		RawRecord:         record,
		Engagement:        c.scoreCategory(c.weights.Engagement, record),
		Persistence:       c.scoreCategory(c.weights.Persistence, record),
		FinancialExposure: c.scoreCategory(c.weights.Financial, record),
	}
}

// scoreCategory computes one weighted score. Missing signals contribute the
// neutral midpoint; the final sum clamps to [0,1] against float drift.
func (c *Calculator) scoreCategory(weights map[string]float64, record model.RawRecord) float64 {
	var score float64
	for signal, weight := range weights {
		value := neutralValue
		if raw, ok := record.Signal(signal); ok {
			value = c.normalize(signal, raw)
		}
		score += weight * value
	}
	return clamp01(score)
}

// normalize maps a raw signal value into [0,1] via min-max over the signal's
// configured bounds. Out-of-bounds values clamp rather than fail.
func (c *Calculator) normalize(signal string, raw float64) float64 {
	b, ok := c.bounds[signal]
	if !ok {
		return clamp01(raw)
	}
	return clamp01((raw - b.Min) / (b.Max - b.Min))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
