// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New(); nothing is baked into the domain packages.
// - External errors are wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/dataset"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/persona"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/scoring"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of parallel scoring goroutines per batch.
	WorkerCount int `koanf:"worker_count"`

	// DatasetPath optionally points at a CSV file scored at startup, so the
	// dashboard has data before the first upload. Empty means no preload.
	DatasetPath string `koanf:"dataset_path"`

	// EngagementCut and RiskCut are the classification boundaries.
	EngagementCut float64 `koanf:"engagement_cut"`
	RiskCut       float64 `koanf:"risk_cut"`

	// Weights maps signal names to weights per score category. Each
	// category must sum to 1.0.
	Weights scoring.WeightConfig `koanf:"weights"`

	// SignalBounds sets the min-max normalization range per signal.
	SignalBounds map[string]scoring.Bounds `koanf:"signal_bounds"`
}

// Thresholds returns the classification cut points as a domain value.
func (c *Config) Thresholds() persona.Thresholds {
	return persona.Thresholds{
		EngagementCut: c.EngagementCut,
		RiskCut:       c.RiskCut,
	}
}

// New creates a Config with the default weighting of the bank-marketing
// column layout. Deployments with other datasets override via file or env.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		WorkerCount:   runtime.NumCPU(),
		EngagementCut: persona.DefaultEngagementCut,
		RiskCut:       persona.DefaultRiskCut,
		Weights: scoring.WeightConfig{
			Engagement: map[string]float64{
				dataset.SignalCampaign: 0.4,
				dataset.SignalPrevious: 0.3,
				dataset.SignalDuration: 0.3,
			},
			Persistence: map[string]float64{
				dataset.SignalPrevious:        0.6,
				dataset.SignalTenure:          0.2,
				dataset.SignalRepeatPurchases: 0.2,
			},
			Financial: map[string]float64{
				dataset.SignalHousingLoan:  0.5,
				dataset.SignalPersonalLoan: 0.5,
			},
		},
		SignalBounds: map[string]scoring.Bounds{
			dataset.SignalCampaign:        {Min: 0, Max: 20},
			dataset.SignalPrevious:        {Min: 0, Max: 10},
			dataset.SignalDuration:        {Min: 0, Max: 3600},
			dataset.SignalTenure:          {Min: 0, Max: 120},
			dataset.SignalRepeatPurchases: {Min: 0, Max: 50},
			dataset.SignalBalance:         {Min: -2000, Max: 20000},
		},
	}
}
