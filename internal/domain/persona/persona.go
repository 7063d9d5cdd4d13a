// Package persona assigns one of the four business personas to a scored
// record via an ordered rule table.
package persona

import (
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// Default classification cut points.
const (
	DefaultEngagementCut = 0.6
	DefaultRiskCut       = 0.6
)

// Thresholds holds the two cut points the classifier gates on. Persistence
// is deliberately absent: it is a display-only dimension.
type Thresholds struct {
	EngagementCut float64 `koanf:"engagement_cut" json:"engagement_cut"`
	RiskCut       float64 `koanf:"risk_cut" json:"risk_cut"`
}

// DefaultThresholds returns the standard 0.6/0.6 cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EngagementCut: DefaultEngagementCut,
		RiskCut:       DefaultRiskCut,
	}
}

// rule pairs a predicate with the persona it selects.
type rule struct {
	matches func(engagement, exposure float64, t Thresholds) bool
	persona model.Persona
}

// rules is evaluated top to bottom; the first match wins. Ordering matters:
// equality at a cut is inclusive on the high side, so the quadrants would
// overlap under naive boundary checks. The final rule has no predicate and
// keeps the table exhaustive over every (engagement, exposure) pair.
var rules = []rule{
	{
		matches: func(e, x float64, t Thresholds) bool { return e >= t.EngagementCut && x < t.RiskCut },
		persona: model.HighlyEngagedLoyalist,
	},
	{
		matches: func(e, x float64, t Thresholds) bool { return e < t.EngagementCut && x >= t.RiskCut },
		persona: model.FinanciallyStressedRepeater,
	},
	{
		matches: func(e, x float64, t Thresholds) bool { return e < t.EngagementCut && x < t.RiskCut },
		persona: model.CuriousSafeExplorer,
	},
	{
		matches: nil, // residual: high engagement and high exposure
		persona: model.ModeratePotential,
	},
}

// Classify maps a scored record to exactly one persona. Pure and
// deterministic; only the engagement and financial exposure scores gate the
// decision.
func Classify(record model.ScoredRecord, t Thresholds) model.Persona {
	for _, r := range rules {
		if r.matches == nil || r.matches(record.Engagement, record.FinancialExposure, t) {
			return r.persona
		}
	}
	// Unreachable: the last rule always matches.
	return model.ModeratePotential
}
