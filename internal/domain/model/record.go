// Package model contains domain models passed between layers.
package model

// Persona is one of the four fixed business personas assigned to a customer.
type Persona string

// The persona set is closed: every labeled record carries exactly one of
// these values and there is no "unclassified" state.
const (
	HighlyEngagedLoyalist       Persona = "Highly Engaged Loyalist"
	ModeratePotential           Persona = "Moderate Potential"
	CuriousSafeExplorer         Persona = "Curious Safe Explorer"
	FinanciallyStressedRepeater Persona = "Financially Stressed Repeater"
)

// AllPersonas lists every persona in display order. Aggregations iterate this
// so empty buckets still show up with zero counts.
func AllPersonas() []Persona {
	return []Persona{
		HighlyEngagedLoyalist,
		ModeratePotential,
		CuriousSafeExplorer,
		FinanciallyStressedRepeater,
	}
}

// Valid reports whether p is one of the four known personas.
func (p Persona) Valid() bool {
	switch p {
	case HighlyEngagedLoyalist, ModeratePotential, CuriousSafeExplorer, FinanciallyStressedRepeater:
		return true
	}
	return false
}

// RawRecord is one row of the input dataset. Signals are keyed by signal
// name; a nil value means the field was absent or null in the source data.
type RawRecord struct {
	ID      string              `json:"id"`
	Signals map[string]*float64 `json:"signals"`
}

// Signal returns the value for name and whether it was present.
func (r RawRecord) Signal(name string) (float64, bool) {
	v, ok := r.Signals[name]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// ScoredRecord is a RawRecord enriched with the three derived scores, each
// normalized to [0,1].
type ScoredRecord struct {
	RawRecord

	Engagement        float64 `json:"engagement_score"`
	Persistence       float64 `json:"persistence_score"`
	FinancialExposure float64 `json:"financial_exposure"`
}

// LabeledRecord is a ScoredRecord plus its persona. Immutable once produced.
type LabeledRecord struct {
	ScoredRecord

	Persona Persona `json:"persona"`
}

// PersonaStats aggregates one persona bucket within a batch. Averages cover
// the persona deep-dive view; they are zero when Count is zero.
type PersonaStats struct {
	Count          int     `json:"count"`
	Percent        float64 `json:"percent"`
	AvgEngagement  float64 `json:"avg_engagement"`
	AvgPersistence float64 `json:"avg_persistence"`
	AvgExposure    float64 `json:"avg_exposure"`
}

// BatchSummary aggregates a labeled batch into the KPIs the dashboard
// renders. Percentages are 0.0 on an empty batch, never NaN.
type BatchSummary struct {
	Total int `json:"total"`

	Personas map[Persona]PersonaStats `json:"personas"`

	HighEngagement    int     `json:"high_engagement"`
	HighEngagementPct float64 `json:"high_engagement_pct"`
	AtRisk            int     `json:"at_risk"`
	AtRiskPct         float64 `json:"at_risk_pct"`
}

// SkippedRecord reports a malformed input row that was excluded from a batch
// rather than aborting it. Index is the record's position in the input.
type SkippedRecord struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}
