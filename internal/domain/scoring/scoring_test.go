package scoring_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/scoring"
)

func ptr(v float64) *float64 { return &v }

func validWeights() scoring.WeightConfig {
	return scoring.WeightConfig{
		Engagement:  map[string]float64{"campaign": 0.4, "previous": 0.3, "duration": 0.3},
		Persistence: map[string]float64{"previous": 0.6, "tenure": 0.4},
		Financial:   map[string]float64{"housing_loan": 0.5, "personal_loan": 0.5},
	}
}

func TestWeightConfigValidate(t *testing.T) {
	Convey("Given weight configurations", t, func() {
		Convey("When every category sums to 1.0", func() {
			So(validWeights().Validate(), ShouldBeNil)
		})

		Convey("When a category sums to 0.6", func() {
			w := validWeights()
			w.Engagement = map[string]float64{"a": 0.3, "b": 0.3}

			Convey("Then validation fails with the weight-sum kind", func() {
				err := w.Validate()
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, scoring.ErrWeightSum)
			})
		})

		Convey("When a weight is negative", func() {
			w := validWeights()
			w.Financial = map[string]float64{"housing_loan": 1.5, "personal_loan": -0.5}

			Convey("Then validation fails with the negative-weight kind", func() {
				err := w.Validate()
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, scoring.ErrNegativeWeight)
			})
		})

		Convey("When a category is empty", func() {
			w := validWeights()
			w.Persistence = nil

			Convey("Then validation fails with the empty-category kind", func() {
				err := w.Validate()
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, scoring.ErrEmptyCategory)
			})
		})

		Convey("When the sum drifts within tolerance", func() {
			w := validWeights()
			w.Engagement = map[string]float64{"a": 0.5, "b": 0.5 + 5e-7}
			So(w.Validate(), ShouldBeNil)
		})
	})
}

func TestCalculatorScore(t *testing.T) {
	Convey("Given a calculator with bounds for every weighted signal", t, func() {
		calc, err := scoring.NewCalculator(validWeights(), scoring.WithSignalBounds(map[string]scoring.Bounds{
			"campaign": {Min: 0, Max: 20},
			"previous": {Min: 0, Max: 10},
			"duration": {Min: 0, Max: 3600},
			"tenure":   {Min: 0, Max: 120},
		}))
		So(err, ShouldBeNil)

		Convey("When scoring a fully populated record", func() {
			record := model.RawRecord{
				ID: "c-1",
				Signals: map[string]*float64{
					"campaign":      ptr(10),  // normalizes to 0.5
					"previous":      ptr(5),   // normalizes to 0.5
					"duration":      ptr(900), // normalizes to 0.25
					"tenure":        ptr(60),  // normalizes to 0.5
					"housing_loan":  ptr(1),
					"personal_loan": ptr(0),
				},
			}
			scored := calc.Score(record)

			Convey("Then each score is the weighted sum of normalized signals", func() {
				So(scored.Engagement, ShouldAlmostEqual, 0.4*0.5+0.3*0.5+0.3*0.25, 1e-9)
				So(scored.Persistence, ShouldAlmostEqual, 0.6*0.5+0.4*0.5, 1e-9)
				So(scored.FinancialExposure, ShouldAlmostEqual, 0.5, 1e-9)
			})

			Convey("And the raw record rides along unchanged", func() {
				So(scored.ID, ShouldEqual, "c-1")
			})
		})

		Convey("When every signal is missing", func() {
			scored := calc.Score(model.RawRecord{ID: "c-2", Signals: map[string]*float64{}})

			Convey("Then every score sits at the neutral midpoint", func() {
				So(scored.Engagement, ShouldAlmostEqual, 0.5, 1e-9)
				So(scored.Persistence, ShouldAlmostEqual, 0.5, 1e-9)
				So(scored.FinancialExposure, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When one signal is missing and the rest are present", func() {
			scored := calc.Score(model.RawRecord{
				ID: "c-3",
				Signals: map[string]*float64{
					"campaign": ptr(20),
					"duration": ptr(3600),
					// previous absent
				},
			})

			Convey("Then only that slot defaults to neutral", func() {
				So(scored.Engagement, ShouldAlmostEqual, 0.4*1+0.3*0.5+0.3*1, 1e-9)
			})
		})

		Convey("When signal values fall outside their bounds", func() {
			scored := calc.Score(model.RawRecord{
				ID: "c-4",
				Signals: map[string]*float64{
					"campaign": ptr(500),
					"previous": ptr(-3),
					"duration": ptr(99999),
				},
			})

			Convey("Then values clamp instead of failing", func() {
				So(scored.Engagement, ShouldAlmostEqual, 0.4*1+0.3*0+0.3*1, 1e-9)
			})
		})
	})
}

func TestCalculatorProperties(t *testing.T) {
	Convey("Given random valid weights and random signal values", t, func() {
		rng := rand.New(rand.NewSource(7))

		randomCategory := func(signals ...string) map[string]float64 {
			raw := make([]float64, len(signals))
			var sum float64
			for i := range raw {
				raw[i] = rng.Float64() + 0.01
				sum += raw[i]
			}
			out := make(map[string]float64, len(signals))
			for i, s := range signals {
				out[s] = raw[i] / sum
			}
			return out
		}

		Convey("Then scores always land in [0,1]", func() {
			for trial := 0; trial < 200; trial++ {
				w := scoring.WeightConfig{
					Engagement:  randomCategory("a", "b", "c"),
					Persistence: randomCategory("d", "e"),
					Financial:   randomCategory("f", "g", "h"),
				}
				calc, err := scoring.NewCalculator(w)
				So(err, ShouldBeNil)

				signals := make(map[string]*float64)
				for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
					if rng.Float64() < 0.2 {
						continue // leave missing
					}
					signals[s] = ptr(rng.Float64()*200 - 100)
				}
				scored := calc.Score(model.RawRecord{ID: "r", Signals: signals})

				So(scored.Engagement, ShouldBeBetweenOrEqual, 0, 1)
				So(scored.Persistence, ShouldBeBetweenOrEqual, 0, 1)
				So(scored.FinancialExposure, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("And scoring is deterministic across repeated calls", func() {
			calc, err := scoring.NewCalculator(validWeights())
			So(err, ShouldBeNil)

			record := model.RawRecord{
				ID: "r",
				Signals: map[string]*float64{
					"campaign": ptr(0.3),
					"previous": ptr(0.9),
					"duration": ptr(0.1),
				},
			}
			first := calc.Score(record)
			for i := 0; i < 20; i++ {
				So(calc.Score(record), ShouldResemble, first)
			}
		})
	})
}

func TestNewCalculatorFailFast(t *testing.T) {
	Convey("Given an invalid weight configuration", t, func() {
		w := validWeights()
		w.Engagement = map[string]float64{"a": 0.3, "b": 0.3}

		Convey("Then construction fails before any record is scored", func() {
			calc, err := scoring.NewCalculator(w)
			So(calc, ShouldBeNil)
			So(err, ShouldWrap, scoring.ErrWeightSum)
		})
	})
}
