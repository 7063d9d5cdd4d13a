package config_test

import (
	"context"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/config"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/persona"
)

func TestDefaults(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := config.New()

		Convey("Then the weight categories are valid out of the box", func() {
			So(cfg.Weights.Validate(), ShouldBeNil)
		})

		Convey("Then the thresholds match the documented defaults", func() {
			So(cfg.Thresholds(), ShouldResemble, persona.Thresholds{
				EngagementCut: 0.6,
				RiskCut:       0.6,
			})
		})

		Convey("Then operational fields have sane values", func() {
			So(cfg.Addr, ShouldNotBeEmpty)
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.DatasetPath, ShouldBeEmpty)
		})

		Convey("Then every weighted numeric signal has normalization bounds", func() {
			for _, category := range []map[string]float64{cfg.Weights.Engagement, cfg.Weights.Persistence} {
				for signal := range category {
					b, ok := cfg.SignalBounds[signal]
					So(ok, ShouldBeTrue)
					So(b.Max, ShouldBeGreaterThan, b.Min)
				}
			}
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		_ = os.Setenv("PERSONA_ADDR", ":8080")
		_ = os.Setenv("PERSONA_WORKER_COUNT", "4")
		_ = os.Setenv("PERSONA_ENGAGEMENT_CUT", "0.7")
		defer func() {
			_ = os.Unsetenv("PERSONA_ADDR")
			_ = os.Unsetenv("PERSONA_WORKER_COUNT")
			_ = os.Unsetenv("PERSONA_ENGAGEMENT_CUT")
		}()

		Convey("Then Load layers them over the defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.WorkerCount, ShouldEqual, 4)
			So(cfg.EngagementCut, ShouldAlmostEqual, 0.7, 1e-9)
			So(cfg.RiskCut, ShouldAlmostEqual, 0.6, 1e-9) // untouched default
		})
	})

	Convey("Given no overrides at all", t, func() {
		Convey("Then Load returns the defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Weights.Validate(), ShouldBeNil)
		})
	})

	Convey("Given a config file with invalid weights", t, func() {
		dir := t.TempDir()
		path := dir + "/persona.yaml"
		yaml := "weights:\n  engagement:\n    a: 0.3\n    b: 0.3\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)

		_ = os.Setenv("PERSONA_CONFIG", path)
		defer func() {
			_ = os.Unsetenv("PERSONA_CONFIG")
		}()

		Convey("Then Load fails fast with an invalid-config error", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
