package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/adapters/http/api"
	service "github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/app"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/scoring"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/pipeline"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	svc := service.New(service.WithWeights(scoring.WeightConfig{
		Engagement:  map[string]float64{"e": 1},
		Persistence: map[string]float64{"p": 1},
		Financial:   map[string]float64{"f": 1},
	}))
	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

const batchBody = `{"records":[
	{"id":"a","signals":{"e":0.9,"p":0.5,"f":0.1}},
	{"id":"b","signals":{"e":0.1,"p":0.5,"f":0.9}},
	{"id":"","signals":{"e":0.5}}
]}`

func TestBatchEndpoint(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newTestMux(t)

		Convey("When posting a batch", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(batchBody)))

			Convey("Then the labeled result comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result pipeline.Result
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Labeled, ShouldHaveLength, 2)
				So(result.Labeled[0].Persona, ShouldEqual, model.HighlyEngagedLoyalist)
				So(result.Skipped, ShouldHaveLength, 1)
				So(result.Summary.Total, ShouldEqual, 2)
			})
		})

		Convey("When posting malformed JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader("{nope")))

			Convey("Then the API answers 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/batch", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestReadEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newTestMux(t)

		Convey("When reading before any batch has run", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

			Convey("Then the API answers 404 no_batch", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, "no_batch")
			})
		})

		Convey("When a batch has been posted", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(batchBody)))
			So(rec.Code, ShouldEqual, http.StatusOK)

			Convey("Then /summary serves the stored KPIs", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)

				var summary model.BatchSummary
				So(json.Unmarshal(rec.Body.Bytes(), &summary), ShouldBeNil)
				So(summary.Total, ShouldEqual, 2)
				So(summary.AtRisk, ShouldEqual, 1)
			})

			Convey("Then /records honors the persona filter", func() {
				rec := httptest.NewRecorder()
				target := "/records?persona=" + strings.ReplaceAll(string(model.FinanciallyStressedRepeater), " ", "%20")
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
				So(rec.Code, ShouldEqual, http.StatusOK)

				var records []model.LabeledRecord
				So(json.Unmarshal(rec.Body.Bytes(), &records), ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].ID, ShouldEqual, "b")
			})

			Convey("Then /records honors the engagement range filter", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records?min_engagement=0.5", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)

				var records []model.LabeledRecord
				So(json.Unmarshal(rec.Body.Bytes(), &records), ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].ID, ShouldEqual, "a")
			})

			Convey("Then /records rejects unknown personas", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records?persona=Nobody", nil))
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("Then /records rejects an inverted engagement range", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records?min_engagement=0.9&max_engagement=0.1", nil))
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("Then /skipped serves the side channel", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skipped", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)

				var skipped []model.SkippedRecord
				So(json.Unmarshal(rec.Body.Bytes(), &skipped), ShouldBeNil)
				So(skipped, ShouldHaveLength, 1)
				So(skipped[0].Index, ShouldEqual, 2)
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the API server", t, func() {
		mux := newTestMux(t)

		Convey("Then /healthz reports ok", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("Then /stats serves service statistics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)

			var stats map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
		})

		Convey("Then /metrics exposes the Prometheus registry", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "persona_")
		})
	})
}
