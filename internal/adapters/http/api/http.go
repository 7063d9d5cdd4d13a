// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/adapters/repository"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/pipeline"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// RunBatch scores and labels a batch and stores the result.
	RunBatch(ctx context.Context, records []model.RawRecord) (pipeline.Result, error)

	// Read operations expose the stored batch.
	Summary(ctx context.Context) (model.BatchSummary, error)
	Records(ctx context.Context, filter repository.Filter) ([]model.LabeledRecord, error)
	Skipped(ctx context.Context) []model.SkippedRecord
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	batchHandler   *BatchHandler
	summaryHandler *SummaryHandler
	recordsHandler *RecordsHandler
	skippedHandler *SkippedHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		batchHandler:   NewBatchHandler(deps),
		summaryHandler: NewSummaryHandler(deps),
		recordsHandler: NewRecordsHandler(deps),
		skippedHandler: NewSkippedHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/batch", MetricsMiddleware(s.batchHandler.HandlePostBatch, "batch"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleGetRecords, "records"))
	mux.HandleFunc("/skipped", MetricsMiddleware(s.skippedHandler.HandleGetSkipped, "skipped"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
