// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/adapters/repository"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// SummaryHandler serves the stored batch KPIs.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	summary, err := h.deps.Summary(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoBatch) {
			writeError(w, http.StatusNotFound, "no_batch", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// SkippedHandler serves the validation side channel of the stored batch.
type SkippedHandler struct {
	deps Dependencies
}

// NewSkippedHandler creates a new skipped-records handler.
func NewSkippedHandler(deps Dependencies) *SkippedHandler {
	return &SkippedHandler{deps: deps}
}

// HandleGetSkipped handles GET /skipped requests.
func (h *SkippedHandler) HandleGetSkipped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	skipped := h.deps.Skipped(r.Context())
	if skipped == nil {
		skipped = []model.SkippedRecord{}
	}
	writeJSON(w, http.StatusOK, skipped)
}
