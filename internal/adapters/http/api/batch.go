// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// maxBatchBody bounds the request body to keep one upload from exhausting
// memory. 64 MiB covers datasets far beyond the dashboard's scale.
const maxBatchBody = 64 << 20

// BatchHandler handles batch submission requests.
type BatchHandler struct {
	deps Dependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps Dependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// batchRequest is the POST /batch payload: the already-parsed record rows.
type batchRequest struct {
	Records []model.RawRecord `json:"records"`
}

// HandlePostBatch handles POST /batch requests. The whole batch is scored,
// labeled, summarized, stored, and echoed back in one response.
func (h *BatchHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req batchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBatchBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.RunBatch(r.Context(), req.Records)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
