// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/adapters/repository"
	"github.com/tasneem33355/customer-persona-intelligence-dashboard/internal/domain/model"
)

// RecordsHandler handles filtered record reads.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleGetRecords handles GET /records requests. Query parameters mirror
// the dashboard filters: persona, min_engagement, max_engagement.
func (h *RecordsHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	records, err := h.deps.Records(r.Context(), filter)
	if err != nil {
		if errors.Is(err, repository.ErrNoBatch) {
			writeError(w, http.StatusNotFound, "no_batch", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func parseFilter(r *http.Request) (repository.Filter, error) {
	filter := repository.DefaultFilter()
	q := r.URL.Query()

	if p := q.Get("persona"); p != "" {
		persona := model.Persona(p)
		if !persona.Valid() {
			return repository.Filter{}, errors.New("unknown persona: " + p)
		}
		filter.Persona = persona
	}
	if v := q.Get("min_engagement"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return repository.Filter{}, errors.New("min_engagement must be a number")
		}
		filter.MinEngagement = f
	}
	if v := q.Get("max_engagement"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return repository.Filter{}, errors.New("max_engagement must be a number")
		}
		filter.MaxEngagement = f
	}
	if filter.MinEngagement > filter.MaxEngagement {
		return repository.Filter{}, errors.New("min_engagement exceeds max_engagement")
	}
	return filter, nil
}
