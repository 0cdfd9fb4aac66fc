// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"planner/internal/adapters/projector"
)

// FilterHandler switches the projection filter.
type FilterHandler struct {
	deps Dependencies
}

// NewFilterHandler creates a new filter handler.
func NewFilterHandler(deps Dependencies) *FilterHandler {
	return &FilterHandler{deps: deps}
}

// filterRequest mirrors the request schema for PUT /filter.
type filterRequest struct {
	Filter string `json:"filter"`
}

// HandlePutFilter handles PUT /filter requests.
func (h *FilterHandler) HandlePutFilter(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_filter"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch projector.Filter(req.Filter) {
	case projector.FilterAll, projector.FilterUpcoming, projector.FilterPast:
	default:
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("unknown filter; must be all, upcoming or past")))
		return
	}

	h.deps.SetFilter(projector.ParseFilter(req.Filter))
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}
