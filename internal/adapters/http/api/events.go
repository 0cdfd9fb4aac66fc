// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"planner/internal/adapters/mq/queue"
	"planner/internal/adapters/projector"
	"planner/internal/adapters/store"
	"planner/internal/domain/countdown"
	"planner/internal/domain/model"
)

// EventsHandler handles event collection requests.
type EventsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies, maxLimit int) *EventsHandler {
	return &EventsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// eventItem is the wire shape of a projected event.
type eventItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	Color     string `json:"color"`
	Today     bool   `json:"today"`
	Status    string `json:"status"`
	Days      int    `json:"days"`
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	Seconds   int    `json:"seconds"`
	Countdown string `json:"countdown"`
}

// viewResponse is the wire shape of GET /events.
type viewResponse struct {
	Events  []eventItem `json:"events"`
	Count   int         `json:"count"`
	Filter  string      `json:"filter"`
	Loading bool        `json:"loading"`
	Warning string      `json:"warning,omitempty"`
}

// HandleEvents handles GET /events?limit=N and POST /events requests.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	view := h.deps.View()
	items := view.Items
	responseFilter := string(view.Filter)

	// An explicit filter narrows this response without switching the
	// engine's active filter.
	if filterStr := r.URL.Query().Get("filter"); filterStr != "" {
		f := projector.Filter(filterStr)
		switch f {
		case projector.FilterAll, projector.FilterUpcoming, projector.FilterPast:
		default:
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		items = filterItems(items, f)
		responseFilter = filterStr
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	resp := viewResponse{
		Events:  make([]eventItem, 0, len(items)),
		Count:   len(items),
		Filter:  responseFilter,
		Loading: view.Loading,
		Warning: view.Warning,
	}
	for _, v := range items {
		item := eventItem{
			ID:        v.Event.ID,
			Title:     v.Event.Title,
			Date:      v.Event.Date,
			Time:      v.Event.Time,
			Category:  v.Event.Category.String(),
			Color:     v.Event.Category.Color(),
			Today:     v.Today,
			Status:    string(v.Countdown.Status),
			Countdown: v.Countdown.String(),
		}
		if v.Countdown.Status == countdown.StatusUpcoming {
			item.Days = v.Countdown.Days
			item.Hours = v.Countdown.Hours
			item.Minutes = v.Countdown.Minutes
			item.Seconds = v.Countdown.Seconds
		}
		resp.Events = append(resp.Events, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// filterItems narrows projected items by derived status.
func filterItems(items []projector.ViewModel, f projector.Filter) []projector.ViewModel {
	if f == projector.FilterAll {
		return items
	}
	want := countdown.StatusUpcoming
	if f == projector.FilterPast {
		want = countdown.StatusActive
	}
	out := make([]projector.ViewModel, 0, len(items))
	for _, v := range items {
		if v.Countdown.Status == want {
			out = append(out, v)
		}
	}
	return out
}

func (h *EventsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_event"

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	draft := model.Draft{
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Category: req.Category,
	}
	if err := h.deps.CreateEvent(r.Context(), draft); err != nil {
		switch {
		case errors.Is(err, store.ErrValidation):
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		case errors.Is(err, queue.ErrQueueFull):
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	// The cache stays untouched until the resulting snapshot arrives.
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

// HandleEventByID handles DELETE /events/{id} requests.
func (h *EventsHandler) HandleEventByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_event"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/events/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.DeleteEvent(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, queue.ErrQueueFull):
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
