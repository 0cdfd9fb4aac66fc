// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"planner/internal/adapters/projector"
	service "planner/internal/app"
	"planner/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// View returns the most recently published view.
	View() View

	// CreateEvent validates a draft and queues a create intent.
	CreateEvent(ctx context.Context, draft model.Draft) error

	// DeleteEvent queues a delete intent for id.
	DeleteEvent(ctx context.Context, id string) error

	// SetFilter switches the projection filter.
	SetFilter(mode projector.Filter)
}

// View mirrors the read shape published by the event loop.
type View = service.View

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	eventsHandler *EventsHandler
	filterHandler *FilterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, maxListLimit int) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		eventsHandler: NewEventsHandler(deps, maxListLimit),
		filterHandler: NewFilterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleHealth)
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEventByID, "event"))
	mux.HandleFunc("/filter", MetricsMiddleware(s.filterHandler.HandlePutFilter, "filter"))
}

// eventRequest mirrors the request schema for POST /events.
type eventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Category string `json:"category"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(e.Date) == "":
		return errors.New("missing date")
	case strings.TrimSpace(e.Time) == "":
		return errors.New("missing time")
	}
	if _, err := time.Parse(model.DateLayout, e.Date); err != nil {
		return errors.New("invalid date; must be 2006-01-02")
	}
	if _, err := time.Parse(model.TimeLayout, e.Time); err != nil {
		return errors.New("invalid time; must be 15:04")
	}
	return nil
}

type ackResponse struct {
	Status string `json:"status"`
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
