// Package projector builds presentation-ready views from the cached
// event collection. Projection is pure: a function of the events, the
// filter, and the current instant. View-models are ephemeral and are
// rebuilt on every tick; nothing here is persisted.
package projector

import (
	"sort"
	"time"

	"planner/internal/domain/countdown"
	"planner/internal/domain/model"
)

// Filter selects which temporal slice of the collection to project.
type Filter string

// The three filter modes.
const (
	FilterAll      Filter = "all"
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
)

// ParseFilter maps a raw string onto a filter mode, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterUpcoming:
		return FilterUpcoming
	case FilterPast:
		return FilterPast
	default:
		return FilterAll
	}
}

// ViewModel pairs an event with its derived countdown state.
type ViewModel struct {
	Event     model.Event
	Countdown countdown.Breakdown
	Today     bool // the event's calendar date equals now's date
}

// Project filters and orders the events for presentation. Output is
// ascending by target instant; equal instants tie-break ascending by
// id so repeated projections are deterministic.
func Project(events []model.Event, filter Filter, now time.Time) []ViewModel {
	views := make([]ViewModel, 0, len(events))
	for _, e := range events {
		b := countdown.Derive(e.TargetInstant(), now)
		switch filter {
		case FilterUpcoming:
			if b.Status != countdown.StatusUpcoming {
				continue
			}
		case FilterPast:
			if b.Status != countdown.StatusActive {
				continue
			}
		}
		views = append(views, ViewModel{
			Event:     e,
			Countdown: b,
			Today:     e.Today(now),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		ti, tj := views[i].Event.TargetInstant(), views[j].Event.TargetInstant()
		if ti.Equal(tj) {
			return views[i].Event.ID < views[j].Event.ID
		}
		return ti.Before(tj)
	})

	return views
}
