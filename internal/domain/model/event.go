// Package model contains domain models passed between layers.
package model

import "time"

// Event represents a single planned occurrence tracked by the planner.
// Date and Time keep the literal strings delivered by the remote store;
// temporal derivations always go through TargetInstant.
type Event struct {
	ID       string   // document identifier, unique within the cache
	Title    string   // non-empty display string
	Date     string   // calendar date, ISO 8601 (2006-01-02)
	Time     string   // time of day, 24h (15:04)
	Category Category // closed enumeration, defaults to CategoryPersonal
}

// Layouts for the literal date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TargetInstant combines the event's date and time fields in local time.
// Malformed fields yield the zero time; well-formed values are the remote
// store's contract, so this is a data-integrity escape hatch, not validation.
func (e Event) TargetInstant() time.Time {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Today reports whether the event's calendar date equals now's date.
func (e Event) Today(now time.Time) bool {
	return e.Date == now.Format(DateLayout)
}

// Draft is the user-supplied input for a new event, before normalization
// and before the remote store assigns a document id.
type Draft struct {
	Title    string
	Date     string
	Time     string
	Category string
}
