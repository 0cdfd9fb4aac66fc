// Package countdown derives temporal status and remaining-time units
// for an event target instant. Everything here is pure: same inputs,
// same outputs, no clock access.
package countdown

import (
	"fmt"
	"time"
)

// Second spans for the unit decomposition.
const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// Status is the temporal state of an event relative to now.
type Status string

// The two statuses. The transition UPCOMING -> ACTIVE is one-way: once
// the target instant is reached an event never re-enters UPCOMING
// without a data change.
const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
)

// Breakdown is the derived countdown state for a single event.
// Unit fields are only meaningful when Status is StatusUpcoming.
type Breakdown struct {
	Status  Status
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Derive computes the status and, for upcoming events, the remaining
// time decomposed into days/hours/minutes/seconds. The boundary is
// inclusive on the active side: now == target derives ACTIVE.
// Days are unbounded; targets arbitrarily far out stay representable.
func Derive(target, now time.Time) Breakdown {
	if !now.Before(target) {
		return Breakdown{Status: StatusActive}
	}

	total := int(target.Sub(now) / time.Second)
	return Breakdown{
		Status:  StatusUpcoming,
		Days:    total / secondsPerDay,
		Hours:   (total % secondsPerDay) / secondsPerHour,
		Minutes: (total % secondsPerHour) / secondsPerMinute,
		Seconds: total % secondsPerMinute,
	}
}

// String renders the breakdown with zero-padded units, e.g. "03d 07h 05m 09s".
// Active breakdowns render as "active".
func (b Breakdown) String() string {
	if b.Status == StatusActive {
		return "active"
	}
	return fmt.Sprintf("%02dd %02dh %02dm %02ds", b.Days, b.Hours, b.Minutes, b.Seconds)
}
