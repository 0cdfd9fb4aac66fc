// Package scheduler provides the shared tick source driving periodic
// re-projection. One ticker serves every visible event; per-event
// timers would drift apart and grow with the card count.
package scheduler

import (
	"sync"
	"time"
)

// DefaultInterval is the countdown refresh period.
const DefaultInterval = time.Second

// Ticker delivers the shared projection tick.
type Ticker interface {
	// Ticks returns the tick channel.
	Ticks() <-chan time.Time

	// Stop ends tick delivery. Safe to call more than once.
	Stop()
}

// intervalTicker wraps time.Ticker with idempotent stop.
type intervalTicker struct {
	ticker *time.Ticker
	once   sync.Once
}

// NewInterval creates a ticker firing every d. Non-positive intervals
// fall back to DefaultInterval.
func NewInterval(d time.Duration) Ticker {
	if d <= 0 {
		d = DefaultInterval
	}
	return &intervalTicker{ticker: time.NewTicker(d)}
}

func (t *intervalTicker) Ticks() <-chan time.Time {
	return t.ticker.C
}

func (t *intervalTicker) Stop() {
	t.once.Do(t.ticker.Stop)
}

// Manual is a hand-driven ticker for tests.
type Manual struct {
	ch   chan time.Time
	once sync.Once
}

// NewManual creates a manual ticker.
func NewManual() *Manual {
	return &Manual{ch: make(chan time.Time, 1)}
}

// Ticks returns the tick channel.
func (m *Manual) Ticks() <-chan time.Time {
	return m.ch
}

// Fire delivers a single tick carrying the given instant.
func (m *Manual) Fire(now time.Time) {
	m.ch <- now
}

// Stop closes the tick channel. Safe to call more than once.
func (m *Manual) Stop() {
	m.once.Do(func() { close(m.ch) })
}
