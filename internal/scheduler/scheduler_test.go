package scheduler

import (
	"testing"
	"time"
)

func TestNewInterval_Delivers(t *testing.T) {
	tick := NewInterval(5 * time.Millisecond)
	defer tick.Stop()

	select {
	case <-tick.Ticks():
	case <-time.After(time.Second):
		t.Fatal("expected a tick within a second")
	}
}

func TestNewInterval_FallsBackOnNonPositive(t *testing.T) {
	tick := NewInterval(0)
	// Fallback is the 1 s default; just make sure it is usable and stoppable.
	tick.Stop()
	tick.Stop() // idempotent
}

func TestManual_FireAndStop(t *testing.T) {
	m := NewManual()

	want := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	go m.Fire(want)

	select {
	case got := <-m.Ticks():
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the fired tick")
	}

	m.Stop()
	m.Stop() // idempotent

	if _, ok := <-m.Ticks(); ok {
		t.Error("expected tick channel to be closed after Stop")
	}
}
