package chain

import (
	"testing"
	"time"
)

func TestStopwatchUnstartedReportsZero(t *testing.T) {
	clock := newFakeClock()
	sw := NewStopwatch(clock)

	clock.Advance(5 * time.Second)
	if got := sw.Elapsed(); got != 0 {
		t.Errorf("Elapsed() before Reset = %v, want 0", got)
	}

	var zero Stopwatch
	if got := zero.Elapsed(); got != 0 {
		t.Errorf("zero value Elapsed() = %v, want 0", got)
	}
}

func TestStopwatchElapsedAndReset(t *testing.T) {
	clock := newFakeClock()
	sw := NewStopwatch(clock)

	sw.Reset()
	clock.Advance(150 * time.Millisecond)
	if got := sw.Elapsed(); got != 150*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 150ms", got)
	}

	sw.Reset()
	if got := sw.Elapsed(); got != 0 {
		t.Errorf("Elapsed() after Reset = %v, want 0", got)
	}

	clock.Advance(time.Second)
	if got := sw.Elapsed(); got != time.Second {
		t.Errorf("Elapsed() = %v, want 1s", got)
	}
}

func TestStopwatchNeverNegative(t *testing.T) {
	clock := newFakeClock()
	sw := NewStopwatch(clock)
	sw.Reset()

	clock.Advance(-time.Second)
	if got := sw.Elapsed(); got != 0 {
		t.Errorf("Elapsed() after clock went backwards = %v, want 0", got)
	}
}
