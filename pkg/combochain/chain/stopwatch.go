package chain

import "time"

// Clock supplies the current time to a Stopwatch
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the process clock (monotonic readings included)
var SystemClock Clock = systemClock{}

// Stopwatch reports the time elapsed since its last Reset.
// Elapsed is computed when queried, nothing ticks in the background.
// A stopwatch that has never been reset reports zero.
type Stopwatch struct {
	clock   Clock
	started time.Time
	running bool
}

func NewStopwatch(clock Clock) Stopwatch {
	return Stopwatch{clock: clock}
}

func (s *Stopwatch) Reset() {
	s.started = s.now()
	s.running = true
}

func (s *Stopwatch) Elapsed() time.Duration {
	if !s.running {
		return 0
	}

	elapsed := s.now().Sub(s.started)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (s *Stopwatch) now() time.Time {
	if s.clock == nil {
		return SystemClock.Now()
	}
	return s.clock.Now()
}
