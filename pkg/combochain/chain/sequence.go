package chain

import (
	"fmt"
	"time"
)

// DefaultStepDelay is the delay budget of a step that does not configure one
const DefaultStepDelay = 12500 * time.Microsecond

// Callback is invoked with the hold duration of the input that completed an action
type Callback func(holdDuration time.Duration)

// Step is one element of a registered sequence
type Step[K comparable] struct {
	ActionID K
	// MaxDelay is the exclusive upper bound on the time since the previous input.
	// Ignored for the first step of a sequence.
	MaxDelay time.Duration
	// MinHold is the inclusive lower bound on how long the input was held
	MinHold time.Duration
}

// NewStep builds a step whose delay budget is delay plus minHold,
// so time spent holding the input does not count against the delay.
func NewStep[K comparable](id K, delay, minHold time.Duration) Step[K] {
	return Step[K]{
		ActionID: id,
		MaxDelay: delay + minHold,
		MinHold:  minHold,
	}
}

func (s Step[K]) validate() error {
	if s.MaxDelay < 0 || s.MinHold < 0 {
		return fmt.Errorf("%w: negative timing (max delay %s, min hold %s)", ErrInvalidStep, s.MaxDelay, s.MinHold)
	}
	if s.MaxDelay < s.MinHold {
		return fmt.Errorf("%w: max delay %s is below min hold %s", ErrInvalidStep, s.MaxDelay, s.MinHold)
	}
	return nil
}

func (s Step[K]) matches(entry Entry[K], first bool) bool {
	if s.ActionID != entry.ActionID {
		return false
	}
	if !first && entry.Delay >= s.MaxDelay {
		return false
	}
	return entry.HoldDuration >= s.MinHold
}

// Action is a registered sequence and the callback it fires
type Action[K comparable] struct {
	steps    []Step[K]
	callback Callback
}

// Steps returns a copy of the action's steps
func (a Action[K]) Steps() []Step[K] {
	steps := make([]Step[K], len(a.steps))
	copy(steps, a.steps)
	return steps
}

func (a Action[K]) Len() int {
	return len(a.steps)
}
