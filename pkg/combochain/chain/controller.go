// Package chain recognizes ordered input sequences ("combos") with per step
// timing constraints and fires a callback for the first registered sequence
// that matches the recent input history.
//
// A Controller is not safe for concurrent use. Calling Evaluate from inside a
// firing callback is undefined.
package chain

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultMaxActions     = 24
	DefaultMaxBufferSize  = 4
	DefaultResetThreshold = 750 * time.Millisecond
)

// Options configures a Controller. Zero values use the defaults.
type Options struct {
	// MaxActions is the number of sequences that can be registered
	MaxActions int
	// MaxBufferSize should be at least the length of the longest registered sequence
	MaxBufferSize int
	// ResetThreshold is the silence after which the history is dropped
	ResetThreshold time.Duration
	Clock          Clock
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxActions <= 0 {
		o.MaxActions = DefaultMaxActions
	}
	if o.MaxBufferSize <= 0 {
		o.MaxBufferSize = DefaultMaxBufferSize
	}
	if o.ResetThreshold <= 0 {
		o.ResetThreshold = DefaultResetThreshold
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Controller matches released inputs against registered sequences
type Controller[K comparable] struct {
	actions    []Action[K]
	maxActions int

	history        *History[K]
	resetThreshold time.Duration

	inputTimer Stopwatch
	holdTimer  Stopwatch

	logger *slog.Logger
}

func NewController[K comparable](opts Options) *Controller[K] {
	opts = opts.withDefaults()

	c := &Controller[K]{
		actions:        make([]Action[K], 0, opts.MaxActions),
		maxActions:     opts.MaxActions,
		history:        NewHistory[K](opts.MaxBufferSize),
		resetThreshold: opts.ResetThreshold,
		inputTimer:     NewStopwatch(opts.Clock),
		holdTimer:      NewStopwatch(opts.Clock),
		logger:         opts.Logger,
	}
	c.inputTimer.Reset()

	return c
}

// AddAction registers a sequence. Earlier registrations win when several sequences match.
func (c *Controller[K]) AddAction(callback Callback, steps ...Step[K]) error {
	if len(c.actions) >= c.maxActions {
		return fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, c.maxActions)
	}
	if callback == nil {
		return ErrNilCallback
	}
	if len(steps) == 0 {
		return ErrEmptySequence
	}

	for i, step := range steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	if len(steps) > c.history.Cap() {
		c.logger.Warn("Input chain sequence is longer than the input buffer and can never match",
			"steps", len(steps),
			"buffer_size", c.history.Cap())
	}

	owned := make([]Step[K], len(steps))
	copy(owned, steps)

	c.actions = append(c.actions, Action[K]{steps: owned, callback: callback})
	return nil
}

// Clear removes every registered action and drops the history. Timers keep running.
func (c *Controller[K]) Clear() {
	clear(c.actions)
	c.actions = c.actions[:0]
	c.ClearBuffer()
}

func (c *Controller[K]) ClearBuffer() {
	c.history.Clear()
}

// MarkHoldStart starts timing a hold. Call it when a watched input is pressed.
func (c *Controller[K]) MarkHoldStart() {
	c.holdTimer.Reset()
}

// Evaluate records the release of id and fires the first registered action
// whose steps match the history from its start. Without a match the history
// is trimmed to the earliest entry that can still begin a sequence.
func (c *Controller[K]) Evaluate(id K) {
	sinceLastInput := c.inputTimer.Elapsed()
	holdDuration := c.holdTimer.Elapsed()

	if sinceLastInput >= c.resetThreshold {
		if c.history.Len() > 0 && c.debugEnabled() {
			c.logger.Debug("Input chain buffer reset after silence",
				"silence", sinceLastInput,
				"dropped", c.history.Len())
		}
		c.history.Clear()
	}

	overflowed := c.history.Append(Entry[K]{
		ActionID:     id,
		Delay:        sinceLastInput,
		HoldDuration: holdDuration,
	})
	c.inputTimer.Reset()

	if overflowed && c.debugEnabled() {
		c.logger.Debug("Input chain buffer overflowed, history dropped", "buffer_size", c.history.Cap())
	}

	for i := range c.actions {
		action := c.actions[i]
		if !c.matchesFromStart(action) {
			continue
		}

		if c.debugEnabled() {
			c.logger.Debug("Input chain matched",
				"action_index", i,
				"steps", len(action.steps),
				"hold_duration", holdDuration)
		}

		action.callback(holdDuration)
		c.history.Clear()
		return
	}

	c.compact()
}

func (c *Controller[K]) matchesFromStart(action Action[K]) bool {
	if len(action.steps) > c.history.Len() {
		return false
	}

	for j, step := range action.steps {
		if !step.matches(c.history.entries[j], j == 0) {
			return false
		}
	}
	return true
}

// compact drops entries ahead of the earliest one that matches the first step of any action
func (c *Controller[K]) compact() {
	live := c.history.Len()
	bestStart := live

	for _, action := range c.actions {
		first := action.steps[0]
		for j := 0; j < bestStart; j++ {
			if first.matches(c.history.entries[j], true) {
				bestStart = j
				break
			}
		}
	}

	if bestStart == 0 || bestStart == live {
		return
	}

	c.history.CompactFrom(bestStart)

	if c.debugEnabled() {
		c.logger.Debug("Input chain buffer compacted", "dropped", bestStart, "kept", c.history.Len())
	}
}

func (c *Controller[K]) debugEnabled() bool {
	return c.logger.Enabled(context.Background(), slog.LevelDebug)
}

// Actions returns the number of registered actions
func (c *Controller[K]) Actions() int {
	return len(c.actions)
}

// History returns a copy of the live history entries, oldest first
func (c *Controller[K]) History() []Entry[K] {
	return c.history.Entries()
}

func (c *Controller[K]) BufferSize() int {
	return c.history.Cap()
}
