package chain

import "errors"

var (
	// ErrCapacityExceeded is returned when registering more actions than the controller was sized for
	ErrCapacityExceeded = errors.New("input chain action capacity exceeded")
	// ErrEmptySequence is returned when an action is registered without steps
	ErrEmptySequence = errors.New("input chain sequence has no steps")
	// ErrInvalidStep is returned for steps with negative timings or a delay budget smaller than the hold
	ErrInvalidStep = errors.New("invalid input chain step")
	// ErrNilCallback is returned when an action is registered without a callback
	ErrNilCallback = errors.New("input chain callback is nil")
)
