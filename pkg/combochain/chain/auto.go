package chain

// InputEvent is a platform input event that can report press and release
// transitions for an action identifier
type InputEvent[K comparable] interface {
	IsActionPressed(id K) bool
	IsActionReleased(id K) bool
}

// Evaluator receives the transitions forwarded by an AutoEvaluator.
// *Controller satisfies it.
type Evaluator[K comparable] interface {
	MarkHoldStart()
	Evaluate(id K)
}

// AutoEvaluator forwards press and release transitions of a fixed set of
// watched actions into an Evaluator
type AutoEvaluator[K comparable] struct {
	watched []K
}

func NewAutoEvaluator[K comparable](ids ...K) AutoEvaluator[K] {
	watched := make([]K, len(ids))
	copy(watched, ids)
	return AutoEvaluator[K]{watched: watched}
}

// Evaluate marks the hold start on a press and evaluates the action on a release
func (a AutoEvaluator[K]) Evaluate(event InputEvent[K], target Evaluator[K]) {
	for _, id := range a.watched {
		if event.IsActionPressed(id) {
			target.MarkHoldStart()
		} else if event.IsActionReleased(id) {
			target.Evaluate(id)
		}
	}
}

func (a AutoEvaluator[K]) Watched() []K {
	watched := make([]K, len(a.watched))
	copy(watched, a.watched)
	return watched
}
