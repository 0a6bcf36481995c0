// Package registry keeps named input chains on top of a chain.Controller and
// queues an Event every time one of them fires.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
)

var (
	ErrDuplicateID = errors.New("input chain id already registered")
	ErrEmptyID     = errors.New("input chain id is empty")
)

// Event represents a completed chain
type Event struct {
	ChainID      string                    // Identifier the chain was registered with
	Buttons      []constants.VirtualButton // Buttons of the chain steps, in order
	HoldDuration time.Duration             // How long the final button was held
}

// Callback is called when a chain is completed
type Callback func(Event)

// Options configures a registered chain
type Options struct {
	OnTrigger Callback
}

type registeredChain struct {
	id    string
	steps []chain.Step[constants.VirtualButton]
	opts  Options
}

// Registry is not safe for concurrent use
type Registry struct {
	controller *chain.Controller[constants.VirtualButton]
	auto       chain.AutoEvaluator[constants.VirtualButton]
	chains     []registeredChain
	queue      []Event
}

func New(opts chain.Options) *Registry {
	return &Registry{
		controller: chain.NewController[constants.VirtualButton](opts),
	}
}

// Register adds a chain. Chains registered earlier win when several complete on the same input.
func (r *Registry) Register(id string, steps []chain.Step[constants.VirtualButton], opts Options) error {
	if id == "" {
		return ErrEmptyID
	}
	for _, c := range r.chains {
		if c.id == id {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	}

	rc := registeredChain{id: id, steps: append([]chain.Step[constants.VirtualButton](nil), steps...), opts: opts}
	if err := r.add(rc); err != nil {
		return fmt.Errorf("failed to register chain %q: %w", id, err)
	}

	r.chains = append(r.chains, rc)
	r.rebuildWatched()
	return nil
}

func (r *Registry) add(rc registeredChain) error {
	buttons := make([]constants.VirtualButton, len(rc.steps))
	for i, step := range rc.steps {
		buttons[i] = step.ActionID
	}

	return r.controller.AddAction(func(hold time.Duration) {
		// Every consumer gets its own Buttons slice.
		r.queue = append(r.queue, Event{ChainID: rc.id, Buttons: slices.Clone(buttons), HoldDuration: hold})
		if rc.opts.OnTrigger != nil {
			rc.opts.OnTrigger(Event{ChainID: rc.id, Buttons: slices.Clone(buttons), HoldDuration: hold})
		}
	}, rc.steps...)
}

// Unregister removes a chain by id and drops the input history.
// It must not be called from a chain callback.
func (r *Registry) Unregister(id string) bool {
	index := -1
	for i, c := range r.chains {
		if c.id == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	r.chains = append(r.chains[:index], r.chains[index+1:]...)
	r.controller.Clear()
	for _, rc := range r.chains {
		// Every remaining chain was accepted before with a larger registry.
		_ = r.add(rc)
	}
	r.rebuildWatched()
	return true
}

// Clear removes every chain, the input history and pending events
func (r *Registry) Clear() {
	r.chains = nil
	r.queue = nil
	r.controller.Clear()
	r.rebuildWatched()
}

// ClearBuffer drops the input history and keeps the chains
func (r *Registry) ClearBuffer() {
	r.controller.ClearBuffer()
}

// Feed forwards press and release transitions of every button used by a chain
func (r *Registry) Feed(event chain.InputEvent[constants.VirtualButton]) {
	r.auto.Evaluate(event, r.controller)
}

// Next returns the oldest queued chain event
func (r *Registry) Next() (Event, bool) {
	if len(r.queue) == 0 {
		return Event{}, false
	}
	event := r.queue[0]
	r.queue = r.queue[1:]
	return event, true
}

func (r *Registry) Pending() int {
	return len(r.queue)
}

func (r *Registry) IDs() []string {
	ids := make([]string, len(r.chains))
	for i, c := range r.chains {
		ids[i] = c.id
	}
	return ids
}

func (r *Registry) Watched() []constants.VirtualButton {
	return r.auto.Watched()
}

func (r *Registry) Controller() *chain.Controller[constants.VirtualButton] {
	return r.controller
}

func (r *Registry) rebuildWatched() {
	seen := make(map[constants.VirtualButton]bool)
	var watched []constants.VirtualButton
	for _, c := range r.chains {
		for _, step := range c.steps {
			if seen[step.ActionID] {
				continue
			}
			seen[step.ActionID] = true
			watched = append(watched, step.ActionID)
		}
	}
	r.auto = chain.NewAutoEvaluator(watched...)
}
