package combochain

import (
	"time"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/registry"
)

// Step is one input of a chain
type Step = chain.Step[constants.VirtualButton]

// ChainEvent represents a completed chain
type ChainEvent = registry.Event

// ChainCallback is called when a chain is completed
type ChainCallback = registry.Callback

// ChainOptions configures chain behavior
type ChainOptions struct {
	// OnTrigger is called when the chain is completed, before the event is queued for ProcessChainEvent
	OnTrigger ChainCallback
}

// NewStep builds a step that must follow the previous one within delay and be held for at least hold.
// The delay of the first step of a chain is ignored.
func NewStep(button constants.VirtualButton, delay, hold time.Duration) Step {
	return chain.NewStep(button, delay, hold)
}

// RegisterChain registers a timed input chain. Chains registered earlier win
// when several complete on the same release.
//
// Example:
//
//	combochain.RegisterChain("hadouken", []combochain.Step{
//	    combochain.NewStep(constants.VirtualButtonDown, 0, 0),
//	    combochain.NewStep(constants.VirtualButtonRight, 200*time.Millisecond, 0),
//	    combochain.NewStep(constants.VirtualButtonA, 200*time.Millisecond, 0),
//	}, combochain.ChainOptions{
//	    OnTrigger: func(e combochain.ChainEvent) {
//	        fmt.Println("Hadouken!")
//	    },
//	})
func RegisterChain(id string, steps []Step, opts ChainOptions) error {
	if chains == nil {
		return ErrNotInitialized
	}
	return chains.Register(id, steps, registry.Options{OnTrigger: opts.OnTrigger})
}

// UnregisterChain removes a previously registered chain by its ID and drops the input history
func UnregisterChain(id string) bool {
	if chains == nil {
		return false
	}
	return chains.Unregister(id)
}

// ClearChains removes all registered chains
func ClearChains() {
	if chains != nil {
		chains.Clear()
	}
}

// ClearChainBuffer drops the recorded inputs and keeps the chains
func ClearChainBuffer() {
	if chains != nil {
		chains.ClearBuffer()
	}
}

// RegisteredChains returns the chain IDs in registration order
func RegisteredChains() []string {
	if chains == nil {
		return nil
	}
	return chains.IDs()
}

// ProcessChainEvent returns the next queued chain event, or nil if none are pending.
// Callers using OnTrigger callbacks typically don't need it.
func ProcessChainEvent() *ChainEvent {
	if chains == nil {
		return nil
	}
	event, ok := chains.Next()
	if !ok {
		return nil
	}
	return &event
}
