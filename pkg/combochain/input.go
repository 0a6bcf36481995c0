package combochain

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/combochain/pkg/combochain/internal"
)

// InputEvent is a press or release of a virtual button
type InputEvent = internal.Event

// ProcessInput converts an SDL event, feeds the resulting button transitions
// into the registered chains and returns them
func ProcessInput(event sdl.Event) []*InputEvent {
	processor := internal.GetProcessor()
	if processor == nil || chains == nil {
		return nil
	}

	var events []*InputEvent
	for e := processor.ProcessSDLEvent(event); e != nil; e = processor.Next() {
		chains.Feed(e)
		events = append(events, e)
	}
	return events
}

// PollEvents drains the SDL event queue through ProcessInput. It returns ErrQuit
// when the window was asked to close.
func PollEvents() ([]*InputEvent, error) {
	if chains == nil {
		return nil, ErrNotInitialized
	}

	var events []*InputEvent
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			return events, ErrQuit
		}
		events = append(events, ProcessInput(event)...)
	}
	return events, nil
}
