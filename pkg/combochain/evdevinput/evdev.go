package evdevinput

import (
	"context"
	"fmt"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
)

const (
	valueReleased int32 = 0
	valuePressed  int32 = 1
)

// KeyMap maps evdev key codes to virtual buttons
type KeyMap map[evdev.EvCode]constants.VirtualButton

// DefaultKeyMap covers the keyboard layout of the SDL mapping plus the
// standard gamepad button codes reported by handheld input devices
func DefaultKeyMap() KeyMap {
	return KeyMap{
		evdev.KEY_UP:        constants.VirtualButtonUp,
		evdev.KEY_DOWN:      constants.VirtualButtonDown,
		evdev.KEY_LEFT:      constants.VirtualButtonLeft,
		evdev.KEY_RIGHT:     constants.VirtualButtonRight,
		evdev.KEY_A:         constants.VirtualButtonA,
		evdev.KEY_B:         constants.VirtualButtonB,
		evdev.KEY_X:         constants.VirtualButtonX,
		evdev.KEY_Y:         constants.VirtualButtonY,
		evdev.KEY_L:         constants.VirtualButtonL1,
		evdev.KEY_SEMICOLON: constants.VirtualButtonL2,
		evdev.KEY_R:         constants.VirtualButtonR1,
		evdev.KEY_T:         constants.VirtualButtonR2,
		evdev.KEY_ENTER:     constants.VirtualButtonStart,
		evdev.KEY_SPACE:     constants.VirtualButtonSelect,
		evdev.KEY_H:         constants.VirtualButtonMenu,

		evdev.BTN_DPAD_UP:    constants.VirtualButtonUp,
		evdev.BTN_DPAD_DOWN:  constants.VirtualButtonDown,
		evdev.BTN_DPAD_LEFT:  constants.VirtualButtonLeft,
		evdev.BTN_DPAD_RIGHT: constants.VirtualButtonRight,
		evdev.BTN_SOUTH:      constants.VirtualButtonB,
		evdev.BTN_EAST:       constants.VirtualButtonA,
		evdev.BTN_NORTH:      constants.VirtualButtonX,
		evdev.BTN_WEST:       constants.VirtualButtonY,
		evdev.BTN_TL:         constants.VirtualButtonL1,
		evdev.BTN_TL2:        constants.VirtualButtonL2,
		evdev.BTN_TR:         constants.VirtualButtonR1,
		evdev.BTN_TR2:        constants.VirtualButtonR2,
		evdev.BTN_START:      constants.VirtualButtonStart,
		evdev.BTN_SELECT:     constants.VirtualButtonSelect,
		evdev.BTN_MODE:       constants.VirtualButtonMenu,
	}
}

// Event is a decoded press or release of a mapped key
type Event struct {
	Button  constants.VirtualButton
	Pressed bool
	Code    evdev.EvCode
}

func (e Event) IsActionPressed(id constants.VirtualButton) bool {
	return e.Button == id && e.Pressed
}

func (e Event) IsActionReleased(id constants.VirtualButton) bool {
	return e.Button == id && !e.Pressed
}

// Decode converts a raw key event. Auto-repeat, non-key and unmapped events are dropped.
func Decode(ev *evdev.InputEvent, keys KeyMap) (Event, bool) {
	if ev == nil || ev.Type != evdev.EV_KEY {
		return Event{}, false
	}

	var pressed bool
	switch ev.Value {
	case valuePressed:
		pressed = true
	case valueReleased:
		pressed = false
	default:
		return Event{}, false
	}

	button, ok := keys[ev.Code]
	if !ok {
		return Event{}, false
	}

	return Event{Button: button, Pressed: pressed, Code: ev.Code}, true
}

// Source reads key transitions from an evdev device node
type Source struct {
	device    *evdev.InputDevice
	keys      KeyMap
	closeOnce sync.Once
	closeErr  error
}

func Open(path string, keys KeyMap) (*Source, error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input device %s: %w", path, err)
	}
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Source{device: device, keys: keys}, nil
}

func (s *Source) Name() string {
	name, err := s.device.Name()
	if err != nil {
		return "unknown"
	}
	return name
}

// Run delivers decoded events to handle until ctx is cancelled or the device fails.
// Cancelling ctx closes the device.
func (s *Source) Run(ctx context.Context, handle func(Event)) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	for {
		ev, err := s.device.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read input event: %w", err)
		}

		if decoded, ok := Decode(ev, s.keys); ok {
			handle(decoded)
		}
	}
}

func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.device.Close()
	})
	return s.closeErr
}
