package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

// Processor turns SDL events into virtual button events. It is not safe for concurrent use.
type Processor struct {
	mapping    *InputMapping
	devices    *Devices
	axisStates map[uint8]int8  // -1 negative, 0 none, 1 positive
	hatStates  map[uint8]uint8 // current hat position
	queue      []*Event        // follow-up presses produced by a single SDL event
}

func NewProcessor(mapping *InputMapping, devices *Devices) *Processor {
	if mapping == nil {
		mapping = DefaultInputMapping()
	}
	if devices == nil {
		devices = NewDevices()
	}
	return &Processor{
		mapping:    mapping,
		devices:    devices,
		axisStates: make(map[uint8]int8),
		hatStates:  make(map[uint8]uint8),
	}
}

func (p *Processor) Mapping() *InputMapping {
	return p.mapping
}

// Next returns an event queued by the previous ProcessSDLEvent call, or nil
func (p *Processor) Next() *Event {
	if len(p.queue) == 0 {
		return nil
	}
	evt := p.queue[0]
	p.queue = p.queue[1:]
	return evt
}

// ProcessSDLEvent returns the button event for event, or nil when it is not mapped.
// A single SDL event can produce a release and a press; drain the press with Next.
func (p *Processor) ProcessSDLEvent(event sdl.Event) *Event {
	logger := logging.GetInternalLogger()

	switch e := event.(type) {
	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			p.devices.Added(int(e.Which))
		case sdl.CONTROLLERDEVICEREMOVED:
			p.devices.Removed(sdl.JoystickID(e.Which))
		}
	case *sdl.JoyDeviceAddedEvent:
		if !sdl.IsGameController(int(e.Which)) {
			p.devices.Added(int(e.Which))
		}
	case *sdl.JoyDeviceRemovedEvent:
		p.devices.Removed(sdl.JoystickID(e.Which))
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return nil
		}
		keyCode := e.Keysym.Sym
		keyName := sdl.GetKeyName(keyCode)
		if button, exists := p.mapping.KeyboardMap[keyCode]; exists {
			if e.Type == sdl.KEYDOWN {
				logger.Debug("Keyboard input mapped",
					"key_code", fmt.Sprintf("%s (%d)", keyName, keyCode),
					"virtual_button", button.GetName())
			}
			return newEvent(button, e.Type == sdl.KEYDOWN, SourceKeyboard, int(keyCode))
		}
		logger.Debug("Keyboard input not mapped", "key_code", fmt.Sprintf("%s (%d)", keyName, keyCode))
	case *sdl.ControllerButtonEvent:
		buttonName := sdl.GameControllerGetStringForButton(sdl.GameControllerButton(e.Button))
		if button, exists := p.mapping.ControllerButtonMap[sdl.GameControllerButton(e.Button)]; exists {
			if e.Type == sdl.CONTROLLERBUTTONDOWN {
				logger.Debug("Controller button mapped",
					"button_code", fmt.Sprintf("%s (%d)", buttonName, e.Button),
					"virtual_button", button.GetName())
			}
			return newEvent(button, e.Type == sdl.CONTROLLERBUTTONDOWN, SourceController, int(e.Button))
		}
		logger.Debug("Controller button not mapped", "button_code", fmt.Sprintf("%s (%d)", buttonName, e.Button))
	case *sdl.ControllerAxisEvent:
		axisName := sdl.GameControllerGetStringForAxis(sdl.GameControllerAxis(e.Axis))
		return p.processAxis(e.Axis, e.Value, SourceController, axisName)
	case *sdl.JoyHatEvent:
		if p.devices.IsGameController(sdl.JoystickID(e.Which)) {
			return nil
		}
		return p.processHat(e.Hat, e.Value)
	case *sdl.JoyButtonEvent:
		if p.devices.IsGameController(sdl.JoystickID(e.Which)) {
			return nil
		}
		joyButtonName := getJoyButtonName(e.Button)
		if button, exists := p.mapping.JoystickButtonMap[e.Button]; exists {
			logger.Debug("Joy button mapped",
				"button_code", fmt.Sprintf("%s (%d)", joyButtonName, e.Button),
				"virtual_button", button.GetName())
			return newEvent(button, e.Type == sdl.JOYBUTTONDOWN, SourceJoystick, int(e.Button))
		}
		logger.Debug("Joy button not mapped", "button_code", fmt.Sprintf("%s (%d)", joyButtonName, e.Button))
	case *sdl.JoyAxisEvent:
		if p.devices.IsGameController(sdl.JoystickID(e.Which)) {
			return nil
		}
		return p.processAxis(e.Axis, e.Value, SourceJoystick, getJoyAxisName(e.Axis))
	}
	return nil
}

func (p *Processor) processHat(hat uint8, value uint8) *Event {
	logger := logging.GetInternalLogger()

	previous := p.hatStates[hat]
	p.hatStates[hat] = value
	if previous == value {
		return nil
	}

	var pressed *Event
	if value != sdl.HAT_CENTERED {
		if button, exists := p.mapping.JoystickHatMap[value]; exists {
			logger.Debug("Joy hat mapped",
				"hat_value", fmt.Sprintf("%s (%d)", getHatDirectionName(value), value),
				"virtual_button", button.GetName())
			pressed = newEvent(button, true, SourceHatSwitch, int(value))
		} else {
			logger.Debug("Joy hat not mapped", "hat_value", fmt.Sprintf("%s (%d)", getHatDirectionName(value), value))
		}
	}

	if previous != sdl.HAT_CENTERED {
		if button, exists := p.mapping.JoystickHatMap[previous]; exists {
			logger.Debug("Joy hat released",
				"hat_value", fmt.Sprintf("%s (%d)", getHatDirectionName(previous), previous),
				"virtual_button", button.GetName())
			if pressed != nil {
				p.queue = append(p.queue, pressed)
			}
			return newEvent(button, false, SourceHatSwitch, int(previous))
		}
	}

	return pressed
}

func (p *Processor) processAxis(axis uint8, value int16, source Source, axisName string) *Event {
	axisConfig, exists := p.mapping.JoystickAxisMap[axis]
	if !exists {
		return nil
	}

	var state int8
	if value > axisConfig.Threshold {
		state = 1
	} else if value < -axisConfig.Threshold {
		state = -1
	}

	previous := p.axisStates[axis]
	if state == previous {
		return nil
	}
	p.axisStates[axis] = state

	logging.GetInternalLogger().Debug("Axis state changed",
		"axis_code", fmt.Sprintf("%s (%d)", axisName, axis),
		"value", value,
		"threshold", axisConfig.Threshold,
		"state", state)

	var pressed *Event
	switch state {
	case 1:
		pressed = newEvent(axisConfig.PositiveButton, true, source, int(axis))
	case -1:
		pressed = newEvent(axisConfig.NegativeButton, true, source, int(axis))
	}

	var released *Event
	switch previous {
	case 1:
		released = newEvent(axisConfig.PositiveButton, false, source, int(axis))
	case -1:
		released = newEvent(axisConfig.NegativeButton, false, source, int(axis))
	}

	if released == nil {
		return pressed
	}
	if pressed != nil {
		p.queue = append(p.queue, pressed)
	}
	return released
}

func newEvent(button constants.VirtualButton, pressed bool, source Source, rawCode int) *Event {
	return &Event{
		Button:  button,
		Pressed: pressed,
		Source:  source,
		RawCode: rawCode,
	}
}

func getHatDirectionName(value uint8) string {
	switch value {
	case sdl.HAT_UP:
		return "Hat Up"
	case sdl.HAT_DOWN:
		return "Hat Down"
	case sdl.HAT_LEFT:
		return "Hat Left"
	case sdl.HAT_RIGHT:
		return "Hat Right"
	case sdl.HAT_LEFTUP:
		return "Hat Left Up"
	case sdl.HAT_LEFTDOWN:
		return "Hat Left Down"
	case sdl.HAT_RIGHTUP:
		return "Hat Right Up"
	case sdl.HAT_RIGHTDOWN:
		return "Hat Right Down"
	default:
		return "Hat Unknown"
	}
}

func getJoyButtonName(button uint8) string {
	return fmt.Sprintf("JoyButton%d", button)
}

func getJoyAxisName(axis uint8) string {
	return fmt.Sprintf("JoyAxis%d", axis)
}
