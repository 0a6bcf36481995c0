package internal

import (
	"os"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

func TestMain(m *testing.M) {
	logging.SetLogDir("")
	os.Exit(m.Run())
}

type want struct {
	button  constants.VirtualButton
	pressed bool
}

func drain(p *Processor, event sdl.Event) []want {
	var got []want
	for e := p.ProcessSDLEvent(event); e != nil; e = p.Next() {
		got = append(got, want{button: e.Button, pressed: e.Pressed})
	}
	return got
}

func equalEvents(a, b []want) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProcessHat(t *testing.T) {
	p := NewProcessor(DefaultInputMapping(), nil)

	steps := []struct {
		name  string
		value uint8
		want  []want
	}{
		{"press down", sdl.HAT_DOWN, []want{{constants.VirtualButtonDown, true}}},
		{"same position", sdl.HAT_DOWN, nil},
		{"roll to right", sdl.HAT_RIGHT, []want{
			{constants.VirtualButtonDown, false},
			{constants.VirtualButtonRight, true},
		}},
		{"unmapped diagonal", sdl.HAT_RIGHTDOWN, []want{{constants.VirtualButtonRight, false}}},
		{"center", sdl.HAT_CENTERED, nil},
		{"press up", sdl.HAT_UP, []want{{constants.VirtualButtonUp, true}}},
		{"release up", sdl.HAT_CENTERED, []want{{constants.VirtualButtonUp, false}}},
	}

	for _, step := range steps {
		got := drain(p, &sdl.JoyHatEvent{Type: sdl.JOYHATMOTION, Hat: 0, Value: step.value})
		if !equalEvents(got, step.want) {
			t.Errorf("%s: events = %v, want %v", step.name, got, step.want)
		}
	}
}

func TestProcessAxis(t *testing.T) {
	p := NewProcessor(DefaultInputMapping(), nil)
	axis := uint8(sdl.CONTROLLER_AXIS_LEFTX)

	steps := []struct {
		name  string
		value int16
		want  []want
	}{
		{"inside dead zone", 1000, nil},
		{"push right", 30000, []want{{constants.VirtualButtonRight, true}}},
		{"still right", 25000, nil},
		{"flick left", -30000, []want{
			{constants.VirtualButtonRight, false},
			{constants.VirtualButtonLeft, true},
		}},
		{"back to center", 0, []want{{constants.VirtualButtonLeft, false}}},
	}

	for _, step := range steps {
		got := drain(p, &sdl.JoyAxisEvent{Type: sdl.JOYAXISMOTION, Axis: axis, Value: step.value})
		if !equalEvents(got, step.want) {
			t.Errorf("%s: events = %v, want %v", step.name, got, step.want)
		}
	}
}

func TestProcessIgnoresUnmappedAxis(t *testing.T) {
	p := NewProcessor(DefaultInputMapping(), nil)

	if got := drain(p, &sdl.JoyAxisEvent{Type: sdl.JOYAXISMOTION, Axis: 5, Value: 32000}); len(got) != 0 {
		t.Errorf("events = %v, want none", got)
	}
}

func TestEventImplementsInputEvent(t *testing.T) {
	e := &Event{Button: constants.VirtualButtonA, Pressed: true}

	if !e.IsActionPressed(constants.VirtualButtonA) {
		t.Error("IsActionPressed(A) = false")
	}
	if e.IsActionReleased(constants.VirtualButtonA) {
		t.Error("IsActionReleased(A) = true on a press")
	}
	if e.IsActionPressed(constants.VirtualButtonB) {
		t.Error("IsActionPressed(B) = true")
	}
}

func TestLoadInputMappingFromBytes(t *testing.T) {
	data := []byte(`{
		"keyboard_map": {"97": 5},
		"joystick_axis_map": {"1": {"positive_button": 2, "negative_button": 1}},
		"joystick_hat_map": {"4": 2}
	}`)

	mapping, err := LoadInputMappingFromBytes(data)
	if err != nil {
		t.Fatalf("LoadInputMappingFromBytes() error = %v", err)
	}

	if got := mapping.KeyboardMap[sdl.K_a]; got != constants.VirtualButtonA {
		t.Errorf("KeyboardMap[a] = %v, want A", got)
	}
	axis := mapping.JoystickAxisMap[1]
	if axis.PositiveButton != constants.VirtualButtonDown || axis.NegativeButton != constants.VirtualButtonUp {
		t.Errorf("JoystickAxisMap[1] = %+v", axis)
	}
	if axis.Threshold != defaultAxisThreshold {
		t.Errorf("missing threshold = %d, want %d", axis.Threshold, defaultAxisThreshold)
	}
	if got := mapping.JoystickHatMap[sdl.HAT_DOWN]; got != constants.VirtualButtonDown {
		t.Errorf("JoystickHatMap[down] = %v, want Down", got)
	}

	if _, err := LoadInputMappingFromBytes([]byte("{")); err == nil {
		t.Error("LoadInputMappingFromBytes() accepted invalid JSON")
	}
}
