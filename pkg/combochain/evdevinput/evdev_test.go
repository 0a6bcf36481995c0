package evdevinput

import (
	"testing"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
)

func TestDecode(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name   string
		event  *evdev.InputEvent
		want   Event
		wantOK bool
	}{
		{
			name:   "key press",
			event:  &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1},
			want:   Event{Button: constants.VirtualButtonA, Pressed: true, Code: evdev.KEY_A},
			wantOK: true,
		},
		{
			name:   "gamepad release",
			event:  &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.BTN_SOUTH, Value: 0},
			want:   Event{Button: constants.VirtualButtonB, Pressed: false, Code: evdev.BTN_SOUTH},
			wantOK: true,
		},
		{
			name:  "auto repeat",
			event: &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 2},
		},
		{
			name:  "sync event",
			event: &evdev.InputEvent{Type: evdev.EV_SYN, Code: 0, Value: 0},
		},
		{
			name:  "unmapped key",
			event: &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_F12, Value: 1},
		},
		{
			name: "nil event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.event, keys)
			if ok != tt.wantOK {
				t.Fatalf("Decode() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeyMapCoversEveryButton(t *testing.T) {
	mapped := make(map[constants.VirtualButton]bool)
	for _, button := range DefaultKeyMap() {
		mapped[button] = true
	}

	for _, button := range constants.AllButtons() {
		if !mapped[button] {
			t.Errorf("%s has no evdev code", button.GetName())
		}
	}
}

type spy struct {
	holds     int
	evaluated []constants.VirtualButton
}

func (s *spy) MarkHoldStart() {
	s.holds++
}

func (s *spy) Evaluate(id constants.VirtualButton) {
	s.evaluated = append(s.evaluated, id)
}

func TestEventDrivesAutoEvaluator(t *testing.T) {
	auto := chain.NewAutoEvaluator(constants.VirtualButtonA)
	target := &spy{}
	keys := DefaultKeyMap()

	for _, raw := range []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1},
		{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 2},
		{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 0},
	} {
		if ev, ok := Decode(&raw, keys); ok {
			auto.Evaluate(ev, target)
		}
	}

	if target.holds != 1 {
		t.Errorf("MarkHoldStart called %d times, want 1", target.holds)
	}
	if len(target.evaluated) != 1 || target.evaluated[0] != constants.VirtualButtonA {
		t.Errorf("Evaluate called with %v, want [A]", target.evaluated)
	}
}
