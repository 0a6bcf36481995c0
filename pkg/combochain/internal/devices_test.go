package internal

import (
	"sync"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

type fakeHandle struct {
	closed int
}

func (h *fakeHandle) Close() {
	h.closed++
}

func TestTrackClosesSecondHandle(t *testing.T) {
	var mu sync.Mutex
	handles := make(map[sdl.JoystickID]*fakeHandle)

	first, second := &fakeHandle{}, &fakeHandle{}

	if !track(&mu, handles, 3, first) {
		t.Fatal("track() = false for a new instance, want true")
	}
	if track(&mu, handles, 3, second) {
		t.Fatal("track() = true for an instance already open, want false")
	}

	if handles[3] != first {
		t.Error("tracked handle was replaced by the second open")
	}
	if first.closed != 0 {
		t.Errorf("first handle closed %d times, want 0", first.closed)
	}
	if second.closed != 1 {
		t.Errorf("second handle closed %d times, want 1", second.closed)
	}

	if !track(&mu, handles, 4, &fakeHandle{}) {
		t.Error("track() = false for another instance, want true")
	}
	if len(handles) != 2 {
		t.Errorf("tracked %d handles, want 2", len(handles))
	}
}

func TestDevicesCountsAndListeners(t *testing.T) {
	d := NewDevices()

	calls := 0
	cancel := d.OnDevicesChanged(func() { calls++ })

	d.joysticks[7] = nil
	if !d.isOpen(7) || d.isOpen(8) {
		t.Errorf("isOpen(7), isOpen(8) = %v, %v, want true, false", d.isOpen(7), d.isOpen(8))
	}
	if got := d.ConnectedControllers(); got != 1 {
		t.Errorf("ConnectedControllers() = %d, want 1", got)
	}
	if d.IsGameController(7) {
		t.Error("raw joystick reported as game controller")
	}

	d.notify()
	cancel()
	d.notify()
	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
}
