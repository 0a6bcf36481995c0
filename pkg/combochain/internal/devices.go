package internal

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

// Devices tracks opened game controllers and raw joysticks and satisfies gamepad.Platform.
// Opening and closing must happen on the SDL thread. The counters may be read from anywhere.
type Devices struct {
	mu          sync.Mutex
	controllers map[sdl.JoystickID]*sdl.GameController
	joysticks   map[sdl.JoystickID]*sdl.Joystick
	listeners   map[int]func()
	nextID      int
}

func NewDevices() *Devices {
	return &Devices{
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		joysticks:   make(map[sdl.JoystickID]*sdl.Joystick),
		listeners:   make(map[int]func()),
	}
}

// OpenAll opens every device SDL reports at startup
func (d *Devices) OpenAll() {
	numJoysticks := sdl.NumJoysticks()
	logging.GetInternalLogger().Debug("Detecting controllers", "joystick_count", numJoysticks)

	for i := 0; i < numJoysticks; i++ {
		d.open(i)
	}

	d.mu.Lock()
	controllers, joysticks := len(d.controllers), len(d.joysticks)
	d.mu.Unlock()

	logging.GetInternalLogger().Debug("Controller detection complete",
		"game_controllers", controllers,
		"raw_joysticks", joysticks,
		"total_joysticks", numJoysticks,
	)
}

// handle is an opened SDL device
type handle interface {
	Close()
}

// track stores h under id. A second handle for an id that is already tracked is
// closed so SDL's reference count stays at one per device.
func track[H handle](mu *sync.Mutex, handles map[sdl.JoystickID]H, id sdl.JoystickID, h H) bool {
	mu.Lock()
	_, known := handles[id]
	if !known {
		handles[id] = h
	}
	mu.Unlock()

	if known {
		h.Close()
	}
	return !known
}

func (d *Devices) isOpen(id sdl.JoystickID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, controller := d.controllers[id]
	_, joystick := d.joysticks[id]
	return controller || joystick
}

// open is a no-op for a device that is already open. SDL sends an added event
// at startup for every device OpenAll has opened.
func (d *Devices) open(index int) bool {
	logger := logging.GetInternalLogger()

	if id := sdl.JoystickGetDeviceInstanceID(index); id >= 0 && d.isOpen(id) {
		logger.Debug("Input device already open", "index", index, "instance", id)
		return false
	}

	if sdl.IsGameController(index) {
		controller := sdl.GameControllerOpen(index)
		if controller == nil {
			logger.Error("Failed to open game controller", "index", index)
			return false
		}

		id := controller.Joystick().InstanceID()
		if !track(&d.mu, d.controllers, id, controller) {
			return false
		}
		logger.Debug("Opened game controller", "index", index, "instance", id, "name", controller.Name())
		return true
	}

	joystick := sdl.JoystickOpen(index)
	if joystick == nil {
		logger.Debug("Failed to open raw joystick", "index", index)
		return false
	}

	id := joystick.InstanceID()
	if !track(&d.mu, d.joysticks, id, joystick) {
		return false
	}
	logger.Debug("Opened raw joystick (not a standard game controller)", "index", index, "instance", id, "name", joystick.Name())
	return true
}

func (d *Devices) close(id sdl.JoystickID) bool {
	d.mu.Lock()
	controller, isController := d.controllers[id]
	joystick, isJoystick := d.joysticks[id]
	delete(d.controllers, id)
	delete(d.joysticks, id)
	d.mu.Unlock()

	switch {
	case isController:
		controller.Close()
	case isJoystick:
		joystick.Close()
	default:
		return false
	}

	logging.GetInternalLogger().Debug("Closed input device", "instance", id)
	return true
}

// Added opens the device at index and notifies listeners when it was not open yet
func (d *Devices) Added(index int) {
	if d.open(index) {
		d.notify()
	}
}

// Removed closes the device with the given instance id and notifies listeners
func (d *Devices) Removed(id sdl.JoystickID) {
	if d.close(id) {
		d.notify()
	}
}

// IsGameController reports whether the joystick instance is handled as a game controller.
// Raw joystick events from those devices duplicate the controller events.
func (d *Devices) IsGameController(id sdl.JoystickID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.controllers[id]
	return ok
}

func (d *Devices) ConnectedControllers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.controllers) + len(d.joysticks)
}

func (d *Devices) OnDevicesChanged(fn func()) (cancel func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

func (d *Devices) notify() {
	d.mu.Lock()
	listeners := make([]func(), 0, len(d.listeners))
	for _, fn := range d.listeners {
		listeners = append(listeners, fn)
	}
	d.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (d *Devices) CloseAll() {
	d.mu.Lock()
	ids := make([]sdl.JoystickID, 0, len(d.controllers)+len(d.joysticks))
	for id := range d.controllers {
		ids = append(ids, id)
	}
	for id := range d.joysticks {
		ids = append(ids, id)
	}
	d.mu.Unlock()

	for _, id := range ids {
		d.close(id)
	}
}
