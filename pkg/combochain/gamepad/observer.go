package gamepad

import (
	"sync"

	"go.uber.org/atomic"
)

// Platform is the source of controller hotplug notifications
type Platform interface {
	// OnDevicesChanged registers fn to be called when the device list changes.
	// The returned function removes the registration.
	OnDevicesChanged(fn func()) (cancel func())
	// ConnectedControllers returns the number of connected game controllers
	ConnectedControllers() int
}

// StateChangedCallback receives whether at least one controller is connected
type StateChangedCallback func(hasController bool)

type subscriber struct {
	id       uint64
	callback StateChangedCallback
}

// Observer turns platform device notifications into controller connected events.
// Start and Stop can be called any number of times; the platform registration
// only exists while observing.
type Observer struct {
	platform Platform

	observing *atomic.Bool
	connected *atomic.Int32

	mu          sync.Mutex
	cancel      func()
	subscribers []subscriber
	nextID      uint64
}

func NewObserver(platform Platform) *Observer {
	return &Observer{
		platform:  platform,
		observing: atomic.NewBool(false),
		connected: atomic.NewInt32(0),
	}
}

// Start registers with the platform and immediately reports the current state
func (o *Observer) Start() {
	if !o.observing.CompareAndSwap(false, true) {
		return
	}

	cancel := o.platform.OnDevicesChanged(o.devicesChanged)

	o.mu.Lock()
	o.cancel = cancel
	o.mu.Unlock()

	o.devicesChanged()
}

func (o *Observer) Stop() {
	if !o.observing.CompareAndSwap(true, false) {
		return
	}

	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (o *Observer) IsObserving() bool {
	return o.observing.Load()
}

// HasController reports the state seen at the last notification
func (o *Observer) HasController() bool {
	return o.connected.Load() > 0
}

// Subscribe adds a callback and returns the function that removes it.
// The returned function is safe to call more than once.
func (o *Observer) Subscribe(callback StateChangedCallback) (unsubscribe func()) {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.subscribers = append(o.subscribers, subscriber{id: id, callback: callback})
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.unsubscribe(id)
		})
	}
}

func (o *Observer) unsubscribe(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subscribers {
		if s.id == id {
			o.subscribers = append(o.subscribers[:i], o.subscribers[i+1:]...)
			return
		}
	}
}

func (o *Observer) UnsubscribeAll() {
	o.mu.Lock()
	o.subscribers = nil
	o.mu.Unlock()
}

func (o *Observer) Subscribers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subscribers)
}

// Close drops every subscriber and stops observing
func (o *Observer) Close() {
	o.UnsubscribeAll()
	o.Stop()
}

func (o *Observer) devicesChanged() {
	count := o.platform.ConnectedControllers()
	o.connected.Store(int32(count))

	o.mu.Lock()
	snapshot := make([]subscriber, len(o.subscribers))
	copy(snapshot, o.subscribers)
	o.mu.Unlock()

	hasController := count > 0
	for _, s := range snapshot {
		s.callback(hasController)
	}
}
