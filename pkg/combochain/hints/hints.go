package hints

import (
	"sync"

	"github.com/BrandonKowalski/combochain/pkg/combochain/gamepad"
)

const (
	GroupKeyboardMouse = "MouseAndKeyboard"
	GroupController    = "Controller"
)

// Item represents a button and the help text displayed next to it.
// When MessageID is set and a Translator is configured the help text is localized.
type Item struct {
	ButtonName string
	HelpText   string
	MessageID  string
}

// Translator resolves a message ID to display text
type Translator func(messageID string) string

// Group is a named set of hints shown or hidden as a whole
type Group struct {
	Name    string
	Items   []Item
	Visible bool
}

// Source is the subscription side of *gamepad.Observer
type Source interface {
	Start()
	Subscribe(callback gamepad.StateChangedCallback) (unsubscribe func())
	HasController() bool
}

// ControlGroup shows the controller hints while a gamepad is connected and the
// keyboard and mouse hints otherwise. Exactly one of the two groups is visible.
type ControlGroup struct {
	mu          sync.Mutex
	keyboard    Group
	controller  Group
	translate   Translator
	onChange    func(visible Group)
	unsubscribe func()
}

// NewControlGroup starts with the keyboard and mouse hints visible
func NewControlGroup(keyboard, controller []Item) *ControlGroup {
	return &ControlGroup{
		keyboard:   Group{Name: GroupKeyboardMouse, Items: keyboard, Visible: true},
		controller: Group{Name: GroupController, Items: controller},
	}
}

func (g *ControlGroup) SetTranslator(translate Translator) {
	g.mu.Lock()
	g.translate = translate
	g.mu.Unlock()
}

// OnChange registers a function called with the visible group after every state change
func (g *ControlGroup) OnChange(fn func(visible Group)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// Activate subscribes to src, starts it and applies the current controller state.
// The returned function deactivates the group and must be called on every exit path.
// src.Subscribe must not call back synchronously since it runs under the group lock.
func (g *ControlGroup) Activate(src Source) (deactivate func()) {
	g.mu.Lock()
	if g.unsubscribe != nil {
		g.mu.Unlock()
		return g.Deactivate
	}
	g.unsubscribe = src.Subscribe(g.SetConnected)
	g.mu.Unlock()

	src.Start()
	g.SetConnected(src.HasController())

	return g.Deactivate
}

// Deactivate removes the subscription made by Activate. Safe to call more than once.
func (g *ControlGroup) Deactivate() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (g *ControlGroup) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unsubscribe != nil
}

// SetConnected shows the controller group when connected and the keyboard group otherwise
func (g *ControlGroup) SetConnected(connected bool) {
	g.mu.Lock()
	g.keyboard.Visible = !connected
	g.controller.Visible = connected
	visible := g.visibleLocked()
	onChange := g.onChange
	g.mu.Unlock()

	if onChange != nil {
		onChange(visible)
	}
}

// Visible returns a copy of the visible group with help texts resolved
func (g *ControlGroup) Visible() Group {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visibleLocked()
}

func (g *ControlGroup) Keyboard() Group {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve(g.keyboard)
}

func (g *ControlGroup) Controller() Group {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve(g.controller)
}

func (g *ControlGroup) visibleLocked() Group {
	if g.controller.Visible {
		return g.resolve(g.controller)
	}
	return g.resolve(g.keyboard)
}

func (g *ControlGroup) resolve(group Group) Group {
	items := make([]Item, len(group.Items))
	for i, item := range group.Items {
		if item.MessageID != "" && g.translate != nil {
			if text := g.translate(item.MessageID); text != "" {
				item.HelpText = text
			}
		}
		items[i] = item
	}
	group.Items = items
	return group
}
