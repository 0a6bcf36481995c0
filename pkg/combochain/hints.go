package combochain

import (
	"github.com/BrandonKowalski/combochain/pkg/combochain/hints"
	"github.com/BrandonKowalski/combochain/pkg/combochain/i18n"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

var controlGroup *hints.ControlGroup

// ShowHints displays the controller hints while a gamepad is connected and the
// keyboard hints otherwise. Help texts with a message ID are localized.
// The returned function hides them again.
func ShowHints(keyboard, controller []hints.Item) (hide func(), err error) {
	if observer == nil {
		return nil, ErrNotInitialized
	}

	if controlGroup != nil {
		controlGroup.Deactivate()
	}

	group := hints.NewControlGroup(keyboard, controller)
	group.SetTranslator(i18n.Translate)
	group.OnChange(func(visible hints.Group) {
		logging.GetInternalLogger().Debug("Hint group changed", "group", visible.Name)
	})

	deactivate := group.Activate(observer)
	controlGroup = group

	return func() {
		deactivate()
		if controlGroup == group {
			controlGroup = nil
		}
	}, nil
}

// VisibleHints returns the hint group currently shown
func VisibleHints() (hints.Group, bool) {
	if controlGroup == nil {
		return hints.Group{}, false
	}
	return controlGroup.Visible(), true
}

// RenderFrame draws the background, an optional centered banner and the visible hints
func RenderFrame(banner string) {
	window := internal.GetWindow()
	if window == nil {
		return
	}

	window.RenderBackground()
	internal.RenderBanner(window.Renderer, banner)

	if group, ok := VisibleHints(); ok {
		internal.RenderHints(window.Renderer, group, int32(float32(20)*internal.GetScaleFactor()))
	}

	window.Renderer.Present()
}
