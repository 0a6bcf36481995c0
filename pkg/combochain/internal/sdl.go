package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

var (
	window    *Window
	devices   *Devices
	processor *Processor
)

type InitOptions struct {
	WindowTitle    string
	ShowBackground bool
	FontPath       string
	FontSizes      FontSizes
	MappingPath    string
}

// Init brings up SDL, the window, fonts and input devices. Rendering is optional:
// when no font can be loaded hints are not drawn but input keeps working.
func Init(opts InitOptions) error {
	logger := logging.GetInternalLogger()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER); err != nil {
		return fmt.Errorf("failed to initialize SDL: %w", err)
	}

	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to initialize SDL_ttf: %w", err)
	}

	w, err := initWindow(opts.WindowTitle, opts.ShowBackground)
	if err != nil {
		ttf.Quit()
		sdl.Quit()
		return err
	}
	window = w

	sizes := opts.FontSizes
	if sizes == (FontSizes{}) {
		sizes = DefaultFontSizes
	}
	if err := initFonts(opts.FontPath, sizes, window.GetWidth()); err != nil {
		logger.Warn("Hints will not be rendered", "error", err)
	}

	devices = NewDevices()
	devices.OpenAll()

	processor = NewProcessor(GetInputMapping(opts.MappingPath), devices)

	return nil
}

func GetProcessor() *Processor {
	return processor
}

func GetDevices() *Devices {
	return devices
}

func SDLCleanup() {
	if devices != nil {
		devices.CloseAll()
	}
	closeFonts()
	if window != nil {
		window.closeWindow()
		window = nil
	}
	ttf.Quit()
	sdl.Quit()
}
