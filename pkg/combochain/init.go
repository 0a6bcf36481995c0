package combochain

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/gamepad"
	"github.com/BrandonKowalski/combochain/pkg/combochain/i18n"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal"
	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
	"github.com/BrandonKowalski/combochain/pkg/combochain/registry"
)

// DebugEnvVar raises the internal log level to debug when set
const DebugEnvVar = "COMBOCHAIN_DEBUG"

type Options struct {
	WindowTitle          string
	ShowBackground       bool
	PrimaryThemeColorHex uint32
	BackgroundImagePath  string
	FontPath             string
	InputMappingPath     string
	LogFilename          string
	Language             string
	Chain                chain.Options
}

var (
	chains   *registry.Registry
	observer *gamepad.Observer
)

// Init initializes SDL, input devices and the chain registry.
// Must be called before any other function of this package!
func Init(options Options) error {
	if options.LogFilename != "" {
		logging.SetLogFilename(options.LogFilename)
	}

	logging.SetInternalLogLevel(logging.InternalLevel(os.Getenv(DebugEnvVar) != ""))

	theme := internal.GetTheme()
	if options.PrimaryThemeColorHex != 0 {
		theme.AccentColor = internal.HexToColor(options.PrimaryThemeColorHex)
	}
	if options.BackgroundImagePath != "" {
		theme.BackgroundImagePath = options.BackgroundImagePath
	}
	internal.SetTheme(theme)

	if err := i18n.InitDefault(); err != nil {
		return err
	}
	if options.Language != "" {
		if err := i18n.SetWithCode(options.Language); err != nil {
			logging.GetInternalLogger().Warn("Unsupported language, keeping English", "language", options.Language, "error", err)
		}
	}

	err := internal.Init(internal.InitOptions{
		WindowTitle:    options.WindowTitle,
		ShowBackground: options.ShowBackground,
		FontPath:       options.FontPath,
		MappingPath:    options.InputMappingPath,
	})
	if err != nil {
		return err
	}

	chainOptions := options.Chain
	if chainOptions.Logger == nil {
		chainOptions.Logger = logging.GetInternalLogger()
	}
	chains = registry.New(chainOptions)

	observer = gamepad.NewObserver(internal.GetDevices())
	observer.Start()

	return nil
}

// Close tidies up SDL and the devices.
// Must be called after all other functions!
func Close() {
	if observer != nil {
		observer.Close()
		observer = nil
	}
	chains = nil
	internal.SDLCleanup()
	logging.CloseLogger()
}

func SetLogFilename(filename string) {
	logging.SetLogFilename(filename)
}

// SetLogDir must be called before Init. An empty dir logs to stdout only.
func SetLogDir(dir string) {
	logging.SetLogDir(dir)
}

func GetLogger() *slog.Logger {
	return logging.GetLogger()
}

func SetLogLevel(level slog.Level) {
	logging.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	logging.SetRawLogLevel(level)
}

func SetInputMappingBytes(data []byte) {
	internal.SetInputMappingBytes(data)
}

func GetWindow() *internal.Window {
	return internal.GetWindow()
}

// GetObserver returns the controller connection observer started by Init
func GetObserver() *gamepad.Observer {
	return observer
}

func HideWindow() {
	internal.GetWindow().Window.Hide()
}

func ShowWindow() {
	internal.GetWindow().Window.Show()
}
