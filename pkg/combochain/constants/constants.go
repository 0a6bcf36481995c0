package constants

import (
	"os"
	"strings"
	"time"
)

const (
	// DevModeEnvVar enables windowed rendering on a desktop
	DevModeEnvVar = "ENVIRONMENT"

	// BackgroundPathEnvVar overrides the theme background image
	BackgroundPathEnvVar = "BACKGROUND_PATH"

	// DefaultInputDelay is the frame delay of the run loop
	DefaultInputDelay = 16 * time.Millisecond
)

func IsDevMode() bool {
	return strings.EqualFold(os.Getenv(DevModeEnvVar), "DEV")
}
