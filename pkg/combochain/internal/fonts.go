package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/combochain/pkg/combochain/internal/logging"
)

const FallbackFontEnvVar = "FALLBACK_FONT"

var ErrNoFont = errors.New("no usable font")

type FontSizes struct {
	Medium int `json:"medium"`
	Small  int `json:"small"`
	Tiny   int `json:"tiny"`
}

var DefaultFontSizes = FontSizes{
	Medium: 44,
	Small:  34,
	Tiny:   24,
}

var Fonts fontsManager

type fontsManager struct {
	MediumFont *ttf.Font
	SmallFont  *ttf.Font
	TinyFont   *ttf.Font
}

func (f fontsManager) loaded() bool {
	return f.MediumFont != nil && f.SmallFont != nil && f.TinyFont != nil
}

const referenceWidth int32 = 1024

func CalculateFontSizeForResolution(baseSize int, screenWidth int32) int {
	return int(float32(baseSize) * scaleFor(screenWidth))
}

// GetScaleFactor returns the scale factor based on current screen width
func GetScaleFactor() float32 {
	if window == nil {
		return 1
	}
	return scaleFor(window.GetWidth())
}

func scaleFor(screenWidth int32) float32 {
	scaleFactor := float32(screenWidth) / float32(referenceWidth)

	// Damp the growth above the reference width
	if screenWidth > referenceWidth {
		scaleFactor = 1.0 + (scaleFactor-1.0)*0.75
	}

	return scaleFactor
}

// initFonts tries path, then the fallback font variable, then the theme font
func initFonts(path string, sizes FontSizes, screenWidth int32) error {
	candidates := []string{path, os.Getenv(FallbackFontEnvVar), GetTheme().FontPath}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		fonts, err := openFonts(candidate, sizes, screenWidth)
		if err != nil {
			logging.GetInternalLogger().Debug("Failed to load font", "path", candidate, "error", err)
			continue
		}

		Fonts = fonts
		return nil
	}

	return ErrNoFont
}

func openFonts(path string, sizes FontSizes, screenWidth int32) (fontsManager, error) {
	var fonts fontsManager
	var err error

	open := func(base int) *ttf.Font {
		if err != nil {
			return nil
		}
		var font *ttf.Font
		font, err = ttf.OpenFont(path, CalculateFontSizeForResolution(base, screenWidth))
		return font
	}

	fonts.MediumFont = open(sizes.Medium)
	fonts.SmallFont = open(sizes.Small)
	fonts.TinyFont = open(sizes.Tiny)

	if err != nil {
		fonts.close()
		return fontsManager{}, fmt.Errorf("failed to open font %s: %w", path, err)
	}
	return fonts, nil
}

func (f fontsManager) close() {
	for _, font := range []*ttf.Font{f.MediumFont, f.SmallFont, f.TinyFont} {
		if font != nil {
			font.Close()
		}
	}
}

func closeFonts() {
	Fonts.close()
	Fonts = fontsManager{}
}
