package internal

import (
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
)

type Theme struct {
	HighlightColor      sdl.Color // Inner button pill
	AccentColor         sdl.Color // Outer hint pill, banner background
	ButtonLabelColor    sdl.Color // Button label text inside the inner pill
	TextColor           sdl.Color // Banner text
	HintColor           sdl.Color // Help text next to a button
	BackgroundColor     sdl.Color // Screen background
	FontPath            string
	BackgroundImagePath string
}

var currentTheme = DefaultTheme()

func DefaultTheme() Theme {
	return Theme{
		HighlightColor:      HexToColor(0xFFFFFF),
		AccentColor:         HexToColor(0x2B2B2B),
		ButtonLabelColor:    HexToColor(0x1A1A1A),
		TextColor:           HexToColor(0xFFFFFF),
		HintColor:           HexToColor(0xBFBFBF),
		BackgroundColor:     HexToColor(0x000000),
		BackgroundImagePath: os.Getenv(constants.BackgroundPathEnvVar),
	}
}

func SetTheme(theme Theme) {
	currentTheme = theme
}

func GetTheme() Theme {
	return currentTheme
}

func HexToColor(hex uint32) sdl.Color {
	r := uint8((hex >> 16) & 0xFF)
	g := uint8((hex >> 8) & 0xFF)
	b := uint8(hex & 0xFF)

	return sdl.Color{R: r, G: g, B: b, A: 255}
}
