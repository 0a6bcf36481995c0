package internal

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/combochain/pkg/combochain/hints"
)

// splitHints puts up to two items in the left pill and up to two in the right one
func splitHints(items []hints.Item) (left, right []hints.Item) {
	switch {
	case len(items) == 0:
		return nil, nil
	case len(items) <= 2:
		return items[:1], items[1:]
	default:
		return items[:2], items[2:min(4, len(items))]
	}
}

// RenderHints draws the items of group along the bottom edge of the window
func RenderHints(renderer *sdl.Renderer, group hints.Group, bottomPadding int32) {
	font := Fonts.SmallFont
	if font == nil || len(group.Items) == 0 || window == nil {
		return
	}

	scaleFactor := GetScaleFactor()
	windowWidth, windowHeight := window.Window.GetSize()
	y := windowHeight - bottomPadding - int32(float32(50)*scaleFactor)
	outerPillHeight := int32(float32(60) * scaleFactor)
	innerPillMargin := int32(float32(6) * scaleFactor)

	left, right := splitHints(group.Items)

	if len(left) > 0 {
		renderPill(renderer, font, left, bottomPadding, y, outerPillHeight, innerPillMargin)
	}
	if len(right) > 0 {
		width := pillWidth(font, right, outerPillHeight, innerPillMargin)
		renderPill(renderer, font, right, windowWidth-bottomPadding-width, y, outerPillHeight, innerPillMargin)
	}
}

func innerPillWidth(buttonSurface *sdl.Surface, innerPillHeight int32) int32 {
	if buttonSurface.W <= innerPillHeight-20 {
		return innerPillHeight
	}
	return buttonSurface.W + 20
}

func pillWidth(font *ttf.Font, items []hints.Item, outerPillHeight, innerPillMargin int32) int32 {
	scaleFactor := GetScaleFactor()
	innerPillHeight := outerPillHeight - innerPillMargin*2
	totalWidth := int32(float32(20) * scaleFactor)

	for i, item := range items {
		buttonW, _, err := font.SizeUTF8(item.ButtonName)
		if err != nil {
			continue
		}
		helpW, _, err := font.SizeUTF8(item.HelpText)
		if err != nil {
			continue
		}

		inner := innerPillHeight
		if int32(buttonW) > innerPillHeight-20 {
			inner = int32(buttonW) + 20
		}

		totalWidth += inner + 15 + int32(helpW)
		if i < len(items)-1 {
			totalWidth += 20
		}
	}
	return totalWidth
}

func renderPill(renderer *sdl.Renderer, font *ttf.Font, items []hints.Item, startX, y, outerPillHeight, innerPillMargin int32) {
	theme := GetTheme()
	scaleFactor := GetScaleFactor()

	outerPillRect := &sdl.Rect{
		X: startX,
		Y: y,
		W: pillWidth(font, items, outerPillHeight, innerPillMargin),
		H: outerPillHeight,
	}
	DrawRoundedRect(renderer, outerPillRect, outerPillHeight/2, theme.AccentColor)

	currentX := startX + int32(float32(10)*scaleFactor)
	innerPillHeight := outerPillHeight - innerPillMargin*2

	// Less padding on small screens
	var paddingFactor float32 = 1.0
	if scaleFactor < 1.0 {
		paddingFactor = 0.5 + scaleFactor*0.5
	}
	rightPadding := int32(float32(30) * paddingFactor)

	for _, item := range items {
		buttonSurface, err := font.RenderUTF8Blended(item.ButtonName, theme.ButtonLabelColor)
		if err != nil || buttonSurface == nil {
			continue
		}

		helpSurface, err := font.RenderUTF8Blended(item.HelpText, theme.HintColor)
		if err != nil || helpSurface == nil {
			buttonSurface.Free()
			continue
		}

		inner := innerPillWidth(buttonSurface, innerPillHeight)
		if inner == innerPillHeight {
			drawCircleShape(renderer, currentX+innerPillHeight/2, y+innerPillMargin+innerPillHeight/2, innerPillHeight/2, theme.HighlightColor)
		} else {
			DrawRoundedRect(renderer, &sdl.Rect{
				X: currentX,
				Y: y + innerPillMargin,
				W: inner,
				H: innerPillHeight,
			}, innerPillHeight/2, theme.HighlightColor)
		}

		copySurface(renderer, buttonSurface, currentX+(inner-buttonSurface.W)/2, y+(outerPillHeight-buttonSurface.H)/2)
		currentX += inner + int32(float32(10)*scaleFactor)

		copySurface(renderer, helpSurface, currentX, y+(outerPillHeight-helpSurface.H)/2)
		currentX += helpSurface.W + rightPadding

		buttonSurface.Free()
		helpSurface.Free()
	}
}

// RenderBanner draws text centered in a pill in the middle of the window
func RenderBanner(renderer *sdl.Renderer, text string) {
	font := Fonts.MediumFont
	if font == nil || text == "" || window == nil {
		return
	}

	theme := GetTheme()
	surface, err := font.RenderUTF8Blended(text, theme.TextColor)
	if err != nil || surface == nil {
		return
	}
	defer surface.Free()

	scaleFactor := GetScaleFactor()
	padding := int32(float32(30) * scaleFactor)
	windowWidth, windowHeight := window.Window.GetSize()

	rect := &sdl.Rect{
		W: surface.W + padding*2,
		H: surface.H + padding,
	}
	rect.X = (windowWidth - rect.W) / 2
	rect.Y = (windowHeight - rect.H) / 2

	DrawRoundedRect(renderer, rect, rect.H/2, theme.AccentColor)
	copySurface(renderer, surface, rect.X+padding, rect.Y+padding/2)
}

func copySurface(renderer *sdl.Renderer, surface *sdl.Surface, x, y int32) {
	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return
	}
	renderer.Copy(texture, nil, &sdl.Rect{X: x, Y: y, W: surface.W, H: surface.H})
	texture.Destroy()
}
