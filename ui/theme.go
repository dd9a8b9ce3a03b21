package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme collects the HUD's colors and metrics in one place so the overlay
// reads consistently across the HUD and the end card.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Text        rl.Color
	TextDim     rl.Color
	Accent      rl.Color // lock and score highlights
	BarBg       rl.Color
	BarFill     rl.Color
	FontSize    int32
	TitleSize   int32
}

// DefaultTheme returns the hunt's overlay palette: warm accents over
// near-black panels so text stays readable against snow and meadow alike.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 18, G: 22, B: 18, A: 215},
		PanelBorder: rl.Color{R: 90, G: 96, B: 88, A: 255},
		Text:        rl.RayWhite,
		TextDim:     rl.Color{R: 176, G: 182, B: 172, A: 255},
		Accent:      rl.Color{R: 255, G: 203, B: 88, A: 255}, // amber
		BarBg:       rl.Color{R: 40, G: 44, B: 40, A: 200},
		BarFill:     rl.Color{R: 222, G: 226, B: 216, A: 255},
		FontSize:    16,
		TitleSize:   30,
	}
}
