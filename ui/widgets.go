package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Renderer handles shared overlay drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawBar draws a horizontal progress bar for [0, 1] values.
func (r *Renderer) DrawBar(x, y, width, height int32, value float32) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	rl.DrawRectangle(x, y, width, height, r.Theme.BarBg)
	rl.DrawRectangle(x, y, int32(float32(width)*value), height, r.Theme.BarFill)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawCentered draws text horizontally centered on cx.
func (r *Renderer) DrawCentered(text string, cx, y, size int32, col rl.Color) {
	rl.DrawText(text, cx-rl.MeasureText(text, size)/2, y, size, col)
}
