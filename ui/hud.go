package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the overlay draws for one frame. The game never
// sees this type; main fills it from the game's read accessors.
type HUDData struct {
	ScreenWidth  int32
	ScreenHeight int32

	Score int
	Kills int
	Target int

	Locked       bool
	LockSpecies  string
	LockDistance float32
	LockPoints   int

	InFlight       bool
	FlightProgress float32
	Cooldown       float32 // remaining cooldown fraction, 0 when ready

	HitFlash float32 // 1 right after a confirmed hit, decaying to 0
	PopText  string  // floating score text, empty when none
	PopAge   float32 // seconds since the pop spawned

	ShowHint bool
	Debug    string // preformatted stats line, empty unless enabled
}

// HUD renders the in-round overlay: score, crosshair, lock feedback,
// cooldown, and the bullet-time letterbox.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the overlay for one frame. Call between the 3D pass and
// EndDrawing.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	w, hgt := data.ScreenWidth, data.ScreenHeight
	cx, cy := w/2, hgt/2

	if data.InFlight {
		h.drawLetterbox(data)
	} else {
		h.drawCrosshair(data, cx, cy)
	}

	// Score and kill counter stay up through the whole round.
	rl.DrawText(fmt.Sprintf("SCORE %d", data.Score), 16, 14, 24, t.Text)
	kills := fmt.Sprintf("KILLS %d/%d", data.Kills, data.Target)
	rl.DrawText(kills, w-16-rl.MeasureText(kills, 24), 14, 24, t.Text)

	if data.Cooldown > 0 && !data.InFlight {
		h.renderer.DrawBar(cx-60, cy+54, 120, 6, 1-data.Cooldown)
	}

	if data.PopText != "" {
		h.drawScorePop(data, cx, cy)
	}

	if data.HitFlash > 0 {
		rl.DrawRectangle(0, 0, w, hgt, rl.Fade(rl.RayWhite, 0.3*data.HitFlash))
	}

	if data.ShowHint {
		h.renderer.DrawCentered("DRAG TO AIM - TAP TO SHOOT", cx, hgt-46, 18, t.TextDim)
	}

	if data.Debug != "" {
		rl.DrawText(data.Debug, 16, hgt-24, 14, t.TextDim)
	}
}

// drawCrosshair renders the center reticle. A lock widens the gap, turns
// the ticks amber, and names the target underneath.
func (h *HUD) drawCrosshair(data HUDData, cx, cy int32) {
	t := h.renderer.Theme
	col := t.Text
	gap, length := int32(8), int32(10)
	if data.Locked {
		col = t.Accent
		gap, length = 13, 12
	}

	rl.DrawCircle(cx, cy, 2, col)
	rl.DrawRectangle(cx-1, cy-gap-length, 2, length, col)
	rl.DrawRectangle(cx-1, cy+gap, 2, length, col)
	rl.DrawRectangle(cx-gap-length, cy-1, length, 2, col)
	rl.DrawRectangle(cx+gap, cy-1, length, 2, col)

	if data.Locked {
		rl.DrawCircleLines(cx, cy, float32(gap+length+6), rl.Fade(col, 0.7))
		label := fmt.Sprintf("%s  %.0fm  %d PTS",
			strings.ToUpper(data.LockSpecies), data.LockDistance, data.LockPoints)
		h.renderer.DrawCentered(label, cx, cy+30, 16, col)
	}
}

// drawLetterbox slides cinematic bars in over the first slice of the
// flight and keeps them until resolution.
func (h *HUD) drawLetterbox(data HUDData) {
	slide := data.FlightProgress * 6
	if slide > 1 {
		slide = 1
	}
	barH := int32(float32(data.ScreenHeight) * 0.11 * slide)
	rl.DrawRectangle(0, 0, data.ScreenWidth, barH, rl.Black)
	rl.DrawRectangle(0, data.ScreenHeight-barH, data.ScreenWidth, barH, rl.Black)
}

// drawScorePop floats the awarded points up from the crosshair.
func (h *HUD) drawScorePop(data HUDData, cx, cy int32) {
	const popLife = 1.1
	if data.PopAge >= popLife {
		return
	}
	f := data.PopAge / popLife
	y := cy - 40 - int32(f*46)
	h.renderer.DrawCentered(data.PopText, cx, y, 26, rl.Fade(h.renderer.Theme.Accent, 1-f))
}
