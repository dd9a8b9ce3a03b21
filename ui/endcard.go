package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// EndCardAction is what the player chose on the end card.
type EndCardAction int

const (
	EndCardNone EndCardAction = iota
	EndCardReplay
	EndCardDownload
)

// EndCard is the terminal call-to-action overlay: final score, replay, and
// the store link. It fades in once the session's end delay has elapsed.
type EndCard struct {
	renderer *Renderer
	fade     float32
}

// NewEndCard creates a hidden end card.
func NewEndCard() *EndCard {
	return &EndCard{renderer: NewRenderer()}
}

// Reset hides the card again for a replay.
func (e *EndCard) Reset() {
	e.fade = 0
}

// Update advances the fade-in.
func (e *EndCard) Update(dt float32) {
	e.fade += dt * 2.5
	if e.fade > 1 {
		e.fade = 1
	}
}

// Draw renders the card and reports any button press. Clicks only register
// once the card is fully faded in, so a late trigger tap cannot buy the
// full game by accident.
func (e *EndCard) Draw(screenW, screenH int32, score, kills, target int) EndCardAction {
	t := e.renderer.Theme
	rl.DrawRectangle(0, 0, screenW, screenH, rl.Fade(rl.Black, 0.62*e.fade))

	const panelW, panelH = int32(380), int32(290)
	px := screenW/2 - panelW/2
	py := screenH/2 - panelH/2
	e.renderer.DrawPanel(px, py, panelW, panelH)

	cx := screenW / 2
	e.renderer.DrawCentered("HUNT COMPLETE", cx, py+24, t.TitleSize, rl.Fade(t.Accent, e.fade))
	e.renderer.DrawCentered(fmt.Sprintf("SCORE  %d", score), cx, py+78, 26, rl.Fade(t.Text, e.fade))
	e.renderer.DrawCentered(fmt.Sprintf("%d / %d kills", kills, target), cx, py+114, 18, rl.Fade(t.TextDim, e.fade))

	if e.fade < 1 {
		return EndCardNone
	}
	btn := rl.Rectangle{X: float32(cx - 110), Y: float32(py + 156), Width: 220, Height: 42}
	if gui.Button(btn, "PLAY AGAIN") {
		return EndCardReplay
	}
	btn.Y += 54
	if gui.Button(btn, "GET THE FULL GAME") {
		return EndCardDownload
	}
	return EndCardNone
}
