package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nicky-ayoub/ebitlightbox/internal/input"
	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

const (
	buttonSize   = 48
	buttonMargin = 16
	buttonGap    = 8
)

var (
	buttonColor  = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xc0}
	buttonLabels = map[input.Action]string{
		input.ActionPrev:      "<",
		input.ActionNext:      ">",
		input.ActionZoomIn:    "+",
		input.ActionZoomOut:   "-",
		input.ActionResetZoom: "0",
		input.ActionClose:     "X",
	}
)

// ControlButtons lays out the lightbox buttons for an image area of the
// given size. Prev and next sit on the left and right edges; zoom and close
// run along the top right corner.
func ControlButtons(width, height int) []input.Button {
	w, h := float64(width), float64(height)
	at := func(x, y float64, a input.Action) input.Button {
		return input.Button{Rect: viewer.Rect{X: x, Y: y, Width: buttonSize, Height: buttonSize}, Action: a}
	}
	midY := h/2 - buttonSize/2
	right := func(k int) float64 {
		return w - buttonMargin - float64(k+1)*buttonSize - float64(k)*buttonGap
	}
	return []input.Button{
		at(buttonMargin, midY, input.ActionPrev),
		at(right(0), midY, input.ActionNext),
		at(right(0), buttonMargin, input.ActionClose),
		at(right(1), buttonMargin, input.ActionResetZoom),
		at(right(2), buttonMargin, input.ActionZoomOut),
		at(right(3), buttonMargin, input.ActionZoomIn),
	}
}

// DrawControls draws buttons as labelled squares.
func DrawControls(screen *ebiten.Image, buttons []input.Button) {
	for _, b := range buttons {
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), buttonColor, false)
		ebitenutil.DebugPrintAt(screen, buttonLabels[b.Action], int(r.X+r.Width/2)-3, int(r.Y+r.Height/2)-8)
	}
}
