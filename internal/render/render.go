// Package render turns a viewer.Frame into Ebiten draw geometry.
package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

// FitMargin is the share of the screen an unzoomed image may occupy.
const FitMargin = 0.9

// FitScale returns the scale that fits an imgW x imgH image inside
// FitMargin of the screen without enlarging it.
func FitScale(imgW, imgH, screenW, screenH int) float64 {
	if imgW <= 0 || imgH <= 0 || screenW <= 0 || screenH <= 0 {
		return 1
	}
	s := math.Min(
		float64(screenW)*FitMargin/float64(imgW),
		float64(screenH)*FitMargin/float64(imgH),
	)
	return math.Min(s, 1)
}

// GeoM places the image: fitted and centred on screen, scaled by f.Scale
// about its own centre, then translated by (f.PanX, f.PanY).
func GeoM(f viewer.Frame, imgW, imgH, screenW, screenH int) ebiten.GeoM {
	fit := FitScale(imgW, imgH, screenW, screenH)
	w := float64(imgW) * fit
	h := float64(imgH) * fit

	var m ebiten.GeoM
	m.Scale(fit, fit)
	m.Translate(-w/2, -h/2)
	m.Scale(f.Scale, f.Scale)
	m.Translate(float64(screenW)/2+f.PanX, float64(screenH)/2+f.PanY)
	return m
}

// ImageRect returns the on-screen bounds of the image drawn with GeoM.
func ImageRect(f viewer.Frame, imgW, imgH, screenW, screenH int) viewer.Rect {
	m := GeoM(f, imgW, imgH, screenW, screenH)
	x0, y0 := m.Apply(0, 0)
	x1, y1 := m.Apply(float64(imgW), float64(imgH))
	return viewer.Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}
