package render

import (
	"math"
	"testing"

	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name                         string
		imgW, imgH, screenW, screenH int
		want                         float64
	}{
		{"small image not enlarged", 100, 100, 1000, 1000, 1},
		{"wide image", 2000, 500, 1000, 1000, 0.45},
		{"tall image", 500, 2000, 1000, 1000, 0.45},
		{"degenerate", 0, 100, 1000, 1000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitScale(tt.imgW, tt.imgH, tt.screenW, tt.screenH); !approx(got, tt.want) {
				t.Errorf("FitScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImageRectCentered(t *testing.T) {
	f := viewer.Frame{Scale: 1}
	r := ImageRect(f, 200, 100, 800, 600)
	want := viewer.Rect{X: 300, Y: 250, Width: 200, Height: 100}
	if !approx(r.X, want.X) || !approx(r.Y, want.Y) || !approx(r.Width, want.Width) || !approx(r.Height, want.Height) {
		t.Errorf("ImageRect = %+v, want %+v", r, want)
	}
}

func TestImageRectZoomAndPan(t *testing.T) {
	f := viewer.Frame{Scale: 2, PanX: 10, PanY: -20}
	r := ImageRect(f, 200, 100, 800, 600)
	// Zoom about the centre (400, 300), then pan.
	want := viewer.Rect{X: 210, Y: 180, Width: 400, Height: 200}
	if !approx(r.X, want.X) || !approx(r.Y, want.Y) || !approx(r.Width, want.Width) || !approx(r.Height, want.Height) {
		t.Errorf("ImageRect = %+v, want %+v", r, want)
	}
}

func TestGeoMCentreFollowsPan(t *testing.T) {
	f := viewer.Frame{Scale: 3, PanX: 25, PanY: 40}
	m := GeoM(f, 400, 300, 1000, 800)
	x, y := m.Apply(200, 150)
	if !approx(x, 525) || !approx(y, 440) {
		t.Errorf("image centre maps to (%v, %v), want (525, 440)", x, y)
	}
}
