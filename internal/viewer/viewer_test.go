package viewer

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/nicky-ayoub/ebitlightbox/internal/catalog"
)

func newCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	items := make([]catalog.Item, n)
	for i := range items {
		items[i] = catalog.Item{
			URL: fmt.Sprintf("img%d.jpg", i),
			Alt: fmt.Sprintf("Image %d", i),
		}
	}
	c, err := catalog.New(items)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func assertReset(t *testing.T, s State) {
	t.Helper()
	if s.Scale != 1 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("scale/pan = %v/(%v,%v), want 1/(0,0)", s.Scale, s.PanX, s.PanY)
	}
}

func TestNewViewerClosed(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	s := v.State()
	if s.Visible || s.Index != 0 {
		t.Errorf("initial state = %+v, want closed at 0", s)
	}
	assertReset(t, s)
}

func TestOpenWrapsIndex(t *testing.T) {
	const n = 7
	v := New(newCatalog(t, n), nil)
	for i := -20; i <= 20; i++ {
		v.Open(i)
		want := ((i % n) + n) % n
		if got := v.State().Index; got != want {
			t.Errorf("Open(%d) index = %d, want %d", i, got, want)
		}
		if !v.IsOpen() {
			t.Errorf("Open(%d) left viewer closed", i)
		}
	}
}

func TestOpenResetsZoomAndLocksScroll(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	v.ZoomIn()
	v.BeginDrag(0, 0)
	v.UpdateDrag(30, 40)
	v.Open(1)
	assertReset(t, v.State())
	if !v.Frame().ScrollLocked {
		t.Error("open viewer should lock background scrolling")
	}
}

func TestCloseIdempotent(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	v.Open(2)
	v.ZoomIn()
	v.Close()
	first := v.State()
	v.Close()
	second := v.State()
	if first != second {
		t.Errorf("second Close changed state: %+v -> %+v", first, second)
	}
	if first.Visible || v.Frame().ScrollLocked {
		t.Error("closed viewer should be hidden with scrolling restored")
	}
	assertReset(t, first)
}

func TestNavigateWraps(t *testing.T) {
	v := New(newCatalog(t, 7), nil)
	v.Open(6)
	v.Navigate(1)
	if got := v.State().Index; got != 0 {
		t.Errorf("past last index = %d, want 0", got)
	}
	v.Navigate(-1)
	if got := v.State().Index; got != 6 {
		t.Errorf("before first index = %d, want 6", got)
	}
}

func TestNavigateRoundTrip(t *testing.T) {
	v := New(newCatalog(t, 7), nil)
	for start := 0; start < 7; start++ {
		v.Open(start)
		v.Navigate(1)
		v.Navigate(-1)
		if got := v.State().Index; got != start {
			t.Errorf("start %d: round trip index = %d", start, got)
		}
	}
}

func TestNavigateFullCycle(t *testing.T) {
	const n = 7
	v := New(newCatalog(t, n), nil)
	v.Open(3)
	for i := 0; i < n; i++ {
		v.Navigate(1)
	}
	if got := v.State().Index; got != 3 {
		t.Errorf("after full cycle index = %d, want 3", got)
	}
}

func TestNavigateWhileClosed(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	v.Navigate(1)
	s := v.State()
	if s.Index != 1 || s.Visible {
		t.Errorf("closed navigate state = %+v, want index 1 and hidden", s)
	}
}

func TestNavigateResetsZoom(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	v.Open(0)
	v.ZoomIn()
	v.ZoomIn()
	v.Navigate(1)
	assertReset(t, v.State())
}

func TestZoomStaysInBounds(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	ops := []func(){v.ZoomIn, v.ZoomOut}
	// Deterministic mixed sequence.
	seq := []int{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1}
	for step, op := range seq {
		ops[op]()
		s := v.State().Scale
		if s < MinScale || s > MaxScale {
			t.Fatalf("step %d: scale %v out of [%v, %v]", step, s, MinScale, MaxScale)
		}
	}
}

func TestZoomSaturates(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	for i := 0; i < 20; i++ {
		v.ZoomIn()
	}
	if got := v.State().Scale; got != MaxScale {
		t.Fatalf("scale after 20 zoom-ins = %v, want %v", got, MaxScale)
	}
	v.ZoomIn()
	if got := v.State().Scale; got != MaxScale {
		t.Errorf("zoom-in at bound changed scale to %v", got)
	}

	for i := 0; i < 20; i++ {
		v.ZoomOut()
	}
	if got := v.State().Scale; got != MinScale {
		t.Fatalf("scale after 20 zoom-outs = %v, want %v", got, MinScale)
	}
	v.ZoomOut()
	if got := v.State().Scale; got != MinScale {
		t.Errorf("zoom-out at bound changed scale to %v", got)
	}
}

func TestZoomStep(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.ZoomIn()
	if got := v.State().Scale; math.Abs(got-1.2) > 1e-12 {
		t.Errorf("one zoom-in = %v, want 1.2", got)
	}
	v.ZoomOut()
	if got := v.State().Scale; math.Abs(got-1) > 1e-12 {
		t.Errorf("zoom-in then out = %v, want 1", got)
	}
}

func TestResetZoom(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.ZoomIn()
	v.ZoomIn()
	v.BeginDrag(10, 10)
	v.UpdateDrag(50, 70)
	v.ResetZoom()
	assertReset(t, v.State())

	v.ZoomOut()
	v.ResetZoom()
	assertReset(t, v.State())
}

func TestDragDisabledAtScaleOne(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.Open(0)
	v.BeginDrag(10, 10)
	v.UpdateDrag(100, 100)
	s := v.State()
	if s.Dragging || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("drag at scale 1 changed state: %+v", s)
	}
}

func TestDragAnchorRelative(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.state.Scale = 2
	v.state.PanX, v.state.PanY = 5, 5

	v.BeginDrag(10, 10)
	v.UpdateDrag(15, 15)

	s := v.State()
	if s.PanX != 10 || s.PanY != 10 {
		t.Errorf("pan = (%v, %v), want (10, 10)", s.PanX, s.PanY)
	}
}

func TestUpdateDragWithoutBegin(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.ZoomIn()
	v.UpdateDrag(40, 40)
	if s := v.State(); s.PanX != 0 || s.PanY != 0 {
		t.Errorf("UpdateDrag without BeginDrag moved pan to (%v, %v)", s.PanX, s.PanY)
	}
}

func TestDragStopsWhenZoomedOut(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.ZoomIn()
	v.BeginDrag(0, 0)
	v.UpdateDrag(5, 5)
	v.ResetZoom()
	v.UpdateDrag(50, 50)
	if s := v.State(); s.PanX != 0 || s.PanY != 0 {
		t.Errorf("drag at scale 1 moved pan to (%v, %v)", s.PanX, s.PanY)
	}
}

func TestEndDragUnconditional(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.EndDrag()
	if v.State().Dragging {
		t.Error("EndDrag on idle viewer should leave dragging false")
	}
	v.ZoomIn()
	v.BeginDrag(1, 1)
	if !v.State().Dragging {
		t.Fatal("BeginDrag while zoomed should start dragging")
	}
	v.EndDrag()
	if v.State().Dragging {
		t.Error("EndDrag should stop dragging")
	}
}

func TestPinchZoom(t *testing.T) {
	tests := []struct {
		name    string
		initial float64
		ratio   float64
		want    float64
	}{
		{"double", 1, 2, 2},
		{"half", 1, 0.5, 0.5},
		{"clamped high", 2, 5, MaxScale},
		{"clamped low", 1, 0.1, MinScale},
		{"degenerate zero", 1.5, 0, 1.5},
		{"negative", 1.5, -1, 1.5},
		{"nan", 1.5, math.NaN(), 1.5},
		{"inf", 1.5, math.Inf(1), 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(newCatalog(t, 1), nil)
			v.state.Scale = tt.initial
			v.BeginPinch(100)
			v.PinchZoom(tt.ratio)
			got := v.State().Scale
			if math.IsNaN(got) || got != tt.want {
				t.Errorf("scale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPinchUsesInitialScale(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.BeginPinch(100)
	v.UpdatePinch(150)
	v.UpdatePinch(200)
	if got := v.State().Scale; got != 2 {
		t.Errorf("scale = %v, want 2 (relative to gesture start, not compounded)", got)
	}
	v.EndPinch()
	if v.Pinching() {
		t.Error("EndPinch should end the gesture")
	}
	v.UpdatePinch(400)
	if got := v.State().Scale; got != 2 {
		t.Errorf("UpdatePinch after EndPinch changed scale to %v", got)
	}
}

func TestPinchZeroInitialDistance(t *testing.T) {
	v := New(newCatalog(t, 1), nil)
	v.BeginPinch(0)
	v.UpdatePinch(120)
	got := v.State().Scale
	if math.IsNaN(got) || math.IsInf(got, 0) || got != 1 {
		t.Errorf("scale = %v, want 1", got)
	}
}

func TestOpenCloseOpenRoundTrip(t *testing.T) {
	v := New(newCatalog(t, 7), nil)
	v.Open(2)
	first := v.Frame()
	v.ZoomIn()
	v.BeginDrag(3, 3)
	v.UpdateDrag(9, 9)
	v.Close()
	v.Open(2)
	second := v.Frame()
	if first != second {
		t.Errorf("frames differ: %+v vs %+v", first, second)
	}
	if second.URL != "img2.jpg" || second.Alt != "Image 2" {
		t.Errorf("frame shows %q/%q, want img2.jpg/Image 2", second.URL, second.Alt)
	}
}

func TestRendererNotified(t *testing.T) {
	var frames []Frame
	v := New(newCatalog(t, 3), RendererFunc(func(f Frame) { frames = append(frames, f) }))
	v.Open(1)
	v.ZoomIn()
	v.Close()
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if !frames[0].Visible || frames[0].URL != "img1.jpg" {
		t.Errorf("open frame = %+v", frames[0])
	}
	if frames[1].Scale != 1.2 {
		t.Errorf("zoom frame scale = %v, want 1.2", frames[1].Scale)
	}
	if frames[2].Visible {
		t.Error("close frame should be hidden")
	}
}

func TestSlideshow(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	v.Open(0)
	s := NewSlideshow(v, 3*time.Second)

	if n := s.Tick(10 * time.Second); n != 0 {
		t.Errorf("inactive slideshow advanced %d times", n)
	}

	s.Toggle()
	if !s.Active() {
		t.Fatal("Toggle should start the slideshow")
	}
	s.Tick(2 * time.Second)
	if got := v.State().Index; got != 0 {
		t.Errorf("advanced early to %d", got)
	}
	s.Tick(time.Second)
	if got := v.State().Index; got != 1 {
		t.Errorf("index = %d, want 1", got)
	}

	s.Tick(2 * time.Second)
	s.Reset()
	s.Tick(2 * time.Second)
	if got := v.State().Index; got != 1 {
		t.Errorf("Reset should restart the countdown, index = %d", got)
	}

	if n := s.Tick(4 * time.Second); n != 2 {
		t.Errorf("Tick(4s) advanced %d times, want 2", n)
	}
	if got := v.State().Index; got != 0 {
		t.Errorf("index = %d, want wrap to 0", got)
	}

	s.Stop()
	if s.Active() || s.Tick(time.Minute) != 0 {
		t.Error("stopped slideshow should not advance")
	}
}

func TestSlideshowZeroInterval(t *testing.T) {
	v := New(newCatalog(t, 3), nil)
	s := NewSlideshow(v, 0)
	s.Toggle()
	if n := s.Tick(time.Hour); n != 0 {
		t.Errorf("zero interval advanced %d times", n)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if !(Rect{}).Empty() {
		t.Error("zero Rect should be empty")
	}
}
