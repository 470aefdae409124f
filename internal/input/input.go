// Package input maps polled keyboard, mouse and touch state onto lightbox
// operations.
package input

import (
	"math"

	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

// Point is a touch contact in screen pixels.
type Point struct {
	X, Y float64
}

// Distance returns the distance between two contacts.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Action is an operation bound to an on-screen button.
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
	ActionZoomIn
	ActionZoomOut
	ActionResetZoom
	ActionClose
)

// Button is an on-screen control. A press and release inside Rect runs
// Action.
type Button struct {
	Rect   viewer.Rect
	Action Action
}

// State holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type State struct {
	// Keyboard, just pressed this frame.
	Open            bool
	Close           bool
	PrevImage       bool
	NextImage       bool
	ZoomIn          bool
	ZoomOut         bool
	ResetZoom       bool
	ToggleSlideshow bool

	// Mouse state
	WheelY          float64
	PointerPressed  bool // left button just pressed
	PointerHeld     bool // left button is being held down
	PointerReleased bool // left button just released
	PointerX        float64
	PointerY        float64

	// Touches holds every active contact, in a stable order.
	Touches []Point

	// ImageRect is where the current image is drawn. Presses outside it
	// land on the overlay.
	ImageRect viewer.Rect
	// Controls is screen space owned by other widgets; presses there are
	// ignored.
	Controls viewer.Rect
	// Buttons are the on-screen controls, checked before anything else.
	Buttons []Button
}

// Dispatcher applies input to a viewer. It keeps the little gesture state
// the viewer itself does not need: where the current press or tap began and
// how many touches were down last frame.
type Dispatcher struct {
	viewer    *viewer.Viewer
	slideshow *viewer.Slideshow

	overlayPress bool
	buttonPress  Action
	prevTouches  int

	// Single-finger tap tracking. A tap is cancelled once a second finger
	// lands.
	tapping   bool
	tapStart  Point
	lastTouch Point
	tap       Point
	tapped    bool
}

// NewDispatcher creates a Dispatcher for v. slideshow may be nil.
func NewDispatcher(v *viewer.Viewer, slideshow *viewer.Slideshow) *Dispatcher {
	return &Dispatcher{viewer: v, slideshow: slideshow}
}

// Tap returns where a single-finger tap ended during the last Apply.
func (d *Dispatcher) Tap() (Point, bool) {
	return d.tap, d.tapped
}

// Apply handles one frame of input.
func (d *Dispatcher) Apply(in State) {
	d.tapped = false
	if !d.viewer.IsOpen() {
		if in.Open {
			d.viewer.Open(d.viewer.State().Index)
		}
		d.resetGestures(in)
		return
	}

	d.applyKeys(in)
	if !d.viewer.IsOpen() {
		// Escape closed the lightbox; drop the rest of the frame.
		d.viewer.EndDrag()
		d.viewer.EndPinch()
		d.resetGestures(in)
		return
	}

	if in.WheelY > 0 {
		d.viewer.ZoomIn()
	} else if in.WheelY < 0 {
		d.viewer.ZoomOut()
	}

	d.applyPointer(in)
	d.applyTouches(in)
}

func (d *Dispatcher) resetGestures(in State) {
	d.prevTouches = len(in.Touches)
	d.overlayPress = false
	d.buttonPress = ActionNone
	d.tapping = false
}

func (d *Dispatcher) applyKeys(in State) {
	switch {
	case in.Close:
		d.close()
		return
	case in.PrevImage:
		d.navigate(-1)
	case in.NextImage:
		d.navigate(1)
	}
	if in.ZoomIn {
		d.viewer.ZoomIn()
	}
	if in.ZoomOut {
		d.viewer.ZoomOut()
	}
	if in.ResetZoom {
		d.viewer.ResetZoom()
	}
	if in.ToggleSlideshow && d.slideshow != nil {
		d.slideshow.Toggle()
	}
}

func (d *Dispatcher) navigate(direction int) {
	d.viewer.Navigate(direction)
	if d.slideshow != nil {
		d.slideshow.Reset()
	}
}

func (d *Dispatcher) close() {
	d.viewer.Close()
	if d.slideshow != nil {
		d.slideshow.Stop()
	}
}

func (d *Dispatcher) run(a Action) {
	switch a {
	case ActionPrev:
		d.navigate(-1)
	case ActionNext:
		d.navigate(1)
	case ActionZoomIn:
		d.viewer.ZoomIn()
	case ActionZoomOut:
		d.viewer.ZoomOut()
	case ActionResetZoom:
		d.viewer.ResetZoom()
	case ActionClose:
		d.close()
	}
}

// buttonAt returns the action of the button under (x, y).
func buttonAt(in State, x, y float64) Action {
	for _, b := range in.Buttons {
		if b.Rect.Contains(x, y) {
			return b.Action
		}
	}
	return ActionNone
}

// onOverlay reports whether (x, y) is bare overlay: not on the image, a
// button or another widget.
func onOverlay(in State, x, y float64) bool {
	if in.ImageRect.Contains(x, y) || buttonAt(in, x, y) != ActionNone {
		return false
	}
	return in.Controls.Empty() || !in.Controls.Contains(x, y)
}

// release finishes a press that ended at (x, y). A press that starts and
// ends on the same button runs it; one that starts and ends on the overlay
// closes the lightbox.
func (d *Dispatcher) release(in State, x, y float64, overlayPress bool, pressed Action) {
	switch {
	case pressed != ActionNone:
		if buttonAt(in, x, y) == pressed {
			d.run(pressed)
		}
	case overlayPress && onOverlay(in, x, y):
		d.close()
	}
}

// applyPointer runs the mouse press/drag/release cycle.
func (d *Dispatcher) applyPointer(in State) {
	x, y := in.PointerX, in.PointerY

	if in.PointerPressed {
		d.overlayPress = false
		d.buttonPress = buttonAt(in, x, y)
		switch {
		case d.buttonPress != ActionNone:
		case in.Controls.Contains(x, y) && !in.Controls.Empty():
		case in.ImageRect.Contains(x, y):
			d.viewer.BeginDrag(x, y)
		default:
			d.overlayPress = true
		}
	}

	if in.PointerHeld {
		d.viewer.UpdateDrag(x, y)
	}

	if in.PointerReleased {
		d.viewer.EndDrag()
		d.release(in, x, y, d.overlayPress, d.buttonPress)
		d.overlayPress = false
		d.buttonPress = ActionNone
	}
}

// applyTouches runs the one-finger pan, two-finger pinch and tap gestures.
// Ebiten does not report touches as mouse clicks, so taps on buttons and
// the overlay are handled here as well.
func (d *Dispatcher) applyTouches(in State) {
	n := len(in.Touches)
	prev := d.prevTouches
	d.prevTouches = n

	switch {
	case n == 1 && prev == 0:
		d.tapping = true
		d.tapStart = in.Touches[0]
	case n > 1:
		d.tapping = false
	}
	if n > 0 {
		d.lastTouch = in.Touches[0]
	}

	if n < prev {
		d.viewer.EndDrag()
		if n < 2 {
			d.viewer.EndPinch()
		}
		if n == 0 && d.tapping {
			d.tapping = false
			d.endTap(in)
		}
		return
	}

	switch n {
	case 1:
		p := in.Touches[0]
		if prev == 0 {
			if buttonAt(in, p.X, p.Y) == ActionNone && in.ImageRect.Contains(p.X, p.Y) {
				d.viewer.BeginDrag(p.X, p.Y)
			}
			return
		}
		d.viewer.UpdateDrag(p.X, p.Y)
	case 2:
		dist := Distance(in.Touches[0], in.Touches[1])
		if prev < 2 || !d.viewer.Pinching() {
			d.viewer.EndDrag()
			d.viewer.BeginPinch(dist)
			return
		}
		d.viewer.UpdatePinch(dist)
	}
}

// endTap completes a single-finger tap that began at tapStart and was
// lifted at lastTouch.
func (d *Dispatcher) endTap(in State) {
	start, end := d.tapStart, d.lastTouch
	d.tap, d.tapped = end, true
	d.release(in, end.X, end.Y, onOverlay(in, start.X, start.Y), buttonAt(in, start.X, start.Y))
}
