// Package viewer implements the lightbox: which image of a catalog is
// shown, whether the overlay is visible, and the zoom and pan applied to
// the image.
//
// All methods run to completion on the caller's goroutine and never fail.
// A Viewer is meant to be owned by a single event loop and is not safe for
// concurrent use.
package viewer

import (
	"math"

	"github.com/nicky-ayoub/ebitlightbox/internal/catalog"
)

const (
	// MinScale and MaxScale bound every zoom operation.
	MinScale = 0.5
	MaxScale = 3.0
	// ZoomStep is the multiplicative factor of one zoom in or out.
	ZoomStep = 1.2
)

// State is the mutable part of the lightbox.
type State struct {
	Index   int
	Visible bool
	Scale   float64
	PanX    float64
	PanY    float64

	Dragging bool
	// AnchorX and AnchorY are only meaningful while Dragging.
	AnchorX float64
	AnchorY float64
}

// pinchGesture is recorded when a two-contact gesture starts.
type pinchGesture struct {
	active          bool
	initialScale    float64
	initialDistance float64
}

// Frame is what the rendering surface needs to draw the lightbox.
type Frame struct {
	URL     string
	Alt     string
	Scale   float64
	PanX    float64
	PanY    float64
	Visible bool
	// ScrollLocked is set while the overlay suppresses background scrolling.
	ScrollLocked bool
}

// Renderer receives a new Frame after every state change.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// Render calls f.
func (f RendererFunc) Render(fr Frame) { f(fr) }

// Viewer is the lightbox controller.
type Viewer struct {
	catalog  *catalog.Catalog
	state    State
	pinch    pinchGesture
	renderer Renderer
}

// New creates a closed viewer over c. r may be nil.
func New(c *catalog.Catalog, r Renderer) *Viewer {
	return &Viewer{
		catalog:  c,
		state:    State{Scale: 1},
		renderer: r,
	}
}

// Catalog returns the images the viewer navigates.
func (v *Viewer) Catalog() *catalog.Catalog { return v.catalog }

// State returns a copy of the current state.
func (v *Viewer) State() State { return v.state }

// IsOpen reports whether the overlay is visible.
func (v *Viewer) IsOpen() bool { return v.state.Visible }

// Frame returns the render values for the current state.
func (v *Viewer) Frame() Frame {
	item := v.catalog.At(v.state.Index)
	return Frame{
		URL:          item.URL,
		Alt:          item.Alt,
		Scale:        v.state.Scale,
		PanX:         v.state.PanX,
		PanY:         v.state.PanY,
		Visible:      v.state.Visible,
		ScrollLocked: v.state.Visible,
	}
}

// Open shows the image at index, wrapping out-of-range and negative values.
func (v *Viewer) Open(index int) {
	v.state.Index = v.catalog.Index(index)
	v.state.Visible = true
	v.reset()
	v.render()
}

// Close hides the overlay. Closing a closed viewer changes nothing visible.
func (v *Viewer) Close() {
	v.state.Visible = false
	v.reset()
	v.render()
}

// Navigate moves by direction with wraparound. It works whether or not the
// overlay is visible.
func (v *Viewer) Navigate(direction int) {
	v.state.Index = v.catalog.Index(v.state.Index + direction)
	v.reset()
	v.render()
}

// ZoomIn multiplies the scale by ZoomStep, up to MaxScale.
func (v *Viewer) ZoomIn() {
	v.state.Scale = clamp(v.state.Scale*ZoomStep, MinScale, MaxScale)
	v.render()
}

// ZoomOut divides the scale by ZoomStep, down to MinScale.
func (v *Viewer) ZoomOut() {
	v.state.Scale = clamp(v.state.Scale/ZoomStep, MinScale, MaxScale)
	v.render()
}

// ResetZoom restores scale 1 and removes any pan.
func (v *Viewer) ResetZoom() {
	v.reset()
	v.render()
}

// BeginDrag starts panning from the pointer position. It does nothing
// unless the image is zoomed in.
func (v *Viewer) BeginDrag(x, y float64) {
	if v.state.Scale <= 1 {
		return
	}
	v.state.AnchorX = x - v.state.PanX
	v.state.AnchorY = y - v.state.PanY
	v.state.Dragging = true
}

// UpdateDrag moves the pan so the anchor stays under the pointer.
func (v *Viewer) UpdateDrag(x, y float64) {
	if !v.state.Dragging || v.state.Scale <= 1 {
		return
	}
	v.state.PanX = x - v.state.AnchorX
	v.state.PanY = y - v.state.AnchorY
	v.render()
}

// EndDrag stops panning. Safe to call when no drag is in progress.
func (v *Viewer) EndDrag() {
	v.state.Dragging = false
}

// BeginPinch records the current scale and the distance between the two
// contact points.
func (v *Viewer) BeginPinch(distance float64) {
	v.pinch = pinchGesture{
		active:          true,
		initialScale:    v.state.Scale,
		initialDistance: distance,
	}
}

// UpdatePinch zooms by the ratio of distance to the distance recorded in
// BeginPinch. A zero starting distance yields a ratio of 1.
func (v *Viewer) UpdatePinch(distance float64) {
	if !v.pinch.active {
		return
	}
	ratio := 1.0
	if v.pinch.initialDistance > 0 {
		ratio = distance / v.pinch.initialDistance
	}
	v.PinchZoom(ratio)
}

// PinchZoom sets the scale to the gesture's starting scale times ratio,
// clamped. Ratios that are not finite and positive leave the scale at the
// starting value. Without a gesture in progress the current scale is the
// starting value.
func (v *Viewer) PinchZoom(ratio float64) {
	initial := v.state.Scale
	if v.pinch.active {
		initial = v.pinch.initialScale
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	v.state.Scale = clamp(initial*ratio, MinScale, MaxScale)
	v.render()
}

// EndPinch finishes a two-contact gesture.
func (v *Viewer) EndPinch() {
	v.pinch = pinchGesture{}
}

// Pinching reports whether a two-contact gesture is in progress.
func (v *Viewer) Pinching() bool { return v.pinch.active }

func (v *Viewer) reset() {
	v.state.Scale = 1
	v.state.PanX = 0
	v.state.PanY = 0
}

func (v *Viewer) render() {
	if v.renderer != nil {
		v.renderer.Render(v.Frame())
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
