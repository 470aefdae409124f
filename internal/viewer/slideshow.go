package viewer

import "time"

// Slideshow advances a Viewer to the next image at a fixed interval. It has
// no timer of its own; the event loop drives it through Tick.
type Slideshow struct {
	viewer   *Viewer
	interval time.Duration
	elapsed  time.Duration
	active   bool
}

// NewSlideshow creates an inactive slideshow for v. An interval of zero or
// less keeps it from ever advancing.
func NewSlideshow(v *Viewer, interval time.Duration) *Slideshow {
	return &Slideshow{viewer: v, interval: interval}
}

// Active reports whether the slideshow is running.
func (s *Slideshow) Active() bool { return s.active }

// Interval returns the time between advances.
func (s *Slideshow) Interval() time.Duration { return s.interval }

// Toggle starts or stops the slideshow. Starting restarts the countdown.
func (s *Slideshow) Toggle() {
	s.active = !s.active
	s.elapsed = 0
}

// Stop halts the slideshow.
func (s *Slideshow) Stop() {
	s.active = false
	s.elapsed = 0
}

// Reset restarts the countdown, e.g. after manual navigation.
func (s *Slideshow) Reset() {
	s.elapsed = 0
}

// Tick accounts for dt of elapsed time and navigates forward once for each
// full interval that passed. It returns the number of advances.
func (s *Slideshow) Tick(dt time.Duration) int {
	if !s.active || s.interval <= 0 || dt <= 0 {
		return 0
	}
	s.elapsed += dt
	var n int
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval
		s.viewer.Navigate(1)
		n++
	}
	return n
}
