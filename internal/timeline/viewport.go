package timeline

import "math"

// minSpan is the narrowest visible window in seconds.
const minSpan = 1.0

// Viewport maps between the time domain and a normalized [0,1] coordinate
// across the visible track. It owns the pan/zoom state: a window start and a
// window span, with the span clamped to [1s, total duration].
type Viewport struct {
	start float64
	span  float64
	total float64
}

// NewViewport builds a viewport showing the entire timeline.
func NewViewport(total float64) *Viewport {
	v := &Viewport{total: math.Max(total, 0)}
	v.span = v.total
	v.clampSpan()
	return v
}

func (v *Viewport) Start() float64 { return v.start }
func (v *Viewport) Span() float64  { return v.span }
func (v *Viewport) Total() float64 { return v.total }

// SetTotal updates the media duration, re-clamping the window. The duration
// becomes valid asynchronously after load, so this may arrive late.
func (v *Viewport) SetTotal(total float64) {
	v.total = math.Max(total, 0)
	v.clampSpan()
	v.clampStart()
}

// TimeAt converts a fractional position across the visible track to seconds.
func (v *Viewport) TimeAt(frac float64) float64 {
	return v.start + frac*v.span
}

// CoordOf converts a time to its fractional position; the result is only a
// visible coordinate when it lands in [0,1].
func (v *Viewport) CoordOf(t float64) float64 {
	if v.span <= 0 {
		return 0
	}
	return (t - v.start) / v.span
}

// Visible reports whether t falls inside the current window.
func (v *Viewport) Visible(t float64) bool {
	c := v.CoordOf(t)
	return c >= 0 && c <= 1
}

// ZoomIn halves the visible span, never below one second.
func (v *Viewport) ZoomIn() {
	v.span = math.Max(minSpan, v.span/2)
	v.clampSpan()
	v.clampStart()
}

// ZoomOut doubles the visible span. Hitting the full duration resets the
// window start to 0 so the entire timeline is visible.
func (v *Viewport) ZoomOut() {
	v.span *= 2
	if v.span >= v.total {
		v.span = v.total
		v.start = 0
	}
	v.clampSpan()
	v.clampStart()
}

// PanBy shifts the window start by a fraction of the visible span.
func (v *Viewport) PanBy(frac float64) {
	v.start += frac * v.span
	v.clampStart()
}

// CenterOn recenters the window on t, keeping the start non-negative.
func (v *Viewport) CenterOn(t float64) {
	v.start = math.Max(0, t-v.span/2)
	v.clampStart()
}

func (v *Viewport) clampSpan() {
	if v.total > 0 && v.span > v.total {
		v.span = v.total
	}
	floor := math.Min(minSpan, v.total)
	if floor <= 0 {
		floor = minSpan
	}
	if v.span < floor {
		v.span = floor
	}
}

func (v *Viewport) clampStart() {
	maxStart := math.Max(0, v.total-v.span)
	if v.start > maxStart {
		v.start = maxStart
	}
	if v.start < 0 {
		v.start = 0
	}
}
