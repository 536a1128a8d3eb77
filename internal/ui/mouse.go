package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

// doubleClickWindow is the longest pause between two presses on the same
// cell that still counts as a double click.
const doubleClickWindow = 300 * time.Millisecond

// TrackArea is the screen rectangle the timeline track occupies.
type TrackArea struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (a TrackArea) contains(x, y int) bool {
	return a.Width > 0 &&
		x >= a.X && x < a.X+a.Width &&
		y >= a.Y && y < a.Y+a.Height
}

// fraction maps a column to a position in [0,1] across the track.
func (a TrackArea) fraction(x int) float64 {
	if a.Width <= 1 {
		return 0
	}
	return float64(x-a.X) / float64(a.Width-1)
}

// MouseRouter turns terminal mouse events into pointer gestures on the
// track: press, drag, release, double click and wheel zoom.
type MouseRouter struct {
	pointer *timeline.Pointer
	view    *timeline.Viewport
	area    TrackArea

	pressed    bool
	lastPress  time.Time
	lastPressX int
	lastPressY int

	now func() time.Time
}

func NewMouseRouter(pointer *timeline.Pointer, view *timeline.Viewport) *MouseRouter {
	return &MouseRouter{
		pointer: pointer,
		view:    view,
		now:     time.Now,
	}
}

// SetArea updates the track rectangle after a resize or relayout.
func (r *MouseRouter) SetArea(area TrackArea) {
	r.area = area
}

// Handle routes one mouse event. It returns true when the event touched
// the track and the caller should redraw.
func (r *MouseRouter) Handle(msg tea.MouseMsg) bool {
	inside := r.area.contains(msg.X, msg.Y)
	frac := r.area.fraction(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !inside {
				return false
			}
			now := r.now()
			if r.isDoubleClick(now, msg.X, msg.Y) {
				r.lastPress = time.Time{}
				r.pointer.DoubleClick(frac)
			} else {
				r.lastPress = now
				r.lastPressX = msg.X
				r.lastPressY = msg.Y
				r.pointer.Press(frac)
			}
			r.pressed = true
			return true
		case tea.MouseButtonWheelUp:
			if !inside {
				return false
			}
			r.view.ZoomIn()
			return true
		case tea.MouseButtonWheelDown:
			if !inside {
				return false
			}
			r.view.ZoomOut()
			return true
		}

	case tea.MouseActionMotion:
		// drags keep tracking even when the pointer leaves the track
		if r.pressed {
			r.pointer.Move(frac)
			return true
		}

	case tea.MouseActionRelease:
		if r.pressed {
			r.pressed = false
			r.pointer.Release(frac)
			return true
		}
	}

	return false
}

func (r *MouseRouter) isDoubleClick(now time.Time, x, y int) bool {
	return !r.lastPress.IsZero() &&
		now.Sub(r.lastPress) <= doubleClickWindow &&
		x == r.lastPressX &&
		y == r.lastPressY
}
