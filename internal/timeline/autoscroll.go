package timeline

// AutoScroll keeps the viewport following an externally driven playhead.
type AutoScroll struct {
	view    *Viewport
	pointer *Pointer
}

func NewAutoScroll(view *Viewport, pointer *Pointer) *AutoScroll {
	return &AutoScroll{view: view, pointer: pointer}
}

// Follow recenters the viewport on the playhead when it leaves the visible
// window. Recentering is suppressed while a drag is in progress so the view
// never yanks the pointer's reference frame mid-gesture. Reports whether the
// viewport moved.
func (a *AutoScroll) Follow(playhead float64) bool {
	if a.pointer != nil && a.pointer.Dragging() {
		return false
	}
	if playhead >= a.view.Start() && playhead <= a.view.Start()+a.view.Span() {
		return false
	}
	a.view.CenterOn(playhead)
	return true
}
