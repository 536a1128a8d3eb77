package timeline

import "math"

// DragState is the pointer machine's current gesture.
type DragState int

const (
	Idle DragState = iota
	DraggingMove
	DraggingResizeLeft
	DraggingResizeRight
)

func (s DragState) String() string {
	switch s {
	case DraggingMove:
		return "dragging-move"
	case DraggingResizeLeft:
		return "dragging-resize-left"
	case DraggingResizeRight:
		return "dragging-resize-right"
	default:
		return "idle"
	}
}

const (
	// handleSlop is the edge-handle hit tolerance as a fraction of the
	// visible span.
	handleSlop = 0.01

	// clickSlop is how far (fraction of the visible span) the pointer may
	// wander before a press stops counting as a click.
	clickSlop = 0.005
)

// Seeker receives playhead seek requests issued by clicks on empty
// timeline space.
type Seeker interface {
	Seek(t float64)
}

type hitZone int

const (
	zoneBody hitZone = iota
	zoneLeft
	zoneRight
)

// Pointer interprets press/move/release/double-click input against the
// viewport and the store, producing move, resize, create, select and seek
// operations. Each drag frame is written through Store.Update immediately:
// the live preview is the committed state, there is no separate buffer.
//
// Pointer time positions are always derived through the current viewport
// mapping; panning during a drag is undefined and not supported.
type Pointer struct {
	store  *Store
	view   *Viewport
	seeker Seeker

	state        DragState
	target       ID
	pressTime    float64
	anchorStart  float64
	anchorEnd    float64
	origDuration float64
	pressed      bool
	moved        bool

	selected ID
}

func NewPointer(store *Store, view *Viewport, seeker Seeker) *Pointer {
	return &Pointer{store: store, view: view, seeker: seeker}
}

// State returns the current drag state.
func (p *Pointer) State() DragState { return p.state }

// Dragging reports whether a drag gesture is in progress.
func (p *Pointer) Dragging() bool { return p.state != Idle }

// Selected returns the currently selected cue id, if any.
func (p *Pointer) Selected() (ID, bool) { return p.selected, p.selected != 0 }

// Select sets the selection directly (list-driven selection).
func (p *Pointer) Select(id ID) {
	if _, ok := p.store.Get(id); ok {
		p.selected = id
	}
}

// Deselect clears the selection if it references the given id. Called when
// a cue is deleted so the selection never dangles.
func (p *Pointer) Deselect(id ID) {
	if p.selected == id {
		p.selected = 0
	}
}

// ClearSelection empties the selection.
func (p *Pointer) ClearSelection() { p.selected = 0 }

// Press begins a gesture at the given fractional track position. Pressing a
// cue's edge handle starts a resize, pressing its body starts a move, and
// pressing empty space arms a click-to-seek decided at release time.
func (p *Pointer) Press(frac float64) {
	t := p.view.TimeAt(frac)
	p.pressed = true
	p.moved = false
	p.pressTime = t

	iv, zone, ok := p.hitTest(t)
	if !ok {
		p.state = Idle
		p.target = 0
		return
	}

	p.target = iv.ID
	switch zone {
	case zoneLeft:
		p.state = DraggingResizeLeft
		p.anchorStart = iv.Start
	case zoneRight:
		p.state = DraggingResizeRight
		p.anchorEnd = iv.End
	default:
		p.state = DraggingMove
		p.anchorStart = iv.Start
		p.origDuration = iv.Duration()
	}
}

// Move advances the active gesture. Every computed state is written through
// the store immediately.
func (p *Pointer) Move(frac float64) {
	if !p.pressed {
		return
	}

	t := p.view.TimeAt(frac)
	if !p.moved && math.Abs(t-p.pressTime) > p.view.Span()*clickSlop {
		p.moved = true
	}

	delta := t - p.pressTime
	switch p.state {
	case DraggingMove:
		start := math.Max(0, p.anchorStart+delta)
		end := start + p.origDuration
		p.store.Update(p.target, Patch{Start: &start, End: &end})

	case DraggingResizeLeft:
		cur, ok := p.store.Get(p.target)
		if !ok {
			return
		}
		start := clamp(p.anchorStart+delta, 0, cur.End-MinDuration)
		p.store.Update(p.target, Patch{Start: &start})

	case DraggingResizeRight:
		cur, ok := p.store.Get(p.target)
		if !ok {
			return
		}
		end := math.Max(cur.Start+MinDuration, p.anchorEnd+delta)
		p.store.Update(p.target, Patch{End: &end})
	}
}

// Release ends the gesture. A drag keeps its last applied update; nothing is
// undone. A click (press and release without a qualifying move) selects the
// cue under the pointer, or seeks the playhead when the press was on empty
// space. Selection and seek are mutually exclusive outcomes.
func (p *Pointer) Release(frac float64) {
	defer p.reset()

	if !p.pressed {
		return
	}

	if p.state != Idle {
		if !p.moved {
			p.selected = p.target
		}
		return
	}

	if !p.moved && p.seeker != nil {
		p.seeker.Seek(p.view.TimeAt(frac))
	}
}

// DoubleClick creates a gap-filled cue at the clicked time. Double-clicking
// an existing cue is a no-op: it must never create or duplicate.
func (p *Pointer) DoubleClick(frac float64) (ID, bool) {
	p.reset()

	t := p.view.TimeAt(frac)
	for _, iv := range p.store.All() {
		if iv.Contains(t) {
			return 0, false
		}
	}

	start, end, ok := PlanGap(p.store, t, p.view.Total())
	if !ok {
		return 0, false
	}
	id, err := p.store.Create(start, end, "")
	if err != nil {
		return 0, false
	}
	return id, true
}

// hitTest finds the cue under t, preferring edge handles over bodies. When
// overlapping cues both hit, the most recently created one wins; that
// tie-break is deliberate and covered by tests.
func (p *Pointer) hitTest(t float64) (Interval, hitZone, bool) {
	tol := p.view.Span() * handleSlop

	var (
		best     Interval
		bestZone hitZone
		found    bool
	)
	for _, iv := range p.store.All() {
		var zone hitZone
		switch {
		case math.Abs(t-iv.Start) <= tol:
			zone = zoneLeft
		case math.Abs(t-iv.End) <= tol:
			zone = zoneRight
		case iv.Contains(t):
			zone = zoneBody
		default:
			continue
		}
		if !found || iv.ID > best.ID {
			best = iv
			bestZone = zone
			found = true
		}
	}
	return best, bestZone, found
}

func (p *Pointer) reset() {
	p.state = Idle
	p.target = 0
	p.pressed = false
	p.moved = false
	p.anchorStart = 0
	p.anchorEnd = 0
	p.origDuration = 0
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(hi, math.Max(lo, v))
}
