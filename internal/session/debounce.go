package session

import (
	"sync"
	"time"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

// DefaultSaveDelay is how long edits to a cue are allowed to settle
// before the document is written back to disk.
const DefaultSaveDelay = 500 * time.Millisecond

// Debouncer coalesces bursts of edits per cue: each Touch restarts that
// cue's timer, and the callback fires only after the delay passes with no
// further touches.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	fn     func(id timeline.ID)
	timers map[timeline.ID]*time.Timer
	closed bool
}

func NewDebouncer(delay time.Duration, fn func(id timeline.ID)) *Debouncer {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Debouncer{
		delay:  delay,
		fn:     fn,
		timers: map[timeline.ID]*time.Timer{},
	}
}

// Touch schedules the callback for id, replacing any pending schedule.
func (d *Debouncer) Touch(id timeline.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if timer, ok := d.timers[id]; ok {
		timer.Stop()
	}
	d.timers[id] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return
		}
		delete(d.timers, id)
		d.mu.Unlock()
		d.fn(id)
	})
}

// Cancel drops any pending schedule for id without firing it.
func (d *Debouncer) Cancel(id timeline.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if timer, ok := d.timers[id]; ok {
		timer.Stop()
		delete(d.timers, id)
	}
}

// Pending reports how many cues have a scheduled callback.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Flush fires the callback immediately for every pending cue and stops
// the debouncer. Used on shutdown so no edit is lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := make([]timeline.ID, 0, len(d.timers))
	for id, timer := range d.timers {
		timer.Stop()
		pending = append(pending, id)
	}
	d.timers = map[timeline.ID]*time.Timer{}
	d.closed = true
	d.mu.Unlock()

	for _, id := range pending {
		d.fn(id)
	}
}
