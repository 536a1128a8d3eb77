package timeline

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// InvalidRangeError is returned by Create for an inverted or empty range.
// Interactive edits never surface it; Update corrects instead of failing.
type InvalidRangeError struct {
	Start float64
	End   float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(
		"invalid cue range: end %.3fs must be after start %.3fs",
		e.End,
		e.Start,
	)
}

// Patch is a partial change to an interval. Nil fields are left untouched.
type Patch struct {
	Start *float64
	End   *float64
	Text  *string
}

// Store owns the authoritative cue collection. Intervals are kept in
// insertion order; sorted views are produced lazily on read. All operations
// are synchronous and immediately visible to subsequent reads; the store is
// safe to read from the autosave timer while the UI edits it.
type Store struct {
	mu        sync.Mutex
	nextID    ID
	intervals []Interval
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Create inserts a new cue and returns its id. The range must be non-empty;
// a span shorter than MinDuration is expanded by pushing the end forward.
func (s *Store) Create(start, end float64, text string) (ID, error) {
	if end <= start {
		return 0, &InvalidRangeError{Start: start, End: end}
	}
	start = math.Max(0, start)
	if end-start < MinDuration {
		end = start + MinDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.intervals = append(s.intervals, Interval{
		ID:    id,
		Start: start,
		End:   end,
		Text:  text,
	})
	return id, nil
}

// Get returns a copy of the interval with the given id.
func (s *Store) Get(id ID) (Interval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range s.intervals {
		if iv.ID == id {
			return iv, true
		}
	}
	return Interval{}, false
}

// Update applies a partial change, correcting rather than rejecting edits
// that would invert the cue: a start reaching or passing the end pushes the
// end forward by the prior duration (1s when the prior duration was
// degenerate), and symmetrically an end reaching or passing the start pulls
// the start backward, clamped at 0. The invariants Start >= 0 and
// End-Start >= MinDuration hold when Update returns.
func (s *Store) Update(id ID, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	iv := &s.intervals[idx]

	if p.Text != nil {
		iv.Text = *p.Text
	}

	if p.Start != nil {
		prev := iv.Duration()
		iv.Start = math.Max(0, *p.Start)
		if iv.Start >= iv.End {
			if prev < MinDuration {
				prev = 1
			}
			iv.End = iv.Start + prev
		}
	}

	if p.End != nil {
		prev := iv.Duration()
		iv.End = *p.End
		if iv.End <= iv.Start {
			if prev < MinDuration {
				prev = 1
			}
			iv.Start = math.Max(0, iv.End-prev)
		}
	}

	// final clamp: never commit a degenerate cue
	if iv.End-iv.Start < MinDuration {
		iv.Start = math.Max(0, iv.End-MinDuration)
		if iv.End-iv.Start < MinDuration {
			iv.End = iv.Start + MinDuration
		}
	}
	return true
}

// Delete removes the cue. Absent ids are a no-op, not an error.
func (s *Store) Delete(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.index(id)
	if idx < 0 {
		return
	}
	s.intervals = append(s.intervals[:idx], s.intervals[idx+1:]...)
}

// Len returns the number of cues.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intervals)
}

// All returns every cue sorted by ascending start time. Ties keep
// insertion order.
func (s *Store) All() []Interval {
	return s.Query(func(Interval) bool { return true })
}

// Query returns matching cues sorted by ascending start time. The result is
// re-evaluated on every call; the store keeps no index.
func (s *Store) Query(pred func(Interval) bool) []Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Interval, 0, len(s.intervals))
	for _, iv := range s.intervals {
		if pred(iv) {
			out = append(out, iv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

func (s *Store) index(id ID) int {
	for i, iv := range s.intervals {
		if iv.ID == id {
			return i
		}
	}
	return -1
}
