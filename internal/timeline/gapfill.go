package timeline

import "math"

// PlanGap computes a default-sized, non-overlapping range for a new cue near
// the requested time t:
//
//	start = max(t, latest end time at or before t)
//	end   = min(start+DefaultDuration, next start time at or after t, total)
//
// ok is false when no room remains; callers treat that as a silent no-op,
// not an error. A planned range never overlaps a pre-existing cue and never
// exceeds the media duration, provided t itself is outside every cue.
func PlanGap(s *Store, t, total float64) (start, end float64, ok bool) {
	lastEnd := 0.0
	nextStart := total
	for _, iv := range s.All() {
		if iv.End <= t && iv.End > lastEnd {
			lastEnd = iv.End
		}
		if iv.Start >= t && iv.Start < nextStart {
			nextStart = iv.Start
		}
	}

	start = math.Max(t, lastEnd)
	end = math.Min(math.Min(start+DefaultDuration, nextStart), total)
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// CreateAt plans and creates a cue at t, returning false when the plan had
// no room.
func CreateAt(s *Store, t, total float64) (ID, bool) {
	start, end, ok := PlanGap(s, t, total)
	if !ok {
		return 0, false
	}
	id, err := s.Create(start, end, "")
	if err != nil {
		return 0, false
	}
	return id, true
}

// InsertAfter creates a cue in the gap following the anchor cue.
func InsertAfter(s *Store, anchor ID, total float64) (ID, bool) {
	iv, ok := s.Get(anchor)
	if !ok {
		return 0, false
	}
	return CreateAt(s, iv.End, total)
}
