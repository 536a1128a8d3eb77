package timeline

import (
	"errors"
	"testing"
)

func TestCreateRejectsInvertedRange(t *testing.T) {
	s := NewStore()

	_, err := s.Create(5, 5, "")
	if err == nil {
		t.Fatal("expected error for empty range")
	}
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected *InvalidRangeError, got %T", err)
	}

	if _, err := s.Create(5, 3, ""); err == nil {
		t.Error("expected error for inverted range")
	}
}

func TestCreateExpandsShortRange(t *testing.T) {
	s := NewStore()
	id, err := s.Create(1, 1.02, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	iv, _ := s.Get(id)
	if iv.Duration() < MinDuration {
		t.Errorf("duration %.3f below minimum %.3f", iv.Duration(), MinDuration)
	}
	if iv.Start != 1 {
		t.Errorf("start moved to %.3f, want 1", iv.Start)
	}
}

func TestUpdatePushesEndForward(t *testing.T) {
	s := NewStore()
	id, _ := s.Create(2, 4, "")

	// dragging the start past the end must push the end forward by the
	// prior duration instead of inverting the cue
	start := 5.0
	s.Update(id, Patch{Start: &start})

	iv, _ := s.Get(id)
	if iv.Start != 5 {
		t.Errorf("start = %.3f, want 5", iv.Start)
	}
	if iv.End != 7 {
		t.Errorf("end = %.3f, want 7 (pushed by prior 2s duration)", iv.End)
	}
}

func TestUpdatePullsStartBackward(t *testing.T) {
	s := NewStore()
	id, _ := s.Create(4, 6, "")

	end := 3.0
	s.Update(id, Patch{End: &end})

	iv, _ := s.Get(id)
	if iv.End != 3 {
		t.Errorf("end = %.3f, want 3", iv.End)
	}
	if iv.Start != 1 {
		t.Errorf("start = %.3f, want 1 (pulled by prior 2s duration)", iv.Start)
	}
}

func TestUpdatePullClampsAtZero(t *testing.T) {
	s := NewStore()
	id, _ := s.Create(4, 10, "")

	end := 0.05
	s.Update(id, Patch{End: &end})

	iv, _ := s.Get(id)
	if iv.Start < 0 {
		t.Errorf("start = %.3f, must stay non-negative", iv.Start)
	}
	if iv.Duration() < MinDuration {
		t.Errorf("duration %.3f below minimum", iv.Duration())
	}
}

func TestUpdateNegativeStartClamped(t *testing.T) {
	s := NewStore()
	id, _ := s.Create(2, 5, "")

	start := -3.0
	s.Update(id, Patch{Start: &start})

	iv, _ := s.Get(id)
	if iv.Start != 0 {
		t.Errorf("start = %.3f, want 0", iv.Start)
	}
	if iv.End != 5 {
		t.Errorf("end = %.3f, want 5 unchanged", iv.End)
	}
}

func TestUpdateText(t *testing.T) {
	s := NewStore()
	id, _ := s.Create(0, 2, "before")

	text := "after"
	if !s.Update(id, Patch{Text: &text}) {
		t.Fatal("Update returned false for existing id")
	}
	iv, _ := s.Get(id)
	if iv.Text != "after" {
		t.Errorf("text = %q, want %q", iv.Text, "after")
	}
	if iv.Start != 0 || iv.End != 2 {
		t.Error("text-only patch must not touch times")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewStore()
	id, _ := s.Create(0, 2, "")

	s.Delete(id)
	if s.Len() != 0 {
		t.Fatalf("Len = %d after delete, want 0", s.Len())
	}
	s.Delete(id) // absent id: no-op
	s.Delete(999)
}

func TestAllSortsByStartWithStableTies(t *testing.T) {
	s := NewStore()
	a, _ := s.Create(5, 8, "second")
	b, _ := s.Create(0, 2, "first")
	c, _ := s.Create(5, 6, "tie, created later")

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ID != b || all[1].ID != a || all[2].ID != c {
		t.Errorf(
			"order = [%d %d %d], want [%d %d %d]",
			all[0].ID, all[1].ID, all[2].ID, b, a, c,
		)
	}
}

func TestStoreInvariantUnderRandomEdits(t *testing.T) {
	s := NewStore()
	ids := make([]ID, 0, 8)
	for i := 0; i < 8; i++ {
		id, err := s.Create(float64(i)*2, float64(i)*2+1, "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, id)
	}

	// hostile patch sequence: inversions, negatives, extreme values
	edits := []Patch{
		{Start: f(100)},
		{End: f(-50)},
		{Start: f(-1), End: f(-2)},
		{End: f(0.001)},
		{Start: f(1e9)},
	}
	for _, id := range ids {
		for _, p := range edits {
			s.Update(id, p)
			iv, _ := s.Get(id)
			if iv.Start < 0 {
				t.Fatalf("id %d: start %.3f < 0 after patch", id, iv.Start)
			}
			if iv.Duration() < MinDuration-1e-9 {
				t.Fatalf(
					"id %d: duration %.4f below minimum after patch",
					id,
					iv.Duration(),
				)
			}
		}
	}
}

func TestWordsPerMinute(t *testing.T) {
	iv := Interval{Start: 0, End: 6, Text: "one two three"}
	if got := iv.WordsPerMinute(); got != 30 {
		t.Errorf("WordsPerMinute = %.1f, want 30", got)
	}

	degenerate := Interval{Start: 2, End: 2, Text: "words"}
	if got := degenerate.WordsPerMinute(); got != 0 {
		t.Errorf("degenerate duration: WordsPerMinute = %.1f, want 0", got)
	}
}

func f(v float64) *float64 { return &v }
