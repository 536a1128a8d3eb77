package timeline

import "testing"

func TestPlanGapBetweenCues(t *testing.T) {
	s := NewStore()
	s.Create(0, 2, "")
	s.Create(5, 8, "")

	tests := []struct {
		name       string
		t          float64
		total      float64
		wantStart  float64
		wantEnd    float64
		wantCreate bool
	}{
		{"middle of a gap", 3, 60, 3, 5, true},
		{"gap narrower than default", 4.5, 60, 4.5, 5, true},
		{"right after the last cue", 8, 60, 8, 11, true},
		{"at the previous cue's edge", 2, 60, 2, 5, true},
		{"open tail clamps to duration", 58.5, 60, 58.5, 60, true},
		{"no room at the very end", 60, 60, 0, 0, false},
		{"zero-width gap", 5, 60, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := PlanGap(s, tt.t, tt.total)
			if ok != tt.wantCreate {
				t.Fatalf("ok = %v, want %v", ok, tt.wantCreate)
			}
			if !ok {
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf(
					"planned [%v,%v], want [%v,%v]",
					start, end, tt.wantStart, tt.wantEnd,
				)
			}
		})
	}
}

func TestPlanGapEmptyStore(t *testing.T) {
	s := NewStore()
	start, end, ok := PlanGap(s, 10, 60)
	if !ok {
		t.Fatal("expected room on an empty timeline")
	}
	if start != 10 || end != 13 {
		t.Errorf("planned [%v,%v], want [10,13]", start, end)
	}
}

func TestCreateAtNeverOverlaps(t *testing.T) {
	s := NewStore()
	s.Create(0, 2, "")
	s.Create(5, 8, "")

	id, ok := CreateAt(s, 3, 60)
	if !ok {
		t.Fatal("expected creation at t=3")
	}
	created, _ := s.Get(id)
	for _, iv := range s.All() {
		if iv.ID == id {
			continue
		}
		if created.Start < iv.End && iv.Start < created.End {
			t.Errorf(
				"created [%v,%v] overlaps existing [%v,%v]",
				created.Start, created.End, iv.Start, iv.End,
			)
		}
	}
}

func TestInsertAfter(t *testing.T) {
	s := NewStore()
	anchor, _ := s.Create(5, 8, "")
	s.Create(9, 12, "")

	id, ok := InsertAfter(s, anchor, 60)
	if !ok {
		t.Fatal("expected a cue after the anchor")
	}
	iv, _ := s.Get(id)
	if iv.Start != 8 || iv.End != 9 {
		t.Errorf("inserted [%v,%v], want [8,9] (bounded by the next cue)", iv.Start, iv.End)
	}

	if _, ok := InsertAfter(s, 9999, 60); ok {
		t.Error("insert after an absent anchor must be a no-op")
	}
}
