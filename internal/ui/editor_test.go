package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/media"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/session"
)

func newEditorSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(session.Config{Source: media.NewClock(60)})
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestEditTabSegmentsIntoNextCue(t *testing.T) {
	sess := newEditorSession(t)
	id, err := sess.Store().Create(5, 8, "")
	if err != nil {
		t.Fatal(err)
	}
	sess.Pointer().Select(id)

	m := NewModel(sess)
	m.editing = true
	m.input.SetValue("first half")

	next, _ := m.handleEditKey(tea.KeyMsg{Type: tea.KeyTab})
	nm := next.(Model)

	if !nm.editing {
		t.Fatal("segmenting must stay in edit mode")
	}
	if nm.input.Value() != "" {
		t.Errorf("input not cleared for the new cue: %q", nm.input.Value())
	}

	iv, _ := sess.Store().Get(id)
	if iv.Text != "first half" {
		t.Errorf("committed text = %q, want %q", iv.Text, "first half")
	}

	newID, ok := sess.Pointer().Selected()
	if !ok || newID == id {
		t.Fatalf("selection = %v (%v), want a freshly created cue", newID, ok)
	}
	niv, _ := sess.Store().Get(newID)
	if niv.Start != 8 {
		t.Errorf("new cue starts at %v, want 8", niv.Start)
	}
}

func TestEditTabWithoutRoomLeavesEditMode(t *testing.T) {
	sess := newEditorSession(t)
	id, err := sess.Store().Create(55, 60, "") // flush against the media end
	if err != nil {
		t.Fatal(err)
	}
	sess.Pointer().Select(id)

	m := NewModel(sess)
	m.editing = true
	m.input.SetValue("last words")

	next, _ := m.handleEditKey(tea.KeyMsg{Type: tea.KeyTab})
	nm := next.(Model)

	if nm.editing {
		t.Error("edit mode must end when no cue fits after the current one")
	}
	iv, _ := sess.Store().Get(id)
	if iv.Text != "last words" {
		t.Errorf("committed text = %q, want %q", iv.Text, "last words")
	}
	if sel, _ := sess.Pointer().Selected(); sel != id {
		t.Errorf("selection = %v, want the original cue %v", sel, id)
	}
}
