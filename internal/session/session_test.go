package session

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/subtitle"
)

// fakeSource is a scriptable playback transport.
type fakeSource struct {
	t        float64
	duration float64
	playing  bool
	seeks    []float64
}

func (f *fakeSource) CurrentTime() float64 { return f.t }
func (f *fakeSource) SetCurrentTime(t float64) {
	f.t = t
	f.seeks = append(f.seeks, t)
}
func (f *fakeSource) Duration() float64 { return f.duration }
func (f *fakeSource) Playing() bool     { return f.playing }
func (f *fakeSource) Play()             { f.playing = true }
func (f *fakeSource) Pause()            { f.playing = false }
func (f *fakeSource) Subscribe(func(t float64)) (cancel func()) {
	return func() {}
}
func (f *fakeSource) Close() error { return nil }

func writeFixtureSRT(t *testing.T, dir string) string {
	t.Helper()
	content := `1
00:00:01,000 --> 00:00:03,000
first

2
00:00:05,000 --> 00:00:07,500
second
`
	path := filepath.Join(dir, "talk.srt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func newTestSession(t *testing.T, subtitlePath string) (*Session, *fakeSource) {
	t.Helper()
	src := &fakeSource{duration: 60}
	s, err := New(Config{
		MediaPath:    "/media/talk.mp4",
		SubtitlePath: subtitlePath,
		Source:       src,
		SaveDelay:    10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, src
}

func TestSessionLoadsExistingSubtitles(t *testing.T) {
	path := writeFixtureSRT(t, t.TempDir())
	s, _ := newTestSession(t, path)

	cues := s.Cues()
	if len(cues) != 2 {
		t.Fatalf("loaded %d cues, want 2", len(cues))
	}
	if cues[0].Text != "first" || cues[1].Text != "second" {
		t.Errorf("cue texts = %q, %q", cues[0].Text, cues[1].Text)
	}
	if s.Format() != subtitle.FormatSRT {
		t.Errorf("format = %s, want srt", s.Format())
	}
}

func TestSessionStartsEmptyWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.vtt")
	s, _ := newTestSession(t, path)

	if len(s.Cues()) != 0 {
		t.Error("expected no cues for a missing file")
	}
	if s.Format() != subtitle.FormatVTT {
		t.Errorf("format = %s, want vtt from extension", s.Format())
	}
}

func TestSessionSeekClamps(t *testing.T) {
	s, src := newTestSession(t, "")

	s.Seek(-3)
	if src.t != 0 {
		t.Errorf("seek below zero gave %v", src.t)
	}
	s.Seek(120)
	if src.t != 60 {
		t.Errorf("seek past end gave %v", src.t)
	}
	s.Seek(12.5)
	if got := s.Playhead(); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("playhead after seek = %v, want 12.5", got)
	}
}

func TestPlayheadFollowsMedia(t *testing.T) {
	s, src := newTestSession(t, "")

	src.t = 10
	if got := s.Playhead(); got != 10 {
		t.Errorf("playhead = %v, want 10", got)
	}
	// large jumps snap, small ones track: either way the media wins
	src.t = 42
	if got := s.Playhead(); got != 42 {
		t.Errorf("playhead = %v, want 42", got)
	}
}

func TestHandleTimeUpdateRecentersViewport(t *testing.T) {
	s, src := newTestSession(t, "")
	s.Viewport().ZoomIn() // span 30
	s.Viewport().ZoomIn() // span 15

	src.Play()
	src.t = 50
	s.HandleTimeUpdate()
	view := s.Viewport()
	if !view.Visible(50) {
		t.Errorf(
			"playhead 50 not visible in [%v,%v]",
			view.Start(), view.Start()+view.Span(),
		)
	}
}

func TestHandleTimeUpdateWhilePausedKeepsViewport(t *testing.T) {
	s, _ := newTestSession(t, "")
	view := s.Viewport()
	view.ZoomIn() // span 30
	view.ZoomIn() // span 15
	view.PanBy(2) // start 30, paused playhead at 0 is far off screen

	s.HandleTimeUpdate()
	if view.Start() != 30 {
		t.Errorf(
			"viewport recentered while paused: start = %v, want 30",
			view.Start(),
		)
	}
}

func TestSetTextAutosaves(t *testing.T) {
	dir := t.TempDir()
	path := writeFixtureSRT(t, dir)
	s, _ := newTestSession(t, path)

	first := s.Store().All()[0]
	if !s.SetText(first.ID, "revised") {
		t.Fatal("SetText failed for an existing cue")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		raw, err := os.ReadFile(path)
		if err == nil && strings.Contains(string(raw), "revised") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("autosave never wrote the edited text")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSetTimesRejectsUnknownID(t *testing.T) {
	s, _ := newTestSession(t, "")
	start := 1.0
	if s.SetTimes(999, &start, nil) {
		t.Error("SetTimes must fail for an unknown id")
	}
}

func TestCreateAtPlayheadSelectsNewCue(t *testing.T) {
	s, src := newTestSession(t, "")

	src.t = 10
	id, ok := s.CreateAtPlayhead()
	if !ok {
		t.Fatal("expected a cue to be created in open space")
	}
	sel, selOk := s.Pointer().Selected()
	if !selOk || sel != id {
		t.Errorf("selection = %v (%v), want %v", sel, selOk, id)
	}

	iv, _ := s.Store().Get(id)
	if iv.Start != 10 || iv.End != 13 {
		t.Errorf("new cue span [%v,%v], want [10,13]", iv.Start, iv.End)
	}
}

func TestInsertAfterSelected(t *testing.T) {
	s, _ := newTestSession(t, "")

	id, err := s.Store().Create(5, 8, "anchor")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.InsertAfterSelected(); ok {
		t.Error("insert must fail with nothing selected")
	}

	s.Pointer().Select(id)
	newID, ok := s.InsertAfterSelected()
	if !ok {
		t.Fatal("expected an insert after the anchor")
	}
	iv, _ := s.Store().Get(newID)
	if iv.Start != 8 {
		t.Errorf("inserted cue starts at %v, want 8", iv.Start)
	}
}

func TestDeleteSelectedClearsSelection(t *testing.T) {
	s, _ := newTestSession(t, "")

	id, _ := s.Store().Create(1, 2, "doomed")
	s.Pointer().Select(id)
	if !s.DeleteSelected() {
		t.Fatal("DeleteSelected failed with a selection")
	}
	if _, ok := s.Store().Get(id); ok {
		t.Error("cue still present after delete")
	}
	if _, ok := s.Pointer().Selected(); ok {
		t.Error("selection must clear when the cue is deleted")
	}
	if s.DeleteSelected() {
		t.Error("second delete must report nothing selected")
	}
}

func TestExportWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	s, _ := newTestSession(t, "")
	if _, err := s.Store().Create(0, 2, "hello"); err != nil {
		t.Fatal(err)
	}

	path, err := s.Export(subtitle.FormatVTT, dir, "en")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filepath.Base(path) != "talk-en.vtt" {
		t.Errorf("export path = %q, want talk-en.vtt", filepath.Base(path))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.HasPrefix(string(raw), "WEBVTT") {
		t.Error("exported file missing WEBVTT header")
	}
}

func TestExportEmptyStoreFails(t *testing.T) {
	s, _ := newTestSession(t, "")
	if _, err := s.Export(subtitle.FormatSRT, t.TempDir(), "en"); err == nil {
		t.Error("export of an empty store must fail")
	}
}

func TestCloseFlushesPendingSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.srt")
	src := &fakeSource{duration: 60}
	s, err := New(Config{
		SubtitlePath: path,
		Source:       src,
		SaveDelay:    time.Hour, // never fires on its own
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	id, _ := s.Store().Create(0, 2, "kept")
	s.SetText(id, "kept edit")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("subtitle file not written on close: %v", err)
	}
	if !strings.Contains(string(raw), "kept edit") {
		t.Error("pending edit lost on close")
	}
}
