package session

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/logging"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/media"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/subtitle"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

// how far the reported media time may drift from the editor's playhead
// before the editor snaps to the media
const resyncThreshold = 0.5

// Config wires a Session together.
type Config struct {
	MediaPath    string
	SubtitlePath string
	Source       media.Source
	Logger       *logging.Logger
	SaveDelay    time.Duration
}

// Session owns one editing run: the cue store, the viewport, pointer
// interaction, follow-scroll, the playback source and debounced autosave.
type Session struct {
	mu sync.Mutex

	log    *logging.Logger
	source media.Source

	store   *timeline.Store
	view    *timeline.Viewport
	pointer *timeline.Pointer
	scroll  *timeline.AutoScroll

	doc          *subtitle.Document
	subtitlePath string
	mediaPath    string

	saver    *Debouncer
	playhead float64
}

func New(cfg Config) (*Session, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("a playback source is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNop()
	}

	s := &Session{
		log:          log,
		source:       cfg.Source,
		store:        timeline.NewStore(),
		mediaPath:    cfg.MediaPath,
		subtitlePath: cfg.SubtitlePath,
	}
	s.view = timeline.NewViewport(cfg.Source.Duration())
	s.pointer = timeline.NewPointer(s.store, s.view, s)
	s.scroll = timeline.NewAutoScroll(s.view, s.pointer)
	s.saver = NewDebouncer(cfg.SaveDelay, s.autosave)

	if cfg.SubtitlePath != "" {
		doc, err := subtitle.Open(cfg.SubtitlePath)
		if err == nil {
			s.doc = doc
			s.loadCues(doc.Cues)
			log.Infow("loaded subtitles",
				"path", cfg.SubtitlePath,
				"cues", len(doc.Cues),
			)
		} else {
			// a missing file is fine: it is created on first save
			s.doc = &subtitle.Document{
				Format: subtitle.FormatFromExtension(cfg.SubtitlePath),
			}
			log.Debugw("starting with empty document",
				"path", cfg.SubtitlePath,
				"reason", err,
			)
		}
	} else {
		s.doc = &subtitle.Document{Format: subtitle.FormatSRT}
	}
	return s, nil
}

func (s *Session) loadCues(cues []subtitle.Cue) {
	for _, cue := range cues {
		if _, err := s.store.Create(cue.Start, cue.End, cue.Text); err != nil {
			s.log.Warnw("skipping invalid cue",
				"start", cue.Start,
				"end", cue.End,
				"error", err,
			)
		}
	}
}

func (s *Session) Store() *timeline.Store       { return s.store }
func (s *Session) Viewport() *timeline.Viewport { return s.view }
func (s *Session) Pointer() *timeline.Pointer   { return s.pointer }
func (s *Session) Source() media.Source         { return s.source }
func (s *Session) MediaPath() string            { return s.mediaPath }
func (s *Session) SubtitlePath() string         { return s.subtitlePath }
func (s *Session) Format() subtitle.Format      { return s.doc.Format }

// Seek satisfies the pointer's seeker: clicks on empty track move playback.
func (s *Session) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if total := s.source.Duration(); t > total {
		t = total
	}
	s.source.SetCurrentTime(t)
	s.mu.Lock()
	s.playhead = t
	s.mu.Unlock()
}

// Playhead returns the editor's notion of the current time, resynced to
// the media when the two disagree by more than half a second.
func (s *Session) Playhead() float64 {
	mediaTime := s.source.CurrentTime()
	s.mu.Lock()
	defer s.mu.Unlock()
	if math.Abs(mediaTime-s.playhead) > resyncThreshold {
		s.log.Debugw("playhead resync",
			"editor", s.playhead,
			"media", mediaTime,
		)
	}
	s.playhead = mediaTime
	return s.playhead
}

// HandleTimeUpdate advances the playhead and, during playback, keeps it in
// view. A paused playhead never recenters the viewport: panning and zooming
// away from it must stick. Returns the playhead so callers can redraw
// against it.
func (s *Session) HandleTimeUpdate() float64 {
	t := s.Playhead()
	if s.source.Playing() {
		s.scroll.Follow(t)
	}
	return t
}

// SetText edits a cue's text and schedules an autosave.
func (s *Session) SetText(id timeline.ID, text string) bool {
	if !s.store.Update(id, timeline.Patch{Text: &text}) {
		return false
	}
	s.saver.Touch(id)
	return true
}

// SetTimes edits a cue's span and schedules an autosave. Nil fields are
// left untouched; the store corrects inverted or degenerate spans.
func (s *Session) SetTimes(id timeline.ID, start, end *float64) bool {
	if !s.store.Update(id, timeline.Patch{Start: start, End: end}) {
		return false
	}
	s.saver.Touch(id)
	return true
}

// Delete removes a cue, drops its selection and pending save.
func (s *Session) Delete(id timeline.ID) {
	s.store.Delete(id)
	s.pointer.Deselect(id)
	s.saver.Cancel(id)
	s.saver.Touch(0) // the document itself still changed
}

// CreateAtPlayhead fills the gap at the current playback position.
func (s *Session) CreateAtPlayhead() (timeline.ID, bool) {
	id, ok := timeline.CreateAt(s.store, s.Playhead(), s.source.Duration())
	if ok {
		s.pointer.Select(id)
		s.saver.Touch(id)
	}
	return id, ok
}

// InsertAfterSelected creates a cue right after the selected one.
func (s *Session) InsertAfterSelected() (timeline.ID, bool) {
	anchor, ok := s.pointer.Selected()
	if !ok {
		return 0, false
	}
	id, ok := timeline.InsertAfter(s.store, anchor, s.source.Duration())
	if ok {
		s.pointer.Select(id)
		s.saver.Touch(id)
	}
	return id, ok
}

// DeleteSelected removes the selected cue, if any.
func (s *Session) DeleteSelected() bool {
	id, ok := s.pointer.Selected()
	if !ok {
		return false
	}
	s.Delete(id)
	return true
}

// Cues snapshots the store as export-ready cues, sorted by start.
func (s *Session) Cues() []subtitle.Cue {
	intervals := s.store.All()
	cues := make([]subtitle.Cue, len(intervals))
	for i, iv := range intervals {
		cues[i] = subtitle.Cue{Start: iv.Start, End: iv.End, Text: iv.Text}
	}
	return cues
}

func (s *Session) autosave(timeline.ID) {
	if err := s.Save(); err != nil {
		s.log.Warnw("autosave failed", "error", err)
	}
}

// Save writes the current cues back to the subtitle file.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subtitlePath == "" {
		return nil
	}
	s.doc.Cues = s.Cues()
	if err := s.doc.Write(s.subtitlePath); err != nil {
		return fmt.Errorf("save subtitles: %w", err)
	}
	s.log.Debugw("saved subtitles", "path", s.subtitlePath, "cues", len(s.doc.Cues))
	return nil
}

// Export renders the cues in the given format next to the media file (or
// into dir when given) and returns the written path.
func (s *Session) Export(format subtitle.Format, dir, lang string) (string, error) {
	name := subtitle.OutputName(s.mediaPath, lang, format)
	if dir == "" {
		dir = filepath.Dir(s.mediaPath)
		if s.mediaPath == "" {
			dir = "."
		}
	}
	path := filepath.Join(dir, name)
	if err := subtitle.Write(format, s.Cues(), path); err != nil {
		return "", err
	}
	s.log.Infow("exported subtitles", "path", path, "format", format)
	return path, nil
}

// Close flushes pending saves and releases the playback source.
func (s *Session) Close() error {
	s.saver.Flush()
	return s.source.Close()
}
