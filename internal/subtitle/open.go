package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

// Document is a parsed subtitle file.
type Document struct {
	Format Format
	Cues   []Cue
}

// Open parses an SRT or VTT file by extension.
func Open(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		cues, err := parseSRT(path)
		if err != nil {
			return nil, err
		}
		return &Document{Format: FormatSRT, Cues: cues}, nil
	case ".vtt":
		cues, err := parseVTT(path)
		if err != nil {
			return nil, err
		}
		return &Document{Format: FormatVTT, Cues: cues}, nil
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}

// Write re-renders the document in its own format. Unlike an export, an
// empty document is still written: deleting the last cue has to reach disk.
func (d *Document) Write(path string) error {
	if len(d.Cues) == 0 {
		content := ""
		if d.Format == FormatVTT {
			content = "WEBVTT\n"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(content), 0644)
	}
	return Write(d.Format, d.Cues, path)
}

// parseTimecode is the lenient timestamp parser shared by both readers.
func parseTimecode(s string) float64 {
	return timeline.ParseTimecode(s)
}
