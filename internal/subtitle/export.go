package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

// ErrNoCues is reported when an export is requested for an empty cue list.
// An empty file is never written silently.
var ErrNoCues = errors.New("no subtitles to export")

// Render serializes the cues in ascending start order. It is a pure function
// of the cue list; nothing about the editor session leaks into the output.
func Render(format Format, cues []Cue) (string, error) {
	if len(cues) == 0 {
		return "", ErrNoCues
	}

	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	switch format {
	case FormatVTT:
		return renderVTT(sorted), nil
	case FormatText:
		return renderText(sorted), nil
	case FormatTextTimestamps:
		return renderTextTimestamps(sorted), nil
	default:
		return renderSRT(sorted), nil
	}
}

// Write renders the cues and writes them to path, creating parent
// directories as needed.
func Write(format Format, cues []Cue, path string) error {
	out, err := Render(format, cues)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

func renderSRT(cues []Cue) string {
	var sb strings.Builder
	for i, cue := range cues {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timeline.Timecode(cue.Start, ','),
			timeline.Timecode(cue.End, ',')))

		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func renderVTT(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, cue := range cues {
		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timeline.Timecode(cue.Start, '.'),
			timeline.Timecode(cue.End, '.')))

		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func renderText(cues []Cue) string {
	var sb strings.Builder
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderTextTimestamps(cues []Cue) string {
	var sb strings.Builder
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("[%s --> %s]\n",
			timeline.Timecode(cue.Start, ','),
			timeline.Timecode(cue.End, ',')))
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// OutputName builds the export filename: <original-basename>-<lang>.<ext>,
// or subtitles-<lang>.<ext> when no original filename is known.
func OutputName(originalPath, languageCode string, format Format) string {
	base := "subtitles"
	if originalPath != "" {
		name := filepath.Base(originalPath)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if languageCode != "" {
		base = base + "-" + languageCode
	}
	return base + format.Extension()
}
