package subtitle

import (
	"fmt"
	"strings"
)

// Cue is one subtitle entry: a time span in seconds plus its text.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// represents supported output formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"

	// FormatText is the bare text of every non-empty cue, one per line.
	FormatText Format = "txt"

	// FormatTextTimestamps is plain text with a bracketed timestamp line
	// before each cue's text.
	FormatTextTimestamps Format = "txt-ts"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "txt", "text":
		return FormatText, nil
	case "txt-ts", "text-timestamps":
		return FormatTextTimestamps, nil
	default:
		return "", fmt.Errorf(
			"unsupported format %q: use srt, vtt, txt, or txt-ts",
			s,
		)
	}
}

// Extension returns the file extension for a format.
func (f Format) Extension() string {
	switch f {
	case FormatVTT:
		return ".vtt"
	case FormatText, FormatTextTimestamps:
		return ".txt"
	default:
		return ".srt"
	}
}

// FormatFromExtension guesses the subtitle format of a path.
func FormatFromExtension(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".vtt"):
		return FormatVTT
	case strings.HasSuffix(lower, ".txt"):
		return FormatText
	default:
		return FormatSRT
	}
}
