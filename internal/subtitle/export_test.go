package subtitle

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderSRTOrdersAndNumbers(t *testing.T) {
	// deliberately out of order: export must sort by start time
	cues := []Cue{
		{Start: 1.0, End: 2.5, Text: "Hi"},
		{Start: 0.0, End: 1.0, Text: "Hello"},
	}

	out, err := Render(FormatSRT, cues)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "1\n" +
		"00:00:00,000 --> 00:00:01,000\n" +
		"Hello\n" +
		"\n" +
		"2\n" +
		"00:00:01,000 --> 00:00:02,500\n" +
		"Hi\n" +
		"\n"
	if out != want {
		t.Errorf("SRT output:\n%q\nwant:\n%q", out, want)
	}
}

func TestRenderVTT(t *testing.T) {
	cues := []Cue{{Start: 0, End: 1.5, Text: "Hello"}}

	out, err := Render(FormatVTT, cues)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.HasPrefix(out, "WEBVTT\n\n") {
		t.Error("VTT output must start with the WEBVTT header")
	}
	if !strings.Contains(out, "00:00:00.000 --> 00:00:01.500") {
		t.Errorf("VTT timestamps must use a period separator, got:\n%s", out)
	}
	if strings.Contains(out, ",") {
		t.Error("VTT output must not contain SRT comma separators")
	}
}

func TestRenderText(t *testing.T) {
	cues := []Cue{
		{Start: 3, End: 4, Text: "  second  "},
		{Start: 0, End: 1, Text: "first"},
		{Start: 1, End: 2, Text: "   "}, // blank: omitted
	}

	out, err := Render(FormatText, cues)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out != "first\nsecond\n" {
		t.Errorf("text output = %q", out)
	}
}

func TestRenderTextTimestamps(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 1, Text: "first"},
		{Start: 1, End: 2, Text: ""}, // empty: omitted
	}

	out, err := Render(FormatTextTimestamps, cues)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "[00:00:00,000 --> 00:00:01,000]\nfirst\n\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderRejectsEmptyCollection(t *testing.T) {
	for _, format := range []Format{FormatSRT, FormatVTT, FormatText, FormatTextTimestamps} {
		if _, err := Render(format, nil); !errors.Is(err, ErrNoCues) {
			t.Errorf("%s: err = %v, want ErrNoCues", format, err)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		original string
		lang     string
		format   Format
		want     string
	}{
		{"/media/talk.mp4", "en", FormatSRT, "talk-en.srt"},
		{"clip.mkv", "fr", FormatVTT, "clip-fr.vtt"},
		{"", "de", FormatSRT, "subtitles-de.srt"},
		{"", "es", FormatText, "subtitles-es.txt"},
		{"talk.mp4", "", FormatSRT, "talk.srt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := OutputName(tt.original, tt.lang, tt.format)
			if got != tt.want {
				t.Errorf(
					"OutputName(%q, %q, %s) = %q, want %q",
					tt.original, tt.lang, tt.format, got, tt.want,
				)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("ass"); err == nil {
		t.Error("expected error for unsupported format")
	}
	got, err := ParseFormat(" VTT ")
	if err != nil || got != FormatVTT {
		t.Errorf("ParseFormat(VTT) = %v, %v", got, err)
	}
}
