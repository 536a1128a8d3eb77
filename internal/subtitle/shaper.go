package subtitle

import (
	"strings"
	"unicode/utf8"
)

// Shaper turns raw transcription segments into readable cues: long segments
// are split across several cues, and cue text is wrapped to at most two
// lines near the middle.
type Shaper struct {
	MaxCharsPerLine int
	MaxLinesPerCue  int
	MaxDuration     float64 // seconds
}

func NewShaper() *Shaper {
	return &Shaper{
		MaxCharsPerLine: 42, // standard subtitle line length
		MaxLinesPerCue:  2,
		MaxDuration:     7,
	}
}

// Shape converts segments to display-ready cues. Empty segments are dropped.
func (g *Shaper) Shape(segments []Cue) []Cue {
	var cues []Cue
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		seg.Text = text

		if g.needsSplit(text, seg.End-seg.Start) {
			cues = append(cues, g.split(seg)...)
		} else {
			seg.Text = g.wrap(text)
			cues = append(cues, seg)
		}
	}
	return cues
}

func (g *Shaper) needsSplit(text string, duration float64) bool {
	if utf8.RuneCountInString(text) > g.MaxCharsPerLine*g.MaxLinesPerCue {
		return true
	}
	return duration > g.MaxDuration
}

// split distributes a long segment's words over evenly sized cues.
func (g *Shaper) split(seg Cue) []Cue {
	words := strings.Fields(seg.Text)
	if len(words) == 0 {
		return nil
	}

	maxChars := g.MaxCharsPerLine * g.MaxLinesPerCue
	totalChars := utf8.RuneCountInString(seg.Text)
	splits := (totalChars + maxChars - 1) / maxChars
	if splits < 1 {
		splits = 1
	}
	if byDuration := int((seg.End-seg.Start)/g.MaxDuration) + 1; byDuration > splits {
		splits = byDuration
	}

	wordsPer := (len(words) + splits - 1) / splits
	durationPer := (seg.End - seg.Start) / float64(splits)

	var cues []Cue
	start := seg.Start
	for i := 0; i < splits && len(words) > 0; i++ {
		take := wordsPer
		if take > len(words) {
			take = len(words)
		}
		chunk := words[:take]
		words = words[take:]

		end := start + durationPer
		if len(words) == 0 {
			end = seg.End
		}

		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  g.wrap(strings.Join(chunk, " ")),
		})
		start = end
	}
	return cues
}

// wrap breaks text onto two lines at the word boundary nearest the middle.
func (g *Shaper) wrap(text string) string {
	runeCount := utf8.RuneCountInString(text)
	if runeCount <= g.MaxCharsPerLine {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	middle := runeCount / 2
	bestSplit := 0
	bestDiff := runeCount
	currentLen := 0
	for i, word := range words[:len(words)-1] {
		currentLen += utf8.RuneCountInString(word)
		if i > 0 {
			currentLen++ // space
		}
		diff := currentLen - middle
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i + 1
		}
	}

	if bestSplit > 0 && bestSplit < len(words) {
		return strings.Join(words[:bestSplit], " ") +
			"\n" +
			strings.Join(words[bestSplit:], " ")
	}
	return text
}
