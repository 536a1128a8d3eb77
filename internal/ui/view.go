package ui

import (
	"fmt"
	"strings"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

// screen row the track is drawn on, counted from the top
const trackRow = 2

var waveformBlocks = []rune(" ▁▂▃▄▅▆▇█")

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteByte('\n')
	sb.WriteString(m.renderRuler())
	sb.WriteByte('\n')
	sb.WriteString(m.renderTrack())
	sb.WriteByte('\n')
	sb.WriteString(m.renderWaveform())
	sb.WriteByte('\n')
	sb.WriteByte('\n')
	sb.WriteString(m.renderList())
	sb.WriteByte('\n')
	sb.WriteString(m.renderFooter())

	return sb.String()
}

func (m Model) renderHeader() string {
	name := m.sess.MediaPath()
	if name == "" {
		name = m.sess.SubtitlePath()
	}

	clock := fmt.Sprintf(
		"%s / %s",
		timeline.Clock(m.playhead),
		timeline.Clock(m.sess.Source().Duration()),
	)

	state := "paused"
	if m.sess.Source().Playing() {
		state = "playing"
	}
	if m.loadingPeaks {
		state = m.spinner.View() + "loading waveform"
	}

	return TitleStyle.Render("subtitler") +
		TextStyle.Render("  "+name) +
		DimTextStyle.Render("  "+clock+"  "+state)
}

func (m Model) renderRuler() string {
	view := m.sess.Viewport()
	left := timeline.Clock(view.Start())
	right := timeline.Clock(view.Start() + view.Span())

	gap := m.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return RulerStyle.Render(left + strings.Repeat("·", gap) + right)
}

// renderTrack draws one character column per viewport slice: cue bodies,
// brighter edge handles, and the playhead on top.
func (m Model) renderTrack() string {
	view := m.sess.Viewport()
	cues := m.sess.Store().All()
	selected, hasSelection := m.sess.Pointer().Selected()

	playheadCol := -1
	if view.Visible(m.playhead) {
		playheadCol = m.columnOf(view.CoordOf(m.playhead))
	}

	var sb strings.Builder
	for col := 0; col < m.width; col++ {
		if col == playheadCol {
			sb.WriteString(PlayheadStyle.Render("│"))
			continue
		}

		t := view.TimeAt(m.track.fraction(col))
		var hit *timeline.Interval
		for i := len(cues) - 1; i >= 0; i-- {
			if cues[i].Contains(t) {
				hit = &cues[i]
				break
			}
		}
		if hit == nil {
			sb.WriteString(DimTextStyle.Render("─"))
			continue
		}

		startCol := m.columnOf(view.CoordOf(hit.Start))
		endCol := m.columnOf(view.CoordOf(hit.End))
		style := CueStyle
		if hasSelection && hit.ID == selected {
			style = SelectedCueStyle
		}
		switch col {
		case startCol:
			sb.WriteString(HandleStyle.Render("▐"))
		case endCol:
			sb.WriteString(HandleStyle.Render("▌"))
		default:
			sb.WriteString(style.Render(" "))
		}
	}
	return sb.String()
}

func (m Model) renderWaveform() string {
	if len(m.peaks) == 0 {
		return ""
	}

	view := m.sess.Viewport()
	total := view.Total()
	if total <= 0 {
		return ""
	}

	var sb strings.Builder
	for col := 0; col < m.width; col++ {
		t := view.TimeAt(m.track.fraction(col))
		idx := int(t / total * float64(len(m.peaks)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(m.peaks) {
			idx = len(m.peaks) - 1
		}
		level := int(m.peaks[idx] * float64(len(waveformBlocks)-1))
		sb.WriteRune(waveformBlocks[level])
	}
	return WaveformStyle.Render(sb.String())
}

func (m Model) renderList() string {
	cues := timeline.Search(m.sess.Store(), m.query)
	if len(cues) == 0 {
		if m.query != "" {
			return DimTextStyle.Render("  no cues match " + fmt.Sprintf("%q", m.query))
		}
		return DimTextStyle.Render("  no cues yet: double-click the track or press n")
	}

	selected, hasSelection := m.sess.Pointer().Selected()

	// keep the selected cue inside the visible window
	offset := 0
	if hasSelection {
		for i, iv := range cues {
			if iv.ID == selected {
				if i >= listRows {
					offset = i - listRows + 1
				}
				break
			}
		}
	}

	var sb strings.Builder
	for i := offset; i < len(cues) && i < offset+listRows; i++ {
		iv := cues[i]
		span := fmt.Sprintf(
			"%s --> %s",
			timeline.Clock(iv.Start),
			timeline.Clock(iv.End),
		)
		text := strings.ReplaceAll(iv.Text, "\n", " ")
		line := fmt.Sprintf("%s  %s", span, text)
		if wpm := iv.WordsPerMinute(); wpm > 0 {
			line += DimTextStyle.Render(fmt.Sprintf("  %.0f wpm", wpm))
		}

		if hasSelection && iv.ID == selected {
			sb.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			sb.WriteString(ItemStyle.Render(line))
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderFooter() string {
	if m.editing {
		return TextStyle.Render("edit text (enter saves, tab segments, esc cancels)") +
			"\n" + m.input.View()
	}
	if m.searching {
		return TextStyle.Render("filter cues (enter applies, esc cancels)") +
			"\n" + m.input.View()
	}

	var status string
	switch {
	case m.errText != "":
		status = ErrorStyle.Render(m.errText)
	case m.status != "":
		status = SuccessStyle.Render(m.status)
	}

	help := DimTextStyle.Render(
		"space play · n new · o insert · e edit · d delete · j/k select · " +
			"+/- zoom · h/l pan · / filter · s save · x export · q quit",
	)
	if status != "" {
		return status + "\n" + help
	}
	return help
}

func (m Model) columnOf(frac float64) int {
	if m.width <= 1 {
		return 0
	}
	col := int(frac*float64(m.width-1) + 0.5)
	if col < 0 {
		col = 0
	}
	if col >= m.width {
		col = m.width - 1
	}
	return col
}
