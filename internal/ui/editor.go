package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/media"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/session"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/timeline"
)

const (
	tickInterval  = 250 * time.Millisecond
	listRows      = 8
	waveformWidth = 512
)

type tickMsg time.Time

type peaksMsg struct {
	peaks []float64
	err   error
}

// Model is the bubbletea model for the timing editor.
type Model struct {
	sess  *session.Session
	mouse *MouseRouter

	width  int
	height int
	track  TrackArea

	playhead float64
	peaks    []float64

	input     textinput.Model
	editing   bool
	searching bool
	query     string

	spinner      spinner.Model
	loadingPeaks bool

	status   string
	errText  string
	quitting bool
}

func NewModel(sess *session.Session) Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Prompt = "> "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = TitleStyle

	m := Model{
		sess:         sess,
		mouse:        NewMouseRouter(sess.Pointer(), sess.Viewport()),
		input:        input,
		spinner:      s,
		loadingPeaks: sess.MediaPath() != "",
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.loadingPeaks {
		cmds = append(cmds, m.spinner.Tick, loadPeaksCmd(m.sess.MediaPath()))
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadPeaksCmd(path string) tea.Cmd {
	return func() tea.Msg {
		peaks, err := media.Peaks(path, waveformWidth)
		return peaksMsg{peaks: peaks, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.track = TrackArea{X: 0, Y: trackRow, Width: msg.Width, Height: 1}
		m.mouse.SetArea(m.track)
		m.input.Width = msg.Width - 4
		return m, nil

	case tickMsg:
		m.playhead = m.sess.HandleTimeUpdate()
		return m, tickCmd()

	case tea.MouseMsg:
		if m.editing || m.searching {
			return m, nil
		}
		m.mouse.Handle(msg)
		m.playhead = m.sess.Playhead()
		return m, nil

	case peaksMsg:
		m.loadingPeaks = false
		if msg.err != nil {
			// no waveform is not fatal, the track still works
			m.peaks = nil
			return m, nil
		}
		m.peaks = msg.peaks
		return m, nil

	case spinner.TickMsg:
		if m.loadingPeaks {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		_ = m.sess.Close()
		return m, tea.Quit

	case " ":
		src := m.sess.Source()
		if src.Playing() {
			src.Pause()
		} else {
			src.Play()
		}
		return m, nil

	case "+", "=":
		m.sess.Viewport().ZoomIn()
		return m, nil

	case "-", "_":
		m.sess.Viewport().ZoomOut()
		return m, nil

	case "h", "left":
		m.sess.Viewport().PanBy(-0.25)
		return m, nil

	case "l", "right":
		m.sess.Viewport().PanBy(0.25)
		return m, nil

	case "j", "down":
		m.selectNeighbor(1)
		return m, nil

	case "k", "up":
		m.selectNeighbor(-1)
		return m, nil

	case "n":
		if _, ok := m.sess.CreateAtPlayhead(); !ok {
			m.status = "no room for a cue at the playhead"
		} else {
			m.status = "cue created"
		}
		return m, nil

	case "o":
		if _, ok := m.sess.InsertAfterSelected(); !ok {
			m.status = "select a cue with room after it first"
		} else {
			m.status = "cue inserted"
		}
		return m, nil

	case "d":
		if m.sess.DeleteSelected() {
			m.status = "cue deleted"
		}
		return m, nil

	case "e", "enter":
		id, ok := m.sess.Pointer().Selected()
		if !ok {
			m.status = "select a cue to edit"
			return m, nil
		}
		iv, found := m.sess.Store().Get(id)
		if !found {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(iv.Text)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "/":
		m.searching = true
		m.input.SetValue(m.query)
		m.input.Focus()
		return m, textinput.Blink

	case "s":
		if err := m.sess.Save(); err != nil {
			m.errText = err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil

	case "x":
		path, err := m.sess.Export(m.sess.Format(), "", "")
		if err != nil {
			m.errText = err.Error()
		} else {
			m.status = "exported to " + path
		}
		return m, nil

	case "g":
		if id, ok := m.sess.Pointer().Selected(); ok {
			if iv, found := m.sess.Store().Get(id); found {
				m.sess.Seek(iv.Start)
				m.playhead = iv.Start
			}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if id, ok := m.sess.Pointer().Selected(); ok {
			m.sess.SetText(id, m.input.Value())
		}
		m.editing = false
		m.input.Blur()
		return m, nil

	case "tab":
		// segment: commit this cue and keep typing into the next one
		if id, ok := m.sess.Pointer().Selected(); ok {
			m.sess.SetText(id, m.input.Value())
		}
		if _, ok := m.sess.InsertAfterSelected(); ok {
			m.input.SetValue("")
			return m, textinput.Blink
		}
		m.status = "no room for a cue after this one"
		m.editing = false
		m.input.Blur()
		return m, nil

	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query = m.input.Value()
		m.searching = false
		m.input.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selectNeighbor moves the selection through the cues in start order.
func (m *Model) selectNeighbor(step int) {
	cues := timeline.Search(m.sess.Store(), m.query)
	if len(cues) == 0 {
		return
	}

	current, ok := m.sess.Pointer().Selected()
	if !ok {
		m.sess.Pointer().Select(cues[0].ID)
		return
	}

	idx := -1
	for i, iv := range cues {
		if iv.ID == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.sess.Pointer().Select(cues[0].ID)
		return
	}

	idx += step
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cues) {
		idx = len(cues) - 1
	}
	m.sess.Pointer().Select(cues[idx].ID)
}
