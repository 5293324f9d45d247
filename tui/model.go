package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/witalewski/cortina/config"
	"github.com/witalewski/cortina/midi"
	"github.com/witalewski/cortina/theme"
	"github.com/witalewski/cortina/trainer"
	"github.com/witalewski/cortina/widgets"
)

// Computer keys laid out like a tracker, home row for whites and the
// row above for blacks. Offsets are semitones from the piano's middle
// octave C.
var noteKeys = map[string]int{
	"a": 0, "w": 1, "s": 2, "e": 3, "d": 4,
	"f": 5, "t": 6, "g": 7, "y": 8, "h": 9,
	"u": 10, "j": 11, "k": 12,
}

const (
	pianoOctaves = 3
	lowestBase   = 24 // C1
	highestBase  = 84 // C6
)

// layoutBounds holds cached layout info
type layoutBounds struct {
	pianoTop    int
	pianoHeight int
}

type Model struct {
	Trainer   *trainer.Manager
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme

	piano      *widgets.Piano
	bounds     *layoutBounds
	quitting   bool
	mouseNote  int // note held by the mouse button, -1 when none
	keyboardID string
	synthID    string
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(tr *trainer.Manager, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Trainer:   tr,
		DeviceMgr: deviceMgr,
		Theme:     th,
		piano:     widgets.NewPiano(48, pianoOctaves), // C3 through B5
		bounds:    &layoutBounds{},
		mouseNote: -1,
	}
}

func ListenForUpdates(tr *trainer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-tr.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Trainer),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		snap := m.Trainer.Snapshot()

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Trainer.Close()
			return m, tea.Quit

		case "enter":
			if snap.Phase == trainer.PhaseIdle || snap.Phase == trainer.PhaseSummary {
				m.Trainer.StartLesson()
			}

		case "n":
			m.Trainer.StartLesson()

		case "r":
			m.Trainer.ReplayChallenge()

		case "esc":
			m.Trainer.ResetLesson()

		case "m":
			if snap.Lesson == config.LessonIntervals {
				m.Trainer.SetLessonMode(config.LessonChords)
			} else {
				m.Trainer.SetLessonMode(config.LessonIntervals)
			}

		case "z":
			if int(m.piano.BaseNote)-12 >= lowestBase {
				m.piano.BaseNote -= 12
			}

		case "x":
			if int(m.piano.BaseNote)+12 <= highestBase {
				m.piano.BaseNote += 12
			}

		default:
			// Terminal keys have no release, so they tap
			if offset, ok := noteKeys[msg.String()]; ok {
				note := int(m.piano.BaseNote) + 12 + offset
				if note <= 127 {
					m.Trainer.Tap(uint8(note))
				}
			}
		}

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft &&
				msg.Y >= m.bounds.pianoTop && msg.Y < m.bounds.pianoTop+m.bounds.pianoHeight {
				relY := msg.Y - m.bounds.pianoTop
				if note, ok := m.piano.HitTest(msg.X, relY); ok {
					if m.mouseNote >= 0 {
						m.Trainer.Release(uint8(m.mouseNote))
					}
					m.mouseNote = int(note)
					m.Trainer.Press(note)
				}
			}
		case tea.MouseActionRelease:
			if m.mouseNote >= 0 {
				m.Trainer.Release(uint8(m.mouseNote))
				m.mouseNote = -1
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Trainer)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.KeyboardConnected:
			m.keyboardID = event.ID
			go forwardNotes(m.Trainer, event.Keyboard)

		case midi.KeyboardDisconnected:
			if m.keyboardID == event.ID {
				m.keyboardID = ""
			}

		case midi.SynthConnected:
			m.synthID = event.ID
			m.Trainer.SetSynth(event.Synth)

		case midi.SynthDisconnected:
			if m.synthID == event.ID {
				m.synthID = ""
				m.Trainer.SetSynth(nil)
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// forwardNotes pumps keyboard events into the trainer until the device
// closes its channel
func forwardNotes(tr *trainer.Manager, kb *midi.Keyboard) {
	for ev := range kb.Events() {
		if ev.On {
			tr.NoteOn(ev.Note, ev.Velocity)
		} else {
			tr.NoteOff(ev.Note)
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Trainer.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	deviceStatus := ""
	if m.keyboardID != "" {
		deviceStatus += "  kb"
	}
	if m.synthID != "" {
		deviceStatus += "  synth"
	}

	header := headerStyle.Render(fmt.Sprintf("cortina  %s%s", snap.Lesson, deviceStatus))
	body := m.bodyView(snap)

	// Piano markings
	held := snap.HeldNotes
	var hints []uint8
	if snap.ShowHints && snap.HasChallenge {
		hints = snap.Challenge.SequenceMidi()
	}
	pianoView := m.piano.View(held, hints, m.Theme)

	help := dimStyle.Render("enter:start  n:new  r:replay  m:mode  z/x:octave  esc:stop  q:quit")

	// Everything above the piano, for mouse hit testing
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")

	m.bounds.pianoTop = strings.Count(out.String(), "\n")
	m.bounds.pianoHeight = m.piano.Height()

	out.WriteString(pianoView)
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}

func (m Model) bodyView(snap trainer.Snapshot) string {
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	successStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	errorStyle := lipgloss.NewStyle().Foreground(m.Theme.Error())

	switch snap.Phase {
	case trainer.PhasePlaying:
		return fgStyle.Render(fmt.Sprintf("challenge %d of %d", snap.Position, snap.Total)) + "\n" +
			dimStyle.Render(fmt.Sprintf("%c  listen...", m.Theme.Symbols.Playhead))

	case trainer.PhaseAnswering:
		var out strings.Builder
		out.WriteString(fgStyle.Render(fmt.Sprintf("challenge %d of %d   attempt %d of %d",
			snap.Position, snap.Total, snap.AttemptCount+1, snap.MaxAttempts)))
		out.WriteString("\n")
		out.WriteString(fgStyle.Render("play it back: " + m.answerDots(snap)))
		if snap.RevealName {
			out.WriteString("\n")
			out.WriteString(dimStyle.Render("it was: " + snap.Challenge.DisplayName()))
		}
		if snap.ShowHints {
			out.WriteString("\n")
			out.WriteString(dimStyle.Render("notes: " + strings.Join(snap.Challenge.SequenceNotes(), " ")))
		}
		return out.String()

	case trainer.PhaseFeedback:
		head := fgStyle.Render(fmt.Sprintf("challenge %d of %d", snap.Position, snap.Total))
		if !snap.HasVerdict {
			return head
		}
		sym := m.Theme.Symbols
		switch {
		case snap.Verdict.Correct:
			return head + "\n" + successStyle.Render(fmt.Sprintf("%c  correct!", sym.Correct))
		case snap.Verdict.LastAttempt:
			return head + "\n" +
				errorStyle.Render(fmt.Sprintf("%c  out of attempts", sym.Wrong)) + "\n" +
				dimStyle.Render("it was: "+snap.Challenge.DisplayName())
		default:
			return head + "\n" + errorStyle.Render(fmt.Sprintf("%c  not quite, listen again", sym.Wrong))
		}

	case trainer.PhaseSummary:
		var out strings.Builder
		out.WriteString(fgStyle.Render(fmt.Sprintf("lesson complete   %d of %d correct",
			snap.Score.CorrectCount, snap.Score.TotalChallenges)))
		sym := m.Theme.Symbols
		for _, r := range snap.Score.Results {
			mark := errorStyle.Render(string(sym.Wrong))
			if r.Succeeded {
				mark = successStyle.Render(string(sym.Correct))
			}
			plural := "s"
			if r.AttemptCount == 1 {
				plural = ""
			}
			out.WriteString(fmt.Sprintf("\n  %s %-28s %d attempt%s",
				mark, r.Challenge.DisplayName(), r.AttemptCount, plural))
		}
		out.WriteString("\n")
		out.WriteString(dimStyle.Render("enter for another lesson"))
		return out.String()

	default: // idle
		var out strings.Builder
		out.WriteString(fgStyle.Render("train your ears: listen, then play it back"))
		out.WriteString("\n\n")
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(idleKeyHelp())))
		if m.keyboardID == "" {
			out.WriteString("\n\n")
			out.WriteString(dimStyle.Render("no MIDI keyboard found, click the piano or use a-k"))
		}
		return out.String()
	}
}

func idleKeyHelp() []widgets.KeySection {
	return []widgets.KeySection{
		{Title: "lesson", Keys: []widgets.KeyBinding{
			{Key: "enter", Desc: "start a lesson"},
			{Key: "m", Desc: "switch intervals / chords"},
		}},
		{Title: "playing notes", Keys: []widgets.KeyBinding{
			{Key: "a-k", Desc: "piano keys, w e t y u for blacks"},
			{Key: "z / x", Desc: "octave down / up"},
			{Key: "mouse", Desc: "click and hold the piano"},
		}},
	}
}

// answerDots shows collected answer notes as filled dots
func (m Model) answerDots(snap trainer.Snapshot) string {
	sym := m.Theme.Symbols
	var out strings.Builder
	for i := 0; i < snap.NoteCount; i++ {
		if i > 0 {
			out.WriteString(" ")
		}
		if i < snap.Collected {
			out.WriteRune(sym.NoteDone)
		} else {
			out.WriteRune(sym.NotePending)
		}
	}
	return out.String()
}
