package trainer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/witalewski/cortina/challenge"
	"github.com/witalewski/cortina/config"
	"github.com/witalewski/cortina/debug"
	"github.com/witalewski/cortina/lesson"
	"github.com/witalewski/cortina/playback"
	"github.com/witalewski/cortina/theory"
)

// Mode gates the direction notes may flow: to the user or from the user
type Mode int

const (
	ModeOutput Mode = iota // playback or feedback sounding, input dropped
	ModeInput              // waiting for the user's answer
)

func (m Mode) String() string {
	if m == ModeInput {
		return "input"
	}
	return "output"
}

// Phase is the lesson flow step the TUI renders
type Phase int

const (
	PhaseIdle      Phase = iota // no lesson running
	PhasePlaying                // challenge sounding
	PhaseAnswering              // collecting the user's notes
	PhaseFeedback               // verdict showing
	PhaseSummary                // lesson complete
)

// Manager is the single arbiter between the lesson, the playback and
// every input adapter. All note events, whatever their source, come
// through NoteOn/NoteOff; everything else watches via Snapshot and
// UpdateChan. One mutex guards the session and all mode state.
type Manager struct {
	mu        sync.Mutex
	session   *lesson.Session
	sequencer *playback.Sequencer
	synth     playback.NoteOutput
	rng       *rand.Rand

	mode    Mode
	phase   Phase
	grading bool // verdict pending, gate stays shut even in input mode

	answer      []uint8
	held        map[uint8]bool // notes echoed to the synth and not yet released
	lastVerdict *lesson.Verdict
	pendingPlay bool // a play was requested while the sequencer was draining
	generation  int  // bumped on start/reset, invalidates stale feedback timers

	lessonMode    config.LessonMode
	rootMidi      uint8
	chordRoots    []uint8
	velocity      uint8
	feedbackDelay time.Duration
	tapHold       time.Duration

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// NewManager wires the coordinator to a sequencer and a synth output.
// A nil synth means user notes echo nowhere. The rng drives challenge
// selection; pass a seeded one for reproducible lessons.
func NewManager(cfg *config.Config, seq *playback.Sequencer, synth playback.NoteOutput, rng *rand.Rand) *Manager {
	if synth == nil {
		synth = playback.NopOutput{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	roots := make([]uint8, len(cfg.ChordRoots))
	for i, name := range cfg.ChordRoots {
		roots[i] = theory.NoteToMidi(name)
	}

	m := &Manager{
		session:       lesson.NewSession(),
		sequencer:     seq,
		synth:         synth,
		rng:           rng,
		held:          make(map[uint8]bool),
		lessonMode:    cfg.LessonMode,
		rootMidi:      theory.NoteToMidi(cfg.RootNote),
		chordRoots:    roots,
		velocity:      cfg.Velocity,
		feedbackDelay: time.Duration(cfg.FeedbackDelayMs) * time.Millisecond,
		tapHold:       time.Duration(cfg.TapHoldMs) * time.Millisecond,
		UpdateChan:    make(chan struct{}, 1),
	}
	seq.SetOnFinish(m.onPlaybackFinished)
	return m
}

// SetSynth swaps the note output for both the echo path and the
// playback sequencer, e.g. when a MIDI port opens later
func (m *Manager) SetSynth(out playback.NoteOutput) {
	if out == nil {
		out = playback.NopOutput{}
	}
	m.mu.Lock()
	m.synth = out
	seq := m.sequencer
	m.mu.Unlock()
	seq.SetOutput(out)
}

// SetLessonMode picks the challenge family for the next lesson. The
// running lesson keeps its pool.
func (m *Manager) SetLessonMode(mode config.LessonMode) {
	m.mu.Lock()
	m.lessonMode = mode
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) buildPool() []challenge.Challenge {
	if m.lessonMode == config.LessonChords {
		return challenge.ChordPool(m.chordRoots, theory.Chords())
	}
	return challenge.IntervalPool(m.rootMidi)
}

// StartLesson begins a fresh lesson and plays its first challenge. Any
// lesson already running is discarded.
func (m *Manager) StartLesson() {
	m.mu.Lock()
	m.generation++
	m.session.Start(m.buildPool(), m.rng)
	m.answer = nil
	m.grading = false
	m.lastVerdict = nil
	m.pendingPlay = false
	if !m.session.InProgress() {
		m.mode = ModeOutput
		m.phase = PhaseIdle
		m.mu.Unlock()
		m.notify()
		return
	}
	id := m.session.ID
	m.mu.Unlock()

	debug.Log("lesson", "started session %s", id)
	m.sequencer.Stop()
	m.playCurrent()
}

// ResetLesson discards the lesson and returns to idle
func (m *Manager) ResetLesson() {
	m.mu.Lock()
	m.generation++
	m.session.Reset()
	m.answer = nil
	m.grading = false
	m.lastVerdict = nil
	m.pendingPlay = false
	m.mode = ModeOutput
	m.phase = PhaseIdle
	m.mu.Unlock()

	m.sequencer.Stop()
	debug.Log("lesson", "reset")
	m.notify()
}

// ReplayChallenge plays the current challenge again on request. Only
// honored while waiting for an answer; the partial answer is discarded.
func (m *Manager) ReplayChallenge() {
	m.mu.Lock()
	if m.mode != ModeInput || m.grading {
		m.mu.Unlock()
		return
	}
	if _, ok := m.session.CurrentChallenge(); !ok {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	debug.Log("lesson", "manual replay")
	m.playCurrent()
}

// playCurrent flips to output mode and starts the current challenge's
// playback. If the sequencer is still draining a cancelled run, the
// play is queued for its finish callback.
func (m *Manager) playCurrent() {
	m.mu.Lock()
	ch, ok := m.session.CurrentChallenge()
	if !ok {
		m.mu.Unlock()
		return
	}
	m.mode = ModeOutput
	m.phase = PhasePlaying
	m.answer = nil
	m.mu.Unlock()
	m.notify()

	if !m.sequencer.Play(ch) {
		m.mu.Lock()
		m.pendingPlay = true
		m.mu.Unlock()
	}
}

// onPlaybackFinished runs on the sequencer's goroutine after every
// started playback. A clean finish opens the input gate; a cancelled
// one changes nothing, because whatever cancelled it already set the
// state it wanted.
func (m *Manager) onPlaybackFinished(cancelled bool) {
	m.mu.Lock()
	if m.pendingPlay {
		m.pendingPlay = false
		m.mu.Unlock()
		m.playCurrent()
		return
	}
	if cancelled || m.phase != PhasePlaying {
		m.mu.Unlock()
		return
	}
	m.mode = ModeInput
	m.phase = PhaseAnswering
	m.answer = nil
	m.mu.Unlock()

	debug.Log("mode", "input open")
	m.notify()
}

// NoteOn is the shared gate every input adapter calls. Outside input
// mode, or while a verdict is pending, the event is dropped. Accepted
// notes echo to the synth and join the answer; a complete answer is
// graded at once.
func (m *Manager) NoteOn(note, velocity uint8) {
	if velocity == 0 {
		// MIDI convention: note on at velocity zero is a release
		m.NoteOff(note)
		return
	}

	m.mu.Lock()
	if m.mode != ModeInput || m.grading {
		mode := m.mode
		m.mu.Unlock()
		debug.Log("gate", "dropped note %d (mode=%s)", note, mode)
		return
	}
	ch, ok := m.session.CurrentChallenge()
	if !ok {
		m.mu.Unlock()
		return
	}

	m.held[note] = true
	m.answer = append(m.answer, note)
	synth := m.synth
	collected := len(m.answer)
	complete := collected >= ch.NoteCount()
	var played []uint8
	if complete {
		played = make([]uint8, len(m.answer))
		copy(played, m.answer)
		m.grading = true
	}
	m.mu.Unlock()

	synth.NoteOn(note, velocity)
	debug.Log("gate", "note %d accepted (%d/%d)", note, collected, ch.NoteCount())
	m.notify()

	if complete {
		m.grade(played)
	}
}

// NoteOff releases a note. Releases of notes this manager echoed always
// go through, whatever the mode: a mode flip mid-press must never leave
// a note sounding. Releases of anything else are dropped.
func (m *Manager) NoteOff(note uint8) {
	m.mu.Lock()
	echoed := m.held[note]
	delete(m.held, note)
	synth := m.synth
	m.mu.Unlock()

	if !echoed {
		return
	}
	synth.NoteOff(note)
	m.notify()
}

// Press is NoteOn at the configured velocity, for adapters that have
// none of their own (mouse, terminal keys)
func (m *Manager) Press(note uint8) {
	m.NoteOn(note, m.velocity)
}

// Release is the matching NoteOff
func (m *Manager) Release(note uint8) {
	m.NoteOff(note)
}

// Tap is a press with an automatic timed release, for adapters that
// deliver no release event at all
func (m *Manager) Tap(note uint8) {
	m.Press(note)
	time.AfterFunc(m.tapHold, func() {
		m.NoteOff(note)
	})
}

// grade submits a complete answer and opens the feedback window
func (m *Manager) grade(played []uint8) {
	m.mu.Lock()
	verdict, err := m.session.Submit(played)
	if err != nil {
		// The gate makes this unreachable in normal flow
		m.grading = false
		m.answer = nil
		m.mu.Unlock()
		debug.Log("lesson", "submit rejected: %v", err)
		return
	}
	m.lastVerdict = &verdict
	m.mode = ModeOutput
	m.phase = PhaseFeedback
	gen := m.generation
	delay := m.feedbackDelay
	m.mu.Unlock()

	debug.Log("lesson", "graded %v correct=%v last=%v", played, verdict.Correct, verdict.LastAttempt)
	m.notify()

	time.AfterFunc(delay, func() {
		m.afterFeedback(gen, verdict)
	})
}

// afterFeedback closes the feedback window. A miss with attempts left
// replays the challenge; a resolved challenge advances, into the
// summary if it was the last one.
func (m *Manager) afterFeedback(gen int, verdict lesson.Verdict) {
	m.mu.Lock()
	if gen != m.generation {
		// Lesson restarted or reset while the feedback was showing
		m.mu.Unlock()
		return
	}
	m.grading = false
	m.lastVerdict = nil
	if verdict.LastAttempt {
		m.session.Advance()
		if m.session.IsComplete() {
			m.phase = PhaseSummary
			m.mode = ModeOutput
			m.mu.Unlock()
			debug.Log("lesson", "complete")
			m.notify()
			return
		}
	}
	m.mu.Unlock()

	m.playCurrent()
}

// Close stops playback and releases anything still sounding
func (m *Manager) Close() {
	m.mu.Lock()
	m.generation++
	held := make([]uint8, 0, len(m.held))
	for note := range m.held {
		held = append(held, note)
	}
	m.held = make(map[uint8]bool)
	synth := m.synth
	m.mu.Unlock()

	m.sequencer.Stop()
	for _, note := range held {
		synth.NoteOff(note)
	}
}

// notify wakes the TUI, non-blocking
func (m *Manager) notify() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}
