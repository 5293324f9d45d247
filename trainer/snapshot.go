package trainer

import (
	"github.com/witalewski/cortina/challenge"
	"github.com/witalewski/cortina/config"
	"github.com/witalewski/cortina/lesson"
)

// Snapshot is a read-only view of the coordinator for rendering. The
// TUI takes one per frame instead of reaching into live state.
type Snapshot struct {
	Phase  Phase
	Mode   Mode
	Lesson config.LessonMode

	SessionID string
	Position  int
	Total     int

	Challenge    challenge.Challenge
	HasChallenge bool
	AttemptCount int
	MaxAttempts  int
	Collected    int // notes of the answer gathered so far
	NoteCount    int

	RevealName bool
	ShowHints  bool

	Verdict    lesson.Verdict
	HasVerdict bool

	HeldNotes []uint8

	Score    lesson.Score
	HasScore bool
}

// Snapshot captures the current state under the manager lock
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Phase:        m.phase,
		Mode:         m.mode,
		Lesson:       m.lessonMode,
		SessionID:    m.session.ID,
		AttemptCount: m.session.AttemptCount(),
		MaxAttempts:  lesson.MaxAttempts,
		Collected:    len(m.answer),
		RevealName:   m.session.ShouldRevealName(),
		ShowHints:    m.session.ShouldShowHints(),
	}
	snap.Position, snap.Total = m.session.Position()

	if ch, ok := m.session.CurrentChallenge(); ok {
		snap.Challenge = ch
		snap.HasChallenge = true
		snap.NoteCount = ch.NoteCount()
	}
	if m.lastVerdict != nil {
		snap.Verdict = *m.lastVerdict
		snap.HasVerdict = true
	}
	for note := range m.held {
		snap.HeldNotes = append(snap.HeldNotes, note)
	}
	if score, ok := m.session.Score(); ok {
		snap.Score = score
		snap.HasScore = true
	}
	return snap
}
