package lesson

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/witalewski/cortina/challenge"
)

// Lesson shape and hint thresholds
const (
	ChallengesPerLesson = 5
	MaxAttempts         = 7
	RevealNameAfter     = 3
	ShowHintsAfter      = 4
)

// Protocol violations: submitting when there is nothing to grade
var (
	ErrNoChallenge    = errors.New("lesson: no active challenge")
	ErrLessonComplete = errors.New("lesson: already complete")
)

// Attempt is one submitted answer, notes in play order
type Attempt struct {
	PlayedNotes []uint8
	Correct     bool
	Timestamp   time.Time
}

// Result is the finalized outcome of one challenge
type Result struct {
	Challenge    challenge.Challenge
	Attempts     []Attempt
	Succeeded    bool
	AttemptCount int
}

// Verdict is Submit's report on one answer
type Verdict struct {
	Correct     bool
	LastAttempt bool
}

// Score summarizes a completed lesson
type Score struct {
	TotalChallenges int
	CorrectCount    int
	Results         []Result
}

// Session is one lesson run: a fixed set of challenges worked through in
// order, each resolved by a correct answer or by running out of
// attempts. Not safe for concurrent use on its own; the trainer
// serializes all access.
type Session struct {
	ID string

	challenges []challenge.Challenge
	current    int
	attempts   []Attempt // attempts on the current challenge
	results    []Result  // one per resolved challenge, in order
	started    bool
	completed  bool
}

func NewSession() *Session {
	return &Session{}
}

// Start begins a fresh lesson: ChallengesPerLesson distinct challenges
// drawn from the pool (the whole pool if it is smaller). Any previous
// state is discarded and the session gets a new ID.
func (s *Session) Start(pool []challenge.Challenge, rng *rand.Rand) {
	s.ID = uuid.NewString()
	s.challenges = challenge.SelectRandom(pool, ChallengesPerLesson, rng)
	s.current = 0
	s.attempts = nil
	s.results = nil
	s.started = len(s.challenges) > 0
	s.completed = false
}

// Reset returns the session to its not-started state
func (s *Session) Reset() {
	s.ID = ""
	s.challenges = nil
	s.current = 0
	s.attempts = nil
	s.results = nil
	s.started = false
	s.completed = false
}

// resolved reports whether the current challenge already has its result
func (s *Session) resolved() bool {
	return len(s.results) > s.current
}

// CurrentChallenge returns the challenge awaiting an answer
func (s *Session) CurrentChallenge() (challenge.Challenge, bool) {
	if !s.started || s.completed {
		return challenge.Challenge{}, false
	}
	return s.challenges[s.current], true
}

// AttemptCount is the number of answers submitted for the current
// challenge so far
func (s *Session) AttemptCount() int {
	return len(s.attempts)
}

// Submit grades an answer against the current challenge. A musically
// wrong answer, including one with the wrong number of notes, is just
// incorrect. Submitting when nothing is awaiting an answer is a
// protocol violation and returns an error.
func (s *Session) Submit(played []uint8) (Verdict, error) {
	if s.completed {
		return Verdict{}, ErrLessonComplete
	}
	if !s.started || s.resolved() {
		return Verdict{}, ErrNoChallenge
	}

	ch := s.challenges[s.current]
	correct := ch.Matches(played)

	notes := make([]uint8, len(played))
	copy(notes, played)
	s.attempts = append(s.attempts, Attempt{
		PlayedNotes: notes,
		Correct:     correct,
		Timestamp:   time.Now(),
	})

	// The attempt just recorded counts toward the limit, so the 7th
	// wrong answer is the last
	last := correct || len(s.attempts) >= MaxAttempts
	if last {
		attempts := make([]Attempt, len(s.attempts))
		copy(attempts, s.attempts)
		s.results = append(s.results, Result{
			Challenge:    ch,
			Attempts:     attempts,
			Succeeded:    correct,
			AttemptCount: len(attempts),
		})
	}

	return Verdict{Correct: correct, LastAttempt: last}, nil
}

// Advance moves past a resolved challenge, completing the lesson after
// the final one. A no-op while the current challenge is unresolved.
func (s *Session) Advance() {
	if !s.started || s.completed || !s.resolved() {
		return
	}
	s.current++
	s.attempts = nil
	if s.current >= len(s.challenges) {
		s.completed = true
	}
}

// ShouldRevealName reports whether the challenge name should be shown
// (third attempt onward)
func (s *Session) ShouldRevealName() bool {
	return s.InProgress() && len(s.attempts) >= RevealNameAfter
}

// ShouldShowHints reports whether note hints should be shown (fourth
// attempt onward)
func (s *Session) ShouldShowHints() bool {
	return s.InProgress() && len(s.attempts) >= ShowHintsAfter
}

// InProgress reports whether a lesson is underway
func (s *Session) InProgress() bool {
	return s.started && !s.completed
}

// IsComplete reports whether every challenge has been resolved
func (s *Session) IsComplete() bool {
	return s.completed
}

// Position returns the 1-based ordinal of the active challenge and the
// lesson length. Before Start it is 0 of 0; after completion the
// ordinal stays at the lesson length.
func (s *Session) Position() (int, int) {
	if !s.started {
		return 0, 0
	}
	ordinal := s.current + 1
	if ordinal > len(s.challenges) {
		ordinal = len(s.challenges)
	}
	return ordinal, len(s.challenges)
}

// Results returns the finalized results so far
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Score summarizes the lesson; ok is false until the lesson completes
func (s *Session) Score() (Score, bool) {
	if !s.completed {
		return Score{}, false
	}
	correct := 0
	for _, r := range s.results {
		if r.Succeeded {
			correct++
		}
	}
	return Score{
		TotalChallenges: len(s.challenges),
		CorrectCount:    correct,
		Results:         s.Results(),
	}, true
}
