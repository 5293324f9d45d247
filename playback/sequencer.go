package playback

import (
	"context"
	"sync"
	"time"

	"github.com/witalewski/cortina/challenge"
	"github.com/witalewski/cortina/debug"
)

// Sequencer plays one challenge at a time as a strictly ordered series
// of timed note on/off events. Chords are arpeggiated like intervals:
// each note sounds alone for the full duration before the next starts.
type Sequencer struct {
	noteDuration time.Duration
	gapDuration  time.Duration
	velocity     uint8

	mu       sync.Mutex
	out      NoteOutput
	playing  bool
	cancel   context.CancelFunc
	onFinish func(cancelled bool)
}

// NewSequencer creates a sequencer writing to out. A nil out plays
// silently.
func NewSequencer(out NoteOutput, noteDuration, gapDuration time.Duration, velocity uint8) *Sequencer {
	if out == nil {
		out = NopOutput{}
	}
	return &Sequencer{
		out:          out,
		noteDuration: noteDuration,
		gapDuration:  gapDuration,
		velocity:     velocity,
	}
}

// SetOutput swaps the note output, e.g. when a synth port opens later.
// An in-flight playback keeps the output it started with.
func (s *Sequencer) SetOutput(out NoteOutput) {
	if out == nil {
		out = NopOutput{}
	}
	s.mu.Lock()
	s.out = out
	s.mu.Unlock()
}

// SetOnFinish registers a callback invoked exactly once per started
// playback, after the sequencer has returned to idle. The flag reports
// whether the playback was cut short by Stop.
func (s *Sequencer) SetOnFinish(fn func(cancelled bool)) {
	s.mu.Lock()
	s.onFinish = fn
	s.mu.Unlock()
}

// Playing reports whether a sequence is in flight
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Play starts the challenge's note sequence. A second Play while one is
// in flight is a no-op and returns false.
func (s *Sequencer) Play(ch challenge.Challenge) bool {
	s.mu.Lock()
	if s.playing {
		s.mu.Unlock()
		debug.Log("seq", "Play ignored, already playing")
		return false
	}
	s.playing = true
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	out := s.out
	s.mu.Unlock()

	debug.Log("seq", "Play %s", ch.Key())
	go s.run(ctx, ch.SequenceMidi(), out)
	return true
}

// Stop cancels the in-flight playback, if any. Cancellation is
// cooperative: the sequence exits at its next wait and releases
// whatever note is sounding, then the finish callback reports
// cancelled=true. The sequencer stays busy until that happens.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Sequencer) run(ctx context.Context, notes []uint8, out NoteOutput) {
	cancelled := false

	for i, note := range notes {
		out.NoteOn(note, s.velocity)
		held := s.wait(ctx, s.noteDuration)
		// Off is sent on every path so on/off counts always balance
		out.NoteOff(note)
		if !held {
			cancelled = true
			break
		}

		if i < len(notes)-1 {
			if !s.wait(ctx, s.gapDuration) {
				cancelled = true
				break
			}
		}
	}

	s.mu.Lock()
	s.playing = false
	s.cancel = nil
	onFinish := s.onFinish
	s.mu.Unlock()

	debug.Log("seq", "finished cancelled=%v", cancelled)
	if onFinish != nil {
		onFinish(cancelled)
	}
}

// wait blocks for d, or returns false early if the playback is cancelled
func (s *Sequencer) wait(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
