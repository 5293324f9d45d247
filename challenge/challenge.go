package challenge

import (
	"fmt"

	"github.com/witalewski/cortina/theory"
)

// Kind distinguishes the two challenge families
type Kind int

const (
	KindInterval Kind = iota
	KindChord
)

// Challenge is one ear-training question: a root note plus either an
// interval in a direction or a chord quality. Immutable once built.
type Challenge struct {
	Kind     Kind
	RootMidi uint8
	RootNote string

	// Interval challenges
	Interval   theory.Interval
	Direction  theory.Direction
	TargetMidi uint8
	TargetNote string

	// Chord challenges
	Chord     theory.Chord
	MidiNotes []uint8
	Notes     []string
}

// NewInterval builds an interval challenge from a root
func NewInterval(root uint8, iv theory.Interval, dir theory.Direction) Challenge {
	target := theory.TargetNote(root, iv, dir)
	return Challenge{
		Kind:       KindInterval,
		RootMidi:   root,
		RootNote:   theory.MidiToNote(root),
		Interval:   iv,
		Direction:  dir,
		TargetMidi: target,
		TargetNote: theory.MidiToNote(target),
	}
}

// NewChord builds a chord challenge from a root
func NewChord(root uint8, chord theory.Chord) Challenge {
	midiNotes := theory.ChordNotes(root, chord)
	notes := make([]string, len(midiNotes))
	for i, m := range midiNotes {
		notes[i] = theory.MidiToNote(m)
	}
	return Challenge{
		Kind:      KindChord,
		RootMidi:  root,
		RootNote:  theory.MidiToNote(root),
		Chord:     chord,
		MidiNotes: midiNotes,
		Notes:     notes,
	}
}

// Key is the challenge identity: interval challenges are identified by
// interval and direction, chord challenges by root and quality
func (c Challenge) Key() string {
	if c.Kind == KindChord {
		return fmt.Sprintf("chord:%s:%s", c.RootNote, c.Chord.Code)
	}
	return fmt.Sprintf("interval:%s:%s", c.Interval.Code, c.Direction)
}

// DisplayName is the human name shown once hints reveal the answer
func (c Challenge) DisplayName() string {
	if c.Kind == KindChord {
		return fmt.Sprintf("%s %s", c.RootNote, c.Chord.DisplayName)
	}
	if c.Direction == theory.DirectionNone {
		return c.Interval.Name
	}
	return fmt.Sprintf("%s %s", c.Interval.Name, c.Direction)
}

// NoteCount is how many played notes make a complete answer
func (c Challenge) NoteCount() int {
	if c.Kind == KindChord {
		return len(c.MidiNotes)
	}
	// Interval answers are always a pair, unison included
	return 2
}

// SequenceMidi is the canonical playback order: root then target for
// intervals, definition order for chords
func (c Challenge) SequenceMidi() []uint8 {
	if c.Kind == KindChord {
		out := make([]uint8, len(c.MidiNotes))
		copy(out, c.MidiNotes)
		return out
	}
	return []uint8{c.RootMidi, c.TargetMidi}
}

// SequenceNotes is SequenceMidi as note names, for hint display
func (c Challenge) SequenceNotes() []string {
	if c.Kind == KindChord {
		out := make([]string, len(c.Notes))
		copy(out, c.Notes)
		return out
	}
	return []string{c.RootNote, c.TargetNote}
}

// Matches reports whether the played notes answer this challenge.
// Interval answers match by relationship: any pair forming the same
// interval in the same direction is correct, not just the pair that was
// played back. Chord answers must reproduce the exact notes, any order.
// Wrong note counts are simply not a match, never an error.
func (c Challenge) Matches(played []uint8) bool {
	if c.Kind == KindChord {
		return theory.ChordMatch(played, c.MidiNotes)
	}
	if len(played) != 2 {
		return false
	}
	iv, dir, ok := theory.IdentifyInterval(played[0], played[1])
	if !ok {
		return false
	}
	return iv.Name == c.Interval.Name && dir == c.Direction
}
