package theory

import "sort"

// Chord is a chord quality as semitone offsets from the root (0 first).
// Name is the catalog id and DisplayName the label shown to the user.
// Code is the short notation form used in identity keys and logs.
type Chord struct {
	Name        string
	DisplayName string
	Code        string
	Offsets     []uint8
}

// Triad catalog
var chordCatalog = []Chord{
	{Name: "major", DisplayName: "Major", Code: "maj", Offsets: []uint8{0, 4, 7}},
	{Name: "minor", DisplayName: "Minor", Code: "min", Offsets: []uint8{0, 3, 7}},
	{Name: "diminished", DisplayName: "Diminished", Code: "dim", Offsets: []uint8{0, 3, 6}},
	{Name: "augmented", DisplayName: "Augmented", Code: "aug", Offsets: []uint8{0, 4, 8}},
}

// Chords returns the chord catalog
func Chords() []Chord {
	out := make([]Chord, len(chordCatalog))
	copy(out, chordCatalog)
	return out
}

// ChordByName finds a catalog chord by its display name
func ChordByName(name string) (Chord, bool) {
	for _, c := range chordCatalog {
		if c.DisplayName == name {
			return c, true
		}
	}
	return Chord{}, false
}

// ChordNotes expands a chord from its root into MIDI notes, one per
// offset, each clamped independently. Near the top of the range clamped
// notes can collide; the result still has one entry per offset.
func ChordNotes(root uint8, c Chord) []uint8 {
	notes := make([]uint8, len(c.Offsets))
	for i, off := range c.Offsets {
		notes[i] = ClampMidi(int(root) + int(off))
	}
	return notes
}

// ChordMatch reports whether played contains exactly the expected notes,
// in any order. Duplicates count: {60,60,64} does not match {60,64,67}.
// Two empty sets match.
func ChordMatch(played, expected []uint8) bool {
	if len(played) != len(expected) {
		return false
	}

	a := make([]uint8, len(played))
	b := make([]uint8, len(expected))
	copy(a, played)
	copy(b, expected)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
