package theory

import (
	"strconv"
	"strings"
)

// MiddleC is the fallback pitch for unparseable note names (C4 = 60)
const MiddleC uint8 = 60

// Pitch class names, sharps convention (matches MidiToNote output)
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Semitone offsets from C; sharps and flats both accepted on parse
var noteOffsets = map[string]int{
	"C":  0,
	"C#": 1, "DB": 1,
	"D":  2,
	"D#": 3, "EB": 3,
	"E":  4,
	"F":  5,
	"F#": 6, "GB": 6,
	"G":  7,
	"G#": 8, "AB": 8,
	"A":  9,
	"A#": 10, "BB": 10,
	"B": 11,
}

// ClampMidi forces a note value into the MIDI range 0-127
func ClampMidi(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

// NoteToMidi converts a note name like "C4", "F#3", "Bb2" to a MIDI note
// number. C4 = 60. Malformed names fall back to middle C so callers never
// have to handle a parse error for input the UI cannot produce.
func NoteToMidi(name string) uint8 {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return MiddleC
	}

	// Pitch class: letter plus optional accidental
	idx := 1
	if name[1] == '#' || name[1] == 'b' || name[1] == 'B' {
		// "Bb" alone is ambiguous ("B" + "b" accidental vs "B" + bad octave);
		// only treat position 1 as an accidental if an octave follows
		if idx+1 < len(name) {
			idx = 2
		}
	}
	pitch := strings.ToUpper(name[:idx])
	semitone, ok := noteOffsets[pitch]
	if !ok {
		return MiddleC
	}

	octave, err := strconv.Atoi(name[idx:])
	if err != nil {
		return MiddleC
	}

	// C-1 = 0, C4 = 60
	return ClampMidi((octave+1)*12 + semitone)
}

// MidiToNote converts a MIDI note number to its sharp-spelled name, "C-1"
// through "G9". Inverse of NoteToMidi for sharp names.
func MidiToNote(m uint8) string {
	if m > 127 {
		m = 127
	}
	octave := int(m)/12 - 1
	return noteNames[m%12] + strconv.Itoa(octave)
}
