package theory

import "testing"

func TestChordCatalog(t *testing.T) {
	if len(Chords()) != 4 {
		t.Fatalf("catalog has %d chords, want 4", len(Chords()))
	}

	tests := []struct {
		name    string
		code    string
		offsets []uint8
	}{
		{name: "Major", code: "maj", offsets: []uint8{0, 4, 7}},
		{name: "Minor", code: "min", offsets: []uint8{0, 3, 7}},
		{name: "Diminished", code: "dim", offsets: []uint8{0, 3, 6}},
		{name: "Augmented", code: "aug", offsets: []uint8{0, 4, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ChordByName(tt.name)
			if !ok {
				t.Fatalf("ChordByName(%q) not found", tt.name)
			}
			if c.Code != tt.code {
				t.Errorf("Code = %q, want %q", c.Code, tt.code)
			}
			if c.Offsets[0] != 0 {
				t.Errorf("Offsets[0] = %d, root offset must be 0", c.Offsets[0])
			}
			if len(c.Offsets) != len(tt.offsets) {
				t.Fatalf("offsets = %v, want %v", c.Offsets, tt.offsets)
			}
			for i := range c.Offsets {
				if c.Offsets[i] != tt.offsets[i] {
					t.Errorf("offsets = %v, want %v", c.Offsets, tt.offsets)
					break
				}
			}
		})
	}
}

func TestChordNotes(t *testing.T) {
	major, _ := ChordByName("Major")
	aug, _ := ChordByName("Augmented")

	tests := []struct {
		name  string
		root  uint8
		chord Chord
		want  []uint8
	}{
		{name: "C4 major", root: 60, chord: major, want: []uint8{60, 64, 67}},
		{name: "A3 major", root: 57, chord: major, want: []uint8{57, 61, 64}},
		{name: "clamped at top", root: 125, chord: aug, want: []uint8{125, 127, 127}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChordNotes(tt.root, tt.chord)
			if len(got) != len(tt.want) {
				t.Fatalf("ChordNotes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ChordNotes = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestChordMatch(t *testing.T) {
	tests := []struct {
		name     string
		played   []uint8
		expected []uint8
		want     bool
	}{
		{name: "exact order", played: []uint8{60, 64, 67}, expected: []uint8{60, 64, 67}, want: true},
		{name: "any order", played: []uint8{67, 60, 64}, expected: []uint8{60, 64, 67}, want: true},
		{name: "minor is not major", played: []uint8{60, 63, 67}, expected: []uint8{60, 64, 67}, want: false},
		{name: "too few notes", played: []uint8{60, 64}, expected: []uint8{60, 64, 67}, want: false},
		{name: "too many notes", played: []uint8{60, 64, 67, 72}, expected: []uint8{60, 64, 67}, want: false},
		{name: "duplicates count", played: []uint8{60, 60, 67}, expected: []uint8{60, 64, 67}, want: false},
		{name: "both empty", played: []uint8{}, expected: []uint8{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChordMatch(tt.played, tt.expected); got != tt.want {
				t.Errorf("ChordMatch(%v, %v) = %v, want %v", tt.played, tt.expected, got, tt.want)
			}
		})
	}
}
