package theory

import "testing"

func TestIntervalCatalog(t *testing.T) {
	ivs := Intervals()
	if len(ivs) != 9 {
		t.Fatalf("catalog has %d intervals, want 9", len(ivs))
	}

	// Distances must be unique or identification would be ambiguous,
	// and codes must be unique or identity keys would collide
	seen := make(map[uint8]string)
	codes := make(map[string]string)
	for _, iv := range ivs {
		if prev, ok := seen[iv.Semitones]; ok {
			t.Errorf("distance %d shared by %q and %q", iv.Semitones, prev, iv.Name)
		}
		seen[iv.Semitones] = iv.Name
		if prev, ok := codes[iv.Code]; ok {
			t.Errorf("code %q shared by %q and %q", iv.Code, prev, iv.Name)
		}
		codes[iv.Code] = iv.Name
	}

	if _, ok := IntervalByName("Perfect 5th"); !ok {
		t.Error("IntervalByName(Perfect 5th) not found")
	}
	if _, ok := IntervalByName("Major 7th"); ok {
		t.Error("IntervalByName(Major 7th) should not exist")
	}
}

func TestTargetNote(t *testing.T) {
	p5, _ := IntervalByName("Perfect 5th")
	octave, _ := IntervalByName("Perfect Octave")
	unison, _ := IntervalByName("Unison")

	tests := []struct {
		name string
		root uint8
		iv   Interval
		dir  Direction
		want uint8
	}{
		{name: "fifth up from C4", root: 60, iv: p5, dir: DirectionAscending, want: 67},
		{name: "fifth down from C4", root: 60, iv: p5, dir: DirectionDescending, want: 53},
		{name: "unison stays", root: 60, iv: unison, dir: DirectionNone, want: 60},
		{name: "octave clamps at top", root: 120, iv: octave, dir: DirectionAscending, want: 127},
		{name: "octave clamps at bottom", root: 5, iv: octave, dir: DirectionDescending, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetNote(tt.root, tt.iv, tt.dir); got != tt.want {
				t.Errorf("TargetNote(%d, %s, %s) = %d, want %d", tt.root, tt.iv.Name, tt.dir, got, tt.want)
			}
		})
	}
}

func TestIdentifyIntervalRoundTrip(t *testing.T) {
	// Away from the range edges, generating a target and identifying the
	// pair must recover the interval and direction exactly
	for root := 12; root <= 108; root++ {
		for _, iv := range Intervals() {
			dirs := []Direction{DirectionAscending, DirectionDescending}
			if iv.Semitones == 0 {
				dirs = []Direction{DirectionNone}
			}
			for _, dir := range dirs {
				target := TargetNote(uint8(root), iv, dir)
				got, gotDir, ok := IdentifyInterval(uint8(root), target)
				if !ok {
					t.Fatalf("root=%d %s %s: not identified", root, iv.Name, dir)
				}
				if got.Name != iv.Name || gotDir != dir {
					t.Fatalf("root=%d %s %s: identified as %s %s", root, iv.Name, dir, got.Name, gotDir)
				}
			}
		}
	}
}

func TestIdentifyIntervalUncatalogued(t *testing.T) {
	// 8-11 semitones have no catalog entry
	for distance := 8; distance <= 11; distance++ {
		if _, _, ok := IdentifyInterval(60, uint8(60+distance)); ok {
			t.Errorf("distance %d should not identify", distance)
		}
		if _, _, ok := IdentifyInterval(60, uint8(60-distance)); ok {
			t.Errorf("distance -%d should not identify", distance)
		}
	}

	// Beyond an octave is also unknown
	if _, _, ok := IdentifyInterval(40, 60); ok {
		t.Error("distance 20 should not identify")
	}
}

func TestIdentifyIntervalDirections(t *testing.T) {
	tests := []struct {
		name    string
		first   uint8
		second  uint8
		wantIv  string
		wantDir Direction
	}{
		{name: "ascending fifth", first: 60, second: 67, wantIv: "Perfect 5th", wantDir: DirectionAscending},
		{name: "descending fifth", first: 67, second: 60, wantIv: "Perfect 5th", wantDir: DirectionDescending},
		{name: "equal notes are unison", first: 72, second: 72, wantIv: "Unison", wantDir: DirectionNone},
		{name: "ascending octave", first: 48, second: 60, wantIv: "Perfect Octave", wantDir: DirectionAscending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, dir, ok := IdentifyInterval(tt.first, tt.second)
			if !ok {
				t.Fatalf("IdentifyInterval(%d, %d) not identified", tt.first, tt.second)
			}
			if iv.Name != tt.wantIv || dir != tt.wantDir {
				t.Errorf("IdentifyInterval(%d, %d) = %s %s, want %s %s",
					tt.first, tt.second, iv.Name, dir, tt.wantIv, tt.wantDir)
			}
		})
	}
}
