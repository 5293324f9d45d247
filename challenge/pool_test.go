package challenge

import (
	"math/rand"
	"testing"

	"github.com/witalewski/cortina/theory"
)

func TestIntervalPool(t *testing.T) {
	pool := IntervalPool(60)

	// 1 unison + 8 intervals in both directions
	if len(pool) != 17 {
		t.Fatalf("pool size = %d, want 17", len(pool))
	}

	keys := make(map[string]bool)
	unisons := 0
	perInterval := make(map[string]int)
	for _, ch := range pool {
		if keys[ch.Key()] {
			t.Errorf("duplicate key %q", ch.Key())
		}
		keys[ch.Key()] = true

		if ch.Interval.Semitones == 0 {
			unisons++
			if ch.Direction != theory.DirectionNone {
				t.Errorf("unison direction = %s, want none", ch.Direction)
			}
		}
		perInterval[ch.Interval.Name]++
	}

	if unisons != 1 {
		t.Errorf("unison entries = %d, want 1", unisons)
	}
	for name, n := range perInterval {
		want := 2
		if name == "Unison" {
			want = 1
		}
		if n != want {
			t.Errorf("%s entries = %d, want %d", name, n, want)
		}
	}
}

func TestIntervalPoolStableOrder(t *testing.T) {
	a := IntervalPool(60)
	b := IntervalPool(60)
	for i := range a {
		if a[i].Key() != b[i].Key() {
			t.Fatalf("pool order differs at %d: %q vs %q", i, a[i].Key(), b[i].Key())
		}
	}
}

func TestChordPool(t *testing.T) {
	roots := []uint8{60, 65, 67}
	pool := ChordPool(roots, theory.Chords())

	if len(pool) != len(roots)*4 {
		t.Fatalf("pool size = %d, want %d", len(pool), len(roots)*4)
	}

	keys := make(map[string]bool)
	for _, ch := range pool {
		if keys[ch.Key()] {
			t.Errorf("duplicate key %q", ch.Key())
		}
		keys[ch.Key()] = true
	}
}

func TestSelectRandom(t *testing.T) {
	pool := IntervalPool(60)

	tests := []struct {
		name     string
		count    int
		wantSize int
	}{
		{name: "usual lesson", count: 5, wantSize: 5},
		{name: "exactly the pool", count: 17, wantSize: 17},
		{name: "more than the pool", count: 100, wantSize: 17},
		{name: "zero", count: 0, wantSize: 0},
		{name: "negative", count: -1, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			got := SelectRandom(pool, tt.count, rng)
			if len(got) != tt.wantSize {
				t.Fatalf("selected %d, want %d", len(got), tt.wantSize)
			}

			seen := make(map[string]bool)
			for _, ch := range got {
				if seen[ch.Key()] {
					t.Errorf("duplicate selection %q", ch.Key())
				}
				seen[ch.Key()] = true
			}
		})
	}
}

func TestSelectRandomSmallPool(t *testing.T) {
	// Asking for a full lesson from a 4 entry pool yields all 4, once each
	major, _ := theory.ChordByName("Major")
	minor, _ := theory.ChordByName("Minor")
	pool := []Challenge{
		NewChord(60, major),
		NewChord(60, minor),
		NewChord(65, major),
		NewChord(67, major),
	}

	rng := rand.New(rand.NewSource(7))
	got := SelectRandom(pool, 100, rng)
	if len(got) != 4 {
		t.Fatalf("selected %d, want 4", len(got))
	}
	seen := make(map[string]bool)
	for _, ch := range got {
		seen[ch.Key()] = true
	}
	if len(seen) != 4 {
		t.Errorf("selection repeats entries: %v", seen)
	}
}

func TestSelectRandomDoesNotMutatePool(t *testing.T) {
	pool := IntervalPool(60)
	before := make([]string, len(pool))
	for i, ch := range pool {
		before[i] = ch.Key()
	}

	rng := rand.New(rand.NewSource(42))
	SelectRandom(pool, 5, rng)

	for i, ch := range pool {
		if ch.Key() != before[i] {
			t.Fatalf("pool reordered at %d", i)
		}
	}
}

func TestSelectRandomDeterministicWithSeed(t *testing.T) {
	pool := IntervalPool(60)

	a := SelectRandom(pool, 5, rand.New(rand.NewSource(99)))
	b := SelectRandom(pool, 5, rand.New(rand.NewSource(99)))
	for i := range a {
		if a[i].Key() != b[i].Key() {
			t.Fatalf("same seed diverged at %d: %q vs %q", i, a[i].Key(), b[i].Key())
		}
	}
}
