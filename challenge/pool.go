package challenge

import (
	"math/rand"
	"time"

	"github.com/witalewski/cortina/theory"
)

// IntervalPool enumerates every interval challenge from the given root:
// one entry for the unison, ascending and descending entries for every
// other catalog interval. Order is stable for a given root.
func IntervalPool(root uint8) []Challenge {
	var pool []Challenge
	for _, iv := range theory.Intervals() {
		if iv.Semitones == 0 {
			pool = append(pool, NewInterval(root, iv, theory.DirectionNone))
			continue
		}
		pool = append(pool, NewInterval(root, iv, theory.DirectionAscending))
		pool = append(pool, NewInterval(root, iv, theory.DirectionDescending))
	}
	return pool
}

// ChordPool enumerates the cross product of roots and chord qualities.
// Order is stable: all qualities of the first root, then the next.
func ChordPool(roots []uint8, chords []theory.Chord) []Challenge {
	var pool []Challenge
	for _, root := range roots {
		for _, chord := range chords {
			pool = append(pool, NewChord(root, chord))
		}
	}
	return pool
}

// SelectRandom picks count distinct challenges from the pool, uniformly
// and without replacement. Asking for more than the pool holds returns
// the whole pool, each entry once. The pool itself is never reordered.
func SelectRandom(pool []Challenge, count int, rng *rand.Rand) []Challenge {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	shuffled := make([]Challenge, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
