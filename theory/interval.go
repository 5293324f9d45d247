package theory

// Direction is the way an interval is played from its root
type Direction int

const (
	DirectionNone Direction = iota // unison, or two equal notes
	DirectionAscending
	DirectionDescending
)

func (d Direction) String() string {
	switch d {
	case DirectionAscending:
		return "ascending"
	case DirectionDescending:
		return "descending"
	default:
		return "none"
	}
}

// Interval is a named pitch distance in semitones. Code is the short
// notation form used in identity keys and logs.
type Interval struct {
	Name      string
	Code      string
	Semitones uint8
}

// Interval catalog. Distances are unique, so identification by distance
// is unambiguous. 8-11 semitones are deliberately absent: a played pair
// at those distances identifies as no interval at all.
var intervalCatalog = []Interval{
	{Name: "Unison", Code: "P1", Semitones: 0},
	{Name: "Minor 2nd", Code: "m2", Semitones: 1},
	{Name: "Major 2nd", Code: "M2", Semitones: 2},
	{Name: "Minor 3rd", Code: "m3", Semitones: 3},
	{Name: "Major 3rd", Code: "M3", Semitones: 4},
	{Name: "Perfect 4th", Code: "P4", Semitones: 5},
	{Name: "Tritone", Code: "TT", Semitones: 6},
	{Name: "Perfect 5th", Code: "P5", Semitones: 7},
	{Name: "Perfect Octave", Code: "P8", Semitones: 12},
}

// Intervals returns the interval catalog in ascending distance order
func Intervals() []Interval {
	out := make([]Interval, len(intervalCatalog))
	copy(out, intervalCatalog)
	return out
}

// IntervalByName finds a catalog interval by its display name
func IntervalByName(name string) (Interval, bool) {
	for _, iv := range intervalCatalog {
		if iv.Name == name {
			return iv, true
		}
	}
	return Interval{}, false
}

// IntervalBySemitones finds a catalog interval by its exact distance
func IntervalBySemitones(distance uint8) (Interval, bool) {
	for _, iv := range intervalCatalog {
		if iv.Semitones == distance {
			return iv, true
		}
	}
	return Interval{}, false
}

// TargetNote returns the note reached by playing iv in the given
// direction from root, clamped to the MIDI range. Clamping near the
// range edges can shorten the sounding distance; that is a valid
// outcome, not an error.
func TargetNote(root uint8, iv Interval, dir Direction) uint8 {
	switch dir {
	case DirectionAscending:
		return ClampMidi(int(root) + int(iv.Semitones))
	case DirectionDescending:
		return ClampMidi(int(root) - int(iv.Semitones))
	default:
		return ClampMidi(int(root))
	}
}

// IdentifyInterval names the relationship between two notes played in
// order. Equal notes identify as Unison with no direction. A distance
// outside the catalog returns ok=false.
func IdentifyInterval(first, second uint8) (Interval, Direction, bool) {
	dir := DirectionNone
	distance := int(second) - int(first)
	if distance > 0 {
		dir = DirectionAscending
	} else if distance < 0 {
		dir = DirectionDescending
		distance = -distance
	}

	iv, ok := IntervalBySemitones(uint8(distance))
	if !ok {
		return Interval{}, dir, false
	}
	return iv, dir, true
}
