package midi

// NoteEvent is a key press or release arriving from a MIDI keyboard
type NoteEvent struct {
	On       bool // press when true, release when false
	Note     uint8
	Velocity uint8
	Channel  uint8
}
