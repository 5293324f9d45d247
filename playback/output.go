package playback

// NoteOutput receives the note events a playback produces. Calls are
// fire-and-forget: implementations report nothing back, and NoteOff for
// a note that is not sounding must be harmless.
type NoteOutput interface {
	NoteOn(note, velocity uint8)
	NoteOff(note uint8)
}

// NopOutput discards every note. It stands in whenever no synth port is
// open so callers never need a nil check.
type NopOutput struct{}

func (NopOutput) NoteOn(note, velocity uint8) {}

func (NopOutput) NoteOff(note uint8) {}
