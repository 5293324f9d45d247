package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Synth sends note events to a MIDI output port. It satisfies the
// playback note output without importing that package.
type Synth struct {
	id      string
	outPort drivers.Out
	channel uint8

	mu   sync.Mutex
	send func(msg gomidi.Message) error
}

// NewSynth opens the output port for sending on the given channel (0-15)
func NewSynth(id string, outPort drivers.Out, channel uint8) (*Synth, error) {
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	if channel > 15 {
		channel = 0
	}
	return &Synth{
		id:      id,
		outPort: outPort,
		channel: channel,
		send:    send,
	}, nil
}

func (s *Synth) ID() string {
	return s.id
}

// NoteOn sends a note-on message
func (s *Synth) NoteOn(note, velocity uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.send == nil {
		return
	}
	s.send(gomidi.NoteOn(s.channel, note, velocity))
}

// NoteOff sends a note-off message
func (s *Synth) NoteOff(note uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.send == nil {
		return
	}
	s.send(gomidi.NoteOff(s.channel, note))
}

// Silence releases every note on the channel
func (s *Synth) Silence() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.send == nil {
		return
	}
	for note := 0; note < 128; note++ {
		s.send(gomidi.NoteOff(s.channel, uint8(note)))
	}
}

func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = nil
	return nil
}

// CloseDriver releases the underlying MIDI driver. Call once on the way
// out of the program.
func CloseDriver() {
	gomidi.CloseDriver()
}
