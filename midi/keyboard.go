package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Keyboard handles a standard MIDI keyboard (input only)
type Keyboard struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	events chan NoteEvent
}

// NewKeyboard opens the input port and starts listening
func NewKeyboard(id string, inPort drivers.In) (*Keyboard, error) {
	kb := &Keyboard{
		id:     id,
		inPort: inPort,
		events: make(chan NoteEvent, 32),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			var channel, note, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &note, &velocity):
				kb.deliver(NoteEvent{On: true, Note: note, Velocity: velocity, Channel: channel})
			case msg.GetNoteEnd(&channel, &note):
				// Note-ons with velocity zero land here too
				kb.deliver(NoteEvent{Note: note, Channel: channel})
			}
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		kb.stopFunc = stop
	}

	return kb, nil
}

// deliver drops the event if the buffer is full rather than stall the
// driver callback
func (kb *Keyboard) deliver(ev NoteEvent) {
	select {
	case kb.events <- ev:
	default:
	}
}

func (kb *Keyboard) ID() string {
	return kb.id
}

// Events returns the stream of presses and releases
func (kb *Keyboard) Events() <-chan NoteEvent {
	return kb.events
}

func (kb *Keyboard) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	close(kb.events)
	return nil
}
