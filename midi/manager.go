package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when devices connect/disconnect
type DeviceEvent struct {
	Type     DeviceEventType
	Keyboard *Keyboard // set on keyboard events
	Synth    *Synth    // set on synth events
	ID       string
}

type DeviceEventType int

const (
	KeyboardConnected DeviceEventType = iota
	KeyboardDisconnected
	SynthConnected
	SynthDisconnected
)

// DeviceManager handles hot-plug detection of MIDI keyboards and the
// synth output port
type DeviceManager struct {
	keyboards map[string]*Keyboard
	synth     *Synth
	mu        sync.RWMutex
	events    chan DeviceEvent
	pollRate  time.Duration

	inputFilter  string // substring match on input port names, empty takes any
	outputFilter string
	channel      uint8
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(inputFilter, outputFilter string, channel uint8) *DeviceManager {
	return &DeviceManager{
		keyboards:    make(map[string]*Keyboard),
		events:       make(chan DeviceEvent, 16),
		pollRate:     time.Second,
		inputFilter:  inputFilter,
		outputFilter: outputFilter,
		channel:      channel,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Keyboards returns a snapshot of connected keyboards
func (dm *DeviceManager) Keyboards() map[string]*Keyboard {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]*Keyboard, len(dm.keyboards))
	for k, v := range dm.keyboards {
		copy[k] = v
	}
	return copy
}

// GetSynth returns the connected synth output (or nil)
func (dm *DeviceManager) GetSynth() *Synth {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.synth
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		inPorts := gomidi.GetInPorts()
		outPorts := gomidi.GetOutPorts()
		ch <- portsResult{inPorts: inPorts, outPorts: outPorts}
	}()

	var inPorts []drivers.In
	var outPorts []drivers.Out

	select {
	case result := <-ch:
		inPorts = result.inPorts
		outPorts = result.outPorts
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		return
	}

	// Build map of what we see now
	seenIDs := make(map[string]bool)

	// Look for keyboards
	for i, inPort := range inPorts {
		if !wantPort(inPort.String(), dm.inputFilter) {
			continue
		}
		id := inPort.String()
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.keyboards[id]
		dm.mu.RUnlock()

		if !exists {
			kb, err := NewKeyboard(id, inPorts[i])
			if err != nil {
				continue
			}

			dm.mu.Lock()
			dm.keyboards[id] = kb
			dm.mu.Unlock()

			dm.events <- DeviceEvent{
				Type:     KeyboardConnected,
				Keyboard: kb,
				ID:       id,
			}
		}
	}

	// Check for keyboard disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.keyboards {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		kb := dm.keyboards[id]
		kb.Close()
		delete(dm.keyboards, id)
		dm.events <- DeviceEvent{
			Type: KeyboardDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()

	dm.scanOutputs(outPorts)
}

// scanOutputs keeps one synth attached to the first acceptable output
func (dm *DeviceManager) scanOutputs(outPorts []drivers.Out) {
	dm.mu.RLock()
	current := dm.synth
	dm.mu.RUnlock()

	if current != nil {
		for _, op := range outPorts {
			if op.String() == current.ID() {
				return // still plugged in
			}
		}
		current.Close()
		dm.mu.Lock()
		dm.synth = nil
		dm.mu.Unlock()
		dm.events <- DeviceEvent{
			Type: SynthDisconnected,
			ID:   current.ID(),
		}
	}

	for i, op := range outPorts {
		if !wantPort(op.String(), dm.outputFilter) {
			continue
		}
		synth, err := NewSynth(op.String(), outPorts[i], dm.channel)
		if err != nil {
			continue
		}

		dm.mu.Lock()
		dm.synth = synth
		dm.mu.Unlock()

		dm.events <- DeviceEvent{
			Type:  SynthConnected,
			Synth: synth,
			ID:    synth.ID(),
		}
		return
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, kb := range dm.keyboards {
		kb.Close()
	}
	dm.keyboards = make(map[string]*Keyboard)
	if dm.synth != nil {
		dm.synth.Close()
		dm.synth = nil
	}
}

// wantPort filters port names. ALSA "Midi Through" loopback ports are
// never wanted, everything else passes unless a filter is set.
func wantPort(name, filter string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "through") {
		return false
	}
	if filter != "" {
		return strings.Contains(lower, strings.ToLower(filter))
	}
	return true
}
