package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	defer midi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(filterArg())
	case "play":
		play(filterArg())
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI setup check")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List all MIDI ports")
	fmt.Println("  monitor [name]  - Print notes played on an input port")
	fmt.Println("  play [name]     - Send a test arpeggio to an output port")
}

func filterArg() string {
	if len(os.Args) > 2 {
		return os.Args[2]
	}
	return ""
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ins := midi.GetInPorts()
		outs := midi.GetOutPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}
}

func pickIn(filter string) drivers.In {
	for _, p := range midi.GetInPorts() {
		if wantPort(p.String(), filter) {
			return p
		}
	}
	return nil
}

func pickOut(filter string) drivers.Out {
	for _, p := range midi.GetOutPorts() {
		if wantPort(p.String(), filter) {
			return p
		}
	}
	return nil
}

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

func monitor(filter string) {
	inPort := pickIn(filter)
	if inPort == nil {
		fmt.Println("No matching input port")
		return
	}
	fmt.Printf("Monitoring: %s\n", inPort.String())

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		var channel, note, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &note, &velocity):
			fmt.Printf("  on  note=%3d vel=%3d ch=%d\n", note, velocity, channel)
		case msg.GetNoteEnd(&channel, &note):
			fmt.Printf("  off note=%3d         ch=%d\n", note, channel)
		}
	})
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}
	defer stop()

	fmt.Println("Play some notes. Press Enter to stop...")
	fmt.Scanln()
}

func play(filter string) {
	outPort := pickOut(filter)
	if outPort == nil {
		fmt.Println("No matching output port")
		return
	}
	fmt.Printf("Playing through: %s\n", outPort.String())

	send, err := midi.SendTo(outPort)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	// C4 major arpeggio up and back down
	notes := []uint8{60, 64, 67, 72, 67, 64, 60}
	for _, note := range notes {
		send(midi.NoteOn(0, note, 100))
		time.Sleep(300 * time.Millisecond)
		send(midi.NoteOff(0, note))
		time.Sleep(50 * time.Millisecond)
	}

	fmt.Println("Done. If you heard nothing, check the synth on that port.")
}
