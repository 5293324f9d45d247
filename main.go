package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/witalewski/cortina/config"
	"github.com/witalewski/cortina/debug"
	"github.com/witalewski/cortina/midi"
	"github.com/witalewski/cortina/playback"
	"github.com/witalewski/cortina/theme"
	"github.com/witalewski/cortina/trainer"
	"github.com/witalewski/cortina/tui"
)

func main() {
	// Optional .env carrying CORTINA_* overrides
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}
	defer midi.CloseDriver()

	// Theme, a palette.gpl in the config dir overrides the built-in
	palette := theme.DefaultPalette()
	if dir, err := config.ConfigDir(); err == nil {
		palette = theme.LoadUserPalette(dir)
	}
	th := theme.New(palette)

	// Playback engine and lesson coordinator. The synth output arrives
	// later through device events.
	seq := playback.NewSequencer(nil,
		time.Duration(cfg.NoteDurationMs)*time.Millisecond,
		time.Duration(cfg.GapDurationMs)*time.Millisecond,
		cfg.Velocity)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tr := trainer.NewManager(cfg, seq, nil, rng)

	// MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg.MIDIInputPort, cfg.MIDIOutputPort, cfg.MIDIChannel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)

	m := tui.NewModel(tr, deviceMgr, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
