package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LessonMode selects which challenge family a lesson draws from
type LessonMode string

const (
	LessonIntervals LessonMode = "intervals"
	LessonChords    LessonMode = "chords"
)

// Config is the main configuration structure
type Config struct {
	MIDIInputPort  string `json:"midiInputPort,omitempty"`
	MIDIOutputPort string `json:"midiOutputPort,omitempty"`
	MIDIChannel    uint8  `json:"midiChannel"`

	LessonMode LessonMode `json:"lessonMode"`
	RootNote   string     `json:"rootNote"`
	ChordRoots []string   `json:"chordRoots"`

	NoteDurationMs  int   `json:"noteDurationMs"`
	GapDurationMs   int   `json:"gapDurationMs"`
	FeedbackDelayMs int   `json:"feedbackDelayMs"`
	TapHoldMs       int   `json:"tapHoldMs"`
	Velocity        uint8 `json:"velocity"`

	Debug bool `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LessonMode:      LessonIntervals,
		RootNote:        "C4",
		ChordRoots:      []string{"C4", "F4", "G4"},
		NoteDurationMs:  600,
		GapDurationMs:   400,
		FeedbackDelayMs: 900,
		TapHoldMs:       250,
		Velocity:        100,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cortina"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, applies CORTINA_* environment
// overrides on top, and clamps everything into usable ranges. A missing
// file just means defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.clamp()
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnv layers CORTINA_* variables over whatever the file set
func (c *Config) applyEnv() {
	c.MIDIInputPort = getEnv("CORTINA_MIDI_INPUT_PORT", c.MIDIInputPort)
	c.MIDIOutputPort = getEnv("CORTINA_MIDI_OUTPUT_PORT", c.MIDIOutputPort)
	c.MIDIChannel = uint8(getEnvInt("CORTINA_MIDI_CHANNEL", int(c.MIDIChannel)))

	if v := getEnv("CORTINA_LESSON_MODE", ""); v != "" {
		c.LessonMode = LessonMode(strings.ToLower(strings.TrimSpace(v)))
	}
	c.RootNote = getEnv("CORTINA_ROOT_NOTE", c.RootNote)
	if v := getEnv("CORTINA_CHORD_ROOTS", ""); v != "" {
		var roots []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				roots = append(roots, part)
			}
		}
		if len(roots) > 0 {
			c.ChordRoots = roots
		}
	}

	c.NoteDurationMs = getEnvInt("CORTINA_NOTE_DURATION_MS", c.NoteDurationMs)
	c.GapDurationMs = getEnvInt("CORTINA_GAP_DURATION_MS", c.GapDurationMs)
	c.FeedbackDelayMs = getEnvInt("CORTINA_FEEDBACK_DELAY_MS", c.FeedbackDelayMs)
	c.TapHoldMs = getEnvInt("CORTINA_TAP_HOLD_MS", c.TapHoldMs)
	c.Velocity = uint8(clampInt(getEnvInt("CORTINA_VELOCITY", int(c.Velocity)), 1, 127))
	c.Debug = getEnvBool("CORTINA_DEBUG", c.Debug)
}

// clamp forces every field into a range the engine can work with
func (c *Config) clamp() {
	if c.LessonMode != LessonIntervals && c.LessonMode != LessonChords {
		c.LessonMode = LessonIntervals
	}
	if c.RootNote == "" {
		c.RootNote = "C4"
	}
	if len(c.ChordRoots) == 0 {
		c.ChordRoots = []string{"C4", "F4", "G4"}
	}
	if c.MIDIChannel > 15 {
		c.MIDIChannel = 0
	}
	c.NoteDurationMs = clampInt(c.NoteDurationMs, 50, 5000)
	c.GapDurationMs = clampInt(c.GapDurationMs, 0, 5000)
	c.FeedbackDelayMs = clampInt(c.FeedbackDelayMs, 100, 10000)
	c.TapHoldMs = clampInt(c.TapHoldMs, 50, 2000)
	if c.Velocity == 0 {
		c.Velocity = 100
	}
	if c.Velocity > 127 {
		c.Velocity = 127
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
