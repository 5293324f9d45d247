package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LessonMode != LessonIntervals {
		t.Errorf("LessonMode = %q, want intervals", cfg.LessonMode)
	}
	if cfg.RootNote != "C4" {
		t.Errorf("RootNote = %q, want C4", cfg.RootNote)
	}
	if len(cfg.ChordRoots) != 3 {
		t.Errorf("ChordRoots = %v, want 3 roots", cfg.ChordRoots)
	}
	if cfg.NoteDurationMs != 600 || cfg.GapDurationMs != 400 {
		t.Errorf("durations = %d/%d, want 600/400", cfg.NoteDurationMs, cfg.GapDurationMs)
	}
	if cfg.Velocity != 100 {
		t.Errorf("Velocity = %d, want 100", cfg.Velocity)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CORTINA_MIDI_INPUT_PORT", "Keystation")
	t.Setenv("CORTINA_LESSON_MODE", " Chords ")
	t.Setenv("CORTINA_ROOT_NOTE", "A3")
	t.Setenv("CORTINA_CHORD_ROOTS", "D4, A4,,E4")
	t.Setenv("CORTINA_NOTE_DURATION_MS", "300")
	t.Setenv("CORTINA_VELOCITY", "80")
	t.Setenv("CORTINA_DEBUG", "yes")

	cfg := DefaultConfig()
	cfg.applyEnv()

	if cfg.MIDIInputPort != "Keystation" {
		t.Errorf("MIDIInputPort = %q", cfg.MIDIInputPort)
	}
	if cfg.LessonMode != LessonChords {
		t.Errorf("LessonMode = %q, want chords", cfg.LessonMode)
	}
	if cfg.RootNote != "A3" {
		t.Errorf("RootNote = %q, want A3", cfg.RootNote)
	}
	want := []string{"D4", "A4", "E4"}
	if len(cfg.ChordRoots) != len(want) {
		t.Fatalf("ChordRoots = %v, want %v", cfg.ChordRoots, want)
	}
	for i, r := range want {
		if cfg.ChordRoots[i] != r {
			t.Errorf("ChordRoots[%d] = %q, want %q", i, cfg.ChordRoots[i], r)
		}
	}
	if cfg.NoteDurationMs != 300 {
		t.Errorf("NoteDurationMs = %d, want 300", cfg.NoteDurationMs)
	}
	if cfg.Velocity != 80 {
		t.Errorf("Velocity = %d, want 80", cfg.Velocity)
	}
	if !cfg.Debug {
		t.Error("Debug not enabled")
	}
}

func TestEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("CORTINA_NOTE_DURATION_MS", "fast")
	t.Setenv("CORTINA_DEBUG", "maybe")

	cfg := DefaultConfig()
	cfg.applyEnv()

	if cfg.NoteDurationMs != 600 {
		t.Errorf("NoteDurationMs = %d, want default 600", cfg.NoteDurationMs)
	}
	if cfg.Debug {
		t.Error("Debug enabled by unparseable value")
	}
}

func TestClamp(t *testing.T) {
	cfg := &Config{
		LessonMode:      "melodies",
		MIDIChannel:     16,
		NoteDurationMs:  10,
		GapDurationMs:   -5,
		FeedbackDelayMs: 60000,
		TapHoldMs:       5,
		Velocity:        200,
	}
	cfg.clamp()

	if cfg.LessonMode != LessonIntervals {
		t.Errorf("LessonMode = %q, want fallback intervals", cfg.LessonMode)
	}
	if cfg.RootNote != "C4" {
		t.Errorf("RootNote = %q, want fallback C4", cfg.RootNote)
	}
	if len(cfg.ChordRoots) == 0 {
		t.Error("ChordRoots left empty")
	}
	if cfg.MIDIChannel != 0 {
		t.Errorf("MIDIChannel = %d, want 0", cfg.MIDIChannel)
	}
	if cfg.NoteDurationMs != 50 {
		t.Errorf("NoteDurationMs = %d, want 50", cfg.NoteDurationMs)
	}
	if cfg.GapDurationMs != 0 {
		t.Errorf("GapDurationMs = %d, want 0", cfg.GapDurationMs)
	}
	if cfg.FeedbackDelayMs != 10000 {
		t.Errorf("FeedbackDelayMs = %d, want 10000", cfg.FeedbackDelayMs)
	}
	if cfg.TapHoldMs != 50 {
		t.Errorf("TapHoldMs = %d, want 50", cfg.TapHoldMs)
	}
	if cfg.Velocity != 127 {
		t.Errorf("Velocity = %d, want 127", cfg.Velocity)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.LessonMode = LessonChords
	cfg.RootNote = "G3"
	cfg.NoteDurationMs = 450
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("config file = %q, want config.json", path)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.LessonMode != LessonChords {
		t.Errorf("LessonMode = %q after reload, want chords", loaded.LessonMode)
	}
	if loaded.RootNote != "G3" {
		t.Errorf("RootNote = %q after reload, want G3", loaded.RootNote)
	}
	if loaded.NoteDurationMs != 450 {
		t.Errorf("NoteDurationMs = %d after reload, want 450", loaded.NoteDurationMs)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LessonMode != LessonIntervals || cfg.RootNote != "C4" {
		t.Errorf("loaded %q/%q, want defaults", cfg.LessonMode, cfg.RootNote)
	}
}
