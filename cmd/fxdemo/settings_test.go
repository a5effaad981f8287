package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/euphoriae/audiofx/engine"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func loadAndApply(t *testing.T, content string) *engine.Engine {
	t.Helper()

	s, err := loadSettings(writeSettings(t, content))
	if err != nil {
		t.Fatal(err)
	}

	e := engine.New()
	s.apply(e)

	return e
}

// --- mode-only presets ---

func TestApplyModeOnlyPresetKeepsMacro(t *testing.T) {
	e := loadAndApply(t, "surroundMode: 2\nheadphoneSurround: true\n")

	// The Movie macro's tuple must survive: knobs absent from the file are
	// not written back over it.
	if got := e.Surround3D(); got != 0.7 {
		t.Fatalf("surround3D: got %v want 0.7", got)
	}

	if got := e.RoomSize(); got != 0.7 {
		t.Fatalf("roomSize: got %v want 0.7", got)
	}

	if got := e.SurroundLevel(); got != 0.6 {
		t.Fatalf("surroundLevel: got %v want 0.6", got)
	}

	if !e.HeadphoneSurround() {
		t.Fatal("headphoneSurround not applied")
	}
}

func TestApplyExplicitKnobOverridesMacro(t *testing.T) {
	e := loadAndApply(t, "surroundMode: 2\nroomSize: 0.1\n")

	if got := e.RoomSize(); got != 0.1 {
		t.Fatalf("roomSize: got %v want 0.1", got)
	}

	// Knobs the file does not name keep the macro's values.
	if got := e.Surround3D(); got != 0.7 {
		t.Fatalf("surround3D: got %v want 0.7", got)
	}
}

// --- partial files ---

func TestApplyPartialFileKeepsEngineDefaults(t *testing.T) {
	e := loadAndApply(t, "volume: 1.5\n")

	if got := e.Volume(); got != 1.5 {
		t.Fatalf("volume: got %v want 1.5", got)
	}

	if got := e.LimiterCeiling(); got != 1 {
		t.Fatalf("limiterCeiling: got %v want default 1", got)
	}

	if got := e.ChannelSeparation(); got != 0.5 {
		t.Fatalf("channelSeparation: got %v want default 0.5", got)
	}
}

func TestApplyReverbPresetWithoutWet(t *testing.T) {
	e := loadAndApply(t, "reverbPreset: 3\n")

	if got := e.ReverbPreset(); got != 3 {
		t.Fatalf("preset: got %v want 3", got)
	}

	if got := e.ReverbWet(); got != 0 {
		t.Fatalf("wet: got %v want 0", got)
	}
}

func TestApplyReverbWetWithoutPreset(t *testing.T) {
	e := loadAndApply(t, "reverbWet: 0.4\n")

	if got := e.ReverbPreset(); got != 0 {
		t.Fatalf("preset: got %v want 0", got)
	}

	if got := e.ReverbWet(); got != 0.4 {
		t.Fatalf("wet: got %v want 0.4", got)
	}
}

func TestApplyEqualizerBands(t *testing.T) {
	e := loadAndApply(t, "equalizer: [3, -3]\n")

	if got := e.EqualizerBand(0); got != 3 {
		t.Fatalf("band 0: got %v want 3", got)
	}

	if got := e.EqualizerBand(1); got != -3 {
		t.Fatalf("band 1: got %v want -3", got)
	}

	if got := e.EqualizerBand(2); got != 0 {
		t.Fatalf("band 2: got %v want 0", got)
	}
}

// --- shipped example file ---

func TestExampleSettingsFileEnablesSurround(t *testing.T) {
	s, err := loadSettings("example-settings.yaml")
	if err != nil {
		t.Fatal(err)
	}

	e := engine.New()
	s.apply(e)

	// surroundMode: 2 (Movie) with no explicit surround3D key must leave
	// the 3D stage enabled.
	if got := e.Surround3D(); got != 0.7 {
		t.Fatalf("surround3D: got %v want 0.7", got)
	}

	if !e.HeadphoneSurround() {
		t.Fatal("headphoneSurround not applied")
	}
}

// --- load errors ---

func TestLoadSettingsErrors(t *testing.T) {
	if _, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	if _, err := loadSettings(writeSettings(t, "volume: [not a number\n")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
