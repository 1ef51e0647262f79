package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/giftcard/audio"
	"github.com/lixenwraith/giftcard/card"
)

// clearEnv blanks every override so the host environment cannot leak into a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GIFTCARD_VARIANT", "GIFTCARD_CONTENT", "GIFTCARD_WATCH", "GIFTCARD_LOG_LEVEL", "GIFTCARD_LOG_FILE",
		"GIFTCARD_AUDIO_ENABLED", "GIFTCARD_MASTER_VOLUME", "GIFTCARD_SFX_VOLUMES", "GIFTCARD_SAMPLE_RATE", "GIFTCARD_MUSIC",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "giftcard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	mc, err := cfg.MachineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if mc != card.DefaultMachineConfig(card.VariantEnhanced) {
		t.Errorf("MachineConfig = %+v", mc)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIFTCARD_TEST_MUSIC", "song.wav")
	path := writeConfig(t, `
card:
  variant: enhanced
  content: card.yaml
  watch: true
  transition_window: 400ms
  typewriter_interval: 20ms
audio:
  volume: 30
  music: ${GIFTCARD_TEST_MUSIC}
  effects:
    chime: 0.5
log:
  level: debug
  file: /tmp/giftcard.log
keys:
  n: next_photo
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(path)
	if cfg.Source != path {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Card.Content != filepath.Join(dir, "card.yaml") {
		t.Errorf("Content = %q, want resolved against config dir", cfg.Card.Content)
	}
	if !cfg.Card.Watch || cfg.Card.TypewriterInterval != 20*time.Millisecond {
		t.Errorf("Card = %+v", cfg.Card)
	}
	if cfg.Log.File != "/tmp/giftcard.log" || cfg.LogLevel() != log.DebugLevel {
		t.Errorf("Log = %+v", cfg.Log)
	}
	// Unset keys keep their defaults
	if !cfg.Audio.Enabled || cfg.Audio.SampleRate != 44100 {
		t.Errorf("Audio defaults lost: %+v", cfg.Audio)
	}

	mc, err := cfg.MachineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if mc.TransitionWindow != 400*time.Millisecond || mc.OpeningDuration != 1500*time.Millisecond {
		t.Errorf("MachineConfig = %+v", mc)
	}

	ac := cfg.AudioConfig()
	if ac.Music != filepath.Join(dir, "song.wav") {
		t.Errorf("Music = %q", ac.Music)
	}
	if ac.MasterVolume != 0.3 || ac.EffectVolumes[audio.CueChime] != 0.5 || ac.EffectVolumes[audio.CueSparkle] != 0.4 {
		t.Errorf("AudioConfig = %+v", ac)
	}

	kt, err := cfg.KeyTable()
	if err != nil {
		t.Fatal(err)
	}
	if kt.Runes['n'].Action != card.ActionNextPhoto || kt.SpecialKeys[tcell.KeyEnter].Action != card.ActionContinue {
		t.Error("key table not merged over defaults")
	}
}

func TestBaselineIgnoresDurations(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Card.Variant = "baseline"
	cfg.Card.TransitionWindow = time.Second
	mc, err := cfg.MachineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if mc.TransitionWindow != 0 || mc.Variant != card.VariantBaseline {
		t.Errorf("MachineConfig = %+v", mc)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"variant", func(c *Config) { c.Card.Variant = "fancy" }, "card"},
		{"negative window", func(c *Config) { c.Card.TransitionWindow = -time.Second }, "card"},
		{"slow typewriter", func(c *Config) { c.Card.TypewriterInterval = 2 * time.Second }, "card"},
		{"volume", func(c *Config) { c.Audio.Volume = 150 }, "audio"},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 100 }, "audio"},
		{"unknown effect", func(c *Config) { c.Audio.Effects = map[string]float64{"boom": 1} }, "audio"},
		{"effect volume", func(c *Config) { c.Audio.Effects = map[string]float64{"chime": 2} }, "audio"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log"},
		{"keys", func(c *Config) { c.Keys = map[string]string{"x": "fly"} }, "keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.HasPrefix(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want %s error", err, tt.wantErr)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Load(writeConfig(t, "card: [")); err == nil {
		t.Error("malformed yaml accepted")
	}
	if _, err := Load(writeConfig(t, "audio:\n  volume: 101\n")); err == nil || !strings.Contains(err.Error(), "validation") {
		t.Errorf("invalid volume error = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIFTCARD_VARIANT", "baseline")
	t.Setenv("GIFTCARD_WATCH", "true")
	t.Setenv("GIFTCARD_LOG_LEVEL", "WARN")
	t.Setenv("GIFTCARD_MASTER_VOLUME", "10")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Card.Variant != "baseline" || !cfg.Card.Watch || cfg.LogLevel() != log.WarnLevel {
		t.Errorf("env not applied: %+v %+v", cfg.Card, cfg.Log)
	}
	if ac := cfg.AudioConfig(); ac.MasterVolume != 0.1 {
		t.Errorf("MasterVolume = %v, want 0.1 from env", ac.MasterVolume)
	}
}

func TestFind(t *testing.T) {
	if got, err := Find("x.yaml"); err != nil || got != "x.yaml" {
		t.Errorf("Find(x.yaml) = %q, %v", got, err)
	}
	if _, err := Find(""); !errors.Is(err, ErrNoConfig) {
		t.Errorf("Find(\"\") error = %v, want ErrNoConfig", err)
	}
}
