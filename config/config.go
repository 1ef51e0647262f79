// Package config loads the giftcard configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/giftcard/audio"
	"github.com/lixenwraith/giftcard/card"
	"github.com/lixenwraith/giftcard/input"
)

// DefaultFile is looked up in the working directory when no --config is given
const DefaultFile = "giftcard.yaml"

// Config represents the application configuration.
type Config struct {
	Card  CardConfig        `yaml:"card"`
	Audio AudioConfig       `yaml:"audio"`
	Log   LogConfig         `yaml:"log"`
	Keys  map[string]string `yaml:"keys"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `yaml:"-"`
}

// CardConfig holds the choreography and content settings.
// Zero durations select the variant defaults.
type CardConfig struct {
	Variant            string        `yaml:"variant"`
	Content            string        `yaml:"content"`
	Watch              bool          `yaml:"watch"`
	TransitionWindow   time.Duration `yaml:"transition_window"`
	OpeningDuration    time.Duration `yaml:"opening_duration"`
	TypewriterInterval time.Duration `yaml:"typewriter_interval"`
}

// AudioConfig holds the music settings.
type AudioConfig struct {
	Enabled    bool               `yaml:"enabled"`
	Volume     int                `yaml:"volume"`
	SampleRate int                `yaml:"sample_rate"`
	Music      string             `yaml:"music"`
	Effects    map[string]float64 `yaml:"effects"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// NewDefaultConfig returns a new Config with the built-in values.
func NewDefaultConfig() *Config {
	return &Config{
		Card: CardConfig{
			Variant: card.VariantEnhanced.String(),
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     60,
			SampleRate: 44100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Card.Validate(); err != nil {
		return fmt.Errorf("card: %w", err)
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if _, err := input.ParseBindings(c.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// Validate validates the card configuration.
func (c *CardConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Variant, validation.By(func(value any) error {
			_, err := card.ParseVariant(value.(string))
			return err
		})),
		validation.Field(&c.TransitionWindow, validation.Min(time.Duration(0)), validation.Max(10*time.Second)),
		validation.Field(&c.OpeningDuration, validation.Min(time.Duration(0)), validation.Max(10*time.Second)),
		validation.Field(&c.TypewriterInterval, validation.Min(time.Duration(0)), validation.Max(time.Second)),
	)
}

// Validate validates the audio configuration.
func (c *AudioConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Volume, validation.Min(0), validation.Max(100)),
		validation.Field(&c.SampleRate, validation.Required, validation.Min(8000), validation.Max(192000)),
		validation.Field(&c.Effects, validation.By(validEffects)),
	)
}

func validEffects(value any) error {
	for name, v := range value.(map[string]float64) {
		if _, ok := audio.ParseCue(name); !ok {
			return fmt.Errorf("unknown effect %q", name)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("effect %q volume %v out of [0,1]", name, v)
		}
	}
	return nil
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

// Load reads filename over the defaults, expanding environment variables, then applies
// GIFTCARD_* overrides and validates. An empty filename tries DefaultFile and falls back
// to the defaults when it does not exist.
func Load(filename string) (*Config, error) {
	cfg := NewDefaultConfig()

	path, err := Find(filename)
	switch {
	case errors.Is(err, ErrNoConfig):
	case err != nil:
		return nil, err
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg.Source = path
		cfg.resolve(filepath.Dir(path))
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// resolve anchors relative file references at the config file's directory
func (c *Config) resolve(dir string) {
	anchor := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Card.Content = anchor(c.Card.Content)
	c.Audio.Music = anchor(c.Audio.Music)
	c.Log.File = anchor(c.Log.File)
}

// ApplyEnv overrides card and log settings from GIFTCARD_* environment variables.
// Audio variables are read by audio.Config.ApplyEnv when the audio config is built.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GIFTCARD_VARIANT"); v != "" {
		c.Card.Variant = v
	}
	if v := os.Getenv("GIFTCARD_CONTENT"); v != "" {
		c.Card.Content = v
	}
	if v := os.Getenv("GIFTCARD_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Card.Watch = b
		}
	}
	if v := os.Getenv("GIFTCARD_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("GIFTCARD_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// MachineConfig returns the choreography for the configured variant
func (c *Config) MachineConfig() (card.MachineConfig, error) {
	v, err := card.ParseVariant(c.Card.Variant)
	if err != nil {
		return card.MachineConfig{}, err
	}
	mc := card.DefaultMachineConfig(v)
	if v == card.VariantEnhanced {
		if c.Card.TransitionWindow > 0 {
			mc.TransitionWindow = c.Card.TransitionWindow
		}
		if c.Card.OpeningDuration > 0 {
			mc.OpeningDuration = c.Card.OpeningDuration
		}
	}
	return mc, nil
}

// AudioConfig builds the player settings, environment overrides applied last
func (c *Config) AudioConfig() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = float64(c.Audio.Volume) / 100
	ac.SampleRate = c.Audio.SampleRate
	ac.Music = c.Audio.Music
	for name, v := range c.Audio.Effects {
		if cue, ok := audio.ParseCue(name); ok {
			ac.EffectVolumes[cue] = v
		}
	}
	ac.ApplyEnv()
	return ac
}

// KeyTable returns the default bindings with the keys section merged over them
func (c *Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.ParseBindings(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

// LogLevel returns the configured level, info when unparsable
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ErrNoConfig is returned by Find when no configuration file exists
var ErrNoConfig = errors.New("no configuration file")

// Find returns filename when set, else DefaultFile when it exists
func Find(filename string) (string, error) {
	if filename != "" {
		return filename, nil
	}
	if _, err := os.Stat(DefaultFile); err != nil {
		return "", ErrNoConfig
	}
	return DefaultFile, nil
}
