package audio

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled || cfg.SampleRate != 44100 || cfg.MasterVolume != 0.6 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if cfg.Music != "" {
		t.Errorf("default music = %q, want built-in lullaby", cfg.Music)
	}
	if got := cfg.effectVolume(CueChime); got != 0.8*0.6 {
		t.Errorf("chime volume = %v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "disable",
			env:  map[string]string{"GIFTCARD_AUDIO_ENABLED": "false"},
			check: func(t *testing.T, c *Config) {
				if c.Enabled {
					t.Error("expected audio disabled")
				}
			},
		},
		{
			name: "volume clamps",
			env:  map[string]string{"GIFTCARD_MASTER_VOLUME": "150"},
			check: func(t *testing.T, c *Config) {
				if c.MasterVolume != 1 {
					t.Errorf("MasterVolume = %v, want 1", c.MasterVolume)
				}
			},
		},
		{
			name: "volume percent",
			env:  map[string]string{"GIFTCARD_MASTER_VOLUME": "25"},
			check: func(t *testing.T, c *Config) {
				if c.MasterVolume != 0.25 {
					t.Errorf("MasterVolume = %v, want 0.25", c.MasterVolume)
				}
			},
		},
		{
			name: "effect volumes",
			env:  map[string]string{"GIFTCARD_SFX_VOLUMES": `{"sparkle": 0.1, "unknown": 1}`},
			check: func(t *testing.T, c *Config) {
				if c.EffectVolumes[CueSparkle] != 0.1 || c.EffectVolumes[CueChime] != 0.8 {
					t.Errorf("EffectVolumes = %v", c.EffectVolumes)
				}
			},
		},
		{
			name: "malformed values ignored",
			env: map[string]string{
				"GIFTCARD_AUDIO_ENABLED": "maybe",
				"GIFTCARD_SAMPLE_RATE":   "-5",
				"GIFTCARD_SFX_VOLUMES":   "{",
			},
			check: func(t *testing.T, c *Config) {
				if !c.Enabled || c.SampleRate != 44100 {
					t.Errorf("config changed: %+v", c)
				}
			},
		},
		{
			name: "music and rate",
			env:  map[string]string{"GIFTCARD_MUSIC": "/tmp/song.mp3", "GIFTCARD_SAMPLE_RATE": "48000"},
			check: func(t *testing.T, c *Config) {
				if c.Music != "/tmp/song.mp3" || c.SampleRate != 48000 {
					t.Errorf("config = %+v", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			cfg.ApplyEnv()
			tt.check(t, cfg)
		})
	}
}
