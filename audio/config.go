package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/giftcard/constants"
)

// Config controls the music player
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	// Music is the looped track; empty selects the built-in lullaby
	Music         string
	EffectVolumes map[Cue]float64
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		SampleRate:   constants.DefaultSampleRate,
		EffectVolumes: map[Cue]float64{
			CueChime:   0.8,
			CueSparkle: 0.4,
		},
	}
}

// ApplyEnv overrides c from GIFTCARD_* environment variables
// Malformed values are ignored
func (c *Config) ApplyEnv() {
	if enabled := os.Getenv("GIFTCARD_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv("GIFTCARD_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if effectVols := os.Getenv("GIFTCARD_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for cue := Cue(0); cue < cueCount; cue++ {
				if v, ok := volumes[cue.String()]; ok {
					c.EffectVolumes[cue] = clampVolume(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("GIFTCARD_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			c.SampleRate = val
		}
	}

	if music := os.Getenv("GIFTCARD_MUSIC"); music != "" {
		c.Music = music
	}
}

// effectVolume returns the final gain of cue
func (c *Config) effectVolume(cue Cue) float64 {
	v, ok := c.EffectVolumes[cue]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
