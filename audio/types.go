package audio

import (
	"errors"
)

// Cue is a short sound effect played over the music
type Cue int

const (
	CueChime   Cue = iota // Reaching the blessing
	CueSparkle            // Layer transition
	cueCount
)

var cueNames = [cueCount]string{"chime", "sparkle"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Sentinel errors
var (
	ErrNotReady          = errors.New("audio player not initialized")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDisabled          = errors.New("audio disabled")
)

// ParseCue returns the cue named name
func ParseCue(name string) (Cue, bool) {
	for c := Cue(0); c < cueCount; c++ {
		if cueNames[c] == name {
			return c, true
		}
	}
	return 0, false
}
