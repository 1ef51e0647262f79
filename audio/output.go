package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the sound device the player feeds
// Lock and Unlock guard streamer state against the device's own goroutine
type Output interface {
	Init(rate beep.SampleRate, buffer time.Duration) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through beep's process-wide speaker
type SpeakerOutput struct{}

func (SpeakerOutput) Init(rate beep.SampleRate, buffer time.Duration) error {
	return speaker.Init(rate, rate.N(buffer))
}

func (SpeakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (SpeakerOutput) Lock()                { speaker.Lock() }
func (SpeakerOutput) Unlock()              { speaker.Unlock() }

func (SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}
