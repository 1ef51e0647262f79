package audio

import "math"

// NoteFrequencies holds the equal-temperament frequency of MIDI notes 0-127, A4 (69) = 440Hz
var NoteFrequencies [128]float64

func init() {
	for i := range NoteFrequencies {
		NoteFrequencies[i] = 440.0 * math.Pow(2, (float64(i)-69.0)/12.0)
	}
}

// NoteFreq returns the frequency of a MIDI note, 0 outside the table
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= len(NoteFrequencies) {
		return 0
	}
	return NoteFrequencies[midi]
}
