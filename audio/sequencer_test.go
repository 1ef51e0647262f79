package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestNoteFrequenciesTable(t *testing.T) {
	for i := 1; i < len(NoteFrequencies); i++ {
		if NoteFrequencies[i] <= NoteFrequencies[i-1] {
			t.Fatalf("table not increasing at %d", i)
		}
	}
	if r := NoteFrequencies[81] / NoteFrequencies[69]; math.Abs(r-2) > 1e-9 {
		t.Errorf("octave ratio = %v, want 2", r)
	}
}

func TestSequencerLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	p := &MelodyPattern{Length: 4, Notes: []NoteTrigger{{Step: 0, Note: 69, Velocity: 1, Duration: 2}}}
	seq := NewSequencer(p, 100*time.Millisecond, 0, 0, rate)

	samples := drain(seq)
	if len(samples) != seq.Len() || seq.Len() != 4*800 {
		t.Fatalf("got %d samples, Len() = %d, want 3200", len(samples), seq.Len())
	}
	if p := peak(samples[:1600]); p == 0 {
		t.Error("held note is silent")
	}
	// Released with no tail after two steps
	if p := peak(samples[1601:]); p != 0 {
		t.Errorf("peak after release = %v, want silence", p)
	}
}

func TestSequencerVoiceStealing(t *testing.T) {
	rate := beep.SampleRate(8000)
	p := &MelodyPattern{Length: 1}
	for i := 0; i < MaxPolyphony+1; i++ {
		p.Notes = append(p.Notes, NoteTrigger{Step: 0, Note: 60 + i, Velocity: 0.2, Duration: 1})
	}
	seq := NewSequencer(p, 50*time.Millisecond, 0, 0, rate)

	buf := make([][2]float64, 1)
	seq.Stream(buf)

	active := 0
	for _, v := range seq.voices {
		if v.Active() {
			active++
		}
	}
	if active != MaxPolyphony {
		t.Errorf("active voices = %d, want %d", active, MaxPolyphony)
	}
}

func TestSequencerResetAndVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	p := &MelodyPattern{Length: 2, Notes: []NoteTrigger{{Step: 0, Note: 72, Velocity: 1, Duration: 2}}}
	seq := NewSequencer(p, 50*time.Millisecond, 5*time.Millisecond, 20*time.Millisecond, rate)

	loud := peak(drain(seq))
	if _, ok := seq.Stream(make([][2]float64, 8)); ok {
		t.Error("finished sequencer kept streaming")
	}

	seq.Reset()
	seq.SetVolume(0.25)
	quiet := peak(drain(seq))
	if math.Abs(quiet-loud*0.25) > 1e-9 {
		t.Errorf("quiet peak = %v, want %v", quiet, loud*0.25)
	}

	seq.Reset()
	seq.SetVolume(-1)
	if p := peak(drain(seq)); p != 0 {
		t.Errorf("muted peak = %v", p)
	}
}

func TestLullabyPattern(t *testing.T) {
	p := LullabyPattern()

	beats := 0.0
	notes := 0
	for _, n := range lullabyMelody {
		beats += n.beats
		if n.midi != 0 {
			notes++
		}
	}
	if p.Length != int(beats*lullabyStepsPerBeat) || len(p.Notes) != notes {
		t.Fatalf("pattern length %d with %d notes, want %v beats and %d notes", p.Length, len(p.Notes), beats, notes)
	}
	for i := 1; i < len(p.Notes); i++ {
		if p.Notes[i].Step <= p.Notes[i-1].Step {
			t.Fatalf("note %d at step %d does not follow step %d", i, p.Notes[i].Step, p.Notes[i-1].Step)
		}
	}
}
