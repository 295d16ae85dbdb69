package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Note is one step of a sequence. A zero frequency is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// tone is a single enveloped oscillator voice.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	wave    WaveType
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone creates a finite streamer playing one note with a short
// attack and release so clips do not click.
func NewTone(rate beep.SampleRate, n Note, wave WaveType) beep.Streamer {
	total := rate.N(n.Duration)
	edge := min(rate.N(5*time.Millisecond), total/2)
	return &tone{
		rate:    rate,
		freq:    n.Freq,
		wave:    wave,
		total:   total,
		attack:  edge,
		release: edge,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		val := 0.0
		if t.freq > 0 {
			val = waveAt(t.wave, t.phase) * t.envelope()
			t.phase += t.freq / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}
		samples[i][0] = val
		samples[i][1] = val
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if rem := t.total - t.pos; t.release > 0 && rem < t.release {
		return float64(rem) / float64(t.release)
	}
	return 1
}

func waveAt(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Sequence plays notes back to back.
func Sequence(rate beep.SampleRate, wave WaveType, notes ...Note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = NewTone(rate, n, wave)
	}
	return beep.Seq(parts...)
}

// Length reports the number of samples a sequence of notes spans.
func Length(rate beep.SampleRate, notes ...Note) int {
	total := 0
	for _, n := range notes {
		total += rate.N(n.Duration)
	}
	return total
}

const (
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA3 = 220.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA2 = 110.00
	noteF2 = 87.31
	noteG2 = 98.00
	noteC3 = 130.81
)

// Cue note lists.
var (
	movedNotes   = []Note{{noteC5, 40 * time.Millisecond}}
	invalidNotes = []Note{{noteE4, 70 * time.Millisecond}, {noteA3, 110 * time.Millisecond}}
	erasedNotes  = []Note{
		{noteC5, 50 * time.Millisecond},
		{noteE5, 50 * time.Millisecond},
		{noteG5, 90 * time.Millisecond},
	}
	musicNotes = []Note{
		{noteA2, 300 * time.Millisecond}, {0, 100 * time.Millisecond},
		{noteA2, 200 * time.Millisecond}, {noteC3, 200 * time.Millisecond},
		{noteF2, 300 * time.Millisecond}, {0, 100 * time.Millisecond},
		{noteG2, 200 * time.Millisecond}, {noteC4 / 2, 200 * time.Millisecond},
		{noteG4 / 4, 400 * time.Millisecond},
	}
)
