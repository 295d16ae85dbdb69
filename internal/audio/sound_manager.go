// Package audio synthesizes the board's sound cues with beep.
// Every cue is generated at runtime; there are no sample files.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
)

// SoundManager plays board cues through the system speaker.
// Calls before Initialize or after Cleanup are silently dropped.
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
}

var _ core.AudioSink = (*SoundManager)(nil)

// NewSoundManager creates a manager. Volume is linear in [0, 1].
func NewSoundManager(sampleRate int, volume float64) *SoundManager {
	return &SoundManager{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker. It fails on hosts without an audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every sound.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.music != nil {
		speaker.Lock()
		sm.music.Paused = true
		speaker.Unlock()
		sm.music = nil
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) PlayMoved() {
	sm.play(Sequence(sm.rate, WaveTriangle, movedNotes...))
}

func (sm *SoundManager) PlayInvalidMove() {
	sm.play(Sequence(sm.rate, WaveSquare, invalidNotes...))
}

func (sm *SoundManager) PlayErased() {
	sm.play(Sequence(sm.rate, WaveSine, erasedNotes...))
}

// PlayMusic starts the background loop once; later calls are ignored.
func (sm *SoundManager) PlayMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.music != nil {
		return
	}
	loop := beep.Loop(-1, musicLoop(sm.rate))
	sm.music = &beep.Ctrl{Streamer: scaled(loop, sm.volume*0.5)}
	speaker.Lock()
	sm.mixer.Add(sm.music)
	speaker.Unlock()
}

// musicLoop renders one bar into a buffer so it can be looped.
func musicLoop(rate beep.SampleRate) beep.StreamSeeker {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(Sequence(rate, WaveTriangle, musicNotes...))
	return buf.Streamer(0, buf.Len())
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(scaled(s, sm.volume))
	speaker.Unlock()
}

// scaled wraps a streamer in a linear volume. Log2(0) is -Inf, so zero mutes.
func scaled(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewSink returns a speaker-backed sink, or a silent one when audio is
// disabled or the device cannot be opened.
func NewSink(enabled bool, sampleRate int, volume float64, logger *log.Logger) (core.AudioSink, func()) {
	if !enabled {
		return core.NopAudio{}, func() {}
	}
	sm := NewSoundManager(sampleRate, volume)
	if err := sm.Initialize(); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return core.NopAudio{}, func() {}
	}
	return sm, sm.Cleanup
}
