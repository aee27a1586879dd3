package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Options holds heartbeat synthesis and output settings.
type Options struct {
	SampleRate   int
	BufferMs     int
	StartHz      float64
	EndHz        float64
	ThumpMs      float64
	Gain         float64
	GainFloor    float64
	SecondBeatMs float64 // Offset of the second thump from the first
}

// DefaultOptions returns the stock heartbeat.
func DefaultOptions() Options {
	return Options{
		SampleRate:   44100,
		BufferMs:     100,
		StartHz:      80,
		EndHz:        40,
		ThumpMs:      100,
		Gain:         0.3,
		GainFloor:    0.01,
		SecondBeatMs: 150,
	}
}

// SoundManager plays heartbeats through the speaker. The speaker is opened
// lazily the first time sound is enabled; an open failure leaves sound off.
type SoundManager struct {
	mu          sync.Mutex
	opts        Options
	sr          beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	enabled     bool

	// open starts the output device playing s.
	open func(sr beep.SampleRate, bufferSize int, s beep.Streamer) error
}

// NewSoundManager creates a sound manager. Nothing is opened yet.
func NewSoundManager(opts Options) *SoundManager {
	return &SoundManager{
		opts:  opts,
		sr:    beep.SampleRate(opts.SampleRate),
		mixer: &beep.Mixer{},
		open:  openSpeaker,
	}
}

func openSpeaker(sr beep.SampleRate, bufferSize int, s beep.Streamer) error {
	if err := speaker.Init(sr, bufferSize); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// Enabled reports whether heartbeats are audible.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enabled
}

// SetEnabled turns sound on or off, opening the speaker on first enable.
func (sm *SoundManager) SetEnabled(on bool) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !on {
		sm.enabled = false
		return nil
	}
	if !sm.initialized {
		buf := sm.sr.N(time.Duration(sm.opts.BufferMs) * time.Millisecond)
		if err := sm.open(sm.sr, buf, sm.mixer); err != nil {
			sm.enabled = false
			return fmt.Errorf("open speaker: %w", err)
		}
		sm.initialized = true
	}
	sm.enabled = true
	return nil
}

// PlayHeartbeat queues one lub-dub. No-op while disabled.
func (sm *SoundManager) PlayHeartbeat() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.enabled || !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(Heartbeat(sm.sr, sm.opts))
	speaker.Unlock()
}

// Close silences everything. The speaker stays open for a later enable.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.enabled = false
}
