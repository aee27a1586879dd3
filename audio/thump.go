// Package audio synthesizes the heartbeat sound.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ThumpGenerator is a single low thump: a sine whose frequency and gain both
// fall exponentially over a fixed duration. It drains after the duration.
type ThumpGenerator struct {
	sr      beep.SampleRate
	pos     int
	total   int
	phase   float64
	startHz float64
	endHz   float64
	gain    float64
	floor   float64
}

// NewThumpGenerator creates a thump sweeping startHz to endHz and gain to floor over d.
func NewThumpGenerator(sr beep.SampleRate, d time.Duration, startHz, endHz, gain, floor float64) *ThumpGenerator {
	return &ThumpGenerator{
		sr:      sr,
		total:   sr.N(d),
		startHz: startHz,
		endHz:   endHz,
		gain:    gain,
		floor:   floor,
	}
}

// expRamp interpolates from a to b exponentially. Both must be positive.
func expRamp(a, b, k float64) float64 {
	if a <= 0 || b <= 0 {
		return a + (b-a)*k
	}
	return a * math.Pow(b/a, k)
}

func (g *ThumpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		k := float64(g.pos) / float64(g.total)
		freq := expRamp(g.startHz, g.endHz, k)
		amp := expRamp(g.gain, g.floor, k)

		sample := amp * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ThumpGenerator) Err() error {
	return nil
}

// Heartbeat returns the two-thump "lub-dub" streamer.
func Heartbeat(sr beep.SampleRate, opts Options) beep.Streamer {
	thump := func() beep.Streamer {
		return NewThumpGenerator(sr, msToDuration(opts.ThumpMs), opts.StartHz, opts.EndHz, opts.Gain, opts.GainFloor)
	}
	gap := sr.N(msToDuration(opts.SecondBeatMs - opts.ThumpMs))
	if gap < 0 {
		gap = 0
	}
	return beep.Seq(thump(), beep.Silence(gap), thump())
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
