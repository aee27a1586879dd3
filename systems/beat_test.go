package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileIntensityBounded(t *testing.T) {
	const steps = 20000
	for _, p := range Profiles() {
		t.Run(p.String(), func(t *testing.T) {
			lo, hi := p.Range()
			// Sample a full phase cycle; arrhythmia also depends on global time.
			for i := 0; i <= steps; i++ {
				phase := float64(i) / steps * 2 * math.Pi
				for _, tm := range []float64{0, 13.7, 420, 9001.5} {
					v := p.Intensity(phase, tm)
					require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
					require.GreaterOrEqual(t, v, lo-1e-9, "phase %f", phase)
					require.LessOrEqual(t, v, hi+1e-9, "phase %f", phase)
				}
			}
		})
	}
}

func TestProfileNamesRoundtrip(t *testing.T) {
	for _, p := range Profiles() {
		got, err := ParseProfile(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseProfile("tachycardia")
	assert.Error(t, err)
}

func TestProfileBPM(t *testing.T) {
	want := map[Profile]float64{
		ProfileNormal: 72, ProfileIntense: 120, ProfileArrhythmia: 85,
		ProfileRacing: 160, ProfileCalm: 50, ProfileShock: 200,
	}
	for p, bpm := range want {
		assert.Equal(t, bpm, p.BPM(), p.String())
	}
}

func TestSetProfileResetsPhase(t *testing.T) {
	e := NewBeatEngine(ProfileNormal, DefaultBeatOptions(), rand.New(rand.NewSource(1)))
	for i := 0; i < 37; i++ {
		e.Advance(float64(i)*1.5, float64(i)*16)
	}
	require.NotZero(t, e.State.Phase)

	next := e.Next()
	assert.Equal(t, ProfileIntense, next)
	assert.Zero(t, e.State.Phase)
	assert.Equal(t, 120.0, e.State.BPM)

	// The first frame after the switch starts from the profile's phase origin
	f := e.Advance(0, 1000)
	assert.InDelta(t, ProfileIntense.Intensity(0.18, 0), f.Intensity, 1e-12)
}

func TestNextCycles(t *testing.T) {
	e := NewBeatEngine(ProfileShock, DefaultBeatOptions(), rand.New(rand.NewSource(1)))
	assert.Equal(t, ProfileNormal, e.Next())
}

func TestBeatTriggerSpacing(t *testing.T) {
	e := NewBeatEngine(ProfileRacing, DefaultBeatOptions(), rand.New(rand.NewSource(1)))
	interval := 60000 / 160.0

	var beats []float64
	now := 0.0
	for frame := 0; frame < 600; frame++ {
		now += 1000.0 / 60
		f := e.Advance(float64(frame)*1.5, now)
		if f.Beat {
			require.Greater(t, f.Intensity, 0.95)
			beats = append(beats, now)
		}
	}
	require.Greater(t, len(beats), 2)
	for i := 1; i < len(beats); i++ {
		assert.Greater(t, beats[i]-beats[i-1], interval*0.8)
	}
}

func TestCalmNeverTriggers(t *testing.T) {
	e := NewBeatEngine(ProfileCalm, DefaultBeatOptions(), rand.New(rand.NewSource(1)))
	for frame := 0; frame < 1000; frame++ {
		f := e.Advance(float64(frame)*1.5, float64(frame)*16)
		assert.False(t, f.Beat)
	}
}

func TestShakeDecays(t *testing.T) {
	e := NewBeatEngine(ProfileNormal, DefaultBeatOptions(), rand.New(rand.NewSource(1)))
	e.State.Shake = 20
	e.Advance(0, 0)
	assert.InDelta(t, 17, e.State.Shake, 1e-9)

	f := e.Advance(0, 0)
	assert.LessOrEqual(t, math.Abs(f.ShakeX), e.State.Shake/2)
	assert.LessOrEqual(t, math.Abs(f.ShakeY), e.State.Shake/2)
}

func TestIntenseSpikesShake(t *testing.T) {
	e := NewBeatEngine(ProfileIntense, DefaultBeatOptions(), rand.New(rand.NewSource(1)))
	spiked := false
	for frame := 0; frame < 200; frame++ {
		f := e.Advance(float64(frame)*1.5, float64(frame)*16)
		if f.Intensity > 0.95 {
			assert.InDelta(t, 15*0.85, e.State.Shake, 1e-9)
			spiked = true
		}
	}
	assert.True(t, spiked)
}
