package systems

import (
	"fmt"
	"math"
	"math/rand"
)

// Profile is a rhythm profile driving the beat intensity.
type Profile uint8

const (
	ProfileNormal Profile = iota
	ProfileIntense
	ProfileArrhythmia
	ProfileRacing
	ProfileCalm
	ProfileShock
	profileCount
)

var profileNames = [profileCount]string{
	ProfileNormal:     "normal",
	ProfileIntense:    "intense",
	ProfileArrhythmia: "arrhythmia",
	ProfileRacing:     "racing",
	ProfileCalm:       "calm",
	ProfileShock:      "shock",
}

// Profiles lists every profile in cycle order.
func Profiles() []Profile {
	out := make([]Profile, profileCount)
	for i := range out {
		out[i] = Profile(i)
	}
	return out
}

func (p Profile) String() string {
	if p < profileCount {
		return profileNames[p]
	}
	return fmt.Sprintf("profile(%d)", uint8(p))
}

// ParseProfile looks a profile up by name.
func ParseProfile(name string) (Profile, error) {
	for i, n := range profileNames {
		if n == name {
			return Profile(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rhythm profile %q", name)
}

// BPM returns the profile's nominal rate in beats per minute.
func (p Profile) BPM() float64 {
	switch p {
	case ProfileIntense:
		return 120
	case ProfileArrhythmia:
		return 85
	case ProfileRacing:
		return 160
	case ProfileCalm:
		return 50
	case ProfileShock:
		return 200
	default:
		return 72
	}
}

// Range returns the documented bounds of the profile's intensity.
func (p Profile) Range() (lo, hi float64) {
	switch p {
	case ProfileIntense:
		return 0, 1.5
	case ProfileRacing:
		return 0.1, 1.3
	case ProfileCalm:
		return 0, 0.7
	case ProfileShock:
		return 0, 1.8
	default:
		return 0, 1
	}
}

// Advance returns the phase increment for one frame at global time t.
func (p Profile) Advance(t float64) float64 {
	switch p {
	case ProfileIntense:
		return 0.18
	case ProfileArrhythmia:
		return 0.13 + math.Sin(t*0.015)*0.04
	case ProfileRacing:
		return 0.28
	case ProfileCalm:
		return 0.07
	case ProfileShock:
		return 0.42
	default:
		return 0.11
	}
}

// Intensity evaluates the profile's closed-form intensity at phase and global time t.
func (p Profile) Intensity(phase, t float64) float64 {
	switch p {
	case ProfileIntense:
		pulse := math.Sin(phase)*0.5 + 0.5
		double := math.Sin(phase*2.5)*0.4 + 0.6
		return pulse * double * 1.5
	case ProfileArrhythmia:
		irregular := math.Sin(phase+math.Sin(t*0.07)*2)*0.5 + 0.5
		skip := math.Sin(phase*1.7)*0.4 + 0.6
		return irregular * skip
	case ProfileRacing:
		return math.Sin(phase*1.5)*0.6 + 0.7
	case ProfileCalm:
		pulse := math.Sin(phase)*0.4 + 0.5
		double := math.Sin(phase*2)*0.25 + 0.75
		return pulse * double * 0.7
	case ProfileShock:
		return math.Abs(math.Sin(phase*3)) * 1.8
	default:
		cycle := math.Sin(phase)*0.5 + 0.5
		double := math.Sin(phase*2.2)*0.35 + 0.65
		return cycle * double
	}
}

// BeatOptions tunes trigger detection and shake.
type BeatOptions struct {
	TriggerThreshold float64
	TriggerFraction  float64
	ShakeDecay       float64
}

// DefaultBeatOptions returns the stock beat tuning.
func DefaultBeatOptions() BeatOptions {
	return BeatOptions{TriggerThreshold: 0.95, TriggerFraction: 0.8, ShakeDecay: 0.85}
}

// BeatState is the rhythm engine's mutable state.
type BeatState struct {
	Profile     Profile
	Phase       float64
	BPM         float64
	Intensity   float64
	Shake       float64
	LastTrigger float64 // ms timestamp of the last audible beat
	triggered   bool
}

// BeatFrame is what one Advance produces.
type BeatFrame struct {
	Intensity    float64
	Beat         bool    // An audible heartbeat fires this frame
	ShakeX       float64 // Uniform offset applied to every target
	ShakeY       float64
	RotationKick float64 // Added to the global rotation
}

// BeatEngine computes the per-frame beat intensity.
type BeatEngine struct {
	State BeatState
	opts  BeatOptions
	rng   *rand.Rand
}

// NewBeatEngine creates an engine starting on profile p.
func NewBeatEngine(p Profile, opts BeatOptions, rng *rand.Rand) *BeatEngine {
	return &BeatEngine{
		State: BeatState{Profile: p, BPM: p.BPM()},
		opts:  opts,
		rng:   rng,
	}
}

// SetProfile switches profile and resets the phase.
func (e *BeatEngine) SetProfile(p Profile) {
	e.State.Profile = p
	e.State.BPM = p.BPM()
	e.State.Phase = 0
}

// Next cycles to the following profile and returns it.
func (e *BeatEngine) Next() Profile {
	p := (e.State.Profile + 1) % profileCount
	e.SetProfile(p)
	return p
}

// Interval returns the current beat interval in milliseconds.
func (e *BeatEngine) Interval() float64 {
	return 60000 / e.State.BPM
}

// Advance steps the engine. t is the global time counter, nowMs the elapsed
// simulation time used for trigger spacing.
func (e *BeatEngine) Advance(t, nowMs float64) BeatFrame {
	s := &e.State
	p := s.Profile
	s.BPM = p.BPM()
	s.Phase += p.Advance(t)
	s.Intensity = p.Intensity(s.Phase, t)

	var f BeatFrame
	f.Intensity = s.Intensity

	switch p {
	case ProfileIntense:
		if s.Intensity > 0.95 {
			s.Shake = 15
		}
	case ProfileArrhythmia:
		if e.rng.Float64() > 0.97 {
			s.Shake = 8
		}
	case ProfileRacing:
		if s.Intensity > 0.9 {
			s.Shake = 10
		}
	case ProfileShock:
		if s.Intensity > 1.2 {
			s.Shake = 25
			if e.rng.Float64() > 0.8 {
				f.RotationKick = (e.rng.Float64() - 0.5) * 0.1
			}
		}
	}

	if s.Intensity > e.opts.TriggerThreshold && (!s.triggered || nowMs-s.LastTrigger > e.Interval()*e.opts.TriggerFraction) {
		f.Beat = true
		s.LastTrigger = nowMs
		s.triggered = true
	}

	s.Shake *= e.opts.ShakeDecay
	f.ShakeX = (e.rng.Float64() - 0.5) * s.Shake
	f.ShakeY = (e.rng.Float64() - 0.5) * s.Shake
	return f
}
