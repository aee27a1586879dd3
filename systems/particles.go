package systems

import (
	"math"

	"github.com/pthm-cable/heart/components"
)

// minPerspectiveDepth keeps D+z at or above this fraction of D.
const minPerspectiveDepth = 0.1

// ParticleTuning holds the per-particle animation constants.
type ParticleTuning struct {
	FadeStep  float64
	PulseRate float64
	PulseGain float64
	Focal     float64
	Blend     float64
	Jitter    float64
}

// DefaultParticleTuning returns the stock tuning.
func DefaultParticleTuning() ParticleTuning {
	return ParticleTuning{
		FadeStep:  0.15,
		PulseRate: 0.005,
		PulseGain: 0.35,
		Focal:     300,
		Blend:     0.5,
		Jitter:    0.15,
	}
}

// FrameInput is the shared per-frame state every particle sees.
type FrameInput struct {
	Time      float64
	Intensity float64
	Rotation  float64
	ShakeX    float64
	ShakeY    float64
	CenterX   float64
	CenterY   float64
}

// Perspective returns the projection factor d/(d+z).
// d+z is floored at a tenth of d so the result stays finite and positive.
func Perspective(d, z float64) float64 {
	den := d + z
	if floor := d * minPerspectiveDepth; den < floor {
		den = floor
	}
	return d / den
}

// UpdateParticle advances one particle by a frame.
func UpdateParticle(
	pos *components.Position,
	target *components.Target,
	anchor *components.Anchor,
	app *components.Appearance,
	motion *components.Motion,
	trail *components.Trail,
	in FrameInput,
	tun ParticleTuning,
) {
	// Fade in, then latch
	if app.Fading {
		app.Opacity += tun.FadeStep
		if app.Opacity >= 1 {
			app.Opacity = 1
			app.Fading = false
		}
	}

	wave := in.Time*tun.PulseRate + motion.PulseOffset
	pulse := math.Sin(wave) * in.Intensity
	scale := 1 + pulse*tun.PulseGain

	// Rotate around the vertical axis, then project
	cosR := math.Cos(in.Rotation)
	sinR := math.Sin(in.Rotation)
	dx := anchor.X - in.CenterX
	dy := anchor.Y - in.CenterY
	dz := anchor.Z

	rx := dx*cosR - dz*sinR
	rz := dx*sinR + dz*cosR
	persp := Perspective(tun.Focal, rz)

	target.X = in.CenterX + rx*scale*persp + in.ShakeX
	target.Y = in.CenterY + dy*scale*persp + in.ShakeY
	target.Z = rz

	trail.Push(components.TrailPoint{X: pos.X, Y: pos.Y, Opacity: app.Opacity})

	pos.X += (target.X - pos.X) * tun.Blend
	pos.Y += (target.Y - pos.Y) * tun.Blend
	pos.Z += (target.Z - pos.Z) * tun.Blend

	pos.X += math.Sin(wave) * tun.Jitter
	pos.Y += math.Cos(wave) * tun.Jitter

	motion.Angle += motion.RotationSpeed
}
