package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/heart/components"
)

type testParticle struct {
	pos    components.Position
	target components.Target
	anchor components.Anchor
	app    components.Appearance
	motion components.Motion
	trail  components.Trail
}

func newTestParticle() *testParticle {
	return &testParticle{
		pos:    components.Position{X: 600, Y: 380, Z: 40},
		anchor: components.Anchor{X: 700, Y: 350, Z: 20},
		app:    components.Appearance{Size: 2, Fading: true},
		motion: components.Motion{PulseOffset: 0.3, RotationSpeed: 0.01, Angle: 1},
		trail:  components.NewTrail(3),
	}
}

func (p *testParticle) update(in FrameInput, tun ParticleTuning) {
	UpdateParticle(&p.pos, &p.target, &p.anchor, &p.app, &p.motion, &p.trail, in, tun)
}

func TestOpacityMonotonicThenLatched(t *testing.T) {
	p := newTestParticle()
	tun := DefaultParticleTuning()
	in := FrameInput{CenterX: 640, CenterY: 400, Intensity: 0.8}

	prev := p.app.Opacity
	reached := -1
	for frame := 0; frame < 40; frame++ {
		in.Time += 1.5
		p.update(in, tun)
		require.GreaterOrEqual(t, p.app.Opacity, prev)
		require.LessOrEqual(t, p.app.Opacity, 1.0)
		if reached >= 0 {
			require.Equal(t, 1.0, p.app.Opacity)
		}
		if p.app.Opacity == 1 && reached < 0 {
			reached = frame
		}
		prev = p.app.Opacity
	}
	assert.Equal(t, 6, reached, "0.15 per frame reaches 1 on the 7th frame")
	assert.False(t, p.app.Fading)
}

func TestTargetProjection(t *testing.T) {
	p := newTestParticle()
	tun := DefaultParticleTuning()
	// Zero intensity: scale is exactly 1; zero rotation: rx = dx, rz = dz.
	in := FrameInput{CenterX: 640, CenterY: 400, ShakeX: 2, ShakeY: -3}
	p.update(in, tun)

	persp := 300.0 / (300.0 + 20.0)
	assert.InDelta(t, 640+60*persp+2, p.target.X, 1e-9)
	assert.InDelta(t, 400-50*persp-3, p.target.Y, 1e-9)
	assert.InDelta(t, 20, p.target.Z, 1e-9)
}

func TestTargetRotationQuarterTurn(t *testing.T) {
	p := newTestParticle()
	tun := DefaultParticleTuning()
	in := FrameInput{CenterX: 640, CenterY: 400, Rotation: math.Pi / 2}
	p.update(in, tun)

	// rx = -dz, rz = dx
	persp := 300.0 / (300.0 + 60.0)
	assert.InDelta(t, 640-20*persp, p.target.X, 1e-9)
	assert.InDelta(t, 60, p.target.Z, 1e-9)
}

func TestPositionEasesTowardTarget(t *testing.T) {
	p := newTestParticle()
	tun := DefaultParticleTuning()
	tun.Jitter = 0
	in := FrameInput{CenterX: 640, CenterY: 400}

	start := p.pos
	p.update(in, tun)
	assert.InDelta(t, start.X+(p.target.X-start.X)*0.5, p.pos.X, 1e-9)
	assert.InDelta(t, start.Y+(p.target.Y-start.Y)*0.5, p.pos.Y, 1e-9)
	assert.InDelta(t, start.Z+(p.target.Z-start.Z)*0.5, p.pos.Z, 1e-9)

	// Converges with a still target
	for i := 0; i < 60; i++ {
		p.update(in, tun)
	}
	assert.InDelta(t, p.target.X, p.pos.X, 1e-6)
	assert.InDelta(t, p.target.Y, p.pos.Y, 1e-6)
}

func TestTrailRecordsPreUpdatePosition(t *testing.T) {
	p := newTestParticle()
	tun := DefaultParticleTuning()
	in := FrameInput{CenterX: 640, CenterY: 400}

	before := p.pos
	p.update(in, tun)
	require.Equal(t, 1, p.trail.Len)
	assert.Equal(t, before.X, p.trail.Slice()[0].X)
	assert.Equal(t, before.Y, p.trail.Slice()[0].Y)

	for i := 0; i < 10; i++ {
		p.update(in, tun)
		assert.LessOrEqual(t, p.trail.Len, 3)
	}
}

func TestAngleAdvances(t *testing.T) {
	p := newTestParticle()
	p.update(FrameInput{CenterX: 640, CenterY: 400}, DefaultParticleTuning())
	assert.InDelta(t, 1.01, p.motion.Angle, 1e-12)
}

func TestPerspective(t *testing.T) {
	assert.InDelta(t, 1, Perspective(300, 0), 1e-12)
	assert.InDelta(t, 0.5, Perspective(300, 300), 1e-12)
	assert.InDelta(t, 1.5, Perspective(300, -100), 1e-12)

	// Behind the focal plane stays finite
	for _, z := range []float64{-300, -299.999, -1000} {
		v := Perspective(300, z)
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v))
		assert.InDelta(t, 10, v, 1e-9)
	}
}
