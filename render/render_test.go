package render

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/heart/components"
)

var testPalette = Palette{
	{R: 1, G: 0, B: 0},
	{R: 0, G: 1, B: 0},
}

func testView() View {
	return View{
		X: 100, Y: 200, Z: 0,
		Size:    2,
		Opacity: 1,
		Angle:   0.5,
		Color:   1,
		Trail: []components.TrailPoint{
			{X: 90, Y: 190, Opacity: 1},
			{X: 94, Y: 194, Opacity: 1},
			{X: 97, Y: 197, Opacity: 1},
		},
	}
}

func TestParticleModeCommands(t *testing.T) {
	tests := []struct {
		mode  Mode
		kinds []Kind
	}{
		{ModeParticles, []Kind{KindDisc, KindDisc, KindDisc, KindGlow, KindDisc}},
		{ModeVolumetric, []Kind{KindDisc, KindDisc, KindDisc, KindGlow, KindDisc}},
		{ModeWireframe, []Kind{KindRing}},
		{ModeGalaxy, []Kind{KindGlow}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cmds := Particle(nil, testView(), tt.mode, testPalette, 300)
			require.Len(t, cmds, len(tt.kinds))
			for i, c := range cmds {
				assert.Equal(t, tt.kinds[i], c.Kind, "command %d", i)
				assert.Equal(t, testPalette[1], c.Color)
			}
		})
	}
}

func TestParticleGlowGeometry(t *testing.T) {
	// At z=0 perspective is 1, so size is the base size.
	cmds := Particle(nil, testView(), ModeParticles, testPalette, 300)

	for i, c := range cmds[:3] {
		assert.InDelta(t, 1.6, c.Radius, 1e-12)
		assert.InDelta(t, float64(i)/3*0.4, c.Alpha, 1e-12)
	}

	glow := cmds[3]
	assert.InDelta(t, 5.0, glow.Radius, 1e-12)
	assert.InDelta(t, 1.0, glow.Alpha, 1e-12)
	// 2.5/3.5 of the way through a 1 -> 0.5 -> 0 gradient
	assert.InDelta(t, 0.5*(1-(2.5/3.5-0.5)/0.5), glow.OuterAlpha, 1e-12)

	core := cmds[4]
	assert.InDelta(t, 2.4, core.Radius, 1e-12)
	assert.Equal(t, 100.0, core.X)
	assert.Equal(t, 200.0, core.Y)
}

func TestParticlePerspectiveScalesSizeAndAlpha(t *testing.T) {
	v := testView()
	v.Z = 300 // persp = 0.5
	v.Opacity = 0.8

	ring := Particle(nil, v, ModeWireframe, testPalette, 300)[0]
	assert.InDelta(t, 2.0, ring.Radius, 1e-12)
	assert.InDelta(t, 0.8*0.75, ring.Alpha, 1e-12)
	assert.Equal(t, 1.0, ring.Width)

	// Closer particles are more opaque
	v.Z = -100
	near := Particle(nil, v, ModeWireframe, testPalette, 300)[0]
	assert.Greater(t, near.Alpha, ring.Alpha)
	assert.LessOrEqual(t, near.Alpha, 1.0)
}

func TestParticleGalaxyOffset(t *testing.T) {
	v := testView()
	cmd := Particle(nil, v, ModeGalaxy, testPalette, 300)[0]

	// size 2, spiral radius 10, angle 1.5
	assert.InDelta(t, 100+math.Cos(1.5)*10, cmd.X, 1e-12)
	assert.InDelta(t, 200+math.Sin(1.5)*10, cmd.Y, 1e-12)
	assert.InDelta(t, 3.0, cmd.Radius, 1e-12)
	assert.InDelta(t, cmd.Alpha*0.5, cmd.OuterAlpha, 1e-12)
}

func TestParticleNoTrail(t *testing.T) {
	v := testView()
	v.Trail = nil
	cmds := Particle(nil, v, ModeParticles, testPalette, 300)
	assert.Len(t, cmds, 2)
}

func TestParticleAppendsToBuffer(t *testing.T) {
	buf := make([]Command, 0, 16)
	buf = Particle(buf, testView(), ModeWireframe, testPalette, 300)
	buf = Particle(buf, testView(), ModeGalaxy, testPalette, 300)
	assert.Len(t, buf, 2)
}

func TestFade(t *testing.T) {
	st := DefaultStyle()
	for _, m := range Modes() {
		c := Fade(1280, 800, m, st)
		assert.Equal(t, KindFill, c.Kind)
		assert.Equal(t, 1280.0, c.X2)
		assert.Equal(t, 800.0, c.Y2)
		if m == ModeGalaxy {
			assert.Equal(t, 0.25, c.Alpha)
		} else {
			assert.Equal(t, 0.35, c.Alpha)
		}
	}
}

func TestConnectionsSampling(t *testing.T) {
	// All points share a location so every tested pair connects.
	pts := make([]Point, 20)
	cmds := Connections(nil, pts, DefaultStyle().Connections)

	// i in {0,5,10,15}; j in {i+1, i+6} while below min(i+10, 20)
	assert.Len(t, cmds, 7)
	for _, c := range cmds {
		assert.Equal(t, KindLine, c.Kind)
		assert.Equal(t, 0.1, c.Alpha)
		assert.Equal(t, 0.5, c.Width)
	}
}

func TestConnectionsDistanceCutoff(t *testing.T) {
	cs := DefaultStyle().Connections
	pts := []Point{{0, 0}, {50, 0}, {0, 0}, {0, 0}, {0, 0}, {200, 0}, {49.9, 0}}
	cmds := Connections(nil, pts, cs)
	require.Len(t, cmds, 1)
	assert.Equal(t, 49.9, cmds[0].X2)
}

func TestConnectionsEmpty(t *testing.T) {
	assert.Empty(t, Connections(nil, nil, DefaultStyle().Connections))
	assert.Empty(t, Connections(nil, make([]Point, 5), ConnectionStyle{}))
}

func TestModeCycle(t *testing.T) {
	m := ModeParticles
	seen := map[Mode]bool{}
	for i := 0; i < 4; i++ {
		seen[m] = true
		m = m.Next()
	}
	assert.Equal(t, ModeParticles, m)
	assert.Len(t, seen, 4)

	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("hologram")
	assert.Error(t, err)
}

func TestPaletteWraps(t *testing.T) {
	assert.Equal(t, testPalette[0], testPalette.At(2))
	assert.Equal(t, testPalette[1], testPalette.At(-1))
	assert.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, Palette(nil).At(3))
}
