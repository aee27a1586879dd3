package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/render"
	"github.com/pthm-cable/heart/systems"
	"github.com/pthm-cable/heart/telemetry"
)

type fakeSound struct {
	beats   int
	enables int
	fail    error
}

func (s *fakeSound) PlayHeartbeat() { s.beats++ }

func (s *fakeSound) SetEnabled(on bool) error {
	if on {
		s.enables++
		return s.fail
	}
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	// Coarser fill keeps the tests quick
	cfg.Heart.Density = 6
	return cfg
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := NewGame(testConfig(t), 1280, 800, opts)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func positions(g *Game) []components.Position {
	out := make([]components.Position, 0, g.Count())
	g.forEachCreated(func(_ int, pos *components.Position) {
		out = append(out, *pos)
	})
	return out
}

func TestNewGameSpawnsParticles(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	require.Greater(t, g.Count(), 100)
	assert.Len(t, g.order, g.Count())
	assert.Equal(t, systems.ProfileNormal, g.Profile())
	assert.Equal(t, render.ModeParticles, g.State().Mode)
	assert.False(t, g.State().SoundEnabled)
}

func TestNewGameRejectsBadProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Beat.Profile = "bradycardia"
	_, err := NewGame(cfg, 800, 600, Options{})
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Render.Mode = "ascii"
	_, err = NewGame(cfg, 800, 600, Options{})
	assert.Error(t, err)
}

func TestSeedIsDeterministic(t *testing.T) {
	a := newTestGame(t, Options{Seed: 7})
	b := newTestGame(t, Options{Seed: 7})
	for i := 0; i < 10; i++ {
		a.Step(16)
		b.Step(16)
	}
	assert.Equal(t, positions(a), positions(b))
}

func TestStepAdvancesCounters(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	cmds := g.Step(16)

	require.NotEmpty(t, cmds)
	assert.Equal(t, render.KindFill, cmds[0].Kind)
	assert.Equal(t, 0.35, cmds[0].Alpha)

	s := g.State()
	assert.Equal(t, int64(1), s.Frame)
	assert.InDelta(t, 1.5, s.Time, 1e-12)
	assert.InDelta(t, 0.008, s.Rotation, 1e-12)
	assert.Equal(t, 16.0, s.ElapsedMs)
}

func TestDrawOrderBackToFront(t *testing.T) {
	g := newTestGame(t, Options{Seed: 3})
	for frame := 0; frame < 30; frame++ {
		g.Step(16)
		for i := 1; i < len(g.order); i++ {
			require.GreaterOrEqual(t, g.order[i-1].z, g.order[i].z, "frame %d index %d", frame, i)
		}
	}
}

func TestOpacityLatchesForEveryParticle(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	for i := 0; i < 7; i++ {
		g.Step(16)
	}
	for _, e := range g.entities {
		_, _, _, app, _, trail := g.particleMap.Get(e)
		require.Equal(t, 1.0, app.Opacity)
		require.False(t, app.Fading)
		require.LessOrEqual(t, trail.Len, 3)
	}
}

func TestModeCommandsPerParticle(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	g.Step(16)

	g.CycleMode()
	require.Equal(t, render.ModeWireframe, g.State().Mode)
	cmds := g.Step(16)
	rings := 0
	for _, c := range cmds {
		if c.Kind == render.KindRing {
			rings++
		}
	}
	assert.Equal(t, g.Count(), rings)

	g.CycleMode()
	g.CycleMode()
	require.Equal(t, render.ModeGalaxy, g.State().Mode)
	cmds = g.Step(16)
	assert.Equal(t, 0.25, cmds[0].Alpha)
	assert.Len(t, cmds, g.Count()+1)

	g.CycleMode()
	assert.Equal(t, render.ModeParticles, g.State().Mode)
}

func TestCycleProfileResetsPhase(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	for i := 0; i < 10; i++ {
		g.Step(16)
	}
	require.NotZero(t, g.beat.State.Phase)

	assert.Equal(t, systems.ProfileIntense, g.CycleProfile())
	assert.Zero(t, g.beat.State.Phase)
	assert.Equal(t, 120.0, g.BPM())
}

func TestHeartbeatPlaysOnlyWhenEnabled(t *testing.T) {
	sound := &fakeSound{}
	g := newTestGame(t, Options{Seed: 1, Sound: sound})
	g.beat.SetProfile(systems.ProfileRacing)

	for i := 0; i < 200; i++ {
		g.Step(1000.0 / 60)
	}
	assert.Zero(t, sound.beats)

	require.True(t, g.ToggleSound())
	assert.Equal(t, 1, sound.enables)
	for i := 0; i < 200; i++ {
		g.Step(1000.0 / 60)
	}
	assert.Greater(t, sound.beats, 2)
}

func TestToggleSoundFailureStaysOff(t *testing.T) {
	sound := &fakeSound{fail: errors.New("no device")}
	g := newTestGame(t, Options{Seed: 1, Sound: sound})

	assert.False(t, g.ToggleSound())
	assert.False(t, g.State().SoundEnabled)
}

func TestClickRipples(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	g.Step(16)

	// Put one particle on the click point and one far away
	near, _, _, _, _, _ := g.particleMap.Get(g.entities[0])
	far, _, _, _, _, _ := g.particleMap.Get(g.entities[1])
	near.X, near.Y = 640, 400
	far.X, far.Y = 640, 700

	g.Click(640, 400)
	assert.Equal(t, 3, g.Pending())

	ran := g.sched.RunDue(g.state.ElapsedMs)
	assert.Equal(t, 1, ran)
	assert.InDelta(t, 670, near.X, 1e-9)
	assert.InDelta(t, 400, near.Y, 1e-9)
	assert.Equal(t, 640.0, far.X)
	assert.Equal(t, 700.0, far.Y)

	g.sched.RunDue(g.state.ElapsedMs + 200)
	assert.Zero(t, g.Pending())
}

func TestPerturbSchedulesWave(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	g.Step(16)
	before := positions(g)

	g.Perturb()
	after := positions(g)
	moved := 0
	for i := range before {
		d := math.Hypot(after[i].X-before[i].X, after[i].Y-before[i].Y)
		require.GreaterOrEqual(t, d, 50-1e-6)
		if d > 0 {
			moved++
		}
	}
	assert.Equal(t, len(before), moved)
	require.Equal(t, 1, g.Pending())

	// Nothing before the delay
	now := g.state.ElapsedMs
	assert.Zero(t, g.sched.RunDue(now+499))

	// Wave start plus the first particle's lift
	exploded := positions(g)
	assert.Equal(t, 2, g.sched.RunDue(now+500))
	p0, _, _, _, _, _ := g.particleMap.Get(g.entities[0])
	p1, _, _, _, _, _ := g.particleMap.Get(g.entities[1])
	assert.InDelta(t, exploded[0].Y-50, p0.Y, 1e-9)
	assert.Equal(t, exploded[1].Y, p1.Y)

	// Second particle lifts 2ms later, first drops 200ms after its lift
	g.sched.RunDue(now + 502)
	assert.InDelta(t, exploded[1].Y-50, p1.Y, 1e-9)
	g.sched.RunDue(now + 700)
	assert.InDelta(t, exploded[0].Y, p0.Y, 1e-9)

	g.sched.RunDue(math.Inf(1))
	assert.Zero(t, g.Pending())
	for i, p := range positions(g) {
		require.InDelta(t, exploded[i].Y, p.Y, 1e-9)
		require.Equal(t, exploded[i].X, p.X)
	}
}

func TestWaveStaggerIgnoresLateFrame(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	g.Perturb()
	start := g.state.ElapsedMs + g.cfg.Interaction.WaveDelayMs
	exploded := positions(g)

	// The frame that runs the wave arrives 10ms late
	late := start + 10
	g.state.ElapsedMs = late
	// Wave start plus lifts for particles 0..5 (i*2ms <= 10ms)
	assert.Equal(t, 7, g.sched.RunDue(late))

	for i, p := range positions(g) {
		want := exploded[i].Y
		if i <= 5 {
			want -= 50
		}
		require.InDelta(t, want, p.Y, 1e-9, "particle %d", i)
	}

	// The first drop stays 200ms after its scheduled lift
	g.sched.RunDue(start + 199)
	require.InDelta(t, exploded[0].Y-50, positions(g)[0].Y, 1e-9)
	g.sched.RunDue(start + 200)
	assert.InDelta(t, exploded[0].Y, positions(g)[0].Y, 1e-9)
}

func TestPointerRepels(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	pos, _, _, _, _, _ := g.particleMap.Get(g.entities[0])
	pos.X, pos.Y = 100, 100

	g.PointerMove(50, 100)
	assert.InDelta(t, 101.5, pos.X, 1e-9)
}

func TestResizeRetargets(t *testing.T) {
	g := newTestGame(t, Options{Seed: 2})
	count := g.Count()

	type snap struct {
		anchor components.Anchor
		color  int
	}
	before := make([]snap, count)
	for i, e := range g.entities {
		_, _, anchor, app, _, _ := g.particleMap.Get(e)
		before[i] = snap{*anchor, app.Color}
	}
	oldCurve := g.curve

	g.Resize(1920, 1080)
	require.Equal(t, count, g.Count())
	assert.Equal(t, 1920.0, g.State().Width)

	for i, e := range g.entities {
		_, _, anchor, app, _, _ := g.particleMap.Get(e)
		b := before[i]
		assert.Equal(t, b.color, app.Color)
		assert.Equal(t, b.anchor.Curve, anchor.Curve)

		// Whole heart shifts by the center delta
		assert.InDelta(t, b.anchor.X+320, anchor.X, 1e-9)
		assert.InDelta(t, b.anchor.Y+140, anchor.Y, 1e-9)
		assert.Equal(t, g.curve[anchor.Curve].Z, anchor.Z)
		assert.Equal(t, oldCurve[anchor.Curve].Z, anchor.Z)
	}

	// Same size is a no-op
	g.Resize(1920, 1080)
	assert.Equal(t, 1920.0, g.State().Width)
}

func TestApplyDispatches(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	g.Apply(ActionCycleMode)
	assert.Equal(t, render.ModeWireframe, g.State().Mode)
	g.Apply(ActionCycleProfile)
	assert.Equal(t, systems.ProfileIntense, g.Profile())
	g.Apply(ActionPerturb)
	assert.Equal(t, 1, g.Pending())
	g.Apply(ActionToggleSound)
	assert.True(t, g.State().SoundEnabled)
	g.Apply(ActionNone)
}

func TestOutputWritten(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(t)
	cfg.Telemetry.StatsWindow = 10
	cfg.Telemetry.PerfWindow = 10

	g, err := NewGame(cfg, 1280, 800, Options{Seed: 1, OutputDir: dir})
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		g.Step(16)
	}
	g.Click(1, 2)
	require.NoError(t, g.Close())

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)

	data, err = os.ReadFile(filepath.Join(dir, "events.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "click,\"1,2\"")

	assert.FileExists(t, filepath.Join(dir, "perf.csv"))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}

func TestCloseDropsPendingEffects(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	g.Click(10, 10)
	g.Perturb()
	require.Equal(t, g.cfg.Interaction.RipplePulses+1, g.Pending())

	require.NoError(t, g.Close())
	assert.Zero(t, g.Pending())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Âm thanh: ON", SoundLabel(true))
	assert.Equal(t, "Âm thanh: OFF", SoundLabel(false))
	assert.Equal(t, "Normal (72)", ProfileLabel(systems.ProfileNormal))
	assert.Equal(t, "Shock (200)", ProfileLabel(systems.ProfileShock))
	assert.Equal(t, "3D Depth", ModeLabel(render.ModeVolumetric))
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, Options{Seed: 9, SnapshotDir: dir})
	for i := 0; i < 5; i++ {
		g.Step(16)
	}

	snap := g.Snapshot("test")
	assert.Equal(t, int64(9), snap.RNGSeed)
	assert.Equal(t, int64(5), snap.Frame)
	assert.Equal(t, "particles", snap.Mode)
	assert.Equal(t, "normal", snap.Profile)
	require.Len(t, snap.Particles, g.Count())
	for i, p := range positions(g) {
		require.Equal(t, p.X, snap.Particles[i].X)
		require.Equal(t, p.Z, snap.Particles[i].Z)
	}

	g.Apply(ActionSnapshot)
	assert.FileExists(t, filepath.Join(dir, "snapshot_5_user.json"))

	path, err := g.SaveSnapshot("exit")
	require.NoError(t, err)
	loaded, err := telemetry.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Particles, loaded.Particles)
}

func TestSnapshotDisabledWithoutDir(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	path, err := g.SaveSnapshot("exit")
	require.NoError(t, err)
	assert.Empty(t, path)
}
