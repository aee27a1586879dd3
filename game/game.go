package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/heart"
	"github.com/pthm-cable/heart/render"
	"github.com/pthm-cable/heart/systems"
	"github.com/pthm-cable/heart/telemetry"
)

// Sound plays heartbeats. audio.SoundManager implements it.
type Sound interface {
	PlayHeartbeat()
	SetEnabled(on bool) error
}

// SimulationState is the frame-global animation state.
type SimulationState struct {
	Frame        int64
	Time         float64 // Pulse clock, advanced by a fixed step per frame
	Rotation     float64 // Global Y rotation in radians
	ElapsedMs    float64 // Simulation milliseconds; schedules and beat spacing key off this
	Width        float64
	Height       float64
	Mode         render.Mode
	SoundEnabled bool
}

// Options configures a Game.
type Options struct {
	Seed        int64
	OutputDir   string
	SnapshotDir string // Empty disables snapshots
	LogStats    bool
	Sound       Sound // Optional
}

// drawItem is one entry of the depth-sorted draw order.
type drawItem struct {
	entity ecs.Entity
	index  int // Creation order
	z      float64
}

// Game owns the particle world and every piece of animation state.
// It is not safe for concurrent use; the frame loop is the only caller.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world *ecs.World
	particleMap *ecs.Map6[
		components.Position,
		components.Target,
		components.Anchor,
		components.Appearance,
		components.Motion,
		components.Trail,
	]
	particleFilter *ecs.Filter6[
		components.Position,
		components.Target,
		components.Anchor,
		components.Appearance,
		components.Motion,
		components.Trail,
	]

	entities []ecs.Entity // Creation order
	order    []drawItem   // Back to front, re-sorted each frame
	curve    []heart.Point3D

	state    SimulationState
	beat     *systems.BeatEngine
	lastBeat systems.BeatFrame
	sched    *systems.Scheduler

	tuning   systems.ParticleTuning
	interact systems.InteractionOptions
	palette  render.Palette
	style    render.Style

	cmds   []render.Command
	points []render.Point

	sound Sound

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	snapshotDir string
}

// NewGame builds the heart and its particles for a width x height surface.
func NewGame(cfg *config.Config, width, height float64, opts Options) (*Game, error) {
	profile, err := systems.ParseProfile(cfg.Beat.Profile)
	if err != nil {
		return nil, fmt.Errorf("beat profile: %w", err)
	}
	mode, err := render.ParseMode(cfg.Render.Mode)
	if err != nil {
		return nil, fmt.Errorf("render mode: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:   cfg,
		rng:   rng,
		seed:  opts.Seed,
		world: world,
		particleMap: ecs.NewMap6[
			components.Position,
			components.Target,
			components.Anchor,
			components.Appearance,
			components.Motion,
			components.Trail,
		](world),
		particleFilter: ecs.NewFilter6[
			components.Position,
			components.Target,
			components.Anchor,
			components.Appearance,
			components.Motion,
			components.Trail,
		](world),
		state: SimulationState{
			Width:        width,
			Height:       height,
			Mode:         mode,
			SoundEnabled: cfg.Audio.Enabled && opts.Sound != nil,
		},
		beat: systems.NewBeatEngine(profile, systems.BeatOptions{
			TriggerThreshold: cfg.Beat.TriggerThreshold,
			TriggerFraction:  cfg.Beat.TriggerFraction,
			ShakeDecay:       cfg.Beat.ShakeDecay,
		}, rng),
		sched:     systems.NewScheduler(),
		tuning:    tuningFromConfig(cfg),
		interact:  interactionFromConfig(cfg),
		palette:   render.Palette(cfg.Derived.PaletteColors),
		style:     styleFromConfig(cfg),
		sound:     opts.Sound,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		output:    output,
		logStats:  opts.LogStats,

		snapshotDir: opts.SnapshotDir,
	}

	if g.state.SoundEnabled {
		if err := g.sound.SetEnabled(true); err != nil {
			slog.Warn("sound unavailable", "error", err)
			g.state.SoundEnabled = false
		}
	}

	if err := g.spawnParticles(); err != nil {
		output.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	slog.Info("heart ready",
		"particles", len(g.entities),
		"curve_points", len(g.curve),
		"mode", mode.String(),
		"profile", profile.String(),
	)
	return g, nil
}

// spawnParticles generates the curve at the surface center and fills it.
func (g *Game) spawnParticles() error {
	cx, cy := g.center()
	hc := g.cfg.Heart
	g.curve = heart.Points(cx, cy, hc.Scale, hc.Layers)

	pc := g.cfg.Particle
	seeds, err := systems.Fill(g.curve, systems.FillOptions{
		Density:      hc.Density,
		Cutoff:       hc.Cutoff,
		AcceptFactor: hc.AcceptFactor,
		CenterX:      cx,
		CenterY:      cy,
		StartSpread:  hc.StartSpread,
		StartDepth:   hc.StartDepth,
		PaletteSize:  len(g.palette),
		TrailLength:  pc.TrailLength,
		MinSize:      pc.MinSize,
		SizeRange:    pc.SizeRange,
		MaxSpin:      pc.MaxRotationSpeed,
	}, g.rng)
	if err != nil {
		return err
	}

	g.entities = make([]ecs.Entity, 0, len(seeds))
	g.order = make([]drawItem, 0, len(seeds))
	for i := range seeds {
		s := &seeds[i]
		e := g.particleMap.NewEntity(&s.Position, &s.Target, &s.Anchor, &s.Appearance, &s.Motion, &s.Trail)
		g.entities = append(g.entities, e)
		g.order = append(g.order, drawItem{entity: e, index: i, z: s.Position.Z})
	}
	g.points = make([]render.Point, 0, len(seeds))
	return nil
}

func (g *Game) center() (float64, float64) {
	return g.state.Width / 2, g.state.Height / 2
}

// State returns a copy of the simulation state.
func (g *Game) State() SimulationState {
	return g.state
}

// Profile returns the active rhythm profile.
func (g *Game) Profile() systems.Profile {
	return g.beat.State.Profile
}

// BPM returns the active profile's rate.
func (g *Game) BPM() float64 {
	return g.beat.State.BPM
}

// Intensity returns the most recent beat intensity.
func (g *Game) Intensity() float64 {
	return g.lastBeat.Intensity
}

// Count returns the number of particles.
func (g *Game) Count() int {
	return len(g.entities)
}

// Frame returns the number of completed steps.
func (g *Game) Frame() int64 {
	return g.state.Frame
}

// Pending returns the number of scheduled effects not yet run.
func (g *Game) Pending() int {
	return g.sched.Len()
}

// Perf returns the rolling step timings.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perf.Stats()
}

// RecordPresent marks a frame reaching the screen, for FPS reporting.
func (g *Game) RecordPresent() {
	g.perf.RecordPresent()
}

// Close drops pending effects, then flushes and closes run output.
func (g *Game) Close() error {
	g.sched.Clear()
	if dir := g.output.Dir(); dir != "" {
		slog.Info("run output written", "dir", dir, "frame", g.state.Frame)
	}
	return g.output.Close()
}

func tuningFromConfig(cfg *config.Config) systems.ParticleTuning {
	pc := cfg.Particle
	return systems.ParticleTuning{
		FadeStep:  pc.FadeStep,
		PulseRate: pc.PulseRate,
		PulseGain: pc.PulseGain,
		Focal:     pc.Focal,
		Blend:     pc.Blend,
		Jitter:    pc.Jitter,
	}
}

func interactionFromConfig(cfg *config.Config) systems.InteractionOptions {
	ic := cfg.Interaction
	return systems.InteractionOptions{
		RepelRadius:    ic.RepelRadius,
		RepelForce:     ic.RepelForce,
		RippleRadius:   ic.RippleRadius,
		RippleForce:    ic.RippleForce,
		ExplosionMin:   ic.ExplosionMin,
		ExplosionRange: ic.ExplosionRange,
		ExplosionDepth: ic.ExplosionDepth,
	}
}

func styleFromConfig(cfg *config.Config) render.Style {
	rc := cfg.Render
	st := render.DefaultStyle()
	st.Background = cfg.Derived.BackgroundColor
	st.FadeAlpha = rc.FadeAlpha
	st.GalaxyFadeAlpha = rc.GalaxyFadeAlpha
	st.Connections.Stride = rc.ConnectionStride
	st.Connections.Window = rc.ConnectionWindow
	st.Connections.Distance = rc.ConnectionDistance
	st.Connections.Color = cfg.Derived.ConnectionColor
	st.Connections.Alpha = rc.ConnectionAlpha
	return st
}
