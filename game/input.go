package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/heart"
	"github.com/pthm-cable/heart/render"
	"github.com/pthm-cable/heart/systems"
	"github.com/pthm-cable/heart/telemetry"
)

// Action is a user control, shared by every frontend.
type Action uint8

const (
	ActionNone Action = iota
	ActionCycleMode
	ActionCycleProfile
	ActionPerturb
	ActionToggleSound
	ActionSnapshot
)

// Apply runs a control action.
func (g *Game) Apply(a Action) {
	switch a {
	case ActionCycleMode:
		g.CycleMode()
	case ActionCycleProfile:
		g.CycleProfile()
	case ActionPerturb:
		g.Perturb()
	case ActionToggleSound:
		g.ToggleSound()
	case ActionSnapshot:
		g.snapshotOnAction()
	}
}

// CycleMode switches to the next render mode.
func (g *Game) CycleMode() render.Mode {
	g.state.Mode = g.state.Mode.Next()
	g.event(telemetry.EventMode, g.state.Mode.String())
	return g.state.Mode
}

// CycleProfile switches to the next rhythm profile, restarting its phase.
func (g *Game) CycleProfile() systems.Profile {
	p := g.beat.Next()
	g.event(telemetry.EventProfile, p.String())
	return p
}

// ToggleSound flips heartbeat audio. Enabling fails quietly, leaving sound off,
// when no output device can be opened.
func (g *Game) ToggleSound() bool {
	on := !g.state.SoundEnabled
	if g.sound != nil {
		if err := g.sound.SetEnabled(on); err != nil {
			slog.Warn("sound unavailable", "error", err)
			on = false
		}
	}
	g.state.SoundEnabled = on
	g.event(telemetry.EventSound, SoundLabel(on))
	return on
}

// Perturb explodes every particle now and starts a wave after the configured delay.
func (g *Game) Perturb() {
	g.forEachCreated(func(_ int, pos *components.Position) {
		systems.Explode(pos, g.interact, g.rng)
	})
	start := g.state.ElapsedMs + g.cfg.Interaction.WaveDelayMs
	g.sched.Schedule(start, func() { g.startWave(start) })
	g.event(telemetry.EventPerturb, "")
}

// startWave lifts each particle in creation order, staggered from start, and
// drops it back after the hold time. Stagger is measured from the scheduled
// start, not the frame that runs it.
func (g *Game) startWave(start float64) {
	ic := g.cfg.Interaction
	for i, e := range g.entities {
		at := start + float64(i)*ic.WaveStaggerMs
		g.sched.Schedule(at, func() {
			pos, _, _, _, _, _ := g.particleMap.Get(e)
			pos.Y -= ic.WaveLift
			g.sched.Schedule(at+ic.WaveHoldMs, func() {
				pos, _, _, _, _, _ := g.particleMap.Get(e)
				pos.Y += ic.WaveLift
			})
		})
	}
}

// PointerMove pushes particles away from the pointer.
func (g *Game) PointerMove(x, y float64) {
	g.forEachCreated(func(_ int, pos *components.Position) {
		systems.Repel(pos, x, y, g.interact)
	})
}

// Click schedules the ripple pulses around (x, y). The first runs on the next step.
func (g *Game) Click(x, y float64) {
	ic := g.cfg.Interaction
	for r := 0; r < ic.RipplePulses; r++ {
		g.sched.Schedule(g.state.ElapsedMs+float64(r)*ic.RippleIntervalMs, func() {
			g.forEachCreated(func(_ int, pos *components.Position) {
				systems.Ripple(pos, x, y, g.interact)
			})
		})
	}
	g.event(telemetry.EventClick, fmt.Sprintf("%.0f,%.0f", x, y))
}

// Resize recenters the heart on a width x height surface. Every anchor keeps
// its offset from the curve sample it was filled against; particles ease over
// on the following frames.
func (g *Game) Resize(width, height float64) {
	if width <= 0 || height <= 0 || (width == g.state.Width && height == g.state.Height) {
		return
	}
	g.state.Width = width
	g.state.Height = height

	cx, cy := g.center()
	hc := g.cfg.Heart
	next := heart.Points(cx, cy, hc.Scale, hc.Layers)
	for _, e := range g.entities {
		_, _, anchor, _, _, _ := g.particleMap.Get(e)
		systems.Retarget(anchor, g.curve, next)
	}
	g.curve = next
	g.event(telemetry.EventResize, fmt.Sprintf("%.0fx%.0f", width, height))
}

func (g *Game) event(t telemetry.EventType, detail string) {
	e := telemetry.Event{
		Frame:     g.state.Frame,
		ElapsedMs: g.state.ElapsedMs,
		Type:      t,
		Detail:    detail,
	}
	slog.Debug("event", "event", e)
	g.collector.RecordEvent(e)
	if err := g.output.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}
