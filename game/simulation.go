package game

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/render"
	"github.com/pthm-cable/heart/systems"
	"github.com/pthm-cable/heart/telemetry"
)

// Step advances the animation by one frame of dtMs simulation milliseconds
// and returns the frame's draw commands. The returned slice is reused by the
// next Step.
func (g *Game) Step(dtMs float64) []render.Command {
	g.perf.StartFrame()
	s := &g.state

	g.cmds = g.cmds[:0]
	g.cmds = append(g.cmds, render.Fade(s.Width, s.Height, s.Mode, g.style))

	s.Frame++
	s.Time += g.cfg.Loop.TimeStep
	s.Rotation += g.cfg.Loop.RotationStep
	s.ElapsedMs += dtMs

	g.perf.StartPhase(telemetry.PhaseEffects)
	ran := g.sched.RunDue(s.ElapsedMs)

	g.perf.StartPhase(telemetry.PhaseBeat)
	g.lastBeat = g.beat.Advance(s.Time, s.ElapsedMs)
	s.Rotation += g.lastBeat.RotationKick
	if g.lastBeat.Beat && s.SoundEnabled && g.sound != nil {
		g.sound.PlayHeartbeat()
	}

	g.perf.StartPhase(telemetry.PhaseSort)
	g.sortByDepth()

	g.perf.StartPhase(telemetry.PhaseUpdate)
	cx, cy := g.center()
	in := systems.FrameInput{
		Time:      s.Time,
		Intensity: g.lastBeat.Intensity,
		Rotation:  s.Rotation,
		ShakeX:    g.lastBeat.ShakeX,
		ShakeY:    g.lastBeat.ShakeY,
		CenterX:   cx,
		CenterY:   cy,
	}
	focal := g.tuning.Focal
	g.points = g.points[:0]
	for i := range g.order {
		item := &g.order[i]
		pos, target, anchor, app, motion, trail := g.particleMap.Get(item.entity)
		systems.UpdateParticle(pos, target, anchor, app, motion, trail, in, g.tuning)

		g.cmds = render.Particle(g.cmds, render.View{
			X:       pos.X,
			Y:       pos.Y,
			Z:       pos.Z,
			Size:    app.Size,
			Opacity: app.Opacity,
			Angle:   motion.Angle,
			Color:   app.Color,
			Trail:   trail.Slice(),
		}, s.Mode, g.palette, focal)
		g.points = append(g.points, render.Point{X: pos.X, Y: pos.Y})
	}

	if s.Mode == render.ModeWireframe {
		g.perf.StartPhase(telemetry.PhaseConnections)
		g.cmds = render.Connections(g.cmds, g.points, g.style.Connections)
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.sample(ran)
	g.perf.EndFrame()
	return g.cmds
}

// sortByDepth orders particles back to front by their current Z. The sort is
// stable and starts from last frame's order, so equal depths keep their places.
func (g *Game) sortByDepth() {
	for i := range g.order {
		item := &g.order[i]
		pos, _, _, _, _, _ := g.particleMap.Get(item.entity)
		item.z = pos.Z
	}
	slices.SortStableFunc(g.order, func(a, b drawItem) int {
		return cmp.Compare(b.z, a.z)
	})
}

// sample feeds the telemetry collector and flushes finished windows.
func (g *Game) sample(effects int) {
	g.collector.RecordFrame(g.lastBeat.Intensity, g.lastBeat.Beat, effects)

	frame := g.state.Frame
	if g.collector.ShouldFlush(frame) {
		depths := make([]float64, 0, len(g.order))
		query := g.particleFilter.Query()
		for query.Next() {
			pos, _, _, _, _, _ := query.Get()
			depths = append(depths, pos.Z)
		}

		stats := g.collector.Flush(telemetry.WindowSample{
			Frame:     frame,
			ElapsedMs: g.state.ElapsedMs,
			Profile:   g.beat.State.Profile.String(),
			Mode:      g.state.Mode.String(),
			BPM:       g.beat.State.BPM,
			Depths:    depths,
		})
		if g.logStats {
			slog.Info("telemetry", "stats", stats)
		}
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}

	if window := int64(g.cfg.Telemetry.PerfWindow); window > 0 && frame%window == 0 {
		perf := g.perf.Stats()
		if g.logStats {
			slog.Info("perf", "stats", perf)
		}
		if err := g.output.WritePerf(perf, frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// forEachCreated visits every particle position in creation order.
func (g *Game) forEachCreated(fn func(i int, pos *components.Position)) {
	for i, e := range g.entities {
		pos, _, _, _, _, _ := g.particleMap.Get(e)
		fn(i, pos)
	}
}
