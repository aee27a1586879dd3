package game

import (
	"log/slog"

	"github.com/pthm-cable/heart/telemetry"
)

// SaveSnapshot writes the particle field to the snapshot directory. It does
// nothing when no directory is configured.
func (g *Game) SaveSnapshot(reason string) (string, error) {
	if g.snapshotDir == "" {
		return "", nil
	}
	path, err := telemetry.SaveSnapshot(g.Snapshot(reason), g.snapshotDir)
	if err != nil {
		return "", err
	}
	slog.Info("snapshot saved", "path", path, "frame", g.state.Frame)
	return path, nil
}

// Snapshot builds a snapshot of the current state. Particles are in creation order.
func (g *Game) Snapshot(reason string) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   g.seed,
		Width:     g.state.Width,
		Height:    g.state.Height,
		Frame:     g.state.Frame,
		ElapsedMs: g.state.ElapsedMs,
		Mode:      g.state.Mode.String(),
		Profile:   g.beat.State.Profile.String(),
		BPM:       g.beat.State.BPM,
		Particles: make([]telemetry.ParticleState, 0, len(g.entities)),
		Reason:    reason,
	}

	for _, e := range g.entities {
		pos, _, anchor, app, _, _ := g.particleMap.Get(e)
		snapshot.Particles = append(snapshot.Particles, telemetry.ParticleState{
			X:       pos.X,
			Y:       pos.Y,
			Z:       pos.Z,
			AnchorX: anchor.X,
			AnchorY: anchor.Y,
			AnchorZ: anchor.Z,
			Curve:   anchor.Curve,
			Color:   app.Color,
			Size:    app.Size,
			Opacity: app.Opacity,
		})
	}
	return snapshot
}

// snapshotOnAction saves a user-requested snapshot, logging failures.
func (g *Game) snapshotOnAction() {
	if _, err := g.SaveSnapshot("user"); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}
