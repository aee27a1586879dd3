// Package components defines ECS components for heart particles.
package components

// MaxTrail is the largest trail capacity a particle can carry.
const MaxTrail = 8

// Position is the particle's rendered location. Z is depth, positive away from the viewer.
type Position struct {
	X, Y, Z float64
}

// Target is where the particle is easing toward this frame.
type Target struct {
	X, Y, Z float64
}

// Anchor is the particle's resting place on the heart.
// Curve indexes the heart sample matched during the density fill.
type Anchor struct {
	X, Y, Z float64
	Curve   int
}

// Appearance holds visual attributes.
type Appearance struct {
	Color   int     // Palette index, fixed at creation
	Size    float64 // Base radius before perspective
	Opacity float64 // 0 at spawn, latches at 1
	Fading  bool    // True until the fade-in completes
}

// Motion holds per-particle animation phase.
type Motion struct {
	PulseOffset   float64
	RotationSpeed float64
	Angle         float64
}

// TrailPoint is a recorded past position.
type TrailPoint struct {
	X, Y, Opacity float64
}

// Trail is a bounded FIFO of recent positions, oldest first.
type Trail struct {
	Points [MaxTrail]TrailPoint
	Len    int
	Cap    int
}

// NewTrail returns an empty trail holding at most capacity points.
// Capacity is clamped to [1, MaxTrail].
func NewTrail(capacity int) Trail {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > MaxTrail {
		capacity = MaxTrail
	}
	return Trail{Cap: capacity}
}

// Push appends p, evicting the oldest point when full.
func (t *Trail) Push(p TrailPoint) {
	if t.Cap <= 0 {
		t.Cap = 1
	}
	if t.Len < t.Cap {
		t.Points[t.Len] = p
		t.Len++
		return
	}
	copy(t.Points[:t.Cap-1], t.Points[1:t.Cap])
	t.Points[t.Cap-1] = p
}

// Slice returns the live points, oldest first. The slice aliases the trail.
func (t *Trail) Slice() []TrailPoint {
	return t.Points[:t.Len]
}
