package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/heart"
)

// InteractionOptions holds pointer and perturbation strengths.
type InteractionOptions struct {
	RepelRadius    float64
	RepelForce     float64
	RippleRadius   float64
	RippleForce    float64
	ExplosionMin   float64
	ExplosionRange float64
	ExplosionDepth float64
}

// DefaultInteractionOptions returns the stock strengths.
func DefaultInteractionOptions() InteractionOptions {
	return InteractionOptions{
		RepelRadius:    100,
		RepelForce:     3,
		RippleRadius:   200,
		RippleForce:    30,
		ExplosionMin:   50,
		ExplosionRange: 100,
		ExplosionDepth: 100,
	}
}

// Push moves pos directly away from (cx, cy) when it lies within radius.
// Displacement falls off linearly from strength at the center to zero at radius.
// Returns the displacement applied.
func Push(pos *components.Position, cx, cy, radius, strength float64) (dx, dy float64) {
	ox := pos.X - cx
	oy := pos.Y - cy
	d := math.Sqrt(ox*ox + oy*oy)
	if d >= radius {
		return 0, 0
	}
	angle := math.Atan2(oy, ox)
	force := (radius - d) / radius
	dx = math.Cos(angle) * force * strength
	dy = math.Sin(angle) * force * strength
	pos.X += dx
	pos.Y += dy
	return dx, dy
}

// Repel applies the hover push around the pointer.
func Repel(pos *components.Position, mx, my float64, opts InteractionOptions) {
	Push(pos, mx, my, opts.RepelRadius, opts.RepelForce)
}

// Ripple applies one click pulse around (cx, cy).
func Ripple(pos *components.Position, cx, cy float64, opts InteractionOptions) {
	Push(pos, cx, cy, opts.RippleRadius, opts.RippleForce)
}

// Explode flings pos in a random direction.
func Explode(pos *components.Position, opts InteractionOptions, rng *rand.Rand) {
	angle := rng.Float64() * 2 * math.Pi
	force := rng.Float64()*opts.ExplosionRange + opts.ExplosionMin
	pos.X += math.Cos(angle) * force
	pos.Y += math.Sin(angle) * force
	pos.Z += (rng.Float64() - 0.5) * opts.ExplosionDepth
}

// Retarget moves an anchor onto a regenerated curve. The anchor keeps its
// offset from the sample it was matched to, so the interior fill survives.
// oldPts and newPts must come from curves with the same layer count.
func Retarget(anchor *components.Anchor, oldPts, newPts []heart.Point3D) bool {
	i := anchor.Curve
	if i < 0 || i >= len(oldPts) || i >= len(newPts) {
		return false
	}
	anchor.X = newPts[i].X + (anchor.X - oldPts[i].X)
	anchor.Y = newPts[i].Y + (anchor.Y - oldPts[i].Y)
	anchor.Z = newPts[i].Z
	return true
}
