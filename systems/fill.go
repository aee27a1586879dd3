package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/heart"
)

// ErrBadDensity is returned when the fill grid spacing is not positive.
var ErrBadDensity = errors.New("density must be positive")

// FillOptions controls the density fill.
type FillOptions struct {
	Density      float64 // Grid spacing
	Cutoff       float64 // Nearest-point search radius
	AcceptFactor float64 // Keep grid points closer than Density*AcceptFactor to the curve
	CenterX      float64 // Canvas center, where particles start
	CenterY      float64
	StartSpread  float64 // Start offsets are uniform in [-StartSpread/2, StartSpread/2)
	StartDepth   float64 // Start Z is uniform in [-StartDepth, StartDepth)
	PaletteSize  int
	TrailLength  int
	MinSize      float64
	SizeRange    float64
	MaxSpin      float64 // Rotation speed is uniform in [-MaxSpin/2, MaxSpin/2)
}

// Seed is the full initial component set for one particle.
type Seed struct {
	Position   components.Position
	Target     components.Target
	Anchor     components.Anchor
	Appearance components.Appearance
	Motion     components.Motion
	Trail      components.Trail
}

// Fill samples a grid over the point cloud's bounding box and creates one seed
// for every grid point that lies close enough to the curve.
func Fill(pts []heart.Point3D, opts FillOptions, rng *rand.Rand) ([]Seed, error) {
	if opts.Density <= 0 {
		return nil, fmt.Errorf("fill: %w (got %v)", ErrBadDensity, opts.Density)
	}
	minX, minY, maxX, maxY, ok := heart.Bounds(pts)
	if !ok {
		return nil, nil
	}
	paletteSize := opts.PaletteSize
	if paletteSize < 1 {
		paletteSize = 1
	}

	grid := NewPointGrid(pts, math.Max(opts.Cutoff, opts.Density))
	accept := opts.Density * opts.AcceptFactor

	var seeds []Seed
	for x := minX; x < maxX; x += opts.Density {
		for y := minY; y < maxY; y += opts.Density {
			idx, dist, found := grid.Nearest(x, y, opts.Cutoff)
			if !found || dist >= accept {
				continue
			}
			p := pts[idx]

			anchor := components.Anchor{
				X:     x + (rng.Float64()-0.5)*opts.Density,
				Y:     y + (rng.Float64()-0.5)*opts.Density,
				Z:     p.Z,
				Curve: idx,
			}
			pos := components.Position{
				X: opts.CenterX + (rng.Float64()-0.5)*opts.StartSpread,
				Y: opts.CenterY + (rng.Float64()-0.5)*opts.StartSpread,
				Z: (rng.Float64()*2 - 1) * opts.StartDepth,
			}

			seeds = append(seeds, Seed{
				Position: pos,
				Target:   components.Target{X: anchor.X, Y: anchor.Y, Z: anchor.Z},
				Anchor:   anchor,
				Appearance: components.Appearance{
					Color:  rng.Intn(paletteSize),
					Size:   opts.MinSize + rng.Float64()*opts.SizeRange,
					Fading: true,
				},
				Motion: components.Motion{
					PulseOffset:   rng.Float64() * 2 * math.Pi,
					RotationSpeed: (rng.Float64() - 0.5) * opts.MaxSpin,
					Angle:         rng.Float64() * 2 * math.Pi,
				},
				Trail: components.NewTrail(opts.TrailLength),
			})
		}
	}
	return seeds, nil
}
