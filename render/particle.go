package render

import (
	"math"

	"github.com/pthm-cable/heart/components"
	"github.com/pthm-cable/heart/systems"
)

// Particle draw proportions, relative to the perspective-scaled size.
const (
	trailRadius   = 0.8
	trailAlpha    = 0.4
	glowRadius    = 2.5
	glowExtent    = 3.5
	coreRadius    = 1.2
	ringRadius    = 2.0
	spiralTurns   = 3.0
	spiralRadius  = 5.0
	galaxyRadius  = 1.5
	galaxyExtent  = 3.0
	ringLineWidth = 1.0
)

// stop is a radial gradient color stop.
type stop struct {
	at    float64
	alpha float64
}

var (
	glowStops   = []stop{{0, 1}, {0.5, 0.5}, {1, 0}}
	galaxyStops = []stop{{0, 1}, {1, 0}}
)

// gradientAlpha samples a piecewise-linear gradient at frac in [0, 1].
func gradientAlpha(stops []stop, frac float64) float64 {
	if frac <= stops[0].at {
		return stops[0].alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if frac <= b.at {
			k := (frac - a.at) / (b.at - a.at)
			return a.alpha + (b.alpha-a.alpha)*k
		}
	}
	return stops[len(stops)-1].alpha
}

// View is the read-only particle state a draw needs.
type View struct {
	X, Y, Z float64
	Size    float64
	Opacity float64
	Angle   float64
	Color   int
	Trail   []components.TrailPoint
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Particle appends the commands that draw v under mode.
// focal is the perspective distance shared with the particle update.
func Particle(dst []Command, v View, mode Mode, pal Palette, focal float64) []Command {
	persp := systems.Perspective(focal, v.Z)
	size := v.Size * persp
	base := clamp01(v.Opacity * (0.5 + persp*0.5))
	col := pal.At(v.Color)

	switch mode {
	case ModeParticles, ModeVolumetric:
		n := float64(len(v.Trail))
		for i, tp := range v.Trail {
			dst = append(dst, Command{
				Kind:   KindDisc,
				X:      tp.X,
				Y:      tp.Y,
				Radius: size * trailRadius,
				Color:  col,
				Alpha:  clamp01(float64(i) / n * v.Opacity * trailAlpha),
			})
		}

		a := clamp01(v.Opacity * (0.6 + persp*0.4))
		dst = append(dst,
			Command{
				Kind:       KindGlow,
				X:          v.X,
				Y:          v.Y,
				Radius:     size * glowRadius,
				Color:      col,
				Alpha:      a,
				OuterAlpha: a * gradientAlpha(glowStops, glowRadius/glowExtent),
			},
			Command{
				Kind:   KindDisc,
				X:      v.X,
				Y:      v.Y,
				Radius: size * coreRadius,
				Color:  col,
				Alpha:  a,
			},
		)

	case ModeWireframe:
		dst = append(dst, Command{
			Kind:   KindRing,
			X:      v.X,
			Y:      v.Y,
			Radius: size * ringRadius,
			Width:  ringLineWidth,
			Color:  col,
			Alpha:  base,
		})

	case ModeGalaxy:
		angle := v.Angle * spiralTurns
		sx := v.X + math.Cos(angle)*size*spiralRadius
		sy := v.Y + math.Sin(angle)*size*spiralRadius
		dst = append(dst, Command{
			Kind:       KindGlow,
			X:          sx,
			Y:          sy,
			Radius:     size * galaxyRadius,
			Color:      col,
			Alpha:      base,
			OuterAlpha: base * gradientAlpha(galaxyStops, galaxyRadius/galaxyExtent),
		})
	}
	return dst
}
