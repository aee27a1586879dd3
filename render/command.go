// Package render turns particle state into backend-neutral draw commands.
// Nothing here touches a drawing surface; renderer backends execute the commands.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies a draw command.
type Kind uint8

const (
	KindDisc Kind = iota // Solid filled circle
	KindGlow             // Radial gradient disc, Alpha at the center fading to OuterAlpha at Radius
	KindRing             // Circle outline of Width
	KindLine             // Segment from (X, Y) to (X2, Y2) of Width
	KindFill             // Rectangle from (X, Y) to (X2, Y2)
)

func (k Kind) String() string {
	switch k {
	case KindDisc:
		return "disc"
	case KindGlow:
		return "glow"
	case KindRing:
		return "ring"
	case KindLine:
		return "line"
	case KindFill:
		return "fill"
	}
	return "unknown"
}

// Command is a single draw operation. Fields unused by a Kind are zero.
type Command struct {
	Kind       Kind
	X, Y       float64
	X2, Y2     float64
	Radius     float64
	Width      float64
	Color      colorful.Color
	Alpha      float64
	OuterAlpha float64
}

// Palette is the fixed set of particle colors.
type Palette []colorful.Color

// At returns the color for a palette index, wrapping out-of-range indices.
func (p Palette) At(i int) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}
