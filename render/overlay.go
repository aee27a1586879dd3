package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Style holds the frame-level draw settings.
type Style struct {
	Background      colorful.Color
	FadeAlpha       float64 // Trail fade overlay alpha
	GalaxyFadeAlpha float64 // Galaxy keeps longer trails
	Connections     ConnectionStyle
}

// ConnectionStyle controls the wireframe proximity lines.
type ConnectionStyle struct {
	Stride   int     // Outer loop step; also the inner step
	Window   int     // Inner loop looks at j < i+Window
	Distance float64 // Connect when strictly closer than this
	Color    colorful.Color
	Alpha    float64
	Width    float64
}

// DefaultStyle returns the stock look.
func DefaultStyle() Style {
	return Style{
		Background:      colorful.Color{R: 10.0 / 255, G: 5.0 / 255, B: 30.0 / 255},
		FadeAlpha:       0.35,
		GalaxyFadeAlpha: 0.25,
		Connections: ConnectionStyle{
			Stride:   5,
			Window:   10,
			Distance: 50,
			Color:    colorful.Color{R: 1, G: 105.0 / 255, B: 180.0 / 255},
			Alpha:    0.1,
			Width:    0.5,
		},
	}
}

// Fade returns the translucent overlay painted before each frame.
func Fade(w, h float64, mode Mode, st Style) Command {
	alpha := st.FadeAlpha
	if mode == ModeGalaxy {
		alpha = st.GalaxyFadeAlpha
	}
	return Command{
		Kind:  KindFill,
		X2:    w,
		Y2:    h,
		Color: st.Background,
		Alpha: alpha,
	}
}

// Point is a screen position.
type Point struct {
	X, Y float64
}

// Connections appends lines between sampled nearby points. Only pairs
// (i, j) with i on the stride and j = i+1, i+1+stride, ... below i+window
// are tested, keeping the work linear in len(pts).
func Connections(dst []Command, pts []Point, cs ConnectionStyle) []Command {
	if cs.Stride <= 0 {
		return dst
	}
	n := len(pts)
	for i := 0; i < n; i += cs.Stride {
		end := min(i+cs.Window, n)
		for j := i + 1; j < end; j += cs.Stride {
			a, b := pts[i], pts[j]
			if math.Hypot(a.X-b.X, a.Y-b.Y) >= cs.Distance {
				continue
			}
			dst = append(dst, Command{
				Kind:  KindLine,
				X:     a.X,
				Y:     a.Y,
				X2:    b.X,
				Y2:    b.Y,
				Width: cs.Width,
				Color: cs.Color,
				Alpha: cs.Alpha,
			})
		}
	}
	return dst
}
