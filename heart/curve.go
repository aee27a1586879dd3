// Package heart generates the layered 3D point cloud that outlines the heart.
package heart

import (
	"iter"
	"math"
)

// Samples is the number of angular samples per layer.
const Samples = 150

// LayerSpacing is the Z distance between adjacent layers.
const LayerSpacing = 20.0

// layerShrink is the scale lost per layer of distance from the middle layer.
const layerShrink = 0.05

// Point3D is a single sample of the heart curve.
type Point3D struct {
	X, Y, Z float64
}

// At evaluates the classic heart parametric curve at t.
// Y grows downward, matching screen coordinates.
func At(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
	return x, y
}

// Curve returns the point cloud for a heart centered on (cx, cy).
// Points are produced layer by layer, then in angular order within a layer.
// Layers further from the middle sit at larger |Z| and are slightly smaller.
func Curve(cx, cy, scale float64, layers int) iter.Seq[Point3D] {
	return func(yield func(Point3D) bool) {
		half := float64(layers) / 2
		for layer := 0; layer < layers; layer++ {
			offset := float64(layer) - half
			depth := offset * LayerSpacing
			layerScale := scale * (1 - math.Abs(offset)*layerShrink)

			for i := 0; i < Samples; i++ {
				t := float64(i) / Samples * 2 * math.Pi
				x, y := At(t)
				p := Point3D{
					X: cx + x*layerScale,
					Y: cy + y*layerScale,
					Z: depth,
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Points collects Curve into a slice.
func Points(cx, cy, scale float64, layers int) []Point3D {
	if layers <= 0 {
		return nil
	}
	pts := make([]Point3D, 0, layers*Samples)
	for p := range Curve(cx, cy, scale, layers) {
		pts = append(pts, p)
	}
	return pts
}

// Bounds returns the axis-aligned XY bounding box of pts.
// ok is false for an empty slice.
func Bounds(pts []Point3D) (minX, minY, maxX, maxY float64, ok bool) {
	if len(pts) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY, true
}
