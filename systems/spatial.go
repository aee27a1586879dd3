// Package systems implements the per-frame heart simulation: density fill,
// particle motion, the rhythm engine, pointer interaction and scheduled effects.
package systems

import (
	"math"

	"github.com/pthm-cable/heart/heart"
)

// PointGrid answers nearest-point queries over a fixed heart point cloud.
// Results match NearestLinear exactly, including its first-minimum tie-break.
type PointGrid struct {
	points   []heart.Point3D
	cellSize float64
	minX     float64
	minY     float64
	cols     int
	rows     int
	cells    [][]int // point indices per cell, ascending
}

// NewPointGrid buckets pts into square cells of the given size.
func NewPointGrid(pts []heart.Point3D, cellSize float64) *PointGrid {
	g := &PointGrid{points: pts, cellSize: cellSize}
	minX, minY, maxX, maxY, ok := heart.Bounds(pts)
	if !ok || cellSize <= 0 {
		return g
	}
	g.minX, g.minY = minX, minY
	g.cols = int((maxX-minX)/cellSize) + 1
	g.rows = int((maxY-minY)/cellSize) + 1

	g.cells = make([][]int, g.cols*g.rows)
	for i := range g.cells {
		g.cells[i] = make([]int, 0, 8)
	}
	for i, p := range pts {
		idx := g.cellIndex(p.X, p.Y)
		g.cells[idx] = append(g.cells[idx], i)
	}
	return g
}

// Nearest returns the index of the closest point to (x, y) strictly within cutoff.
func (g *PointGrid) Nearest(x, y, cutoff float64) (idx int, dist float64, ok bool) {
	if len(g.cells) == 0 {
		return -1, 0, false
	}

	colLo, rowLo := g.clampCell(x-cutoff, y-cutoff)
	colHi, rowHi := g.clampCell(x+cutoff, y+cutoff)

	idx = -1
	dist = math.Inf(1)
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				p := g.points[i]
				d := distance2D(x, y, p.X, p.Y)
				if d < dist || (d == dist && i < idx) {
					dist = d
					idx = i
				}
			}
		}
	}

	if idx < 0 || dist >= cutoff {
		return -1, 0, false
	}
	return idx, dist, true
}

// NearestLinear is the reference scan: first minimum in point order wins.
func NearestLinear(pts []heart.Point3D, x, y, cutoff float64) (idx int, dist float64, ok bool) {
	idx = -1
	dist = math.Inf(1)
	for i, p := range pts {
		d := distance2D(x, y, p.X, p.Y)
		if d < dist {
			dist = d
			idx = i
		}
	}
	if idx < 0 || dist >= cutoff {
		return -1, 0, false
	}
	return idx, dist, true
}

// cellIndex returns the flat index for a position inside the grid.
func (g *PointGrid) cellIndex(x, y float64) int {
	col, row := g.clampCell(x, y)
	return row*g.cols + col
}

// clampCell maps a position to a cell, clamped to the grid.
func (g *PointGrid) clampCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.minX) / g.cellSize))
	row = int(math.Floor((y - g.minY) / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// distance2D returns the Euclidean distance between two points.
func distance2D(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
