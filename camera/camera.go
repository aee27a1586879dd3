// Package camera maps simulation coordinates onto a coarse display grid.
package camera

import "math"

// Camera projects simulation pixels onto a grid of cells. A terminal is the
// usual grid: each column is CellW simulation pixels wide and each row CellH
// tall, so the heart keeps its proportions in non-square character cells.
type Camera struct {
	// Grid dimensions in cells
	Cols, Rows int

	// Simulation pixels per cell
	CellW, CellH float64
}

// New creates a camera for a cols x rows grid.
func New(cols, rows int, cellW, cellH float64) *Camera {
	return &Camera{
		Cols:  cols,
		Rows:  rows,
		CellW: cellW,
		CellH: cellH,
	}
}

// WorldSize returns the simulation surface covered by the grid.
func (c *Camera) WorldSize() (w, h float64) {
	return float64(c.Cols) * c.CellW, float64(c.Rows) * c.CellH
}

// WorldToCell returns the cell containing (wx, wy) and whether it is on the grid.
func (c *Camera) WorldToCell(wx, wy float64) (col, row int, ok bool) {
	col = int(math.Floor(wx / c.CellW))
	row = int(math.Floor(wy / c.CellH))
	ok = col >= 0 && col < c.Cols && row >= 0 && row < c.Rows
	return col, row, ok
}

// CellToWorld returns the simulation position of a cell's center.
func (c *Camera) CellToWorld(col, row int) (wx, wy float64) {
	return (float64(col) + 0.5) * c.CellW, (float64(row) + 0.5) * c.CellH
}

// CellSpan returns the cells overlapped by the box (x0, y0)-(x1, y1),
// clipped to the grid. Empty spans have c0 > c1 or r0 > r1.
func (c *Camera) CellSpan(x0, y0, x1, y1 float64) (c0, r0, c1, r1 int) {
	c0 = max(int(math.Floor(min(x0, x1)/c.CellW)), 0)
	r0 = max(int(math.Floor(min(y0, y1)/c.CellH)), 0)
	c1 = min(int(math.Floor(max(x0, x1)/c.CellW)), c.Cols-1)
	r1 = min(int(math.Floor(max(y0, y1)/c.CellH)), c.Rows-1)
	return c0, r0, c1, r1
}

// Resize updates the grid dimensions. It reports whether anything changed.
func (c *Camera) Resize(cols, rows int) bool {
	if cols == c.Cols && rows == c.Rows {
		return false
	}
	c.Cols = cols
	c.Rows = rows
	return true
}
