// Package terminal renders the heart into a terminal with tcell.
package terminal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heart/camera"
	"github.com/pthm-cable/heart/render"
)

// Raster is a persistent grid of cell colors. Like the graphical canvas it is
// never cleared; fade commands blend it toward the background each frame.
type Raster struct {
	cam   *camera.Camera
	cells []colorful.Color
}

// NewRaster creates a raster for the camera's grid filled with bg.
func NewRaster(cam *camera.Camera, bg colorful.Color) *Raster {
	r := &Raster{cam: cam}
	r.Reset(bg)
	return r
}

// Reset resizes the buffer to the camera's grid and fills it with bg.
func (r *Raster) Reset(bg colorful.Color) {
	n := r.cam.Cols * r.cam.Rows
	if cap(r.cells) < n {
		r.cells = make([]colorful.Color, n)
	}
	r.cells = r.cells[:n]
	for i := range r.cells {
		r.cells[i] = bg
	}
}

// At returns the color of a cell.
func (r *Raster) At(col, row int) colorful.Color {
	return r.cells[row*r.cam.Cols+col]
}

// Execute blends a frame of commands into the grid.
func (r *Raster) Execute(cmds []render.Command) {
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Kind {
		case render.KindFill:
			r.fill(cmd)
		case render.KindDisc, render.KindRing:
			r.circle(cmd, cmd.Alpha, cmd.Alpha)
		case render.KindGlow:
			r.circle(cmd, cmd.Alpha, cmd.OuterAlpha)
		case render.KindLine:
			r.line(cmd)
		}
	}
}

func (r *Raster) blend(col, row int, c colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	i := row*r.cam.Cols + col
	r.cells[i] = r.cells[i].BlendRgb(c, min(alpha, 1))
}

func (r *Raster) fill(cmd *render.Command) {
	c0, r0, c1, r1 := r.cam.CellSpan(cmd.X, cmd.Y, cmd.X2, cmd.Y2)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.blend(col, row, cmd.Color, cmd.Alpha)
		}
	}
}

// circle paints the cell under the center at inner alpha and every other cell
// whose center lies inside the radius at an alpha eased toward outer.
func (r *Raster) circle(cmd *render.Command, inner, outer float64) {
	if col, row, ok := r.cam.WorldToCell(cmd.X, cmd.Y); ok {
		r.blend(col, row, cmd.Color, inner)
	}
	if cmd.Radius <= 0 {
		return
	}
	cc, cr, _ := r.cam.WorldToCell(cmd.X, cmd.Y)
	c0, r0, c1, r1 := r.cam.CellSpan(cmd.X-cmd.Radius, cmd.Y-cmd.Radius, cmd.X+cmd.Radius, cmd.Y+cmd.Radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if col == cc && row == cr {
				continue
			}
			wx, wy := r.cam.CellToWorld(col, row)
			d := math.Hypot(wx-cmd.X, wy-cmd.Y)
			if d > cmd.Radius {
				continue
			}
			t := d / cmd.Radius
			r.blend(col, row, cmd.Color, inner+(outer-inner)*t)
		}
	}
}

// line walks the segment at half-cell steps, blending each cell once.
func (r *Raster) line(cmd *render.Command) {
	dx, dy := cmd.X2-cmd.X, cmd.Y2-cmd.Y
	step := min(r.cam.CellW, r.cam.CellH) / 2
	n := int(math.Ceil(math.Hypot(dx, dy)/step)) + 1
	lastCol, lastRow := math.MinInt, math.MinInt
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		col, row, ok := r.cam.WorldToCell(cmd.X+dx*t, cmd.Y+dy*t)
		if !ok || (col == lastCol && row == lastRow) {
			continue
		}
		lastCol, lastRow = col, row
		r.blend(col, row, cmd.Color, cmd.Alpha)
	}
}
