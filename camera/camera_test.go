package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(80, 24, 8, 16)

	w, h := cam.WorldSize()
	if w != 640 || h != 384 {
		t.Errorf("expected world 640x384, got %fx%f", w, h)
	}
}

func TestWorldToCell(t *testing.T) {
	cam := New(80, 24, 8, 16)

	testCases := []struct {
		wx, wy   float64
		col, row int
		ok       bool
	}{
		{0, 0, 0, 0, true},
		{7.99, 15.99, 0, 0, true},
		{8, 16, 1, 1, true},
		{639.9, 383.9, 79, 23, true},
		{640, 100, 80, 6, false},
		{-0.1, 100, -1, 6, false},
		{100, -5, 12, -1, false},
	}

	for _, tc := range testCases {
		col, row, ok := cam.WorldToCell(tc.wx, tc.wy)
		if col != tc.col || row != tc.row || ok != tc.ok {
			t.Errorf("WorldToCell(%f, %f) = (%d, %d, %v), want (%d, %d, %v)",
				tc.wx, tc.wy, col, row, ok, tc.col, tc.row, tc.ok)
		}
	}
}

func TestCellToWorldRoundtrip(t *testing.T) {
	cam := New(80, 24, 8, 16)

	for _, cell := range [][2]int{{0, 0}, {10, 5}, {79, 23}} {
		wx, wy := cam.CellToWorld(cell[0], cell[1])
		col, row, ok := cam.WorldToCell(wx, wy)
		if !ok || col != cell[0] || row != cell[1] {
			t.Errorf("roundtrip failed: %v -> (%f,%f) -> (%d,%d)", cell, wx, wy, col, row)
		}
	}

	wx, wy := cam.CellToWorld(0, 0)
	if math.Abs(wx-4) > 1e-9 || math.Abs(wy-8) > 1e-9 {
		t.Errorf("expected cell center (4, 8), got (%f, %f)", wx, wy)
	}
}

func TestCellSpanClips(t *testing.T) {
	cam := New(10, 10, 10, 10)

	c0, r0, c1, r1 := cam.CellSpan(-50, 15, 25, -3)
	if c0 != 0 || r0 != 0 || c1 != 2 || r1 != 1 {
		t.Errorf("unexpected span (%d,%d)-(%d,%d)", c0, r0, c1, r1)
	}

	c0, _, c1, _ = cam.CellSpan(200, 0, 300, 10)
	if c0 <= c1 {
		t.Errorf("expected empty span off grid, got %d..%d", c0, c1)
	}
}

func TestResize(t *testing.T) {
	cam := New(80, 24, 8, 16)

	if cam.Resize(80, 24) {
		t.Error("resize to same size should report no change")
	}
	if !cam.Resize(100, 30) {
		t.Error("resize should report change")
	}
	w, h := cam.WorldSize()
	if w != 800 || h != 480 {
		t.Errorf("expected world 800x480, got %fx%f", w, h)
	}
}
