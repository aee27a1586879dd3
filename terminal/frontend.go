package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heart/camera"
	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/game"
)

// Options configures the terminal loop.
type Options struct {
	MaxFrames int64 // Stop after this many frames; 0 runs until quit
}

// Frontend drives a Game from a tcell screen.
type Frontend struct {
	screen tcell.Screen
	cam    *camera.Camera
	raster *Raster
	bg     colorful.Color
	period time.Duration
	opts   Options

	pressed      bool
	lastX, lastY int
}

// NewFrontend sizes a camera to the screen. Create the Game with WorldSize.
func NewFrontend(screen tcell.Screen, cfg *config.Config, opts Options) *Frontend {
	cols, rows := screen.Size()
	tc := cfg.Terminal
	cam := camera.New(cols, rows, tc.CellWidth, tc.CellHeight)
	bg := cfg.Derived.BackgroundColor
	return &Frontend{
		screen: screen,
		cam:    cam,
		raster: NewRaster(cam, bg),
		bg:     bg,
		period: time.Second / time.Duration(tc.FPS),
		opts:   opts,
		lastX:  -1,
		lastY:  -1,
	}
}

// WorldSize returns the simulation surface the screen covers.
func (f *Frontend) WorldSize() (float64, float64) {
	return f.cam.WorldSize()
}

// Run steps and draws g until quit, ctx cancellation, or MaxFrames.
func (f *Frontend) Run(ctx context.Context, g *game.Game) error {
	ticker := time.NewTicker(f.period)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	dtMs := float64(f.period) / float64(time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !f.handle(g, ev) {
				return nil
			}

		case <-ticker.C:
			f.frame(g, dtMs)
			if f.opts.MaxFrames > 0 && g.Frame() >= f.opts.MaxFrames {
				return nil
			}
		}
	}
}

func (f *Frontend) frame(g *game.Game, dtMs float64) {
	f.raster.Execute(g.Step(dtMs))
	f.draw(g)
	f.screen.Show()
	g.RecordPresent()
}

// handle applies one input event. It returns false on quit.
func (f *Frontend) handle(g *game.Game, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, quit := keyAction(ev.Key(), ev.Rune())
		if quit {
			return false
		}
		g.Apply(action)

	case *tcell.EventMouse:
		col, row := ev.Position()
		wx, wy := f.cam.CellToWorld(col, row)
		if col != f.lastX || row != f.lastY {
			f.lastX, f.lastY = col, row
			g.PointerMove(wx, wy)
		}
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !f.pressed {
			g.Click(wx, wy)
		}
		f.pressed = down

	case *tcell.EventResize:
		cols, rows := ev.Size()
		if f.cam.Resize(cols, rows) {
			f.raster.Reset(f.bg)
			w, h := f.cam.WorldSize()
			g.Resize(w, h)
			slog.Debug("terminal resized", "cols", cols, "rows", rows)
		}
		f.screen.Sync()
	}
	return true
}

// keyAction maps a key to a control. Keys match the graphical window.
func keyAction(key tcell.Key, ch rune) (action game.Action, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionNone, true
	case tcell.KeyRune:
	default:
		return game.ActionNone, false
	}
	switch ch {
	case 'q', 'Q':
		return game.ActionNone, true
	case 'm', 'M':
		return game.ActionCycleMode, false
	case 'b', 'B':
		return game.ActionCycleProfile, false
	case 'e', 'E', ' ':
		return game.ActionPerturb, false
	case 's', 'S':
		return game.ActionToggleSound, false
	case 'x', 'X':
		return game.ActionSnapshot, false
	}
	return game.ActionNone, false
}

func (f *Frontend) draw(g *game.Game) {
	for row := 0; row < f.cam.Rows; row++ {
		for col := 0; col < f.cam.Cols; col++ {
			style := tcell.StyleDefault.Background(toTcell(f.raster.At(col, row)))
			f.screen.SetContent(col, row, ' ', nil, style)
		}
	}
	f.drawText(0, statusLine(g))
	if f.cam.Rows > 1 {
		f.drawText(f.cam.Rows-1, "[m] mode  [b] rhythm  [e] "+game.PerturbLabel+"  [s] sound  [x] snapshot  [q] quit")
	}
}

// drawText writes s over row, keeping each cell's background.
func (f *Frontend) drawText(row int, s string) {
	col := 0
	for _, ch := range s {
		if col >= f.cam.Cols {
			return
		}
		style := tcell.StyleDefault.
			Foreground(tcell.ColorWhite).
			Background(toTcell(f.raster.At(col, row)))
		f.screen.SetContent(col, row, ch, nil, style)
		col++
	}
}

func statusLine(g *game.Game) string {
	st := g.State()
	return fmt.Sprintf("♥ %s | %s | %s",
		game.ModeLabel(st.Mode),
		game.ProfileLabel(g.Profile()),
		game.SoundLabel(st.SoundEnabled),
	)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
