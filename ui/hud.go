package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heart/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	BPM       float64
	Profile   string
	Mode      string
	Intensity float64
	Particles int
	FPS       int32
}

// HUD renders the BPM readout and status lines.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	th := r.Theme
	x, y := th.Padding, th.Padding
	width := int32(260)

	r.DrawPanel(x, y, width, th.HeaderFontSize+4*th.LineHeight+2*th.Padding)
	x += th.Padding
	y += th.Padding

	rl.DrawText(fmt.Sprintf("%.0f BPM", data.BPM), x, y, th.HeaderFontSize, th.AccentColor)
	y += th.HeaderFontSize + 4

	y = r.DrawLabelValue(x, y, "Rhythm", data.Profile)
	y = r.DrawLabelValue(x, y, "Mode", data.Mode)
	y = r.DrawBar(x, y, "Pulse", data.Intensity, width-2*th.Padding)
	rl.DrawText(fmt.Sprintf("Particles: %d | FPS: %d", data.Particles, data.FPS), x, y, 12, th.LabelColor)
}

// DrawControls renders the key legend in the bottom-left corner.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-16, 12, rl.Gray)
}

// PerfPanel renders per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	visible  bool
}

// NewPerfPanel creates a hidden performance panel.
func NewPerfPanel() *PerfPanel {
	return &PerfPanel{renderer: NewRenderer()}
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the panel against the right edge of the screen.
func (p *PerfPanel) Draw(screenW int32, stats telemetry.PerfStats) {
	if !p.visible {
		return
	}
	th := p.renderer.Theme
	width := int32(240)
	phases := telemetry.Phases()
	x := screenW - width - th.Padding
	y := th.Padding

	p.renderer.DrawPanel(x, y, width, int32(len(phases)+2)*14+20+2*th.Padding)
	x += th.Padding
	y += th.Padding

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgFrame.Round(time.Microsecond),
		stats.MaxFrame.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 14

	for _, name := range phases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
	rl.DrawText(fmt.Sprintf("Steps/s: %.0f", stats.StepsPerSecond), x, y, 12, rl.LightGray)
}
