package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heart/game"
)

// ControlLabels holds the current text of each control button.
type ControlLabels struct {
	Mode    string
	Profile string
	Perturb string
	Sound   string
}

// LabelsFor builds the button labels from the game state.
func LabelsFor(g *game.Game) ControlLabels {
	st := g.State()
	return ControlLabels{
		Mode:    game.ModeLabel(st.Mode),
		Profile: game.ProfileLabel(g.Profile()),
		Perturb: game.PerturbLabel,
		Sound:   game.SoundLabel(st.SoundEnabled),
	}
}

// buttonActions is the left-to-right button order.
var buttonActions = [4]game.Action{
	game.ActionCycleMode,
	game.ActionCycleProfile,
	game.ActionPerturb,
	game.ActionToggleSound,
}

// ControlsPanel renders the row of control buttons centered at the bottom of the screen.
type ControlsPanel struct {
	renderer *Renderer
	visible  bool
}

// NewControlsPanel creates a visible controls panel.
func NewControlsPanel() *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// layout returns the panel bounds and each button's bounds.
func (c *ControlsPanel) layout(screenW, screenH int32) (rl.Rectangle, [4]rl.Rectangle) {
	th := c.renderer.Theme
	n := int32(len(buttonActions))
	width := n*th.ButtonWidth + (n-1)*th.ButtonGap + 2*th.Padding
	height := th.ButtonHeight + 2*th.Padding
	x := (screenW - width) / 2
	y := screenH - height - th.Padding - th.LineHeight // Clear of the key legend

	var buttons [4]rl.Rectangle
	for i := range buttons {
		buttons[i] = rl.Rectangle{
			X:      float32(x + th.Padding + int32(i)*(th.ButtonWidth+th.ButtonGap)),
			Y:      float32(y + th.Padding),
			Width:  float32(th.ButtonWidth),
			Height: float32(th.ButtonHeight),
		}
	}
	panel := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}
	return panel, buttons
}

// Contains reports whether a screen point is over the visible panel, so
// clicks on buttons are not also treated as heart clicks.
func (c *ControlsPanel) Contains(x, y float32, screenW, screenH int32) bool {
	if !c.visible {
		return false
	}
	panel, _ := c.layout(screenW, screenH)
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, panel)
}

// Draw renders the buttons and returns the action of the one pressed this frame.
func (c *ControlsPanel) Draw(screenW, screenH int32, labels ControlLabels) game.Action {
	if !c.visible {
		return game.ActionNone
	}
	panel, buttons := c.layout(screenW, screenH)
	c.renderer.DrawPanel(int32(panel.X), int32(panel.Y), int32(panel.Width), int32(panel.Height))

	text := [4]string{labels.Mode, labels.Profile, labels.Perturb, labels.Sound}
	action := game.ActionNone
	for i, bounds := range buttons {
		if gui.Button(bounds, text[i]) {
			action = buttonActions[i]
		}
	}
	return action
}
