// Package renderer executes render commands with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heart/render"
)

// Canvas draws command lists into a persistent render target. The target is
// never cleared between frames; each frame's fade command leaves the trails.
type Canvas struct {
	target        rl.RenderTexture2D
	width, height int32
	background    colorful.Color
	initialized   bool
}

// NewCanvas creates a canvas. Call Init once the window exists.
func NewCanvas(width, height int32, background colorful.Color) *Canvas {
	return &Canvas{
		width:      width,
		height:     height,
		background: background,
	}
}

// Init allocates the render target and paints it with the background.
func (c *Canvas) Init() {
	if c.initialized {
		return
	}
	c.target = rl.LoadRenderTexture(c.width, c.height)
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(toRGBA(c.background, 1))
	rl.EndTextureMode()
	c.initialized = true
}

// Resize reallocates the target for a new window size. Trails are lost.
func (c *Canvas) Resize(width, height int32) {
	if width <= 0 || height <= 0 || (width == c.width && height == c.height) {
		return
	}
	c.Unload()
	c.width, c.height = width, height
	c.Init()
}

// Draw executes one frame of commands into the target.
func (c *Canvas) Draw(cmds []render.Command) {
	if !c.initialized {
		c.Init()
	}
	rl.BeginTextureMode(c.target)
	for i := range cmds {
		execute(&cmds[i])
	}
	rl.EndTextureMode()
}

// Present blits the target to the screen.
func (c *Canvas) Present() {
	if !c.initialized {
		return
	}
	srcRect := rl.Rectangle{
		X:      0,
		Y:      float32(c.height),
		Width:  float32(c.width),
		Height: -float32(c.height), // Negative to flip
	}
	rl.DrawTextureRec(c.target.Texture, srcRect, rl.Vector2{}, rl.White)
}

// Export writes the canvas to an image file. The format follows the extension.
func (c *Canvas) Export(path string) bool {
	if !c.initialized {
		return false
	}
	img := rl.LoadImageFromTexture(c.target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img) // OpenGL convention
	return rl.ExportImage(*img, path)
}

// Unload releases GPU resources.
func (c *Canvas) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
		c.initialized = false
	}
}

func execute(cmd *render.Command) {
	switch cmd.Kind {
	case render.KindFill:
		rl.DrawRectangle(
			int32(cmd.X), int32(cmd.Y),
			int32(cmd.X2-cmd.X), int32(cmd.Y2-cmd.Y),
			toRGBA(cmd.Color, cmd.Alpha),
		)
	case render.KindDisc:
		rl.DrawCircleV(vec(cmd.X, cmd.Y), float32(cmd.Radius), toRGBA(cmd.Color, cmd.Alpha))
	case render.KindGlow:
		rl.DrawCircleGradient(
			int32(cmd.X), int32(cmd.Y), float32(cmd.Radius),
			toRGBA(cmd.Color, cmd.Alpha),
			toRGBA(cmd.Color, cmd.OuterAlpha),
		)
	case render.KindRing:
		rl.DrawRing(
			vec(cmd.X, cmd.Y),
			float32(cmd.Radius-cmd.Width/2), float32(cmd.Radius+cmd.Width/2),
			0, 360, 24,
			toRGBA(cmd.Color, cmd.Alpha),
		)
	case render.KindLine:
		rl.DrawLineEx(vec(cmd.X, cmd.Y), vec(cmd.X2, cmd.Y2), float32(cmd.Width), toRGBA(cmd.Color, cmd.Alpha))
	}
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

// toRGBA converts a palette color and [0,1] alpha to a raylib color.
func toRGBA(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return rl.Color{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
