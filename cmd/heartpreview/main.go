// Heart fill preview tool - interactive view of the density fill with sliders.
//
// Usage: go run ./cmd/heartpreview
package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/heart"
	"github.com/pthm-cable/heart/render"
	"github.com/pthm-cable/heart/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

type slider struct {
	label    string
	min, max float32
	format   string
	value    *float64
	integer  bool
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := cfg.Heart
	params := cfg.Heart
	layers := float64(params.Layers)
	palette := render.Palette(cfg.Derived.PaletteColors)
	var seed int64 = 1

	rl.InitWindow(windowWidth, windowHeight, "Heart Fill Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	sliders := []slider{
		{label: "Scale (curve units to pixels)", min: 2, max: 16, format: "%.1f", value: &params.Scale},
		{label: "Layers (depth slices)", min: 1, max: 16, format: "%.0f", value: &layers, integer: true},
		{label: "Density (grid spacing)", min: 1.5, max: 8, format: "%.2f", value: &params.Density},
		{label: "Accept factor", min: 0.5, max: 4, format: "%.2f", value: &params.AcceptFactor},
		{label: "Cutoff (search radius)", min: 5, max: 80, format: "%.0f", value: &params.Cutoff},
	}

	var curve []heart.Point3D
	var seeds []systems.Seed
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			params.Layers = int(layers)
			cx, cy := float64(previewSize)/2+10, float64(previewSize)/2+10
			curve = heart.Points(cx, cy, params.Scale, params.Layers)
			seeds, err = systems.Fill(curve, systems.FillOptions{
				Density:      params.Density,
				Cutoff:       params.Cutoff,
				AcceptFactor: params.AcceptFactor,
				CenterX:      cx,
				CenterY:      cy,
				PaletteSize:  len(palette),
				TrailLength:  1,
			}, rand.New(rand.NewSource(seed)))
			if err != nil {
				log.Printf("fill failed: %v", err)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
		for i := range seeds {
			a := seeds[i].Anchor
			r, g, b := palette.At(seeds[i].Appearance.Color).Clamped().RGB255()
			rl.DrawPixel(int32(a.X), int32(a.Y), rl.Color{R: r, G: g, B: b, A: 255})
		}
		if rl.IsKeyDown(rl.KeyV) {
			for _, p := range curve {
				rl.DrawPixel(int32(p.X), int32(p.Y), rl.White)
			}
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minX, minY, maxX, maxY, _ := heart.Bounds(curve)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Curve points: %d  Particles: %d", len(curve), len(seeds)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Bounds: %.0f x %.0f px  Seed: %d", maxX-minX, maxY-minY, seed), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText("Hold V to show the curve samples", 15, statsY+40, 14, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Heart Fill Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprint(s.min), fmt.Sprint(s.max),
				float32(*s.value), s.min, s.max,
			)
			v := float64(next)
			if s.integer {
				v = math.Round(v)
			}
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *s.value {
				*s.value = v
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			layers = float64(defaults.Layers)
			seed = 1
			needsRegen = true
		}
		panelY += 50

		params.Layers = int(layers)
		yamlText := heartYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range strings.Split(strings.TrimRight(yamlText, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yamlText)
		}

		rl.EndDrawing()
	}
}

// heartYAML renders the heart section as it appears in a config file.
func heartYAML(hc config.HeartConfig) string {
	data, err := yaml.Marshal(map[string]config.HeartConfig{"heart": hc})
	if err != nil {
		return err.Error()
	}
	return string(data)
}
