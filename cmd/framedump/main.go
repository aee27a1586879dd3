// Frame dump tool - simulates the heart offscreen and saves a frame as PNG.
//
// Usage: go run ./cmd/framedump -frames 240 -mode galaxy -out heart.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/game"
	"github.com/pthm-cable/heart/renderer"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outPath := flag.String("out", "heart.png", "Output PNG path")
	width := flag.Int("width", 800, "Render width")
	height := flag.Int("height", 800, "Render height")
	frames := flag.Int("frames", 240, "Frames to simulate before the capture")
	mode := flag.String("mode", "", "Render mode override: particles, wireframe, 3d, galaxy")
	profile := flag.String("profile", "", "Rhythm profile override")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Render.Mode = *mode
	}
	if *profile != "" {
		cfg.Beat.Profile = *profile
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Frame Dump")
	defer rl.CloseWindow()

	g, err := game.NewGame(cfg, float64(*width), float64(*height), game.Options{Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	canvas := renderer.NewCanvas(int32(*width), int32(*height), cfg.Derived.BackgroundColor)
	canvas.Init()
	defer canvas.Unload()

	// The canvas persists between frames, so every step is drawn
	for range *frames {
		canvas.Draw(g.Step(cfg.Derived.FrameMs))
	}

	if canvas.Export(*outPath) {
		fmt.Printf("Frame %d rendered to: %s (%dx%d, %d particles, %.0f BPM)\n",
			g.Frame(), *outPath, *width, *height, g.Count(), g.BPM())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
