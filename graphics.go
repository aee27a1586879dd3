package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/game"
	"github.com/pthm-cable/heart/renderer"
	"github.com/pthm-cable/heart/ui"
)

const controlsLegend = "[M] mode  [B] rhythm  [E] explode  [S] sound  [X] snapshot  [H] controls  [P] perf  [F11] fullscreen"

// maxFrameSteps caps a frame's simulated time after a stall, in nominal frames.
const maxFrameSteps = 4

// keyActions maps window keys to controls. The terminal uses the same letters.
var keyActions = map[int32]game.Action{
	rl.KeyM: game.ActionCycleMode,
	rl.KeyB: game.ActionCycleProfile,
	rl.KeyE: game.ActionPerturb,
	rl.KeyS: game.ActionToggleSound,
	rl.KeyX: game.ActionSnapshot,
}

// runGraphical opens a resizable raylib window and runs until it is closed.
func runGraphical(cfg *config.Config, opts game.Options, maxFrames int64) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sm := newSoundManager(cfg)
	defer sm.Close()
	opts.Sound = sm

	screenW, screenH := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g, err := game.NewGame(cfg, float64(screenW), float64(screenH), opts)
	if err != nil {
		return err
	}
	defer g.Close()
	defer saveExitSnapshot(g)

	canvas := renderer.NewCanvas(screenW, screenH, cfg.Derived.BackgroundColor)
	canvas.Init()
	defer canvas.Unload()

	hud := ui.NewHUD()
	controls := ui.NewControlsPanel()
	perf := ui.NewPerfPanel()

	slog.Info("starting graphical simulation", "seed", opts.Seed, "width", screenW, "height", screenH)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyF11) {
			rl.ToggleFullscreen()
		}
		// Fullscreen toggles do not always report a resize, so compare sizes
		if w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()); w != screenW || h != screenH {
			screenW, screenH = w, h
			canvas.Resize(w, h)
			g.Resize(float64(w), float64(h))
		}

		// Input
		mouse := rl.GetMousePosition()
		overUI := controls.Contains(mouse.X, mouse.Y, screenW, screenH)
		if delta := rl.GetMouseDelta(); (delta.X != 0 || delta.Y != 0) && !overUI {
			g.PointerMove(float64(mouse.X), float64(mouse.Y))
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overUI {
			g.Click(float64(mouse.X), float64(mouse.Y))
		}
		for key, action := range keyActions {
			if rl.IsKeyPressed(key) {
				g.Apply(action)
			}
		}
		if rl.IsKeyPressed(rl.KeyH) {
			controls.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyP) {
			perf.Toggle()
		}

		// Simulate into the persistent canvas
		dtMs := min(float64(rl.GetFrameTime())*1000, maxFrameSteps*cfg.Derived.FrameMs)
		canvas.Draw(g.Step(dtMs))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		canvas.Present()

		st := g.State()
		hud.Draw(ui.HUDData{
			BPM:       g.BPM(),
			Profile:   game.ProfileLabel(g.Profile()),
			Mode:      game.ModeLabel(st.Mode),
			Intensity: g.Intensity(),
			Particles: g.Count(),
			FPS:       rl.GetFPS(),
		})
		action := controls.Draw(screenW, screenH, ui.LabelsFor(g))
		perf.Draw(screenW, g.Perf())
		hud.DrawControls(screenH, controlsLegend)
		rl.EndDrawing()

		g.Apply(action)
		g.RecordPresent()

		if maxFrames > 0 && g.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
	return nil
}
