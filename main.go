package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heart/audio"
	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/game"
	"github.com/pthm-cable/heart/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics or sound")
	term := flag.Bool("terminal", false, "Render in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Log destination in terminal mode (empty = discard)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for particle snapshots (written on [x] and at exit)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	mode := flag.String("mode", "", "Render mode override: particles, wireframe, 3d, galaxy")
	profile := flag.String("profile", "", "Rhythm profile override: normal, intense, arrhythmia, racing, calm, shock")
	sound := flag.Bool("sound", false, "Start with heartbeat sound on")

	flag.Parse()

	// Set up slog before anything can log
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}
	var logOut io.Writer = os.Stdout
	if *term {
		// Anything on stdout would corrupt the screen
		logOut = io.Discard
		if *logFile != "" {
			f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				slog.Error("failed to open log file", "path", *logFile, "error", err)
				os.Exit(1)
			}
			defer f.Close()
			logOut = f
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level})))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *mode != "" {
		cfg.Render.Mode = *mode
	}
	if *profile != "" {
		cfg.Beat.Profile = *profile
	}
	if *sound {
		cfg.Audio.Enabled = true
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		LogStats:    *logStats,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *headless:
		err = runHeadless(ctx, cfg, opts, *maxFrames)
	case *term:
		err = runTerminal(ctx, cfg, opts, *maxFrames)
	default:
		err = runGraphical(cfg, opts, *maxFrames)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// newSoundManager builds the heartbeat player from the audio config. The
// speaker is opened lazily, on first enable.
func newSoundManager(cfg *config.Config) *audio.SoundManager {
	ac := cfg.Audio
	return audio.NewSoundManager(audio.Options{
		SampleRate:   ac.SampleRate,
		BufferMs:     ac.BufferMs,
		StartHz:      ac.StartHz,
		EndHz:        ac.EndHz,
		ThumpMs:      ac.ThumpMs,
		Gain:         ac.Gain,
		GainFloor:    ac.GainFloor,
		SecondBeatMs: ac.SecondBeatMs,
	})
}

// saveExitSnapshot writes a final snapshot when -snapshot-dir is set.
func saveExitSnapshot(g *game.Game) {
	if _, err := g.SaveSnapshot("exit"); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}

// runHeadless steps the simulation at the nominal frame rate with no output
// surface. Useful for soak runs and telemetry capture.
func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, maxFrames int64) error {
	g, err := game.NewGame(cfg, float64(cfg.Screen.Width), float64(cfg.Screen.Height), opts)
	if err != nil {
		return err
	}
	defer g.Close()
	defer saveExitSnapshot(g)

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_frames", maxFrames,
		"particles", g.Count(),
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "frame", g.Frame())
			return nil
		default:
		}

		g.Step(cfg.Derived.FrameMs)

		if maxFrames > 0 && g.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", g.Frame(), "perf", g.Perf())
			return nil
		}
	}
}

// runTerminal renders into the terminal until quit or interrupt.
func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, maxFrames int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sm := newSoundManager(cfg)
	defer sm.Close()
	opts.Sound = sm

	f := terminal.NewFrontend(screen, cfg, terminal.Options{MaxFrames: maxFrames})
	w, h := f.WorldSize()
	g, err := game.NewGame(cfg, w, h, opts)
	if err != nil {
		return err
	}
	defer g.Close()
	defer saveExitSnapshot(g)

	slog.Info("starting terminal renderer", "seed", opts.Seed, "world_w", w, "world_h", h)
	return f.Run(ctx, g)
}
