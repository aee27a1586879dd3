// Package config provides configuration loading and access for the heart simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxTrailLength bounds the per-particle trail capacity.
const MaxTrailLength = 8

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Heart       HeartConfig       `yaml:"heart"`
	Particle    ParticleConfig    `yaml:"particle"`
	Loop        LoopConfig        `yaml:"loop"`
	Beat        BeatConfig        `yaml:"beat"`
	Interaction InteractionConfig `yaml:"interaction"`
	Render      RenderConfig      `yaml:"render"`
	Palette     []string          `yaml:"palette"`
	Audio       AudioConfig       `yaml:"audio"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Terminal    TerminalConfig    `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// HeartConfig holds curve generation and density fill parameters.
type HeartConfig struct {
	Scale        float64 `yaml:"scale"`         // Curve units to pixels
	Layers       int     `yaml:"layers"`        // Depth layers of the point cloud
	Density      float64 `yaml:"density"`       // Fill grid spacing in pixels
	Cutoff       float64 `yaml:"cutoff"`        // Nearest-point search radius
	AcceptFactor float64 `yaml:"accept_factor"` // Accept grid point when nearest < density * this
	StartSpread  float64 `yaml:"start_spread"`  // Start positions within +/- spread/2 of center
	StartDepth   float64 `yaml:"start_depth"`   // Start Z within +/- this
}

// ParticleConfig holds per-particle animation tuning.
type ParticleConfig struct {
	FadeStep         float64 `yaml:"fade_step"`          // Opacity gained per frame while fading in
	PulseRate        float64 `yaml:"pulse_rate"`         // Time multiplier for pulse and jitter
	PulseGain        float64 `yaml:"pulse_gain"`         // Scale = 1 + pulse * gain
	Focal            float64 `yaml:"focal"`              // Perspective focal distance D
	Blend            float64 `yaml:"blend"`              // Exponential smoothing factor toward target
	Jitter           float64 `yaml:"jitter"`             // Decorative sine jitter amplitude
	TrailLength      int     `yaml:"trail_length"`       // FIFO trail capacity
	MinSize          float64 `yaml:"min_size"`           // Base radius lower bound
	SizeRange        float64 `yaml:"size_range"`         // Base radius = min + rand * range
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"` // Per-particle angle speed in +/- this/2
}

// LoopConfig holds per-frame counters.
type LoopConfig struct {
	TimeStep     float64 `yaml:"time_step"`     // Global time counter increment per frame
	RotationStep float64 `yaml:"rotation_step"` // Global Y rotation increment per frame (radians)
}

// BeatConfig holds rhythm engine parameters.
type BeatConfig struct {
	Profile          string  `yaml:"profile"`           // Initial rhythm profile name
	TriggerThreshold float64 `yaml:"trigger_threshold"` // Intensity above which a beat may fire
	TriggerFraction  float64 `yaml:"trigger_fraction"`  // Min fraction of beat interval between triggers
	ShakeDecay       float64 `yaml:"shake_decay"`       // Shake multiplier per frame
}

// InteractionConfig holds pointer and perturbation parameters.
type InteractionConfig struct {
	RepelRadius      float64 `yaml:"repel_radius"`
	RepelForce       float64 `yaml:"repel_force"`
	RippleRadius     float64 `yaml:"ripple_radius"`
	RippleForce      float64 `yaml:"ripple_force"`
	RipplePulses     int     `yaml:"ripple_pulses"`
	RippleIntervalMs float64 `yaml:"ripple_interval_ms"`
	ExplosionMin     float64 `yaml:"explosion_min"`
	ExplosionRange   float64 `yaml:"explosion_range"`
	ExplosionDepth   float64 `yaml:"explosion_depth"`
	WaveDelayMs      float64 `yaml:"wave_delay_ms"`   // Delay between explosion and wave
	WaveStaggerMs    float64 `yaml:"wave_stagger_ms"` // Per-particle stagger
	WaveLift         float64 `yaml:"wave_lift"`
	WaveHoldMs       float64 `yaml:"wave_hold_ms"`
}

// RenderConfig holds draw parameters.
type RenderConfig struct {
	Mode               string  `yaml:"mode"` // particles, wireframe, 3d, galaxy
	Background         string  `yaml:"background"`
	FadeAlpha          float64 `yaml:"fade_alpha"`
	GalaxyFadeAlpha    float64 `yaml:"galaxy_fade_alpha"`
	ConnectionStride   int     `yaml:"connection_stride"`
	ConnectionWindow   int     `yaml:"connection_window"`
	ConnectionDistance float64 `yaml:"connection_distance"`
	ConnectionColor    string  `yaml:"connection_color"`
	ConnectionAlpha    float64 `yaml:"connection_alpha"`
}

// AudioConfig holds heartbeat synthesis parameters.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"` // Sound on at startup
	SampleRate   int     `yaml:"sample_rate"`
	BufferMs     int     `yaml:"buffer_ms"`
	StartHz      float64 `yaml:"start_hz"`
	EndHz        float64 `yaml:"end_hz"`
	ThumpMs      float64 `yaml:"thump_ms"`
	Gain         float64 `yaml:"gain"`
	GainFloor    float64 `yaml:"gain_floor"`
	SecondBeatMs float64 `yaml:"second_beat_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Frames per stats window
	PerfWindow  int `yaml:"perf_window"`  // Frames averaged by the perf collector
}

// TerminalConfig holds terminal backend parameters.
type TerminalConfig struct {
	FPS        int     `yaml:"fps"`
	CellWidth  float64 `yaml:"cell_width"`  // Simulation pixels per terminal column
	CellHeight float64 `yaml:"cell_height"` // Simulation pixels per terminal row
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameMs         float64          // Nominal milliseconds per frame
	PaletteColors   []colorful.Color // Parsed palette
	BackgroundColor colorful.Color
	ConnectionColor colorful.Color
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Merge(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge unmarshals data over cfg. Only fields present in data are overwritten.
func Merge(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks the ranges the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: screen.target_fps must be positive", ErrInvalid)
	case c.Heart.Density <= 0:
		return fmt.Errorf("%w: heart.density must be positive, got %v", ErrInvalid, c.Heart.Density)
	case c.Heart.Layers <= 0:
		return fmt.Errorf("%w: heart.layers must be positive, got %d", ErrInvalid, c.Heart.Layers)
	case c.Particle.TrailLength < 1 || c.Particle.TrailLength > MaxTrailLength:
		return fmt.Errorf("%w: particle.trail_length must be in [1, %d], got %d", ErrInvalid, MaxTrailLength, c.Particle.TrailLength)
	case c.Particle.Focal <= 0:
		return fmt.Errorf("%w: particle.focal must be positive", ErrInvalid)
	case c.Particle.Blend <= 0 || c.Particle.Blend > 1:
		return fmt.Errorf("%w: particle.blend must be in (0, 1], got %v", ErrInvalid, c.Particle.Blend)
	case c.Beat.ShakeDecay < 0 || c.Beat.ShakeDecay >= 1:
		return fmt.Errorf("%w: beat.shake_decay must be in [0, 1), got %v", ErrInvalid, c.Beat.ShakeDecay)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	case c.Render.ConnectionStride <= 0:
		return fmt.Errorf("%w: render.connection_stride must be positive", ErrInvalid)
	case c.Terminal.FPS <= 0:
		return fmt.Errorf("%w: terminal.fps must be positive", ErrInvalid)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("%w: terminal cell size must be positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.FrameMs = 1000.0 / float64(c.Screen.TargetFPS)

	c.Derived.PaletteColors = make([]colorful.Color, len(c.Palette))
	for i, hex := range c.Palette {
		col, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("%w: palette[%d] %q: %v", ErrInvalid, i, hex, err)
		}
		c.Derived.PaletteColors[i] = col
	}

	bg, err := colorful.Hex(c.Render.Background)
	if err != nil {
		return fmt.Errorf("%w: render.background %q: %v", ErrInvalid, c.Render.Background, err)
	}
	c.Derived.BackgroundColor = bg

	conn, err := colorful.Hex(c.Render.ConnectionColor)
	if err != nil {
		return fmt.Errorf("%w: render.connection_color %q: %v", ErrInvalid, c.Render.ConnectionColor, err)
	}
	c.Derived.ConnectionColor = conn
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
