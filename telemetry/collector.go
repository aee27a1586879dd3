package telemetry

// Collector accumulates per-frame samples and events into WindowStats.
type Collector struct {
	windowFrames int64
	windowStart  int64

	intensity     []float64
	beats         int
	clicks        int
	perturbations int
	effects       int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: int64(windowFrames),
		intensity:    make([]float64, 0, windowFrames),
	}
}

// RecordFrame records one frame's beat output and how many scheduled effects ran.
func (c *Collector) RecordFrame(intensity float64, beat bool, effects int) {
	c.intensity = append(c.intensity, intensity)
	if beat {
		c.beats++
	}
	c.effects += effects
}

// RecordEvent counts user-driven events.
func (c *Collector) RecordEvent(e Event) {
	switch e.Type {
	case EventClick:
		c.clicks++
	case EventPerturb:
		c.perturbations++
	}
}

// ShouldFlush reports whether the window ending at frame is complete.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// WindowSample is the simulation state sampled at window end.
type WindowSample struct {
	Frame     int64
	ElapsedMs float64
	Profile   string
	Mode      string
	BPM       float64
	Depths    []float64
}

// Flush produces the window's stats and starts a new window.
func (c *Collector) Flush(s WindowSample) WindowStats {
	in := Summarize(c.intensity)
	depth := Summarize(s.Depths)

	stats := WindowStats{
		WindowStart:   c.windowStart,
		WindowEnd:     s.Frame,
		ElapsedSec:    s.ElapsedMs / 1000,
		Profile:       s.Profile,
		Mode:          s.Mode,
		BPM:           s.BPM,
		Particles:     len(s.Depths),
		Beats:         c.beats,
		Clicks:        c.clicks,
		Perturbations: c.perturbations,
		Effects:       c.effects,
		IntensityMean: in.Mean,
		IntensityP10:  in.P10,
		IntensityP50:  in.P50,
		IntensityP90:  in.P90,
		IntensityMax:  in.Max,
		DepthMean:     depth.Mean,
		DepthStd:      depth.Std,
	}

	c.windowStart = s.Frame
	c.intensity = c.intensity[:0]
	c.beats = 0
	c.clicks = 0
	c.perturbations = 0
	c.effects = 0
	return stats
}

// WindowFrames returns the window length.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
