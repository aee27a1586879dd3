package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes the animation over a window of frames.
type WindowStats struct {
	WindowStart int64   `csv:"-"`
	WindowEnd   int64   `csv:"frame"`
	ElapsedSec  float64 `csv:"elapsed_sec"`

	Profile   string  `csv:"profile"`
	Mode      string  `csv:"mode"`
	BPM       float64 `csv:"bpm"`
	Particles int     `csv:"particles"`

	// Events during the window
	Beats         int `csv:"beats"`
	Clicks        int `csv:"clicks"`
	Perturbations int `csv:"perturbations"`
	Effects       int `csv:"effects_run"`

	// Beat intensity over the window
	IntensityMean float64 `csv:"intensity_mean"`
	IntensityP10  float64 `csv:"intensity_p10"`
	IntensityP50  float64 `csv:"intensity_p50"`
	IntensityP90  float64 `csv:"intensity_p90"`
	IntensityMax  float64 `csv:"intensity_max"`

	// Particle depth at window end
	DepthMean float64 `csv:"depth_mean"`
	DepthStd  float64 `csv:"depth_std"`
}

// Summary is the mean and spread of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes a Summary. values is not modified. An empty sample yields zeros.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := Summary{
		P10: stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90: stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max: sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.WindowEnd),
		slog.Float64("elapsed_sec", s.ElapsedSec),
		slog.String("profile", s.Profile),
		slog.String("mode", s.Mode),
		slog.Float64("bpm", s.BPM),
		slog.Int("particles", s.Particles),
		slog.Int("beats", s.Beats),
		slog.Int("clicks", s.Clicks),
		slog.Int("perturbations", s.Perturbations),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Float64("depth_std", s.DepthStd),
	)
}
