// Package main provides CMA-ES optimization for the heart fill parameters.
package main

import (
	"github.com/pthm-cable/heart/config"
)

// ParamSpec is one tunable heart setting and its search bounds.
type ParamSpec struct {
	Name    string
	Path    string // Key in the config file
	Min     float64
	Max     float64
	Default float64
	field   func(*config.HeartConfig) *float64
}

// ParamVector is the ordered search space. Vectors passed to its methods use
// the same order as Specs.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the fill parameters: grid spacing, acceptance
// distance and nearest-point search radius.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "density", Path: "heart.density", Min: 1.5, Max: 8, Default: 2.2,
				field: func(h *config.HeartConfig) *float64 { return &h.Density },
			},
			{
				Name: "accept_factor", Path: "heart.accept_factor", Min: 0.5, Max: 4, Default: 2,
				field: func(h *config.HeartConfig) *float64 { return &h.AcceptFactor },
			},
			{
				Name: "cutoff", Path: "heart.cutoff", Min: 5, Max: 80, Default: 50,
				field: func(h *config.HeartConfig) *float64 { return &h.Cutoff },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the defaults in Specs order.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(func(_ int, s ParamSpec) float64 { return s.Default })
}

// Normalize maps raw values onto [0,1] per bound, which keeps one CMA-ES step
// size meaningful for every parameter.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(func(i int, s ParamSpec) float64 { return (raw[i] - s.Min) / (s.Max - s.Min) })
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(func(i int, s ParamSpec) float64 { return s.Min + unit[i]*(s.Max-s.Min) })
}

// Clamp limits each value to its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	return pv.each(func(i int, s ParamSpec) float64 { return max(s.Min, min(s.Max, v[i])) })
}

// ApplyToConfig writes clamped values into cfg.Heart.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(&cfg.Heart) = v
	}
}

// ExtractFromConfig reads the current values from cfg.Heart.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.each(func(_ int, s ParamSpec) float64 { return *s.field(&cfg.Heart) })
}

func (pv *ParamVector) each(fn func(i int, s ParamSpec) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = fn(i, s)
	}
	return out
}
