package main

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/heart/config"
	"github.com/pthm-cable/heart/heart"
	"github.com/pthm-cable/heart/systems"
)

// FitnessEvaluator fills the heart with candidate parameters and scores the
// result. Lower is better: the squared relative miss of the particle count
// target plus a weighted share of curve samples left uncovered.
type FitnessEvaluator struct {
	params      *ParamVector
	seeds       []int64
	baseConfig  *config.Config
	width       float64
	height      float64
	target      float64
	coverRadius float64
	coverWeight float64

	lastCount     float64
	lastUncovered float64
}

// NewFitnessEvaluator creates an evaluator for a width x height surface.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, width, height float64, target int, coverRadius, coverWeight float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		width:       width,
		height:      height,
		target:      float64(target),
		coverRadius: coverRadius,
		coverWeight: coverWeight,
	}
}

// Evaluate scores raw parameter values, averaged over all seeds.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, raw)

	cx, cy := fe.width/2, fe.height/2
	curve := heart.Points(cx, cy, cfg.Heart.Scale, cfg.Heart.Layers)

	counts := make([]float64, len(fe.seeds))
	uncovered := make([]float64, len(fe.seeds))
	for i, seed := range fe.seeds {
		filled, err := systems.Fill(curve, systems.FillOptions{
			Density:      cfg.Heart.Density,
			Cutoff:       cfg.Heart.Cutoff,
			AcceptFactor: cfg.Heart.AcceptFactor,
			CenterX:      cx,
			CenterY:      cy,
			PaletteSize:  1,
			TrailLength:  1,
		}, rand.New(rand.NewSource(seed)))
		if err != nil {
			return 1e9
		}
		anchors := make([]heart.Point3D, len(filled))
		for j := range filled {
			a := filled[j].Anchor
			anchors[j] = heart.Point3D{X: a.X, Y: a.Y, Z: a.Z}
		}
		counts[i] = float64(len(filled))
		uncovered[i] = Uncovered(curve, anchors, fe.coverRadius)
	}

	meanCount := stat.Mean(counts, nil)
	meanUncovered := stat.Mean(uncovered, nil)

	fe.lastCount = meanCount
	fe.lastUncovered = meanUncovered

	miss := 1.0
	if fe.target > 0 {
		miss = (meanCount - fe.target) / fe.target
	}
	return miss*miss + fe.coverWeight*meanUncovered
}

// Last returns the mean count and uncovered share of the latest evaluation.
func (fe *FitnessEvaluator) Last() (count, uncovered float64) {
	return fe.lastCount, fe.lastUncovered
}

// Uncovered returns the share of curve samples with no anchor strictly within radius.
func Uncovered(curve, anchors []heart.Point3D, radius float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	if len(anchors) == 0 {
		return 1
	}
	grid := systems.NewPointGrid(anchors, radius)
	miss := 0
	for _, p := range curve {
		if _, _, ok := grid.Nearest(p.X, p.Y, radius); !ok {
			miss++
		}
	}
	return float64(miss) / float64(len(curve))
}
