package grading

import (
	"math"

	"solarverify/internal/models"
)

const (
	// unresolvedScore is the quality assumed for a component we cannot
	// identify.
	unresolvedScore = 50.0
	// neutralSizing applies when no consumption figure is supplied.
	neutralSizing = 75.0

	sizingTolerance = 0.20
	sizingDecay     = 125.0 // points lost per unit of deviation beyond tolerance

	tierWeight       = 0.7
	efficiencyWeight = 0.3
)

var tierScores = map[models.QualityTier]float64{
	models.TierPremium:   100,
	models.TierExcellent: 85,
	models.TierGood:      70,
	models.TierStandard:  55,
}

// Efficiency bounds per type; values at or below lo score 0, at or above hi
// score 100.
var efficiencyRange = map[models.ComponentType][2]float64{
	models.ComponentPanel:    {18, 22},
	models.ComponentInverter: {95, 99},
	models.ComponentBattery:  {90, 98},
}

var typeWeights = map[models.ComponentType]float64{
	models.ComponentPanel:    0.4,
	models.ComponentInverter: 0.4,
	models.ComponentBattery:  0.2,
}

// claims with no type that could not be resolved
const untypedWeight = 0.2

// PriceScore is 100 at or below the benchmark low, 0 at or above the high and
// linear between.
func PriceScore(price float64, bm models.PricingBenchmark) float64 {
	switch {
	case price <= bm.PriceLow:
		return 100
	case price >= bm.PriceHigh:
		return 0
	}
	return clamp(100 * (bm.PriceHigh - price) / (bm.PriceHigh - bm.PriceLow))
}

// ComponentScore blends the tier with normalized efficiency.
func ComponentScore(c models.Component) float64 {
	tier, ok := tierScores[c.Tier]
	if !ok {
		tier = unresolvedScore
	}
	eff := 0.0
	if r, ok := efficiencyRange[c.Type]; ok {
		eff = clamp(100 * (c.Efficiency() - r[0]) / (r[1] - r[0]))
	}
	return tierWeight*tier + efficiencyWeight*eff
}

// SizingScore compares the quoted size with the recommended size. Within
// ±20% scores 100, decaying linearly to 0 at ±100%.
func SizingScore(systemKW, recommendedKW float64) float64 {
	if recommendedKW <= 0 {
		return neutralSizing
	}
	d := math.Abs(systemKW/recommendedKW - 1)
	if d <= sizingTolerance {
		return 100
	}
	return clamp(100 - (d-sizingTolerance)*sizingDecay)
}

func LetterGrade(composite float64) models.Grade {
	switch {
	case composite >= 90:
		return models.GradeA
	case composite >= 75:
		return models.GradeB
	case composite >= 60:
		return models.GradeC
	case composite >= 45:
		return models.GradeD
	}
	return models.GradeF
}

// weightedQuality averages scores per type, then combines types by weight
// normalized over the types present.
type weightedQuality struct {
	sum   map[models.ComponentType]float64
	count map[models.ComponentType]int
}

func newWeightedQuality() *weightedQuality {
	return &weightedQuality{
		sum:   make(map[models.ComponentType]float64),
		count: make(map[models.ComponentType]int),
	}
}

func (w *weightedQuality) add(t models.ComponentType, score float64) {
	w.sum[t] += score
	w.count[t]++
}

func (w *weightedQuality) value() float64 {
	var total, weights float64
	for t, n := range w.count {
		weight, ok := typeWeights[t]
		if !ok {
			weight = untypedWeight
		}
		total += weight * w.sum[t] / float64(n)
		weights += weight
	}
	if weights == 0 {
		return unresolvedScore
	}
	return total / weights
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
