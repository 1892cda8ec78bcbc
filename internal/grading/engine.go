// Package grading scores a solar installation quote against benchmark data
// and assigns an A-F grade.
package grading

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"solarverify/internal/apperrors"
	"solarverify/internal/benchmark"
	"solarverify/internal/models"
)

var ErrNoBenchmarks = errors.New("no pricing benchmarks loaded")

const maxComponents = 50

// Source is the read side of the benchmark store.
type Source interface {
	Resolve(claim models.ComponentClaim) (models.Component, bool)
	PricingFor(region, sizeBand string) (bm models.PricingBenchmark, fallback bool, ok bool)
	InstallerBand(pricePerKW float64) (band models.InstallerBenchmark, within bool, ok bool)
}

type Weights struct {
	Price   float64
	Quality float64
	Sizing  float64
}

var DefaultWeights = Weights{Price: 0.45, Quality: 0.35, Sizing: 0.20}

// DefaultYields is typical annual generation in kWh per installed kW.
var DefaultYields = map[string]float64{
	"uk":       850,
	"uk-south": 950,
	"uk-north": 800,
	"scotland": 750,
	"wales":    880,
}

type Engine struct {
	source  Source
	weights Weights
	yields  map[string]float64
	log     *zap.Logger
}

type Option func(*Engine)

// WithWeights overrides the composite weights. They are normalized to sum to
// one; a non-positive total is ignored.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		total := w.Price + w.Quality + w.Sizing
		if total <= 0 || w.Price < 0 || w.Quality < 0 || w.Sizing < 0 {
			return
		}
		e.weights = Weights{Price: w.Price / total, Quality: w.Quality / total, Sizing: w.Sizing / total}
	}
}

func WithYields(yields map[string]float64) Option {
	return func(e *Engine) {
		e.yields = make(map[string]float64, len(yields))
		for region, y := range yields {
			e.yields[benchmark.NormalizeRegion(region)] = y
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(source Source, opts ...Option) *Engine {
	e := &Engine{
		source:  source,
		weights: DefaultWeights,
		yields:  DefaultYields,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grade scores a quote. It only fails on invalid input or when no pricing
// data is loaded; missing regional data and unknown components degrade the
// result instead.
func (e *Engine) Grade(q models.QuoteSubmission) (*models.GradeResult, error) {
	q, err := normalize(q)
	if err != nil {
		return nil, err
	}

	res := &models.GradeResult{
		Matches:    []models.ComponentMatch{},
		Unresolved: []models.ComponentClaim{},
		Rationale:  []string{},
	}
	note := func(format string, args ...any) {
		res.Rationale = append(res.Rationale, printer.Sprintf(format, args...))
	}

	// price
	bm, fallback, ok := e.source.PricingFor(q.Region, q.SizeBand)
	if !ok {
		return nil, ErrNoBenchmarks
	}
	res.Benchmark, res.BenchmarkFallback = bm, fallback
	res.Scores.Price = round1(PriceScore(q.TotalPrice, bm))
	res.PricePerKW = math.Round(q.TotalPrice / q.SystemSizeKW)

	if fallback {
		region := q.Region
		if region == "" {
			region = "an unspecified region"
		}
		note("No %s benchmark for %s; using the %s %s range", q.SizeBand, region, bm.Region, bm.SizeBand)
	}
	note("Quoted £%d against a %s %s range of £%d to £%d (%s)",
		int64(q.TotalPrice), bm.Region, bm.SizeBand, int64(bm.PriceLow), int64(bm.PriceHigh), pricePosition(q.TotalPrice, bm))

	if band, within, ok := e.source.InstallerBand(res.PricePerKW); ok {
		b := band
		res.InstallerBand = &b
		if within {
			note("£%d/kW sits within typical %s installer pricing (£%d to £%d/kW)",
				int64(res.PricePerKW), band.InstallerType, int64(band.MinPerKW), int64(band.MaxPerKW))
		} else if res.PricePerKW < band.MinPerKW {
			note("£%d/kW is below typical %s installer pricing (£%d to £%d/kW)",
				int64(res.PricePerKW), band.InstallerType, int64(band.MinPerKW), int64(band.MaxPerKW))
		} else {
			note("£%d/kW is above typical %s installer pricing (£%d to £%d/kW)",
				int64(res.PricePerKW), band.InstallerType, int64(band.MinPerKW), int64(band.MaxPerKW))
		}
	}

	// quality
	quality := newWeightedQuality()
	for _, claim := range q.Components {
		c, ok := e.source.Resolve(claim)
		if !ok {
			res.Unresolved = append(res.Unresolved, claim)
			quality.add(claim.Type, unresolvedScore)
			note("Could not identify %q; scored conservatively", claim.Model)
			continue
		}
		score := round1(ComponentScore(c))
		res.Matches = append(res.Matches, models.ComponentMatch{Claim: claim, Component: c, Score: score})
		quality.add(c.Type, score)
		note("Matched %q to %s (%s, %.1f%% efficiency)", claim.Model, c.DisplayName(), c.Tier, c.Efficiency())
	}
	res.Scores.Quality = round1(quality.value())
	e.consistencyNotes(q, res, note)

	// sizing
	if q.AnnualConsumptionKWh > 0 {
		yield := e.yieldFor(q.Region)
		recommended := q.AnnualConsumptionKWh / yield
		res.Scores.Sizing = round1(SizingScore(q.SystemSizeKW, recommended))
		note("Recommended size for %d kWh/yr is %.1f kW; quoted %.1f kW (%s)",
			int64(q.AnnualConsumptionKWh), recommended, q.SystemSizeKW, deviation(q.SystemSizeKW, recommended))
	} else {
		res.Scores.Sizing = neutralSizing
		note("No annual consumption given; sizing scored as neutral")
	}

	composite := e.weights.Price*res.Scores.Price + e.weights.Quality*res.Scores.Quality + e.weights.Sizing*res.Scores.Sizing
	res.Composite = round1(composite)
	res.Grade = LetterGrade(res.Composite)

	if premiumAtLow(q, bm, res) && res.Grade != models.GradeA {
		res.Grade = models.GradeA
		res.Floored = true
		note("Priced at or below the benchmark low with only Premium components, so graded A")
	}
	if len(res.Matches) == 0 {
		if res.Grade.Rank() > models.GradeC.Rank() {
			res.Grade = models.GradeC
			res.Capped = true
		}
		note("No components could be verified against the benchmark catalogue, so the grade is capped at C")
	}
	res.Verdict = Verdict(res.Grade)

	e.log.Debug("quote graded",
		zap.String("grade", string(res.Grade)),
		zap.Float64("composite", res.Composite),
		zap.Float64("price", res.Scores.Price),
		zap.Float64("quality", res.Scores.Quality),
		zap.Float64("sizing", res.Scores.Sizing),
		zap.Bool("fallback", res.BenchmarkFallback),
		zap.Bool("floored", res.Floored),
		zap.Int("unresolved", len(res.Unresolved)))
	return res, nil
}

// premiumAtLow holds when the price is at or below the benchmark low and
// every claimed component resolved to a Premium part. Such quotes grade A
// whatever the sizing.
func premiumAtLow(q models.QuoteSubmission, bm models.PricingBenchmark, res *models.GradeResult) bool {
	if q.TotalPrice > bm.PriceLow || len(res.Matches) == 0 || len(res.Unresolved) > 0 {
		return false
	}
	for _, m := range res.Matches {
		if m.Component.Tier != models.TierPremium {
			return false
		}
	}
	return true
}

func (e *Engine) yieldFor(region string) float64 {
	if y, ok := e.yields[benchmark.NormalizeRegion(region)]; ok && y > 0 {
		return y
	}
	if y, ok := e.yields[benchmark.NormalizeRegion(benchmark.NationalRegion)]; ok && y > 0 {
		return y
	}
	return DefaultYields["uk"]
}

func (e *Engine) consistencyNotes(q models.QuoteSubmission, res *models.GradeResult, note func(string, ...any)) {
	for _, m := range res.Matches {
		qty := m.Claim.Quantity
		switch {
		case m.Component.Panel != nil && qty > 0:
			implied := float64(qty) * m.Component.Panel.WattageW / 1000
			if math.Abs(implied-q.SystemSizeKW)/q.SystemSizeKW > 0.10 {
				note("%d x %d W panels give %.1f kW, which does not match the quoted %.1f kW system",
					qty, int64(m.Component.Panel.WattageW), implied, q.SystemSizeKW)
			}
		case m.Component.Battery != nil && q.BatterySizeKWh > 0:
			if qty == 0 {
				qty = 1
			}
			capacity := float64(qty) * m.Component.Battery.CapacityKWh
			if math.Abs(capacity-q.BatterySizeKWh) > 1 {
				note("%s provides %.1f kWh but the quote states %.1f kWh of storage",
					m.Component.DisplayName(), capacity, q.BatterySizeKWh)
			}
		}
	}
	if q.BatterySizeKWh > 0 && q.AnnualConsumptionKWh > 0 {
		daily := q.AnnualConsumptionKWh / 365
		switch {
		case q.BatterySizeKWh > 2*daily:
			note("A %.1f kWh battery is large relative to average daily use of %.1f kWh", q.BatterySizeKWh, daily)
		case q.BatterySizeKWh < 0.3*daily:
			note("A %.1f kWh battery covers little of average daily use of %.1f kWh", q.BatterySizeKWh, daily)
		}
	}
}

func normalize(q models.QuoteSubmission) (models.QuoteSubmission, error) {
	switch {
	case !finite(q.SystemSizeKW) || q.SystemSizeKW <= 0:
		return q, apperrors.Invalid("system_size_kw", "must be a positive number")
	case !finite(q.TotalPrice) || q.TotalPrice <= 0:
		return q, apperrors.Invalid("total_price", "must be a positive number")
	case !finite(q.BatterySizeKWh) || q.BatterySizeKWh < 0:
		return q, apperrors.Invalid("battery_size_kwh", "must not be negative")
	case !finite(q.AnnualConsumptionKWh) || q.AnnualConsumptionKWh < 0:
		return q, apperrors.Invalid("annual_consumption_kwh", "must not be negative")
	case len(q.Components) > maxComponents:
		return q, apperrors.Invalid("components", "at most %d components are accepted", maxComponents)
	}

	q.Region = strings.TrimSpace(q.Region)
	if q.SizeBand == "" {
		q.SizeBand = benchmark.SizeBand(q.SystemSizeKW)
	} else {
		band, ok := benchmark.LookupBand(q.SizeBand)
		if !ok {
			return q, apperrors.Invalid("size_band", "unknown size band %q", q.SizeBand)
		}
		q.SizeBand = band.Label
	}

	claims := make([]models.ComponentClaim, 0, len(q.Components))
	for i, c := range q.Components {
		if c.Quantity < 0 {
			return q, apperrors.Invalid(fmt.Sprintf("components[%d].quantity", i), "must not be negative")
		}
		if c.Type != "" {
			t, ok := models.ParseComponentType(string(c.Type))
			if !ok {
				return q, apperrors.Invalid(fmt.Sprintf("components[%d].type", i), "unknown component type %q", c.Type)
			}
			c.Type = t
		}
		c.Model = strings.TrimSpace(c.Model)
		if c.Model == "" {
			return q, apperrors.Invalid(fmt.Sprintf("components[%d].model", i), "must not be empty")
		}
		claims = append(claims, c)
	}
	q.Components = claims
	return q, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
