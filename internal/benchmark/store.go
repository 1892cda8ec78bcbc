// Package benchmark holds the reference data quotes are graded against:
// component specifications and regional pricing ranges. A Store is built once
// at startup and never modified, so it is safe for concurrent readers.
package benchmark

import (
	"context"
	"math"
	"sort"
	"strings"

	"solarverify/internal/models"
	"solarverify/internal/repositories"
)

// NationalRegion is the fallback region for pricing lookups.
const NationalRegion = "UK"

const (
	WattageTolerance  = 50.0 // W
	CapacityTolerance = 2.0  // kWh
)

type Filter struct {
	Manufacturer  string // case-insensitive substring
	Wattage       float64
	Capacity      float64
	Tier          models.QualityTier
	MinEfficiency float64
}

type Store struct {
	byType     map[models.ComponentType][]models.Component
	byModel    map[string]models.Component
	pricing    map[string]models.PricingBenchmark
	pricingAll []models.PricingBenchmark
	installers []models.InstallerBenchmark
}

func New(components []models.Component, pricing []models.PricingBenchmark, installers []models.InstallerBenchmark) *Store {
	s := &Store{
		byType:  make(map[models.ComponentType][]models.Component),
		byModel: make(map[string]models.Component, len(components)),
		pricing: make(map[string]models.PricingBenchmark, len(pricing)),
	}

	sorted := append([]models.Component(nil), components...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, c := range sorted {
		s.byType[c.Type] = append(s.byType[c.Type], c)
		s.byModel[modelKey(c.Type, c.Model)] = c
	}

	for _, p := range pricing {
		s.pricing[pricingKey(p.Region, p.SizeBand)] = p
	}
	s.pricingAll = append([]models.PricingBenchmark(nil), pricing...)
	sort.SliceStable(s.pricingAll, func(i, j int) bool {
		a, b := s.pricingAll[i], s.pricingAll[j]
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.MinKW < b.MinKW
	})

	s.installers = append([]models.InstallerBenchmark(nil), installers...)
	sort.SliceStable(s.installers, func(i, j int) bool { return s.installers[i].MinPerKW < s.installers[j].MinPerKW })
	return s
}

// Load builds a Store from the benchmark tables.
func Load(ctx context.Context, repo repositories.BenchmarkRepository) (*Store, error) {
	components, err := repo.ListComponents(ctx)
	if err != nil {
		return nil, err
	}
	pricing, err := repo.ListPricing(ctx)
	if err != nil {
		return nil, err
	}
	installers, err := repo.ListInstallers(ctx)
	if err != nil {
		return nil, err
	}
	return New(components, pricing, installers), nil
}

// Components lists every record of a type ordered by id. The returned slice
// is a copy; the records it holds must be treated as read-only.
func (s *Store) Components(t models.ComponentType) []models.Component {
	return append([]models.Component(nil), s.byType[t]...)
}

// FindComponents returns the components of type t matching every non-zero
// filter field. No match yields an empty slice.
func (s *Store) FindComponents(t models.ComponentType, f Filter) []models.Component {
	out := []models.Component{}
	manufacturer := strings.ToLower(strings.TrimSpace(f.Manufacturer))
	for _, c := range s.byType[t] {
		if manufacturer != "" && !strings.Contains(strings.ToLower(c.Manufacturer), manufacturer) {
			continue
		}
		if f.Tier != "" && c.Tier != f.Tier {
			continue
		}
		if f.MinEfficiency > 0 && c.Efficiency() < f.MinEfficiency {
			continue
		}
		if f.Wattage > 0 && c.Panel != nil && math.Abs(c.Panel.WattageW-f.Wattage) > WattageTolerance {
			continue
		}
		if f.Capacity > 0 && c.Battery != nil && math.Abs(c.Battery.CapacityKWh-f.Capacity) > CapacityTolerance {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FindPricingBenchmark is an exact region and band lookup.
func (s *Store) FindPricingBenchmark(region, sizeBand string) (models.PricingBenchmark, bool) {
	p, ok := s.pricing[pricingKey(region, sizeBand)]
	return p, ok
}

// PricingFor looks up the region's benchmark, falling back to the national
// figure for the same band and then to the nearest national band. ok is false
// only when the store holds no national pricing at all.
func (s *Store) PricingFor(region, sizeBand string) (bm models.PricingBenchmark, fallback bool, ok bool) {
	if p, found := s.FindPricingBenchmark(region, sizeBand); found {
		return p, false, true
	}
	if p, found := s.FindPricingBenchmark(NationalRegion, sizeBand); found {
		return p, true, true
	}

	want := bandIndex(sizeBand)
	best, bestDist := models.PricingBenchmark{}, math.MaxInt
	for _, p := range s.pricingAll {
		if NormalizeRegion(p.Region) != NormalizeRegion(NationalRegion) {
			continue
		}
		dist := bandIndex(p.SizeBand) - want
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = p, dist
		}
	}
	if bestDist == math.MaxInt {
		return models.PricingBenchmark{}, true, false
	}
	return best, true, true
}

// PricingBenchmarks lists benchmarks, optionally narrowed to a region and/or
// band.
func (s *Store) PricingBenchmarks(region, sizeBand string) []models.PricingBenchmark {
	out := []models.PricingBenchmark{}
	for _, p := range s.pricingAll {
		if region != "" && NormalizeRegion(p.Region) != NormalizeRegion(region) {
			continue
		}
		if sizeBand != "" && normalizeBand(p.SizeBand) != normalizeBand(sizeBand) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) InstallerBenchmarks() []models.InstallerBenchmark {
	return append([]models.InstallerBenchmark(nil), s.installers...)
}

// InstallerBand finds the installer class whose price-per-kW range contains
// pricePerKW, preferring the closest midpoint where ranges overlap. Prices
// outside every range return the nearest class with within == false.
func (s *Store) InstallerBand(pricePerKW float64) (band models.InstallerBenchmark, within bool, ok bool) {
	if len(s.installers) == 0 {
		return models.InstallerBenchmark{}, false, false
	}
	bestDist := math.Inf(1)
	for _, ib := range s.installers {
		if pricePerKW < ib.MinPerKW || pricePerKW > ib.MaxPerKW {
			continue
		}
		mid := (ib.MinPerKW + ib.MaxPerKW) / 2
		if d := math.Abs(pricePerKW - mid); d < bestDist {
			band, bestDist, within = ib, d, true
		}
	}
	if within {
		return band, true, true
	}
	if pricePerKW < s.installers[0].MinPerKW {
		return s.installers[0], false, true
	}
	highest := s.installers[0]
	for _, ib := range s.installers[1:] {
		if ib.MaxPerKW > highest.MaxPerKW {
			highest = ib
		}
	}
	return highest, false, true
}

// Counts reports how many records of each kind the store holds.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"panels":     len(s.byType[models.ComponentPanel]),
		"batteries":  len(s.byType[models.ComponentBattery]),
		"inverters":  len(s.byType[models.ComponentInverter]),
		"pricing":    len(s.pricingAll),
		"installers": len(s.installers),
	}
}

func pricingKey(region, band string) string {
	return NormalizeRegion(region) + "|" + normalizeBand(band)
}

// NormalizeRegion folds case and separators: "UK South", "uk_south" and
// "UK-South" are the same region.
func NormalizeRegion(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}
