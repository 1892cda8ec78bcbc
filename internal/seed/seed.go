// Package seed carries the reference catalogue shipped with the service and
// loads it into the benchmark tables.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"solarverify/internal/benchmark"
	"solarverify/internal/models"
	"solarverify/internal/repositories"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type entry[S any] struct {
	Manufacturer  string `yaml:"manufacturer"`
	Model         string `yaml:"model"`
	Tier          string `yaml:"tier"`
	Technology    string `yaml:"technology"`
	WarrantyYears int    `yaml:"warranty_years"`
	Spec          S      `yaml:"spec"`
}

type regionPricing struct {
	Region string `yaml:"region"`
	Bands  []struct {
		Band        string  `yaml:"band"`
		Low         float64 `yaml:"low"`
		High        float64 `yaml:"high"`
		Description string  `yaml:"description"`
	} `yaml:"bands"`
}

type Catalog struct {
	Panels     []entry[models.PanelSpec]    `yaml:"panels"`
	Batteries  []entry[models.BatterySpec]  `yaml:"batteries"`
	Inverters  []entry[models.InverterSpec] `yaml:"inverters"`
	Pricing    []regionPricing              `yaml:"pricing"`
	Installers []struct {
		InstallerType string  `yaml:"installer_type"`
		MinPerKW      float64 `yaml:"min_per_kw"`
		MaxPerKW      float64 `yaml:"max_per_kw"`
		Description   string  `yaml:"description"`
	} `yaml:"installers"`
}

// Load parses the embedded catalogue.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// Components flattens the catalogue and validates tiers.
func (c *Catalog) Components() ([]models.Component, error) {
	out := make([]models.Component, 0, len(c.Panels)+len(c.Batteries)+len(c.Inverters))
	for _, e := range c.Panels {
		comp, err := base(models.ComponentPanel, e.Manufacturer, e.Model, e.Tier, e.Technology, e.WarrantyYears)
		if err != nil {
			return nil, err
		}
		spec := e.Spec
		comp.Panel = &spec
		out = append(out, comp)
	}
	for _, e := range c.Batteries {
		comp, err := base(models.ComponentBattery, e.Manufacturer, e.Model, e.Tier, e.Technology, e.WarrantyYears)
		if err != nil {
			return nil, err
		}
		spec := e.Spec
		comp.Battery = &spec
		out = append(out, comp)
	}
	for _, e := range c.Inverters {
		comp, err := base(models.ComponentInverter, e.Manufacturer, e.Model, e.Tier, e.Technology, e.WarrantyYears)
		if err != nil {
			return nil, err
		}
		spec := e.Spec
		comp.Inverter = &spec
		out = append(out, comp)
	}
	return out, nil
}

func base(t models.ComponentType, manufacturer, model, tier, technology string, warranty int) (models.Component, error) {
	q, ok := models.ParseQualityTier(tier)
	if !ok {
		return models.Component{}, fmt.Errorf("catalog %s %q: unknown tier %q", t, model, tier)
	}
	if manufacturer == "" || model == "" {
		return models.Component{}, fmt.Errorf("catalog %s: manufacturer and model are required", t)
	}
	return models.Component{
		Type:          t,
		Manufacturer:  manufacturer,
		Model:         model,
		Tier:          q,
		Technology:    technology,
		WarrantyYears: warranty,
	}, nil
}

// PricingBenchmarks expands region bands into rows with kW bounds.
func (c *Catalog) PricingBenchmarks() ([]models.PricingBenchmark, error) {
	var out []models.PricingBenchmark
	for _, r := range c.Pricing {
		for _, b := range r.Bands {
			band, ok := benchmark.LookupBand(b.Band)
			if !ok {
				return nil, fmt.Errorf("catalog pricing %s: unknown size band %q", r.Region, b.Band)
			}
			if b.Low <= 0 || b.High < b.Low {
				return nil, fmt.Errorf("catalog pricing %s/%s: invalid range %.0f-%.0f", r.Region, b.Band, b.Low, b.High)
			}
			desc := b.Description
			if desc == "" {
				desc = fmt.Sprintf("Typical installed price for a %s system in %s", band.Label, r.Region)
			}
			out = append(out, models.PricingBenchmark{
				Region:      r.Region,
				SizeBand:    band.Label,
				MinKW:       band.MinKW,
				MaxKW:       band.MaxKW,
				PriceLow:    b.Low,
				PriceHigh:   b.High,
				Description: desc,
			})
		}
	}
	return out, nil
}

func (c *Catalog) InstallerBenchmarks() []models.InstallerBenchmark {
	out := make([]models.InstallerBenchmark, 0, len(c.Installers))
	for _, i := range c.Installers {
		out = append(out, models.InstallerBenchmark{
			InstallerType: i.InstallerType,
			MinPerKW:      i.MinPerKW,
			MaxPerKW:      i.MaxPerKW,
			Description:   i.Description,
		})
	}
	return out
}

type Summary struct {
	Components int
	Pricing    int
	Installers int
}

// Apply upserts the catalogue. Running it twice leaves the tables unchanged.
func Apply(ctx context.Context, repo repositories.BenchmarkRepository, c *Catalog, log *zap.Logger) (Summary, error) {
	var s Summary

	components, err := c.Components()
	if err != nil {
		return s, err
	}
	pricing, err := c.PricingBenchmarks()
	if err != nil {
		return s, err
	}

	for _, comp := range components {
		if err := repo.UpsertComponent(ctx, comp); err != nil {
			return s, err
		}
		s.Components++
	}
	for _, p := range pricing {
		if err := repo.UpsertPricing(ctx, p); err != nil {
			return s, err
		}
		s.Pricing++
	}
	for _, i := range c.InstallerBenchmarks() {
		if err := repo.UpsertInstaller(ctx, i); err != nil {
			return s, err
		}
		s.Installers++
	}

	log.Info("seeded benchmark catalog",
		zap.Int("components", s.Components),
		zap.Int("pricing", s.Pricing),
		zap.Int("installers", s.Installers))
	return s, nil
}
