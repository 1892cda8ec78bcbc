package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"solarverify/internal/models"
)

type BenchmarkRepository interface {
	ListComponents(ctx context.Context) ([]models.Component, error)
	ListPricing(ctx context.Context) ([]models.PricingBenchmark, error)
	ListInstallers(ctx context.Context) ([]models.InstallerBenchmark, error)

	UpsertComponent(ctx context.Context, c models.Component) error
	UpsertPricing(ctx context.Context, b models.PricingBenchmark) error
	UpsertInstaller(ctx context.Context, b models.InstallerBenchmark) error
}

type benchmarkRepository struct {
	DB *sqlx.DB
}

func NewBenchmarkRepository(db *sqlx.DB) BenchmarkRepository {
	return &benchmarkRepository{DB: db}
}

// componentRow is the flat table layout; unused spec columns stay zero.
type componentRow struct {
	ID                  int64   `db:"id"`
	Type                string  `db:"type"`
	Manufacturer        string  `db:"manufacturer"`
	Model               string  `db:"model"`
	Tier                string  `db:"tier"`
	Technology          string  `db:"technology"`
	WarrantyYears       int     `db:"warranty_years"`
	WattageW            float64 `db:"wattage_w"`
	EfficiencyPct       float64 `db:"efficiency_pct"`
	PricePerWatt        float64 `db:"price_per_watt"`
	Dimensions          string  `db:"dimensions"`
	CapacityKWh         float64 `db:"capacity_kwh"`
	UsableKWh           float64 `db:"usable_kwh"`
	RoundTripEfficiency float64 `db:"round_trip_efficiency"`
	Cycles              int     `db:"cycles"`
	PricePerKWh         float64 `db:"price_per_kwh"`
	RatingKW            float64 `db:"rating_kw"`
	InverterType        string  `db:"inverter_type"`
	MPPTTrackers        int     `db:"mppt_trackers"`
	UnitPrice           float64 `db:"unit_price"`
}

func (r componentRow) toModel() (models.Component, error) {
	t, ok := models.ParseComponentType(r.Type)
	if !ok {
		return models.Component{}, fmt.Errorf("component %d: unknown type %q", r.ID, r.Type)
	}
	tier, ok := models.ParseQualityTier(r.Tier)
	if !ok {
		return models.Component{}, fmt.Errorf("component %d: unknown tier %q", r.ID, r.Tier)
	}
	c := models.Component{
		ID:            r.ID,
		Type:          t,
		Manufacturer:  r.Manufacturer,
		Model:         r.Model,
		Tier:          tier,
		Technology:    r.Technology,
		WarrantyYears: r.WarrantyYears,
	}
	switch t {
	case models.ComponentPanel:
		c.Panel = &models.PanelSpec{
			WattageW:      r.WattageW,
			EfficiencyPct: r.EfficiencyPct,
			PricePerWatt:  r.PricePerWatt,
			Dimensions:    r.Dimensions,
		}
	case models.ComponentBattery:
		c.Battery = &models.BatterySpec{
			CapacityKWh:         r.CapacityKWh,
			UsableKWh:           r.UsableKWh,
			RoundTripEfficiency: r.RoundTripEfficiency,
			Cycles:              r.Cycles,
			PricePerKWh:         r.PricePerKWh,
		}
	case models.ComponentInverter:
		c.Inverter = &models.InverterSpec{
			RatingKW:      r.RatingKW,
			EfficiencyPct: r.EfficiencyPct,
			InverterType:  r.InverterType,
			MPPTTrackers:  r.MPPTTrackers,
			UnitPrice:     r.UnitPrice,
		}
	}
	return c, nil
}

func rowFromComponent(c models.Component) componentRow {
	r := componentRow{
		Type:          string(c.Type),
		Manufacturer:  c.Manufacturer,
		Model:         c.Model,
		Tier:          string(c.Tier),
		Technology:    c.Technology,
		WarrantyYears: c.WarrantyYears,
	}
	if p := c.Panel; p != nil {
		r.WattageW, r.EfficiencyPct, r.PricePerWatt, r.Dimensions = p.WattageW, p.EfficiencyPct, p.PricePerWatt, p.Dimensions
	}
	if b := c.Battery; b != nil {
		r.CapacityKWh, r.UsableKWh, r.RoundTripEfficiency = b.CapacityKWh, b.UsableKWh, b.RoundTripEfficiency
		r.Cycles, r.PricePerKWh = b.Cycles, b.PricePerKWh
	}
	if i := c.Inverter; i != nil {
		r.RatingKW, r.EfficiencyPct, r.InverterType = i.RatingKW, i.EfficiencyPct, i.InverterType
		r.MPPTTrackers, r.UnitPrice = i.MPPTTrackers, i.UnitPrice
	}
	return r
}

func (r *benchmarkRepository) ListComponents(ctx context.Context) ([]models.Component, error) {
	const q = `
		SELECT id, type, manufacturer, model, tier, technology, warranty_years,
		       wattage_w, efficiency_pct, price_per_watt, dimensions,
		       capacity_kwh, usable_kwh, round_trip_efficiency, cycles, price_per_kwh,
		       rating_kw, inverter_type, mppt_trackers, unit_price
		FROM components
		ORDER BY id
	`
	var rows []componentRow
	if err := r.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("components list: %w", err)
	}
	out := make([]models.Component, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *benchmarkRepository) UpsertComponent(ctx context.Context, c models.Component) error {
	const q = `
		INSERT INTO components (
			type, manufacturer, model, tier, technology, warranty_years,
			wattage_w, efficiency_pct, price_per_watt, dimensions,
			capacity_kwh, usable_kwh, round_trip_efficiency, cycles, price_per_kwh,
			rating_kw, inverter_type, mppt_trackers, unit_price
		) VALUES (
			:type, :manufacturer, :model, :tier, :technology, :warranty_years,
			:wattage_w, :efficiency_pct, :price_per_watt, :dimensions,
			:capacity_kwh, :usable_kwh, :round_trip_efficiency, :cycles, :price_per_kwh,
			:rating_kw, :inverter_type, :mppt_trackers, :unit_price
		)
		ON CONFLICT (type, model) DO UPDATE SET
			manufacturer = excluded.manufacturer,
			tier = excluded.tier,
			technology = excluded.technology,
			warranty_years = excluded.warranty_years,
			wattage_w = excluded.wattage_w,
			efficiency_pct = excluded.efficiency_pct,
			price_per_watt = excluded.price_per_watt,
			dimensions = excluded.dimensions,
			capacity_kwh = excluded.capacity_kwh,
			usable_kwh = excluded.usable_kwh,
			round_trip_efficiency = excluded.round_trip_efficiency,
			cycles = excluded.cycles,
			price_per_kwh = excluded.price_per_kwh,
			rating_kw = excluded.rating_kw,
			inverter_type = excluded.inverter_type,
			mppt_trackers = excluded.mppt_trackers,
			unit_price = excluded.unit_price
	`
	if _, err := r.DB.NamedExecContext(ctx, q, rowFromComponent(c)); err != nil {
		return fmt.Errorf("component upsert %s %q: %w", c.Type, c.Model, err)
	}
	return nil
}

func (r *benchmarkRepository) ListPricing(ctx context.Context) ([]models.PricingBenchmark, error) {
	const q = `
		SELECT id, region, size_band, min_kw, max_kw, price_low, price_high, description
		FROM pricing_benchmarks
		ORDER BY region, min_kw
	`
	var out []models.PricingBenchmark
	if err := r.DB.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("pricing list: %w", err)
	}
	return out, nil
}

func (r *benchmarkRepository) UpsertPricing(ctx context.Context, b models.PricingBenchmark) error {
	const q = `
		INSERT INTO pricing_benchmarks (region, size_band, min_kw, max_kw, price_low, price_high, description)
		VALUES (:region, :size_band, :min_kw, :max_kw, :price_low, :price_high, :description)
		ON CONFLICT (region, size_band) DO UPDATE SET
			min_kw = excluded.min_kw,
			max_kw = excluded.max_kw,
			price_low = excluded.price_low,
			price_high = excluded.price_high,
			description = excluded.description
	`
	if _, err := r.DB.NamedExecContext(ctx, q, b); err != nil {
		return fmt.Errorf("pricing upsert %s/%s: %w", b.Region, b.SizeBand, err)
	}
	return nil
}

func (r *benchmarkRepository) ListInstallers(ctx context.Context) ([]models.InstallerBenchmark, error) {
	const q = `
		SELECT id, installer_type, min_per_kw, max_per_kw, description
		FROM installer_benchmarks
		ORDER BY min_per_kw
	`
	var out []models.InstallerBenchmark
	if err := r.DB.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("installer list: %w", err)
	}
	return out, nil
}

func (r *benchmarkRepository) UpsertInstaller(ctx context.Context, b models.InstallerBenchmark) error {
	const q = `
		INSERT INTO installer_benchmarks (installer_type, min_per_kw, max_per_kw, description)
		VALUES (:installer_type, :min_per_kw, :max_per_kw, :description)
		ON CONFLICT (installer_type) DO UPDATE SET
			min_per_kw = excluded.min_per_kw,
			max_per_kw = excluded.max_per_kw,
			description = excluded.description
	`
	if _, err := r.DB.NamedExecContext(ctx, q, b); err != nil {
		return fmt.Errorf("installer upsert %s: %w", b.InstallerType, err)
	}
	return nil
}
