package models

// PricingBenchmark is the expected installed price range for a region and
// system size band.
type PricingBenchmark struct {
	ID          int64   `json:"id" db:"id"`
	Region      string  `json:"region" db:"region"`
	SizeBand    string  `json:"size_band" db:"size_band"`
	MinKW       float64 `json:"min_kw" db:"min_kw"`
	MaxKW       float64 `json:"max_kw" db:"max_kw"`
	PriceLow    float64 `json:"price_low" db:"price_low"`
	PriceHigh   float64 `json:"price_high" db:"price_high"`
	Description string  `json:"description,omitempty" db:"description"`
}

// InstallerBenchmark is a typical price-per-kW range for a class of installer.
type InstallerBenchmark struct {
	ID            int64   `json:"id" db:"id"`
	InstallerType string  `json:"installer_type" db:"installer_type"`
	MinPerKW      float64 `json:"min_per_kw" db:"min_per_kw"`
	MaxPerKW      float64 `json:"max_per_kw" db:"max_per_kw"`
	Description   string  `json:"description,omitempty" db:"description"`
}
