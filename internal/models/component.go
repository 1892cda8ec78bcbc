package models

type ComponentType string

const (
	ComponentPanel    ComponentType = "panel"
	ComponentBattery  ComponentType = "battery"
	ComponentInverter ComponentType = "inverter"
)

// ParseComponentType accepts singular and plural forms ("panels", "Battery").
func ParseComponentType(s string) (ComponentType, bool) {
	switch normalizeWord(s) {
	case "panel", "panels", "solarpanel", "solarpanels", "module", "modules":
		return ComponentPanel, true
	case "battery", "batteries", "storage":
		return ComponentBattery, true
	case "inverter", "inverters":
		return ComponentInverter, true
	}
	return "", false
}

type QualityTier string

const (
	TierPremium   QualityTier = "Premium"
	TierExcellent QualityTier = "Excellent"
	TierGood      QualityTier = "Good"
	TierStandard  QualityTier = "Standard"
)

func ParseQualityTier(s string) (QualityTier, bool) {
	switch normalizeWord(s) {
	case "premium":
		return TierPremium, true
	case "excellent":
		return TierExcellent, true
	case "good":
		return TierGood, true
	case "standard":
		return TierStandard, true
	}
	return "", false
}

type PanelSpec struct {
	WattageW      float64 `json:"wattage_w" yaml:"wattage"`
	EfficiencyPct float64 `json:"efficiency_pct" yaml:"efficiency"`
	PricePerWatt  float64 `json:"price_per_watt" yaml:"price_per_watt"`
	Dimensions    string  `json:"dimensions,omitempty" yaml:"dimensions"`
}

type BatterySpec struct {
	CapacityKWh         float64 `json:"capacity_kwh" yaml:"capacity_kwh"`
	UsableKWh           float64 `json:"usable_kwh" yaml:"usable_kwh"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency_pct" yaml:"round_trip_efficiency"`
	Cycles              int     `json:"cycles" yaml:"cycles"`
	PricePerKWh         float64 `json:"price_per_kwh" yaml:"price_per_kwh"`
}

type InverterSpec struct {
	RatingKW      float64 `json:"rating_kw" yaml:"rating_kw"`
	EfficiencyPct float64 `json:"efficiency_pct" yaml:"efficiency"`
	InverterType  string  `json:"inverter_type" yaml:"inverter_type"`
	MPPTTrackers  int     `json:"mppt_trackers" yaml:"mppt_trackers"`
	UnitPrice     float64 `json:"unit_price" yaml:"unit_price"`
}

// Component is a reference record for a panel, battery or inverter. Exactly
// one of Panel, Battery, Inverter is set, matching Type.
type Component struct {
	ID            int64         `json:"id"`
	Type          ComponentType `json:"type"`
	Manufacturer  string        `json:"manufacturer"`
	Model         string        `json:"model"`
	Tier          QualityTier   `json:"tier"`
	Technology    string        `json:"technology,omitempty"`
	WarrantyYears int           `json:"warranty_years"`

	Panel    *PanelSpec    `json:"panel,omitempty"`
	Battery  *BatterySpec  `json:"battery,omitempty"`
	Inverter *InverterSpec `json:"inverter,omitempty"`
}

// Efficiency is panel efficiency, inverter efficiency or battery round-trip
// efficiency, in percent.
func (c Component) Efficiency() float64 {
	switch {
	case c.Panel != nil:
		return c.Panel.EfficiencyPct
	case c.Inverter != nil:
		return c.Inverter.EfficiencyPct
	case c.Battery != nil:
		return c.Battery.RoundTripEfficiency
	}
	return 0
}

// Rating is wattage (W) for panels, capacity (kWh) for batteries and AC
// rating (kW) for inverters.
func (c Component) Rating() float64 {
	switch {
	case c.Panel != nil:
		return c.Panel.WattageW
	case c.Battery != nil:
		return c.Battery.CapacityKWh
	case c.Inverter != nil:
		return c.Inverter.RatingKW
	}
	return 0
}

// UnitPrice is the indicative retail price of one unit in GBP.
func (c Component) UnitPrice() float64 {
	switch {
	case c.Panel != nil:
		return c.Panel.WattageW * c.Panel.PricePerWatt
	case c.Battery != nil:
		return c.Battery.CapacityKWh * c.Battery.PricePerKWh
	case c.Inverter != nil:
		return c.Inverter.UnitPrice
	}
	return 0
}

func (c Component) DisplayName() string {
	return c.Manufacturer + " " + c.Model
}

func normalizeWord(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			b = append(b, ch+'a'-'A')
		case ch >= 'a' && ch <= 'z':
			b = append(b, ch)
		}
	}
	return string(b)
}
