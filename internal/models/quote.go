package models

import "encoding/json"

type ComponentClaim struct {
	Type     ComponentType `json:"type,omitempty"`
	Model    string        `json:"model"`
	Quantity int           `json:"quantity,omitempty"`
}

// QuoteSubmission is an installer quote as entered by the user. It is never
// persisted.
type QuoteSubmission struct {
	SystemSizeKW         float64          `json:"system_size_kw"`
	TotalPrice           float64          `json:"total_price"`
	Region               string           `json:"region"`
	SizeBand             string           `json:"size_band,omitempty"`
	BatterySizeKWh       float64          `json:"battery_size_kwh,omitempty"`
	AnnualConsumptionKWh float64          `json:"annual_consumption_kwh,omitempty"`
	Components           []ComponentClaim `json:"components"`
	Email                string           `json:"email,omitempty"`
	ClientID             string           `json:"client_id,omitempty"`
}

// UnmarshalJSON also accepts the field names older frontends send:
// system_size, user_email, user_id, battery_size and battery_capacity. A
// value under the current name wins.
func (q *QuoteSubmission) UnmarshalJSON(data []byte) error {
	type plain QuoteSubmission
	aux := struct {
		*plain
		SystemSize      *float64 `json:"system_size"`
		UserEmail       *string  `json:"user_email"`
		UserID          *string  `json:"user_id"`
		BatterySize     *float64 `json:"battery_size"`
		BatteryCapacity *float64 `json:"battery_capacity"`
	}{plain: (*plain)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if q.SystemSizeKW == 0 && aux.SystemSize != nil {
		q.SystemSizeKW = *aux.SystemSize
	}
	if q.Email == "" && aux.UserEmail != nil {
		q.Email = *aux.UserEmail
	}
	if q.ClientID == "" && aux.UserID != nil {
		q.ClientID = *aux.UserID
	}
	if q.BatterySizeKWh == 0 {
		for _, v := range []*float64{aux.BatterySize, aux.BatteryCapacity} {
			if v != nil {
				q.BatterySizeKWh = *v
				break
			}
		}
	}
	return nil
}

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Rank orders grades so that A has the highest rank.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 5
	case GradeB:
		return 4
	case GradeC:
		return 3
	case GradeD:
		return 2
	case GradeF:
		return 1
	}
	return 0
}

type Scores struct {
	Price   float64 `json:"price"`
	Quality float64 `json:"quality"`
	Sizing  float64 `json:"sizing"`
}

type ComponentMatch struct {
	Claim     ComponentClaim `json:"claim"`
	Component Component      `json:"component"`
	Score     float64        `json:"score"`
}

type GradeResult struct {
	Grade             Grade               `json:"grade"`
	Composite         float64             `json:"composite"`
	Scores            Scores              `json:"scores"`
	PricePerKW        float64             `json:"price_per_kw"`
	Benchmark         PricingBenchmark    `json:"benchmark"`
	BenchmarkFallback bool                `json:"benchmark_fallback"`
	InstallerBand     *InstallerBenchmark `json:"installer_band,omitempty"`
	Matches           []ComponentMatch    `json:"matches"`
	Unresolved        []ComponentClaim    `json:"unresolved"`
	Capped            bool                `json:"capped"`
	Floored           bool                `json:"floored"`
	Verdict           string              `json:"verdict"`
	Rationale         []string            `json:"rationale"`
}
