package models

import "time"

// UsageEvent is one completed analysis booked against a hashed subject. Only
// the headline figures are kept; the quote itself is never stored.
type UsageEvent struct {
	ID           int64     `json:"-" db:"id"`
	SubjectHash  string    `json:"-" db:"subject_hash"`
	Kind         string    `json:"-" db:"kind"`
	Grade        Grade     `json:"grade" db:"grade"`
	SystemSizeKW float64   `json:"system_size_kw" db:"system_size_kw"`
	PricePerKW   float64   `json:"price_per_kw" db:"price_per_kw"`
	CreatedAt    time.Time `json:"date" db:"created_at"`
}

// AnalysisRecord is what gets booked after a quote is graded.
type AnalysisRecord struct {
	Grade        Grade
	SystemSizeKW float64
	PricePerKW   float64
}
