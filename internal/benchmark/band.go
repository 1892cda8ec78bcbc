package benchmark

import (
	"math"
	"strings"
)

type Band struct {
	Label string
	MinKW float64 // inclusive
	MaxKW float64 // exclusive
}

// Bands covers all positive system sizes without gaps.
var Bands = []Band{
	{"3kW", 0, 3.5},
	{"4kW", 3.5, 4.5},
	{"5kW", 4.5, 5.5},
	{"6kW", 5.5, 7},
	{"8kW", 7, 9},
	{"10kW", 9, 12},
	{"12kW+", 12, math.Inf(1)},
}

// SizeBand returns the band label for a system size in kW.
func SizeBand(kw float64) string {
	for _, b := range Bands {
		if kw >= b.MinKW && kw < b.MaxKW {
			return b.Label
		}
	}
	return Bands[len(Bands)-1].Label
}

// LookupBand accepts labels case-insensitively and with optional spaces
// ("4 kw", "12KW+").
func LookupBand(label string) (Band, bool) {
	key := normalizeBand(label)
	for _, b := range Bands {
		if normalizeBand(b.Label) == key {
			return b, true
		}
	}
	return Band{}, false
}

func bandIndex(label string) int {
	key := normalizeBand(label)
	for i, b := range Bands {
		if normalizeBand(b.Label) == key {
			return i
		}
	}
	return -1
}

func normalizeBand(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
