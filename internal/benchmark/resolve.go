package benchmark

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"solarverify/internal/models"
)

var resolveOrder = []models.ComponentType{
	models.ComponentPanel,
	models.ComponentBattery,
	models.ComponentInverter,
}

// "515W", "9.5 kWh", "5kw"
var specPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kwh|kw|w)\b`)

const (
	scoreModel        = 10
	scoreManufacturer = 3
	scoreModelToken   = 2
	scoreSpec         = 3
	minResolveScore   = 5
)

type specToken struct {
	value float64
	unit  string
}

// Resolve maps a claimed component to a reference record. An exact model
// match wins outright; otherwise free text is scored on model and
// manufacturer mentions and spec tokens such as "515W". Ties go to the lowest
// id so results are deterministic.
func (s *Store) Resolve(claim models.ComponentClaim) (models.Component, bool) {
	text := strings.TrimSpace(claim.Model)
	norm := alnum(text)
	if norm == "" {
		return models.Component{}, false
	}

	types := resolveOrder
	if claim.Type != "" {
		types = []models.ComponentType{claim.Type}
	}

	for _, t := range types {
		if c, ok := s.byModel[modelKey(t, text)]; ok {
			return c, true
		}
	}

	tokens := tokenSet(text)
	specs := parseSpecs(text)

	var best models.Component
	var candidates []models.Component
	bestScore := 0
	for _, t := range types {
		for _, c := range s.byType[t] {
			score := matchScore(c, norm, tokens, specs)
			if score > 0 {
				candidates = append(candidates, c)
			}
			if score < minResolveScore {
				continue
			}
			if score > bestScore || (score == bestScore && c.ID < best.ID) {
				best, bestScore = c, score
			}
		}
	}
	if bestScore > 0 {
		return best, true
	}
	// "Longi panels": a bare manufacturer is enough when it is unambiguous
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return models.Component{}, false
}

func matchScore(c models.Component, norm string, tokens map[string]bool, specs []specToken) int {
	score := 0

	modelNorm := alnum(c.Model)
	modelHit := len(modelNorm) >= 3 && strings.Contains(norm, modelNorm)
	if modelHit {
		score += scoreModel
	}

	manufacturerHit := strings.Contains(norm, alnum(c.Manufacturer))
	if !manufacturerHit {
		// "Trina" for "Trina Solar"
		if first := strings.Fields(strings.ToLower(c.Manufacturer)); len(first) > 0 && len(first[0]) >= 4 {
			manufacturerHit = tokens[first[0]]
		}
	}
	if manufacturerHit {
		score += scoreManufacturer
	}
	if !modelHit && !manufacturerHit {
		return 0
	}

	if !modelHit {
		for tok := range tokenSet(c.Model) {
			if len(tok) >= 3 && tokens[tok] {
				score += scoreModelToken
			}
		}
	}

	for _, sp := range specs {
		switch {
		case c.Panel != nil && sp.unit == "w" && math.Abs(sp.value-c.Panel.WattageW) <= 5:
			score += scoreSpec
		case c.Battery != nil && sp.unit == "kwh" &&
			(math.Abs(sp.value-c.Battery.CapacityKWh) <= 0.5 || math.Abs(sp.value-c.Battery.UsableKWh) <= 0.5):
			score += scoreSpec
		case c.Inverter != nil && sp.unit == "kw" && math.Abs(sp.value-c.Inverter.RatingKW) <= 0.1:
			score += scoreSpec
		}
	}
	return score
}

func parseSpecs(text string) []specToken {
	var out []specToken
	for _, m := range specPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, specToken{value: v, unit: strings.ToLower(m[2])})
	}
	return out
}

// tokenSet splits on anything but letters, digits and dots.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.')
	}) {
		set[strings.Trim(f, ".")] = true
	}
	return set
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func modelKey(t models.ComponentType, model string) string {
	return string(t) + "|" + alnum(model)
}
