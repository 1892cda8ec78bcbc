package grading

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"solarverify/internal/models"
)

// printer groups thousands the British way: £4,500.
var printer = message.NewPrinter(language.BritishEnglish)

var verdicts = map[models.Grade]string{
	models.GradeA: "Excellent value: this quote is very competitive for the system offered.",
	models.GradeB: "Good value: fair pricing for the quality of components.",
	models.GradeC: "Average value: worth getting one or two more quotes to compare.",
	models.GradeD: "Below average: the price looks high for what is offered.",
	models.GradeF: "Poor value: significantly overpriced or built on weak components.",
}

func Verdict(g models.Grade) string {
	return verdicts[g]
}

func pricePosition(price float64, bm models.PricingBenchmark) string {
	switch {
	case price < bm.PriceLow:
		return "below the typical range"
	case price > bm.PriceHigh:
		return "above the typical range"
	}
	return "within the typical range"
}

func deviation(actual, recommended float64) string {
	pct := (actual/recommended - 1) * 100
	switch {
	case math.Abs(pct) < 0.5:
		return "on target"
	case pct > 0:
		return fmt.Sprintf("%.0f%% over", pct)
	}
	return fmt.Sprintf("%.0f%% under", -pct)
}
