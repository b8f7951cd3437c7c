package units

import (
	"math"
	"strconv"
	"strings"
)

var fractionUnits = map[string]bool{
	"cups":        true,
	"cup":         true,
	"tbsp":        true,
	"tablespoons": true,
	"tsp":         true,
	"teaspoons":   true,
}

var fractions = map[float64]string{
	0.25:  "1/4",
	0.5:   "1/2",
	0.75:  "3/4",
	0.33:  "1/3",
	0.333: "1/3",
	0.67:  "2/3",
	0.667: "2/3",
}

const displayPrecision = 1000

// FormatNumber prints v to at most three decimals in its shortest form:
// 3, 2.5, 0.125.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(trimNoise(v), 'f', -1, 64)
}

// trimNoise rounds away float summing error such as 0.1+0.2.
func trimNoise(v float64) float64 {
	return math.Round(v*displayPrecision) / displayPrecision
}

// FormatDisplayAmount renders a consolidated quantity. Cup and spoon
// amounts that equal a common fraction print as that fraction.
func FormatDisplayAmount(amount float64, unit string) string {
	if fractionUnits[normalizeUnit(unit)] {
		if f, ok := fractions[trimNoise(amount)]; ok {
			return f
		}
	}
	return FormatNumber(amount)
}

// FormatAmount rounds amount for unit and renders it with its label.
// A single piece or whole item uses the singular label.
func FormatAmount(amount float64, unit, system string) string {
	rounded := SmartRound(amount, unit, system)
	switch {
	case unit == "pieces" && rounded == 1:
		return "1 piece"
	case unit == "whole" && rounded == 1:
		return "1 whole"
	}
	return strings.TrimSpace(FormatNumber(rounded) + " " + unit)
}
