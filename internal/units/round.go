// Package units rounds, converts and formats ingredient quantities.
package units

import (
	"math"
	"strings"
)

const (
	SystemMetric   = "metric"
	SystemImperial = "imperial"
)

// band rounds amounts up to and including max to the nearest step.
type band struct {
	max  float64
	step float64
}

var (
	massVolumeBands = []band{{50, 5}, {100, 10}, {500, 25}, {math.Inf(1), 50}}
	kilogramBands   = []band{{0.5, 0.05}, {2, 0.1}, {math.Inf(1), 0.25}}
	countableBands  = []band{{1, 0.25}, {5, 0.5}, {math.Inf(1), 1}}
	cupBands        = []band{{0.25, 0.125}, {1, 0.25}, {math.Inf(1), 0.5}}
	spoonBands      = []band{{1, 0.25}, {5, 0.5}, {math.Inf(1), 1}}
)

var bandsByUnit = map[string][]band{
	"ml":     massVolumeBands,
	"g":      massVolumeBands,
	"kg":     kilogramBands,
	"pieces": countableBands,
	"whole":  countableBands,
	"slices": countableBands,
	"cups":   cupBands,
	"tsp":    spoonBands,
	"tbsp":   spoonBands,
}

// SmartRound rounds amount to a shopping-practical value for unit. Units
// without a rule are rounded to one decimal place. The imperial system is
// accepted but rounds with the metric rules.
func SmartRound(amount float64, unit, system string) float64 {
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	bands, ok := bandsByUnit[normalizeUnit(unit)]
	if !ok {
		return roundHalfUp(amount*10) / 10
	}
	for _, b := range bands {
		if amount <= b.max {
			return roundToStep(amount, b.step)
		}
	}
	return amount
}

func roundToStep(x, step float64) float64 {
	if step < 1 {
		per := math.Round(1 / step)
		return roundHalfUp(x*per) / per
	}
	return roundHalfUp(x/step) * step
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// IsCountable reports whether unit counts discrete items.
func IsCountable(unit string) bool {
	switch normalizeUnit(unit) {
	case "pieces", "whole", "slices":
		return true
	}
	return false
}
