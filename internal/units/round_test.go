package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		unit   string
		want   float64
	}{
		{"ml small rounds to 5", 47, "ml", 45},
		{"ml band edge stays", 50, "ml", 50},
		{"ml medium rounds to 10", 84, "ml", 80},
		{"ml large rounds to 25", 312, "ml", 300},
		{"ml very large rounds to 50", 730, "ml", 750},
		{"grams share ml bands", 137.5, "g", 150},
		{"grams half rounds up", 2.5, "g", 5},
		{"kg small", 0.33, "kg", 0.35},
		{"kg medium", 1.26, "kg", 1.3},
		{"kg large", 3.1, "kg", 3},
		{"pieces quarter", 0.6, "pieces", 0.5},
		{"pieces half", 2.3, "pieces", 2.5},
		{"whole integer", 7.4, "whole", 7},
		{"slices half", 3.75, "slices", 4},
		{"cups eighth", 0.2, "cups", 0.25},
		{"cups small eighth", 0.1, "cups", 0.125},
		{"cups quarter", 0.6, "cups", 0.5},
		{"cups half", 1.3, "cups", 1.5},
		{"tsp quarter", 0.3, "tsp", 0.25},
		{"tbsp half", 2.2, "tbsp", 2},
		{"tbsp whole", 6.6, "tbsp", 7},
		{"unknown unit one decimal", 1.26, "cloves", 1.3},
		{"empty unit one decimal", 2.04, "", 2},
		{"zero stays zero", 0, "g", 0},
		{"negative clamps to zero", -4, "ml", 0},
		{"unit case ignored", 47, "ML", 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, SmartRound(tt.amount, tt.unit, SystemMetric), 1e-9)
		})
	}
}

func TestSmartRoundImperialUsesMetricRules(t *testing.T) {
	t.Parallel()
	assert.Equal(t, SmartRound(312, "ml", SystemMetric), SmartRound(312, "ml", SystemImperial))
}

var propertyUnits = []string{"ml", "g", "kg", "pieces", "whole", "slices", "cups", "tsp", "tbsp", "cloves", ""}

func sampleAmounts() []float64 {
	var out []float64
	for x := 0.0; x <= 1200; x += 0.37 {
		out = append(out, x)
	}
	for x := 0.0; x <= 6; x += 0.01 {
		out = append(out, x)
	}
	return out
}

func TestSmartRoundIdempotent(t *testing.T) {
	t.Parallel()

	for _, unit := range propertyUnits {
		for _, x := range sampleAmounts() {
			once := SmartRound(x, unit, SystemMetric)
			twice := SmartRound(once, unit, SystemMetric)
			if !assert.InDelta(t, once, twice, 1e-9, "unit %q amount %v", unit, x) {
				return
			}
		}
	}
}

func TestSmartRoundMonotonic(t *testing.T) {
	t.Parallel()

	for _, unit := range propertyUnits {
		prev := -1.0
		for x := 0.0; x <= 1200; x += 0.05 {
			got := SmartRound(x, unit, SystemMetric)
			if !assert.GreaterOrEqual(t, got+1e-9, prev, "unit %q amount %v", unit, x) {
				return
			}
			prev = got
		}
	}
}

func TestIsCountable(t *testing.T) {
	t.Parallel()
	assert.True(t, IsCountable("pieces"))
	assert.True(t, IsCountable(" Whole "))
	assert.False(t, IsCountable("g"))
}
