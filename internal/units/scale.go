package units

import (
	"errors"
	"math"

	"github.com/dukerupert/flexidiet/internal/model"
)

var ErrInvalidFactor = errors.New("scaling factor must be a finite number greater than zero")

// ScaleIngredients returns a copy of ingredients with scaled, rounded amounts
// attached. The input slice is not modified.
func ScaleIngredients(ingredients []model.Ingredient, factor float64, system string) ([]model.ScaledIngredient, error) {
	if !validFactor(factor) {
		return nil, ErrInvalidFactor
	}

	out := make([]model.ScaledIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		rounded := SmartRound(ing.AmountOr(0)*factor, ing.Unit, system)
		out = append(out, model.ScaledIngredient{
			Ingredient:          ing,
			ScaledAmount:        rounded,
			ScaledDisplayAmount: FormatAmount(rounded, ing.Unit, system),
		})
	}
	return out, nil
}

// ScaleFactor returns the factor that turns a recipe serving base into target.
func ScaleFactor(targetServings, recipeServings int) (float64, error) {
	if targetServings <= 0 || recipeServings <= 0 {
		return 0, ErrInvalidFactor
	}
	return float64(targetServings) / float64(recipeServings), nil
}

func validFactor(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
