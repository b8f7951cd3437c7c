package model

import "time"

// Ingredient is a single line of a recipe. A nil Amount means the author
// recorded no quantity.
type Ingredient struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Unit          string   `json:"unit" validate:"omitempty,oneof=ml g kg cups tbsp tsp pieces whole slices cloves"`
	DisplayAmount string   `json:"display_amount,omitempty"`
}

// AmountOr returns the recorded amount, or def when none was recorded.
func (i Ingredient) AmountOr(def float64) float64 {
	if i.Amount == nil {
		return def
	}
	return *i.Amount
}

type Recipe struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	OwnerEmail  string       `json:"owner_email"`
	IsPublic    bool         `json:"is_public"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ScaledIngredient is an Ingredient with serving-adjusted fields attached.
type ScaledIngredient struct {
	Ingredient
	ScaledAmount        float64 `json:"scaled_amount"`
	ScaledDisplayAmount string  `json:"scaled_display_amount"`
}
