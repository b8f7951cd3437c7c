package model

import "time"

const (
	MissingStatusReported = "reported"
	MissingStatusResolved = "resolved"
)

// MissingIngredient is a user report that the food catalog lacks an ingredient.
type MissingIngredient struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RecipeName string    `json:"recipe_name"`
	ReportedBy string    `json:"reported_by"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
