package model

import "time"

// ConsolidatedItem is one line of a generated grocery list.
type ConsolidatedItem struct {
	Name          string   `json:"name"`
	Quantity      string   `json:"quantity"`
	Unit          string   `json:"unit"`
	Checked       bool     `json:"checked"`
	SourceRecipes []string `json:"source_recipes"`
	ShowQuantity  bool     `json:"show_quantity"`
}

// Categories maps a shopping category to its items.
type Categories map[string][]ConsolidatedItem

type GroceryList struct {
	ID            int64      `json:"id"`
	OwnerEmail    string     `json:"owner_email"`
	WeekStartDate string     `json:"week_start_date"`
	Categories    Categories `json:"categories"`
	TotalRecipes  int        `json:"total_recipes"`
	GeneratedDate time.Time  `json:"generated_date"`
}

// ListStats counts checked items across a list.
type ListStats struct {
	Total   int `json:"total"`
	Checked int `json:"checked"`
}
