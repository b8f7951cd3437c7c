package model

import "time"

// Food is a catalog entry. Aliases are alternate names shown next to the
// canonical name on grocery lists.
type Food struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Aliases         []string  `json:"aliases"`
	CaloriesPer100g float64   `json:"calories_per_100g"`
	ProteinG        float64   `json:"protein_g"`
	CarbsG          float64   `json:"carbs_g"`
	FatG            float64   `json:"fat_g"`
	IsPublic        bool      `json:"is_public"`
	OwnerEmail      string    `json:"owner_email"`
	CreatedAt       time.Time `json:"created_at"`
}

// GenericName is a canonical ingredient name plus display aliases.
type GenericName struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}
