package model

import "time"

const (
	AdherenceFollowed    = "followed"
	AdherenceModified    = "modified"
	AdherenceDidOwnThing = "did_own_thing"
	AdherencePending     = "pending"
)

// DailyAdherence is one user's check-in for a calendar day.
type DailyAdherence struct {
	ID         int64     `json:"id"`
	OwnerEmail string    `json:"owner_email"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MealAdherence marks a single planned meal as followed or pending.
type MealAdherence struct {
	ID         int64     `json:"id"`
	OwnerEmail string    `json:"owner_email"`
	Date       string    `json:"date"`
	MealType   string    `json:"meal_type"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Favorite struct {
	ID          int64     `json:"id"`
	OwnerEmail  string    `json:"owner_email"`
	RecipeID    int64     `json:"recipe_id"`
	RecipeName  string    `json:"recipe_name"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// TakeawayFood is a restaurant item with its nutrition per serving.
type TakeawayFood struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Restaurant string    `json:"restaurant"`
	Calories   float64   `json:"calories"`
	ProteinG   float64   `json:"protein_g"`
	CarbsG     float64   `json:"carbs_g"`
	FatG       float64   `json:"fat_g"`
	CreatedAt  time.Time `json:"created_at"`
}
