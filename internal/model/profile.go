package model

import "time"

const (
	GoalLoseWeight  = "lose_weight"
	GoalMaintain    = "maintain"
	GoalBuildMuscle = "build_muscle"

	JobPhysical  = "physical"
	JobSedentary = "sedentary"
)

// Macros holds daily macronutrient targets in grams.
type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

type UserProfile struct {
	OwnerEmail         string    `json:"owner_email"`
	Gender             string    `json:"gender"`
	Age                int       `json:"age"`
	HeightCM           float64   `json:"height_cm"`
	WeightKG           float64   `json:"weight_kg"`
	ExerciseSessions   int       `json:"exercise_sessions_per_week"`
	JobType            string    `json:"job_type"`
	Goal               string    `json:"goal"`
	DailyCalorieTarget int       `json:"daily_calorie_target"`
	Macros             Macros    `json:"macros"`
	UpdatedAt          time.Time `json:"updated_at"`
}
