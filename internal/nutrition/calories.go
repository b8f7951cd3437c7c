// Package nutrition computes daily energy targets from body metrics.
package nutrition

import (
	"errors"
	"math"

	"github.com/dukerupert/flexidiet/internal/model"
)

var ErrIncompleteProfile = errors.New("height, weight, age, gender and goal are required")

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	carbShare    = 0.40
	proteinShare = 0.40
	fatShare     = 0.20
)

// Input holds the profile fields the calorie target depends on.
type Input struct {
	Gender           string
	Age              int
	HeightCM         float64
	WeightKG         float64
	ExerciseSessions int
	JobType          string
	Goal             string
}

// InputFromProfile extracts the calculation inputs from p.
func InputFromProfile(p model.UserProfile) Input {
	return Input{
		Gender:           p.Gender,
		Age:              p.Age,
		HeightCM:         p.HeightCM,
		WeightKG:         p.WeightKG,
		ExerciseSessions: p.ExerciseSessions,
		JobType:          p.JobType,
		Goal:             p.Goal,
	}
}

// Result is a daily calorie target and its macro split.
type Result struct {
	BMR                float64      `json:"bmr"`
	ActivityMultiplier float64      `json:"activity_multiplier"`
	DailyCalorieTarget int          `json:"daily_calorie_target"`
	Macros             model.Macros `json:"macros"`
}

// BMR returns the Mifflin-St Jeor basal metabolic rate. Any gender other
// than "male" uses the female constant.
func BMR(in Input) float64 {
	base := 10*in.WeightKG + 6.25*in.HeightCM - 5*float64(in.Age)
	if in.Gender == "male" {
		return base + 5
	}
	return base - 161
}

// ActivityMultiplier maps weekly exercise sessions and job type to a TDEE factor.
func ActivityMultiplier(sessions int, jobType string) float64 {
	m := 1.2
	switch {
	case sessions >= 5:
		m = 1.725
	case sessions >= 3:
		m = 1.55
	case sessions >= 1:
		m = 1.375
	}
	if jobType == model.JobPhysical {
		m += 0.2
	}
	return m
}

func goalAdjustment(goal string) float64 {
	switch goal {
	case model.GoalLoseWeight:
		return -500
	case model.GoalBuildMuscle:
		return 300
	}
	return 0
}

// Calculate computes the daily calorie target and macro grams for in.
func Calculate(in Input) (Result, error) {
	if in.HeightCM <= 0 || in.WeightKG <= 0 || in.Age <= 0 || in.Gender == "" || in.Goal == "" {
		return Result{}, ErrIncompleteProfile
	}

	bmr := BMR(in)
	mult := ActivityMultiplier(in.ExerciseSessions, in.JobType)
	target := int(math.Floor(bmr*mult + goalAdjustment(in.Goal) + 0.5))

	return Result{
		BMR:                bmr,
		ActivityMultiplier: mult,
		DailyCalorieTarget: target,
		Macros:             MacroSplit(target),
	}, nil
}

// MacroSplit divides kcal 40/40/20 across carbs, protein and fat, in grams.
func MacroSplit(kcal int) model.Macros {
	k := float64(kcal)
	return model.Macros{
		CarbsG:   int(math.Floor(k*carbShare/kcalPerGramCarbs + 0.5)),
		ProteinG: int(math.Floor(k*proteinShare/kcalPerGramProtein + 0.5)),
		FatG:     int(math.Floor(k*fatShare/kcalPerGramFat + 0.5)),
	}
}
