package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Get(owner string) (*model.UserProfile, error) {
	var p model.UserProfile
	err := s.db.QueryRow(
		`SELECT owner_email, gender, age, height_cm, weight_kg, exercise_sessions_per_week, job_type, goal,
		        daily_calorie_target, protein_g, carbs_g, fat_g, updated_at
		 FROM user_profiles WHERE owner_email = ?`, owner,
	).Scan(&p.OwnerEmail, &p.Gender, &p.Age, &p.HeightCM, &p.WeightKG, &p.ExerciseSessions, &p.JobType, &p.Goal,
		&p.DailyCalorieTarget, &p.Macros.ProteinG, &p.Macros.CarbsG, &p.Macros.FatG, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Upsert creates or replaces the profile owned by p.OwnerEmail.
func (s *ProfileStore) Upsert(p model.UserProfile) (*model.UserProfile, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_profiles (owner_email, gender, age, height_cm, weight_kg, exercise_sessions_per_week, job_type, goal,
		                            daily_calorie_target, protein_g, carbs_g, fat_g, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(owner_email) DO UPDATE SET
		    gender = excluded.gender, age = excluded.age, height_cm = excluded.height_cm, weight_kg = excluded.weight_kg,
		    exercise_sessions_per_week = excluded.exercise_sessions_per_week, job_type = excluded.job_type, goal = excluded.goal,
		    daily_calorie_target = excluded.daily_calorie_target, protein_g = excluded.protein_g, carbs_g = excluded.carbs_g,
		    fat_g = excluded.fat_g, updated_at = excluded.updated_at`,
		p.OwnerEmail, p.Gender, p.Age, p.HeightCM, p.WeightKG, p.ExerciseSessions, p.JobType, p.Goal,
		p.DailyCalorieTarget, p.Macros.ProteinG, p.Macros.CarbsG, p.Macros.FatG, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return s.Get(p.OwnerEmail)
}
