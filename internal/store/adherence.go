package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

// AdherenceStore holds daily check-ins and per-meal follow marks.
type AdherenceStore struct {
	db *sql.DB
}

func NewAdherenceStore(db *sql.DB) *AdherenceStore {
	return &AdherenceStore{db: db}
}

const dailyCols = `id, owner_email, date, status, created_at, updated_at`

func scanDaily(scanner interface{ Scan(...any) error }) (*model.DailyAdherence, error) {
	var d model.DailyAdherence
	if err := scanner.Scan(&d.ID, &d.OwnerEmail, &d.Date, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpsertDaily records owner's check-in for date, replacing any earlier one.
func (s *AdherenceStore) UpsertDaily(owner, date, status string) (*model.DailyAdherence, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO daily_adherence (owner_email, date, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(owner_email, date) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`,
		owner, date, status, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert daily adherence: %w", err)
	}
	return s.GetDaily(owner, date)
}

func (s *AdherenceStore) GetDaily(owner, date string) (*model.DailyAdherence, error) {
	row := s.db.QueryRow(`SELECT `+dailyCols+` FROM daily_adherence WHERE owner_email = ? AND date = ?`, owner, date)
	d, err := scanDaily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily adherence: %w", err)
	}
	return d, nil
}

// ListDaily returns owner's check-ins dated from..to inclusive, oldest first.
func (s *AdherenceStore) ListDaily(owner, from, to string) ([]model.DailyAdherence, error) {
	rows, err := s.db.Query(
		`SELECT `+dailyCols+` FROM daily_adherence
		 WHERE owner_email = ? AND date >= ? AND date <= ? ORDER BY date`,
		owner, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily adherence: %w", err)
	}
	defer rows.Close()

	var out []model.DailyAdherence
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily adherence: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

const mealAdherenceCols = `id, owner_email, date, meal_type, status, updated_at`

func scanMealAdherence(scanner interface{ Scan(...any) error }) (*model.MealAdherence, error) {
	var m model.MealAdherence
	if err := scanner.Scan(&m.ID, &m.OwnerEmail, &m.Date, &m.MealType, &m.Status, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AdherenceStore) GetMeal(owner, date, mealType string) (*model.MealAdherence, error) {
	row := s.db.QueryRow(
		`SELECT `+mealAdherenceCols+` FROM meal_adherence WHERE owner_email = ? AND date = ? AND meal_type = ?`,
		owner, date, mealType,
	)
	m, err := scanMealAdherence(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal adherence: %w", err)
	}
	return m, nil
}

// SetMeal records the status of one meal slot.
func (s *AdherenceStore) SetMeal(owner, date, mealType, status string) (*model.MealAdherence, error) {
	_, err := s.db.Exec(
		`INSERT INTO meal_adherence (owner_email, date, meal_type, status, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(owner_email, date, meal_type) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`,
		owner, date, mealType, status, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("set meal adherence: %w", err)
	}
	return s.GetMeal(owner, date, mealType)
}

// ListMeals returns owner's meal marks dated from..to inclusive.
func (s *AdherenceStore) ListMeals(owner, from, to string) ([]model.MealAdherence, error) {
	rows, err := s.db.Query(
		`SELECT `+mealAdherenceCols+` FROM meal_adherence
		 WHERE owner_email = ? AND date >= ? AND date <= ? ORDER BY date, meal_type`,
		owner, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list meal adherence: %w", err)
	}
	defer rows.Close()

	var out []model.MealAdherence
	for rows.Next() {
		m, err := scanMealAdherence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal adherence: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
