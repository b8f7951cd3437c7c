package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

// TakeawayStore is the catalog of restaurant items offered for cheat meals.
type TakeawayStore struct {
	db *sql.DB
}

func NewTakeawayStore(db *sql.DB) *TakeawayStore {
	return &TakeawayStore{db: db}
}

const takeawayCols = `id, name, restaurant, calories, protein_g, carbs_g, fat_g, created_at`

func scanTakeaway(scanner interface{ Scan(...any) error }) (*model.TakeawayFood, error) {
	var f model.TakeawayFood
	if err := scanner.Scan(&f.ID, &f.Name, &f.Restaurant, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *TakeawayStore) Create(f model.TakeawayFood) (*model.TakeawayFood, error) {
	result, err := s.db.Exec(
		`INSERT INTO takeaway_foods (name, restaurant, calories, protein_g, carbs_g, fat_g, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Restaurant, f.Calories, f.ProteinG, f.CarbsG, f.FatG, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert takeaway food: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TakeawayStore) GetByID(id int64) (*model.TakeawayFood, error) {
	f, err := scanTakeaway(s.db.QueryRow(`SELECT `+takeawayCols+` FROM takeaway_foods WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get takeaway food: %w", err)
	}
	return f, nil
}

// Exists reports whether restaurant already lists an item called name.
func (s *TakeawayStore) Exists(restaurant, name string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM takeaway_foods WHERE restaurant = ? AND name = ?`, restaurant, name,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check takeaway food: %w", err)
	}
	return n > 0, nil
}

func (s *TakeawayStore) List() ([]model.TakeawayFood, error) {
	rows, err := s.db.Query(`SELECT ` + takeawayCols + ` FROM takeaway_foods ORDER BY restaurant, name`)
	if err != nil {
		return nil, fmt.Errorf("list takeaway foods: %w", err)
	}
	defer rows.Close()

	var out []model.TakeawayFood
	for rows.Next() {
		f, err := scanTakeaway(rows)
		if err != nil {
			return nil, fmt.Errorf("scan takeaway food: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}
