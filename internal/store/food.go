package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

// FoodStore is the ingredient catalog. It also serves alias lookups for
// grocery list consolidation.
type FoodStore struct {
	db *sql.DB
}

func NewFoodStore(db *sql.DB) *FoodStore {
	return &FoodStore{db: db}
}

const foodCols = `id, name, aliases, calories_per_100g, protein_g, carbs_g, fat_g, is_public, owner_email, created_at`

func scanFood(scanner interface{ Scan(...any) error }) (*model.Food, error) {
	var f model.Food
	var aliases string
	var isPublic int
	err := scanner.Scan(&f.ID, &f.Name, &aliases, &f.CaloriesPer100g, &f.ProteinG, &f.CarbsG, &f.FatG, &isPublic, &f.OwnerEmail, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	f.IsPublic = isPublic != 0
	if err := json.Unmarshal([]byte(aliases), &f.Aliases); err != nil {
		return nil, fmt.Errorf("decode aliases: %w", err)
	}
	if f.Aliases == nil {
		f.Aliases = []string{}
	}
	return &f, nil
}

func encodeAliases(aliases []string) (string, error) {
	if aliases == nil {
		aliases = []string{}
	}
	b, err := json.Marshal(aliases)
	if err != nil {
		return "", fmt.Errorf("encode aliases: %w", err)
	}
	return string(b), nil
}

func (s *FoodStore) Create(f model.Food) (*model.Food, error) {
	aliases, err := encodeAliases(f.Aliases)
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(
		`INSERT INTO foods (name, aliases, calories_per_100g, protein_g, carbs_g, fat_g, is_public, owner_email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, aliases, f.CaloriesPer100g, f.ProteinG, f.CarbsG, f.FatG, boolToInt(f.IsPublic), f.OwnerEmail, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *FoodStore) GetByID(id int64) (*model.Food, error) {
	row := s.db.QueryRow(`SELECT `+foodCols+` FROM foods WHERE id = ?`, id)
	f, err := scanFood(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	return f, nil
}

// GetByName matches name case-insensitively.
func (s *FoodStore) GetByName(ctx context.Context, name string) (*model.Food, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+foodCols+` FROM foods WHERE name = ?`, name)
	f, err := scanFood(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food by name: %w", err)
	}
	return f, nil
}

func (s *FoodStore) Update(f model.Food) (*model.Food, error) {
	aliases, err := encodeAliases(f.Aliases)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE foods SET name = ?, aliases = ?, calories_per_100g = ?, protein_g = ?, carbs_g = ?, fat_g = ?, is_public = ? WHERE id = ?`,
		f.Name, aliases, f.CaloriesPer100g, f.ProteinG, f.CarbsG, f.FatG, boolToInt(f.IsPublic), f.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update food: %w", err)
	}
	return s.GetByID(f.ID)
}

// List returns public foods plus owner's private ones, by name.
func (s *FoodStore) List(owner string) ([]model.Food, error) {
	rows, err := s.db.Query(
		`SELECT `+foodCols+` FROM foods WHERE is_public = 1 OR owner_email = ? ORDER BY name ASC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	var foods []model.Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, *f)
	}
	return foods, rows.Err()
}

// KnownNames returns every catalog name and alias.
func (s *FoodStore) KnownNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, aliases FROM foods`)
	if err != nil {
		return nil, fmt.Errorf("list food names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name, aliases string
		if err := rows.Scan(&name, &aliases); err != nil {
			return nil, fmt.Errorf("scan food name: %w", err)
		}
		names = append(names, name)
		var list []string
		if err := json.Unmarshal([]byte(aliases), &list); err != nil {
			return nil, fmt.Errorf("decode aliases: %w", err)
		}
		names = append(names, list...)
	}
	return names, rows.Err()
}

// LookupAliases returns the catalog name and aliases for an exact name
// match, or nil when there is no entry or it carries no aliases.
func (s *FoodStore) LookupAliases(ctx context.Context, name string) (*model.GenericName, error) {
	f, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if f == nil || len(f.Aliases) == 0 {
		return nil, nil
	}
	return &model.GenericName{Name: f.Name, Aliases: f.Aliases}, nil
}
