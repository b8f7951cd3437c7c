package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dukerupert/flexidiet/internal/model"
)

// GroceryListStore persists generated lists. Each generation is a new row;
// the newest row for an owner is their current list.
type GroceryListStore struct {
	db *sql.DB
}

func NewGroceryListStore(db *sql.DB) *GroceryListStore {
	return &GroceryListStore{db: db}
}

const listCols = `id, owner_email, week_start_date, categories, total_recipes, generated_at`

func scanList(scanner interface{ Scan(...any) error }) (*model.GroceryList, error) {
	var l model.GroceryList
	var categories string
	err := scanner.Scan(&l.ID, &l.OwnerEmail, &l.WeekStartDate, &categories, &l.TotalRecipes, &l.GeneratedDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categories), &l.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if l.Categories == nil {
		l.Categories = model.Categories{}
	}
	return &l, nil
}

func encodeCategories(c model.Categories) (string, error) {
	if c == nil {
		c = model.Categories{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode categories: %w", err)
	}
	return string(b), nil
}

func (s *GroceryListStore) Create(l *model.GroceryList) (*model.GroceryList, error) {
	cats, err := encodeCategories(l.Categories)
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(
		`INSERT INTO grocery_lists (owner_email, week_start_date, categories, total_recipes, generated_at) VALUES (?, ?, ?, ?, ?)`,
		l.OwnerEmail, l.WeekStartDate, cats, l.TotalRecipes, l.GeneratedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert grocery list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *GroceryListStore) GetByID(id int64) (*model.GroceryList, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM grocery_lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get grocery list: %w", err)
	}
	return l, nil
}

// Latest returns owner's most recently generated list.
func (s *GroceryListStore) Latest(owner string) (*model.GroceryList, error) {
	row := s.db.QueryRow(
		`SELECT `+listCols+` FROM grocery_lists WHERE owner_email = ? ORDER BY generated_at DESC, id DESC LIMIT 1`,
		owner,
	)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest grocery list: %w", err)
	}
	return l, nil
}

// UpdateCategories writes back checked state after a toggle.
func (s *GroceryListStore) UpdateCategories(id int64, c model.Categories) error {
	cats, err := encodeCategories(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE grocery_lists SET categories = ? WHERE id = ?`, cats, id)
	if err != nil {
		return fmt.Errorf("update grocery list: %w", err)
	}
	return nil
}

func (s *GroceryListStore) ListByOwner(owner string, limit int) ([]model.GroceryList, error) {
	rows, err := s.db.Query(
		`SELECT `+listCols+` FROM grocery_lists WHERE owner_email = ? ORDER BY generated_at DESC, id DESC LIMIT ?`,
		owner, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list grocery lists: %w", err)
	}
	defer rows.Close()

	var lists []model.GroceryList
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grocery list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}
