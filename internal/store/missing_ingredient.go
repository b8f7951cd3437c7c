package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

type MissingIngredientStore struct {
	db *sql.DB
}

func NewMissingIngredientStore(db *sql.DB) *MissingIngredientStore {
	return &MissingIngredientStore{db: db}
}

const missingCols = `id, name, recipe_name, reported_by, status, created_at`

func scanMissing(scanner interface{ Scan(...any) error }) (*model.MissingIngredient, error) {
	var m model.MissingIngredient
	if err := scanner.Scan(&m.ID, &m.Name, &m.RecipeName, &m.ReportedBy, &m.Status, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MissingIngredientStore) Create(name, recipeName, reportedBy string) (*model.MissingIngredient, error) {
	result, err := s.db.Exec(
		`INSERT INTO missing_ingredients (name, recipe_name, reported_by, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, recipeName, reportedBy, model.MissingStatusReported, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert missing ingredient: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MissingIngredientStore) GetByID(id int64) (*model.MissingIngredient, error) {
	row := s.db.QueryRow(`SELECT `+missingCols+` FROM missing_ingredients WHERE id = ?`, id)
	m, err := scanMissing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get missing ingredient: %w", err)
	}
	return m, nil
}

// List returns reports with the given status, or all reports when status
// is empty.
func (s *MissingIngredientStore) List(status string) ([]model.MissingIngredient, error) {
	query := `SELECT ` + missingCols + ` FROM missing_ingredients`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list missing ingredients: %w", err)
	}
	defer rows.Close()

	var out []model.MissingIngredient
	for rows.Next() {
		m, err := scanMissing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan missing ingredient: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *MissingIngredientStore) Resolve(id int64) (*model.MissingIngredient, error) {
	result, err := s.db.Exec(`UPDATE missing_ingredients SET status = ? WHERE id = ?`, model.MissingStatusResolved, id)
	if err != nil {
		return nil, fmt.Errorf("resolve missing ingredient: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}
