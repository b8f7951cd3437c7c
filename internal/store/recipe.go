package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeCols = `id, name, owner_email, is_public, servings, ingredients, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var isPublic int
	var ingredients string
	err := scanner.Scan(&r.ID, &r.Name, &r.OwnerEmail, &isPublic, &r.Servings, &ingredients, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.IsPublic = isPublic != 0
	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return &r, nil
}

func encodeIngredients(ingredients []model.Ingredient) (string, error) {
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	b, err := json.Marshal(ingredients)
	if err != nil {
		return "", fmt.Errorf("encode ingredients: %w", err)
	}
	return string(b), nil
}

func (s *RecipeStore) Create(owner, name string, isPublic bool, servings int, ingredients []model.Ingredient) (*model.Recipe, error) {
	enc, err := encodeIngredients(ingredients)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	result, err := s.db.Exec(
		`INSERT INTO recipes (name, owner_email, is_public, servings, ingredients, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, owner, boolToInt(isPublic), servings, enc, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) GetByID(id int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// Update replaces a recipe's fields, including its whole ingredient list.
func (s *RecipeStore) Update(id int64, name string, isPublic bool, servings int, ingredients []model.Ingredient) (*model.Recipe, error) {
	enc, err := encodeIngredients(ingredients)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE recipes SET name = ?, is_public = ?, servings = ?, ingredients = ?, updated_at = ? WHERE id = ?`,
		name, boolToInt(isPublic), servings, enc, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// ListVisible returns public recipes plus owner's private ones.
func (s *RecipeStore) ListVisible(owner string) ([]model.Recipe, error) {
	rows, err := s.db.Query(
		`SELECT `+recipeCols+` FROM recipes WHERE is_public = 1 OR owner_email = ? ORDER BY id ASC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return collectRecipes(rows)
}

// ListVisibleByIDs returns the recipes among ids that owner may read.
func (s *RecipeStore) ListVisibleByIDs(owner string, ids []int64) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, owner)

	rows, err := s.db.Query(
		`SELECT `+recipeCols+` FROM recipes WHERE id IN (`+placeholders+`) AND (is_public = 1 OR owner_email = ?) ORDER BY id ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes by id: %w", err)
	}
	return collectRecipes(rows)
}

func collectRecipes(rows *sql.Rows) ([]model.Recipe, error) {
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
