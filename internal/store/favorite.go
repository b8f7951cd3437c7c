package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

type FavoriteStore struct {
	db *sql.DB
}

func NewFavoriteStore(db *sql.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

const favoriteCols = `id, owner_email, recipe_id, recipe_name, favorited_at`

func scanFavorite(scanner interface{ Scan(...any) error }) (*model.Favorite, error) {
	var f model.Favorite
	if err := scanner.Scan(&f.ID, &f.OwnerEmail, &f.RecipeID, &f.RecipeName, &f.FavoritedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Toggle removes the favorite when owner already has it and adds it
// otherwise. The returned favorite is nil after a removal.
func (s *FavoriteStore) Toggle(owner string, recipeID int64, recipeName string) (*model.Favorite, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM favorites WHERE owner_email = ? AND recipe_id = ?`, owner, recipeID)
	if err != nil {
		return nil, fmt.Errorf("delete favorite: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return nil, tx.Commit()
	}

	result, err = tx.Exec(
		`INSERT INTO favorites (owner_email, recipe_id, recipe_name, favorited_at) VALUES (?, ?, ?, ?)`,
		owner, recipeID, recipeName, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	f, err := scanFavorite(tx.QueryRow(`SELECT `+favoriteCols+` FROM favorites WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return f, nil
}

// List returns owner's favorites, most recent first.
func (s *FavoriteStore) List(owner string) ([]model.Favorite, error) {
	rows, err := s.db.Query(
		`SELECT `+favoriteCols+` FROM favorites WHERE owner_email = ? ORDER BY favorited_at DESC, id DESC`, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var out []model.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}
