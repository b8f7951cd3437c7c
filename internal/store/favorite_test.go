package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggle(t *testing.T) {
	db := openTestDB(t)
	rs := NewRecipeStore(db)
	fs := NewFavoriteStore(db)

	r, err := rs.Create("sam@example.com", "Overnight oats", true, 1, nil)
	require.NoError(t, err)

	fav, err := fs.Toggle("sam@example.com", r.ID, r.Name)
	require.NoError(t, err)
	require.NotNil(t, fav)
	assert.Equal(t, r.ID, fav.RecipeID)
	assert.Equal(t, "Overnight oats", fav.RecipeName)

	_, err = fs.Toggle("kim@example.com", r.ID, r.Name)
	require.NoError(t, err)

	fav, err = fs.Toggle("sam@example.com", r.ID, r.Name)
	require.NoError(t, err)
	assert.Nil(t, fav, "second toggle removes")

	list, err := fs.List("sam@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = fs.List("kim@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFavoriteRemovedWithRecipe(t *testing.T) {
	db := openTestDB(t)
	rs := NewRecipeStore(db)
	fs := NewFavoriteStore(db)

	r, err := rs.Create("sam@example.com", "Chili", false, 4, nil)
	require.NoError(t, err)
	_, err = fs.Toggle("sam@example.com", r.ID, r.Name)
	require.NoError(t, err)

	require.NoError(t, rs.Delete(r.ID))

	list, err := fs.List("sam@example.com")
	require.NoError(t, err)
	assert.Empty(t, list)
}
