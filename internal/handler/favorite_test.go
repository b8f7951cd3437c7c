package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/flexidiet/internal/model"
)

func TestFavoriteToggle(t *testing.T) {
	env := newTestEnv(t)
	h := NewFavoriteHandler(env.favorites, env.recipes, env.hub, env.validator, env.logger)
	recipe := env.createRecipe(t, bob.Email, "Shakshuka", true)

	rec := do(t, "POST /api/favorites/toggle", h.Toggle, http.MethodPost, "/api/favorites/toggle",
		map[string]int64{"recipe_id": recipe.ID}, &alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := readJSON[favoriteToggleResponse](t, rec)
	assert.True(t, resp.Favorited)
	require.NotNil(t, resp.Favorite)
	assert.Equal(t, "Shakshuka", resp.Favorite.RecipeName)

	rec = do(t, "GET /api/favorites", h.List, http.MethodGet, "/api/favorites", nil, &alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, readJSON[[]model.Favorite](t, rec), 1)

	rec = do(t, "POST /api/favorites/toggle", h.Toggle, http.MethodPost, "/api/favorites/toggle",
		map[string]int64{"recipe_id": recipe.ID}, &alice)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = readJSON[favoriteToggleResponse](t, rec)
	assert.False(t, resp.Favorited)
	assert.Nil(t, resp.Favorite)

	rec = do(t, "GET /api/favorites", h.List, http.MethodGet, "/api/favorites", nil, &alice)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestFavoriteToggleHiddenRecipe(t *testing.T) {
	env := newTestEnv(t)
	h := NewFavoriteHandler(env.favorites, env.recipes, env.hub, env.validator, env.logger)
	private := env.createRecipe(t, bob.Email, "Secret stew", false)

	rec := do(t, "POST /api/favorites/toggle", h.Toggle, http.MethodPost, "/api/favorites/toggle",
		map[string]int64{"recipe_id": private.ID}, &alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, "POST /api/favorites/toggle", h.Toggle, http.MethodPost, "/api/favorites/toggle",
		map[string]int64{"recipe_id": 9999}, &alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, "POST /api/favorites/toggle", h.Toggle, http.MethodPost, "/api/favorites/toggle",
		map[string]int64{}, &alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
