package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/flexidiet/internal/model"
)

func TestFoodCreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	h := NewFoodHandler(env.foods, env.hub, env.validator, env.logger)

	rec := do(t, "POST /api/foods", h.Create, http.MethodPost, "/api/foods", map[string]any{
		"name":              "spring onion",
		"aliases":           []string{"scallion", " green onion "},
		"calories_per_100g": 32,
	}, &adminUser)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	food := readJSON[model.Food](t, rec)
	assert.Equal(t, []string{"scallion", "green onion"}, food.Aliases)
	assert.True(t, food.IsPublic)

	rec = do(t, "POST /api/foods", h.Create, http.MethodPost, "/api/foods", map[string]any{"name": "Spring Onion"}, &adminUser)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, "PUT /api/foods/{id}", h.Update, http.MethodPut, "/api/foods/"+itoa(food.ID), map[string]any{
		"name":              "spring onion",
		"aliases":           []string{"scallion"},
		"calories_per_100g": 30,
	}, &adminUser)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 30.0, readJSON[model.Food](t, rec).CaloriesPer100g)

	rec = do(t, "PUT /api/foods/{id}", h.Update, http.MethodPut, "/api/foods/"+itoa(food.ID), map[string]any{"name": "salt"}, &adminUser)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, "PUT /api/foods/{id}", h.Update, http.MethodPut, "/api/foods/9999", map[string]any{"name": "x"}, &adminUser)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, "GET /api/foods", h.List, http.MethodGet, "/api/foods", nil, &alice)
	require.Equal(t, http.StatusOK, rec.Code)
	names := make([]string, 0)
	for _, f := range readJSON[[]model.Food](t, rec) {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "spring onion")
	assert.Contains(t, names, "capsicum")
}

func TestFoodCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewFoodHandler(env.foods, env.hub, env.validator, env.logger)

	rec := do(t, "POST /api/foods", h.Create, http.MethodPost, "/api/foods", map[string]any{
		"name":      "",
		"protein_g": 150,
	}, &adminUser)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := readJSON[validationResponse](t, rec).Fields
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "protein_g")
}
