package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/flexidiet/internal/model"
)

func TestMissingIngredientCreateNotifiesAdmin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Set(model.SettingAdminEmail, "owner@example.com"))
	mailer := &fakeMailer{configured: true}
	h := NewMissingIngredientHandler(env.missing, env.settings, mailer, "fallback@example.com", env.hub, env.validator, env.logger)

	rec := do(t, "POST /api/missing-ingredients", h.Create, http.MethodPost, "/api/missing-ingredients",
		map[string]string{"name": " dragonfruit ", "recipe_name": "Smoothie"}, &alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := readJSON[missingIngredientResponse](t, rec)
	assert.True(t, resp.AdminNotified)
	assert.Equal(t, "dragonfruit", resp.Name)
	assert.Equal(t, model.MissingStatusReported, resp.Status)
	assert.Equal(t, []string{"owner@example.com|dragonfruit|Smoothie|alice@example.com"}, mailer.requests)
}

func TestMissingIngredientFallbackAdmin(t *testing.T) {
	env := newTestEnv(t)
	mailer := &fakeMailer{configured: true}
	h := NewMissingIngredientHandler(env.missing, env.settings, mailer, "fallback@example.com", env.hub, env.validator, env.logger)

	rec := do(t, "POST /api/missing-ingredients", h.Create, http.MethodPost, "/api/missing-ingredients",
		map[string]string{"name": "yuzu"}, &alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"fallback@example.com|yuzu||alice@example.com"}, mailer.requests)
}

func TestMissingIngredientEmailFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	h := NewMissingIngredientHandler(env.missing, env.settings, &fakeMailer{configured: true, err: errors.New("down")}, "fallback@example.com", env.hub, env.validator, env.logger)

	rec := do(t, "POST /api/missing-ingredients", h.Create, http.MethodPost, "/api/missing-ingredients",
		map[string]string{"name": "yuzu"}, &alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, readJSON[missingIngredientResponse](t, rec).AdminNotified)

	items, err := env.missing.List("")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMissingIngredientListAndResolve(t *testing.T) {
	env := newTestEnv(t)
	h := NewMissingIngredientHandler(env.missing, env.settings, nil, "", env.hub, env.validator, env.logger)

	rec := do(t, "POST /api/missing-ingredients", h.Create, http.MethodPost, "/api/missing-ingredients",
		map[string]string{"name": "yuzu"}, &alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := readJSON[missingIngredientResponse](t, rec)
	assert.False(t, created.AdminNotified)

	rec = do(t, "POST /api/missing-ingredients", h.Create, http.MethodPost, "/api/missing-ingredients",
		map[string]string{"name": ""}, &alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, "POST /api/missing-ingredients/{id}/resolve", h.Resolve, http.MethodPost,
		"/api/missing-ingredients/"+itoa(created.ID)+"/resolve", nil, &adminUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.MissingStatusResolved, readJSON[model.MissingIngredient](t, rec).Status)

	rec = do(t, "POST /api/missing-ingredients/{id}/resolve", h.Resolve, http.MethodPost,
		"/api/missing-ingredients/9999/resolve", nil, &adminUser)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, "GET /api/missing-ingredients", h.List, http.MethodGet, "/api/missing-ingredients?status=reported", nil, &adminUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, readJSON[[]model.MissingIngredient](t, rec))

	rec = do(t, "GET /api/missing-ingredients", h.List, http.MethodGet, "/api/missing-ingredients?status=resolved", nil, &adminUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, readJSON[[]model.MissingIngredient](t, rec), 1)

	rec = do(t, "GET /api/missing-ingredients", h.List, http.MethodGet, "/api/missing-ingredients?status=bogus", nil, &adminUser)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
