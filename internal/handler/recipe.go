package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/grocery"
	"github.com/dukerupert/flexidiet/internal/metrics"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/units"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

const maxSuggestions = 3

type RecipeHandler struct {
	recipeStore   *store.RecipeStore
	foodStore     *store.FoodStore
	settingsStore *store.SettingsStore
	hub           *websocket.Hub
	validator     *validation.Validator
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, fs *store.FoodStore, ss *store.SettingsStore, hub *websocket.Hub, v *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeStore:   rs,
		foodStore:     fs,
		settingsStore: ss,
		hub:           hub,
		validator:     v,
		metrics:       m,
		logger:        logger.With("component", "handler.recipe"),
	}
}

type recipeRequest struct {
	Name        string             `json:"name" validate:"required,max=200"`
	IsPublic    bool               `json:"is_public"`
	Servings    int                `json:"servings" validate:"omitempty,gte=1,lte=100"`
	Ingredients []model.Ingredient `json:"ingredients" validate:"max=200,dive"`
}

func (req *recipeRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	if req.Servings == 0 {
		req.Servings = 1
	}
	if req.Ingredients == nil {
		req.Ingredients = []model.Ingredient{}
	}
	for i := range req.Ingredients {
		req.Ingredients[i].Name = strings.TrimSpace(req.Ingredients[i].Name)
		req.Ingredients[i].Unit = strings.TrimSpace(req.Ingredients[i].Unit)
	}
}

func canView(ctx context.Context, r *model.Recipe) bool {
	return r.IsPublic || r.OwnerEmail == auth.Email(ctx) || auth.IsAdmin(ctx)
}

func canEdit(ctx context.Context, r *model.Recipe) bool {
	return r.OwnerEmail == auth.Email(ctx) || auth.IsAdmin(ctx)
}

// loadRecipe fetches the {id} recipe and enforces visibility. On failure it
// writes the response and returns nil.
func (h *RecipeHandler) loadRecipe(w http.ResponseWriter, r *http.Request) *model.Recipe {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}
	recipe, err := h.recipeStore.GetByID(id)
	if err != nil {
		h.logger.Error("get recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return nil
	}
	if recipe == nil || !canView(r.Context(), recipe) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return nil
	}
	return recipe
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeStore.ListVisible(auth.Email(r.Context()))
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe := h.loadRecipe(w, r)
	if recipe == nil {
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	req.normalize()

	owner := auth.Email(r.Context())
	recipe, err := h.recipeStore.Create(owner, req.Name, req.IsPublic, req.Servings, req.Ingredients)
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	h.hub.Publish(owner, websocket.NewMessage(websocket.EntityRecipe, "created", recipe.ID, nil))
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing := h.loadRecipe(w, r)
	if existing == nil {
		return
	}
	if !canEdit(r.Context(), existing) {
		writeError(w, http.StatusForbidden, "only the owner can edit this recipe")
		return
	}

	var req recipeRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	req.normalize()

	recipe, err := h.recipeStore.Update(existing.ID, req.Name, req.IsPublic, req.Servings, req.Ingredients)
	if err != nil {
		h.logger.Error("update recipe", "id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	h.hub.Publish(existing.OwnerEmail, websocket.NewMessage(websocket.EntityRecipe, "updated", recipe.ID, nil))
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	existing := h.loadRecipe(w, r)
	if existing == nil {
		return
	}
	if !canEdit(r.Context(), existing) {
		writeError(w, http.StatusForbidden, "only the owner can delete this recipe")
		return
	}

	if err := h.recipeStore.Delete(existing.ID); err != nil {
		h.logger.Error("delete recipe", "id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	h.hub.Publish(existing.OwnerEmail, websocket.NewMessage(websocket.EntityRecipe, "deleted", existing.ID, nil))
	w.WriteHeader(http.StatusNoContent)
}

type scaledRecipeResponse struct {
	RecipeID          int64                    `json:"recipe_id"`
	Name              string                   `json:"name"`
	Servings          int                      `json:"servings"`
	TargetServings    int                      `json:"target_servings,omitempty"`
	Factor            float64                  `json:"factor"`
	MeasurementSystem string                   `json:"measurement_system"`
	Ingredients       []model.ScaledIngredient `json:"ingredients"`
}

// Scaled returns the recipe's ingredients scaled by ?servings=N (relative to
// the recipe's own servings) or by an explicit ?factor=F.
func (h *RecipeHandler) Scaled(w http.ResponseWriter, r *http.Request) {
	recipe := h.loadRecipe(w, r)
	if recipe == nil {
		return
	}

	q := r.URL.Query()
	resp := scaledRecipeResponse{
		RecipeID:          recipe.ID,
		Name:              recipe.Name,
		Servings:          recipe.Servings,
		MeasurementSystem: measurementSystem(h.settingsStore),
	}

	switch {
	case q.Get("servings") != "":
		target, err := strconv.Atoi(q.Get("servings"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "servings must be a whole number")
			return
		}
		factor, err := units.ScaleFactor(target, recipe.Servings)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.TargetServings = target
		resp.Factor = factor
	case q.Get("factor") != "":
		factor, err := strconv.ParseFloat(q.Get("factor"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "factor must be a number")
			return
		}
		resp.Factor = factor
	default:
		writeError(w, http.StatusBadRequest, "servings or factor is required")
		return
	}

	scaled, err := units.ScaleIngredients(recipe.Ingredients, resp.Factor, resp.MeasurementSystem)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp.Ingredients = scaled
	writeJSON(w, http.StatusOK, resp)
}

type verifyRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=200,dive,max=200"`
}

type missingName struct {
	Name        string               `json:"name"`
	Suggestions []grocery.Suggestion `json:"suggestions"`
}

type verifyResponse struct {
	AllKnown bool          `json:"all_known"`
	Missing  []missingName `json:"missing"`
}

// Verify checks ingredient names against the food catalog and suggests
// close matches for the ones it does not know.
func (h *RecipeHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	known, err := h.foodStore.KnownNames(r.Context())
	if err != nil {
		h.logger.Error("list known foods", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to verify ingredients")
		return
	}

	unknown := grocery.Unknown(req.Names, known)
	resp := verifyResponse{AllKnown: len(unknown) == 0, Missing: []missingName{}}
	for _, name := range unknown {
		suggestions := grocery.Suggest(name, known, grocery.DefaultSuggestThreshold, maxSuggestions)
		if suggestions == nil {
			suggestions = []grocery.Suggestion{}
		}
		resp.Missing = append(resp.Missing, missingName{Name: name, Suggestions: suggestions})
	}
	h.metrics.VerificationMisses(len(unknown))

	writeJSON(w, http.StatusOK, resp)
}
