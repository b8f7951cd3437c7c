package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

type FavoriteHandler struct {
	favoriteStore *store.FavoriteStore
	recipeStore   *store.RecipeStore
	hub           *websocket.Hub
	validator     *validation.Validator
	logger        *slog.Logger
}

func NewFavoriteHandler(fs *store.FavoriteStore, rs *store.RecipeStore, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favoriteStore: fs, recipeStore: rs, hub: hub, validator: v, logger: logger.With("component", "handler.favorite")}
}

type favoriteToggleRequest struct {
	RecipeID int64 `json:"recipe_id" validate:"required,gt=0"`
}

type favoriteToggleResponse struct {
	RecipeID  int64           `json:"recipe_id"`
	Favorited bool            `json:"favorited"`
	Favorite  *model.Favorite `json:"favorite,omitempty"`
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favoriteStore.List(auth.Email(r.Context()))
	if err != nil {
		h.logger.Error("list favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}
	if favs == nil {
		favs = []model.Favorite{}
	}
	writeJSON(w, http.StatusOK, favs)
}

// Toggle adds a recipe the caller can see to their favorites, or removes it
// when already there.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req favoriteToggleRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	recipe, err := h.recipeStore.GetByID(req.RecipeID)
	if err != nil {
		h.logger.Error("get recipe", "id", req.RecipeID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update favorites")
		return
	}
	if recipe == nil || !canView(r.Context(), recipe) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	owner := auth.Email(r.Context())
	fav, err := h.favoriteStore.Toggle(owner, recipe.ID, recipe.Name)
	if err != nil {
		h.logger.Error("toggle favorite", "recipe_id", recipe.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update favorites")
		return
	}

	action := "removed"
	if fav != nil {
		action = "added"
	}
	h.hub.Publish(owner, websocket.NewMessage(websocket.EntityFavorite, action, recipe.ID, nil))
	writeJSON(w, http.StatusOK, favoriteToggleResponse{RecipeID: recipe.ID, Favorited: fav != nil, Favorite: fav})
}
