package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

type FoodHandler struct {
	foodStore *store.FoodStore
	hub       *websocket.Hub
	validator *validation.Validator
	logger    *slog.Logger
}

func NewFoodHandler(fs *store.FoodStore, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *FoodHandler {
	return &FoodHandler{foodStore: fs, hub: hub, validator: v, logger: logger.With("component", "handler.food")}
}

type foodRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Aliases         []string `json:"aliases" validate:"max=20,dive,required,max=200"`
	CaloriesPer100g float64  `json:"calories_per_100g" validate:"gte=0,lte=1000"`
	ProteinG        float64  `json:"protein_g" validate:"gte=0,lte=100"`
	CarbsG          float64  `json:"carbs_g" validate:"gte=0,lte=100"`
	FatG            float64  `json:"fat_g" validate:"gte=0,lte=100"`
	IsPublic        *bool    `json:"is_public"`
}

func (req foodRequest) toFood(owner string) model.Food {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	aliases := make([]string, 0, len(req.Aliases))
	for _, a := range req.Aliases {
		aliases = append(aliases, strings.TrimSpace(a))
	}
	return model.Food{
		Name:            strings.TrimSpace(req.Name),
		Aliases:         aliases,
		CaloriesPer100g: req.CaloriesPer100g,
		ProteinG:        req.ProteinG,
		CarbsG:          req.CarbsG,
		FatG:            req.FatG,
		IsPublic:        isPublic,
		OwnerEmail:      owner,
	}
}

func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.foodStore.List(auth.Email(r.Context()))
	if err != nil {
		h.logger.Error("list foods", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list foods")
		return
	}
	if foods == nil {
		foods = []model.Food{}
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	f := req.toFood(auth.Email(r.Context()))

	existing, err := h.foodStore.GetByName(r.Context(), f.Name)
	if err != nil {
		h.logger.Error("get food by name", "name", f.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create food")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "a food with that name already exists")
		return
	}

	food, err := h.foodStore.Create(f)
	if err != nil {
		h.logger.Error("create food", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create food")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityFood, "created", food.ID, nil))
	writeJSON(w, http.StatusCreated, food)
}

func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.foodStore.GetByID(id)
	if err != nil {
		h.logger.Error("get food", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get food")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "food not found")
		return
	}

	var req foodRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	f := req.toFood(existing.OwnerEmail)
	f.ID = id

	if !strings.EqualFold(f.Name, existing.Name) {
		clash, err := h.foodStore.GetByName(r.Context(), f.Name)
		if err != nil {
			h.logger.Error("get food by name", "name", f.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update food")
			return
		}
		if clash != nil {
			writeError(w, http.StatusConflict, "a food with that name already exists")
			return
		}
	}

	food, err := h.foodStore.Update(f)
	if err != nil {
		h.logger.Error("update food", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update food")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityFood, "updated", food.ID, nil))
	writeJSON(w, http.StatusOK, food)
}
