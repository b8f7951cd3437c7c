package handler

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/nutrition"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

const (
	defaultMatchLimit = 10
	maxMatchLimit     = 50
)

type TakeawayHandler struct {
	takeawayStore *store.TakeawayStore
	hub           *websocket.Hub
	validator     *validation.Validator
	logger        *slog.Logger
}

func NewTakeawayHandler(ts *store.TakeawayStore, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *TakeawayHandler {
	return &TakeawayHandler{takeawayStore: ts, hub: hub, validator: v, logger: logger.With("component", "handler.takeaway")}
}

type takeawayRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Restaurant string  `json:"restaurant" validate:"max=200"`
	Calories   float64 `json:"calories" validate:"gte=0,lte=10000"`
	ProteinG   float64 `json:"protein_g" validate:"gte=0,lte=1000"`
	CarbsG     float64 `json:"carbs_g" validate:"gte=0,lte=1000"`
	FatG       float64 `json:"fat_g" validate:"gte=0,lte=1000"`
}

func (h *TakeawayHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.takeawayStore.List()
	if err != nil {
		h.logger.Error("list takeaway foods", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list takeaway foods")
		return
	}
	if foods == nil {
		foods = []model.TakeawayFood{}
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *TakeawayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req takeawayRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	f := model.TakeawayFood{
		Name:       strings.TrimSpace(req.Name),
		Restaurant: strings.TrimSpace(req.Restaurant),
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
	}

	exists, err := h.takeawayStore.Exists(f.Restaurant, f.Name)
	if err != nil {
		h.logger.Error("check takeaway food", "name", f.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create takeaway food")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "that restaurant already lists an item with that name")
		return
	}

	food, err := h.takeawayStore.Create(f)
	if err != nil {
		h.logger.Error("create takeaway food", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create takeaway food")
		return
	}

	h.hub.Broadcast(websocket.NewMessage(websocket.EntityTakeawayFood, "created", food.ID, nil))
	writeJSON(w, http.StatusCreated, food)
}

// Match ranks takeaway items against a calorie budget and optional macro
// targets given as query parameters.
func (h *TakeawayHandler) Match(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var target nutrition.Target
	for key, dst := range map[string]*float64{
		"calories":  &target.Calories,
		"protein_g": &target.ProteinG,
		"carbs_g":   &target.CarbsG,
		"fat_g":     &target.FatG,
	} {
		v, err := queryAmount(q, key)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		*dst = v
	}

	limit := defaultMatchLimit
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxMatchLimit {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxMatchLimit))
			return
		}
		limit = n
	}

	foods, err := h.takeawayStore.List()
	if err != nil {
		h.logger.Error("list takeaway foods", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to match takeaway foods")
		return
	}
	writeJSON(w, http.StatusOK, nutrition.MatchTakeaways(foods, target, limit))
}

// queryAmount reads an optional non-negative finite number from q.
func queryAmount(q url.Values, key string) (float64, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", key)
	}
	return v, nil
}
