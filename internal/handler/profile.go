package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/nutrition"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

type ProfileHandler struct {
	profileStore *store.ProfileStore
	hub          *websocket.Hub
	validator    *validation.Validator
	logger       *slog.Logger
}

func NewProfileHandler(ps *store.ProfileStore, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profileStore: ps, hub: hub, validator: v, logger: logger.With("component", "handler.profile")}
}

type profileRequest struct {
	Gender           string  `json:"gender" validate:"required,oneof=male female other"`
	Age              int     `json:"age" validate:"required,gte=1,lte=120"`
	HeightCM         float64 `json:"height_cm" validate:"required,gt=0,lte=300"`
	WeightKG         float64 `json:"weight_kg" validate:"required,gt=0,lte=500"`
	ExerciseSessions int     `json:"exercise_sessions_per_week" validate:"gte=0,lte=21"`
	JobType          string  `json:"job_type" validate:"omitempty,oneof=physical sedentary"`
	Goal             string  `json:"goal" validate:"required,oneof=lose_weight maintain build_muscle"`
}

func (req profileRequest) input() nutrition.Input {
	return nutrition.Input{
		Gender:           req.Gender,
		Age:              req.Age,
		HeightCM:         req.HeightCM,
		WeightKG:         req.WeightKG,
		ExerciseSessions: req.ExerciseSessions,
		JobType:          req.JobType,
		Goal:             req.Goal,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileStore.Get(auth.Email(r.Context()))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Put saves the caller's body metrics together with the target they imply.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	result, err := nutrition.Calculate(req.input())
	if errors.Is(err, nutrition.ErrIncompleteProfile) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	owner := auth.Email(r.Context())
	saved, err := h.profileStore.Upsert(model.UserProfile{
		OwnerEmail:         owner,
		Gender:             req.Gender,
		Age:                req.Age,
		HeightCM:           req.HeightCM,
		WeightKG:           req.WeightKG,
		ExerciseSessions:   req.ExerciseSessions,
		JobType:            req.JobType,
		Goal:               req.Goal,
		DailyCalorieTarget: result.DailyCalorieTarget,
		Macros:             result.Macros,
	})
	if err != nil {
		h.logger.Error("save profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	h.hub.Publish(owner, websocket.NewMessage(websocket.EntityProfile, "updated", 0, map[string]any{"daily_calorie_target": saved.DailyCalorieTarget}))
	writeJSON(w, http.StatusOK, saved)
}

// Calculate computes a target without saving it.
func (h *ProfileHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	result, err := nutrition.Calculate(req.input())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
