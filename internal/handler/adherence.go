package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/flexidiet/internal/adherence"
	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

type AdherenceHandler struct {
	adherenceStore *store.AdherenceStore
	hub            *websocket.Hub
	validator      *validation.Validator
	logger         *slog.Logger
	now            func() time.Time
}

func NewAdherenceHandler(as *store.AdherenceStore, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *AdherenceHandler {
	return &AdherenceHandler{
		adherenceStore: as,
		hub:            hub,
		validator:      v,
		logger:         logger.With("component", "handler.adherence"),
		now:            time.Now,
	}
}

type dailyRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,oneof=followed modified did_own_thing"`
}

type mealToggleRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	MealType string `json:"meal_type" validate:"required,oneof=breakfast morning_snack lunch afternoon_snack dinner snack"`
}

type weeklyResponse struct {
	adherence.Weekly
	Today *model.DailyAdherence `json:"today"`
}

func (h *AdherenceHandler) today() string {
	return h.now().UTC().Format(adherence.DateLayout)
}

// PutDaily records the caller's check-in for today, or for an earlier date
// when one is given.
func (h *AdherenceHandler) PutDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	today := h.today()
	if req.Date == "" {
		req.Date = today
	}
	if req.Date > today {
		writeError(w, http.StatusBadRequest, "date must not be in the future")
		return
	}

	owner := auth.Email(r.Context())
	entry, err := h.adherenceStore.UpsertDaily(owner, req.Date, req.Status)
	if err != nil {
		h.logger.Error("upsert daily adherence", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save check-in")
		return
	}

	h.hub.Publish(owner, websocket.NewMessage(websocket.EntityAdherence, "logged", entry.ID, map[string]any{"date": entry.Date, "status": entry.Status}))
	writeJSON(w, http.StatusOK, entry)
}

// Weekly returns the seven-day chart ending today with the follow rate.
func (h *AdherenceHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	owner := auth.Email(r.Context())
	now := h.now().UTC()
	today := now.Format(adherence.DateLayout)

	entries, err := h.adherenceStore.ListDaily(owner, adherence.WindowStart(now), today)
	if err != nil {
		h.logger.Error("list daily adherence", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load adherence")
		return
	}

	resp := weeklyResponse{Weekly: adherence.Summarize(entries, now)}
	for i := range entries {
		if entries[i].Date == today {
			resp.Today = &entries[i]
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ToggleMeal flips one meal between followed and pending.
func (h *AdherenceHandler) ToggleMeal(w http.ResponseWriter, r *http.Request) {
	var req mealToggleRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	owner := auth.Email(r.Context())

	current, err := h.adherenceStore.GetMeal(owner, req.Date, req.MealType)
	if err != nil {
		h.logger.Error("get meal adherence", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update meal")
		return
	}
	status := adherence.NextMealStatus("")
	if current != nil {
		status = adherence.NextMealStatus(current.Status)
	}

	m, err := h.adherenceStore.SetMeal(owner, req.Date, req.MealType, status)
	if err != nil {
		h.logger.Error("set meal adherence", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update meal")
		return
	}

	h.hub.Publish(owner, websocket.NewMessage(websocket.EntityAdherence, "toggled", m.ID, map[string]any{"date": m.Date, "meal_type": m.MealType, "status": m.Status}))
	writeJSON(w, http.StatusOK, m)
}

// Meals lists the caller's meal marks for the seven days from week_start.
func (h *AdherenceHandler) Meals(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(adherence.DateLayout, r.URL.Query().Get("week_start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "week_start must be a date like 2006-01-02")
		return
	}
	dates := adherence.WeekDates(start)

	meals, err := h.adherenceStore.ListMeals(auth.Email(r.Context()), dates[0], dates[len(dates)-1])
	if err != nil {
		h.logger.Error("list meal adherence", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meals")
		return
	}
	if meals == nil {
		meals = []model.MealAdherence{}
	}
	writeJSON(w, http.StatusOK, meals)
}
