package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

// RequestMailer notifies the admin about a missing ingredient.
type RequestMailer interface {
	Configured() bool
	SendIngredientRequest(ctx context.Context, to, ingredient, recipeName, reportedBy string) error
}

type MissingIngredientHandler struct {
	missingStore  *store.MissingIngredientStore
	settingsStore *store.SettingsStore
	mailer        RequestMailer
	fallbackAdmin string
	hub           *websocket.Hub
	validator     *validation.Validator
	logger        *slog.Logger
}

// NewMissingIngredientHandler builds the handler. fallbackAdmin receives
// reports when the admin_email setting is empty.
func NewMissingIngredientHandler(ms *store.MissingIngredientStore, ss *store.SettingsStore, mailer RequestMailer, fallbackAdmin string, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *MissingIngredientHandler {
	return &MissingIngredientHandler{
		missingStore:  ms,
		settingsStore: ss,
		mailer:        mailer,
		fallbackAdmin: fallbackAdmin,
		hub:           hub,
		validator:     v,
		logger:        logger.With("component", "handler.missing_ingredient"),
	}
}

type missingIngredientRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	RecipeName string `json:"recipe_name" validate:"max=200"`
}

type missingIngredientResponse struct {
	*model.MissingIngredient
	AdminNotified bool `json:"admin_notified"`
}

func (h *MissingIngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", model.MissingStatusReported, model.MissingStatusResolved:
	default:
		writeError(w, http.StatusBadRequest, "status must be reported or resolved")
		return
	}

	items, err := h.missingStore.List(status)
	if err != nil {
		h.logger.Error("list missing ingredients", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list missing ingredients")
		return
	}
	if items == nil {
		items = []model.MissingIngredient{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create stores the report and emails the admin. A failed email does not
// fail the request.
func (h *MissingIngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req missingIngredientRequest
	if !decode(w, r, h.validator, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	recipeName := strings.TrimSpace(req.RecipeName)
	reporter := auth.Email(r.Context())

	item, err := h.missingStore.Create(name, recipeName, reporter)
	if err != nil {
		h.logger.Error("create missing ingredient", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to report missing ingredient")
		return
	}

	notified := h.notifyAdmin(r.Context(), item)
	writeJSON(w, http.StatusCreated, missingIngredientResponse{MissingIngredient: item, AdminNotified: notified})
}

func (h *MissingIngredientHandler) notifyAdmin(ctx context.Context, item *model.MissingIngredient) bool {
	if h.mailer == nil || !h.mailer.Configured() {
		return false
	}
	to, err := h.settingsStore.Get(model.SettingAdminEmail)
	if err != nil || to == "" {
		to = h.fallbackAdmin
	}
	if to == "" {
		h.logger.Warn("no admin email configured, report not sent", "id", item.ID)
		return false
	}
	if err := h.mailer.SendIngredientRequest(ctx, to, item.Name, item.RecipeName, item.ReportedBy); err != nil {
		h.logger.Warn("email ingredient request", "id", item.ID, "error", err)
		return false
	}
	return true
}

func (h *MissingIngredientHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.missingStore.Resolve(id)
	if err != nil {
		h.logger.Error("resolve missing ingredient", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve missing ingredient")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "missing ingredient not found")
		return
	}

	h.hub.Publish(item.ReportedBy, websocket.NewMessage(websocket.EntityMissingIngredient, "resolved", item.ID, map[string]any{"name": item.Name}))
	writeJSON(w, http.StatusOK, item)
}
