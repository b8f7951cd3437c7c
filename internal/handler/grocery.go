package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/grocery"
	"github.com/dukerupert/flexidiet/internal/metrics"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

const noRecipesMessage = "You have no recipes to generate a list from. Add some recipes first!"

// ListMailer sends a grocery list by email.
type ListMailer interface {
	Configured() bool
	SendGroceryList(ctx context.Context, to string, list *model.GroceryList, order []string) error
}

type GroceryHandler struct {
	recipeStore   *store.RecipeStore
	listStore     *store.GroceryListStore
	settingsStore *store.SettingsStore
	consolidator  *grocery.Consolidator
	mailer        ListMailer
	hub           *websocket.Hub
	validator     *validation.Validator
	metrics       *metrics.Metrics
	logger        *slog.Logger
	now           func() time.Time
}

func NewGroceryHandler(rs *store.RecipeStore, ls *store.GroceryListStore, ss *store.SettingsStore, c *grocery.Consolidator, mailer ListMailer, hub *websocket.Hub, v *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{
		recipeStore:   rs,
		listStore:     ls,
		settingsStore: ss,
		consolidator:  c,
		mailer:        mailer,
		hub:           hub,
		validator:     v,
		metrics:       m,
		logger:        logger.With("component", "handler.grocery"),
		now:           time.Now,
	}
}

// listResponse is a stored list plus the derived data a client renders it with.
type listResponse struct {
	model.GroceryList
	CategoryOrder []string        `json:"category_order"`
	Stats         model.ListStats `json:"stats"`
	AllRecipes    []string        `json:"all_recipes"`
}

func newListResponse(list *model.GroceryList, view model.Categories) listResponse {
	resp := listResponse{
		GroceryList:   *list,
		CategoryOrder: grocery.OrderedCategories(view),
		Stats:         grocery.Stats(view),
		AllRecipes:    grocery.SourceRecipes(list.Categories),
	}
	resp.Categories = view
	if resp.AllRecipes == nil {
		resp.AllRecipes = []string{}
	}
	return resp
}

type generateRequest struct {
	RecipeIDs []int64 `json:"recipe_ids" validate:"max=100,dive,gt=0"`
}

// Generate consolidates the caller's selected (or all visible) recipes into a
// new list.
func (h *GroceryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeOptional(w, r, h.validator, &req) {
		return
	}

	owner := auth.Email(r.Context())
	var recipes []model.Recipe
	var err error
	if len(req.RecipeIDs) > 0 {
		recipes, err = h.recipeStore.ListVisibleByIDs(owner, req.RecipeIDs)
	} else {
		recipes, err = h.recipeStore.ListVisible(owner)
	}
	if err != nil {
		h.logger.Error("load recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load recipes")
		return
	}

	start := time.Now()
	list, err := h.consolidator.NewList(r.Context(), owner, recipes, h.now())
	if errors.Is(err, grocery.ErrNoRecipes) {
		writeError(w, http.StatusUnprocessableEntity, noRecipesMessage)
		return
	}
	if err != nil {
		h.logger.Error("consolidate recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate grocery list")
		return
	}

	saved, err := h.listStore.Create(list)
	if err != nil {
		h.logger.Error("save grocery list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save grocery list")
		return
	}

	stats := grocery.Stats(saved.Categories)
	h.metrics.ListGenerated(stats.Total, time.Since(start))
	h.logger.Info("grocery list generated", "list_id", saved.ID, "recipes", saved.TotalRecipes, "items", stats.Total)
	h.hub.Publish(owner, websocket.NewMessage(websocket.EntityGroceryList, "generated", saved.ID, nil))

	writeJSON(w, http.StatusCreated, newListResponse(saved, saved.Categories))
}

// Current returns the caller's latest list. Repeated ?recipe= parameters
// narrow it to those recipes; ?recipe= with no value selects nothing.
func (h *GroceryHandler) Current(w http.ResponseWriter, r *http.Request) {
	list, err := h.listStore.Latest(auth.Email(r.Context()))
	if err != nil {
		h.logger.Error("get latest list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get grocery list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "no grocery list yet")
		return
	}

	var selected []string
	if values, ok := r.URL.Query()["recipe"]; ok {
		selected = []string{}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				selected = append(selected, v)
			}
		}
	}

	writeJSON(w, http.StatusOK, newListResponse(list, grocery.FilterByRecipes(list.Categories, selected)))
}

// loadList fetches the {id} list if the caller owns it. On failure it writes
// the response and returns nil.
func (h *GroceryHandler) loadList(w http.ResponseWriter, r *http.Request) *model.GroceryList {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return nil
	}
	list, err := h.listStore.GetByID(id)
	if err != nil {
		h.logger.Error("get grocery list", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get grocery list")
		return nil
	}
	if list == nil || (list.OwnerEmail != auth.Email(r.Context()) && !auth.IsAdmin(r.Context())) {
		writeError(w, http.StatusNotFound, "grocery list not found")
		return nil
	}
	return list
}

type toggleItemRequest struct {
	Category string `json:"category" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type toggleCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

type toggleResponse struct {
	Checked bool            `json:"checked"`
	Stats   model.ListStats `json:"stats"`
}

func (h *GroceryHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	list := h.loadList(w, r)
	if list == nil {
		return
	}
	var req toggleItemRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	checked, err := grocery.ToggleItem(list.Categories, req.Category, req.Name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.saveToggle(w, list, checked, map[string]any{"category": req.Category, "item": req.Name, "checked": checked})
}

func (h *GroceryHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	list := h.loadList(w, r)
	if list == nil {
		return
	}
	var req toggleCategoryRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	checked, err := grocery.ToggleCategory(list.Categories, req.Category)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.saveToggle(w, list, checked, map[string]any{"category": req.Category, "checked": checked})
}

func (h *GroceryHandler) saveToggle(w http.ResponseWriter, list *model.GroceryList, checked bool, extra map[string]any) {
	if err := h.listStore.UpdateCategories(list.ID, list.Categories); err != nil {
		h.logger.Error("save toggle", "list_id", list.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update grocery list")
		return
	}
	h.hub.Publish(list.OwnerEmail, websocket.NewMessage(websocket.EntityGroceryList, "toggled", list.ID, extra))
	writeJSON(w, http.StatusOK, toggleResponse{Checked: checked, Stats: grocery.Stats(list.Categories)})
}

type pricesResponse struct {
	Item  string              `json:"item"`
	Links []grocery.PriceLink `json:"links"`
}

// Prices returns supermarket search links for one list item. Premium only,
// unless premium features are enabled for everyone.
func (h *GroceryHandler) Prices(w http.ResponseWriter, r *http.Request) {
	list := h.loadList(w, r)
	if list == nil {
		return
	}
	if !h.premiumAllowed(r.Context()) {
		writeError(w, http.StatusForbidden, "price comparison is a premium feature")
		return
	}

	item := strings.TrimSpace(r.URL.Query().Get("item"))
	if item == "" {
		writeError(w, http.StatusBadRequest, "item is required")
		return
	}
	writeJSON(w, http.StatusOK, pricesResponse{Item: item, Links: grocery.PriceLinks(item)})
}

func (h *GroceryHandler) premiumAllowed(ctx context.Context) bool {
	if auth.IsPremium(ctx) {
		return true
	}
	on, err := h.settingsStore.GetBool(model.SettingPremiumEnabledGlobally)
	if err != nil {
		h.logger.Warn("read premium setting", "error", err)
		return false
	}
	return on
}

// Email sends the list to the caller's address.
func (h *GroceryHandler) Email(w http.ResponseWriter, r *http.Request) {
	list := h.loadList(w, r)
	if list == nil {
		return
	}
	if h.mailer == nil || !h.mailer.Configured() {
		writeError(w, http.StatusServiceUnavailable, "email is not configured")
		return
	}

	to := auth.Email(r.Context())
	if err := h.mailer.SendGroceryList(r.Context(), to, list, grocery.OrderedCategories(list.Categories)); err != nil {
		h.logger.Error("email grocery list", "list_id", list.ID, "error", err)
		writeError(w, http.StatusBadGateway, "failed to send email")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent", "to": to})
}
