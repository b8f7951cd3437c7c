package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/database"
	"github.com/dukerupert/flexidiet/internal/grocery"
	"github.com/dukerupert/flexidiet/internal/metrics"
	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

var (
	alice     = auth.AuthContext{Email: "alice@example.com", Role: auth.RoleUser, Tier: auth.TierFree}
	bob       = auth.AuthContext{Email: "bob@example.com", Role: auth.RoleUser, Tier: auth.TierFree}
	adminUser = auth.AuthContext{Email: "admin@example.com", Role: auth.RoleAdmin, Tier: auth.TierFree}
)

type testEnv struct {
	recipes   *store.RecipeStore
	foods     *store.FoodStore
	lists     *store.GroceryListStore
	profiles  *store.ProfileStore
	missing   *store.MissingIngredientStore
	settings  *store.SettingsStore
	snapshots *store.SnapshotStore
	adherence *store.AdherenceStore
	favorites *store.FavoriteStore
	takeaways *store.TakeawayStore

	hub       *websocket.Hub
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		recipes:   store.NewRecipeStore(db),
		foods:     store.NewFoodStore(db),
		lists:     store.NewGroceryListStore(db),
		profiles:  store.NewProfileStore(db),
		missing:   store.NewMissingIngredientStore(db),
		settings:  store.NewSettingsStore(db),
		snapshots: store.NewSnapshotStore(db),
		adherence: store.NewAdherenceStore(db),
		favorites: store.NewFavoriteStore(db),
		takeaways: store.NewTakeawayStore(db),
		hub:       websocket.NewHub(logger),
		validator: validation.New(),
		metrics:   metrics.New(),
		logger:    logger,
	}
}

func (e *testEnv) recipeHandler() *RecipeHandler {
	return NewRecipeHandler(e.recipes, e.foods, e.settings, e.hub, e.validator, e.metrics, e.logger)
}

func (e *testEnv) groceryHandler(mailer ListMailer) *GroceryHandler {
	c := grocery.NewConsolidator(e.foods, e.logger)
	return NewGroceryHandler(e.recipes, e.lists, e.settings, c, mailer, e.hub, e.validator, e.metrics, e.logger)
}

func (e *testEnv) createRecipe(t *testing.T, owner, name string, isPublic bool, ings ...model.Ingredient) *model.Recipe {
	t.Helper()
	r, err := e.recipes.Create(owner, name, isPublic, 2, ings)
	require.NoError(t, err)
	return r
}

// do routes one request through a mux registered with pattern so that
// path values resolve, as the caller ac.
func do(t *testing.T, pattern string, h http.HandlerFunc, method, target string, body any, ac *auth.AuthContext) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, r)
	if ac != nil {
		req = req.WithContext(auth.WithAuth(context.Background(), *ac))
	}

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func readJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func amt(v float64) *float64 { return &v }

type fakeMailer struct {
	configured bool
	err        error

	listsTo  []string
	orders   [][]string
	requests []string
}

func (m *fakeMailer) Configured() bool { return m.configured }

func (m *fakeMailer) SendGroceryList(_ context.Context, to string, _ *model.GroceryList, order []string) error {
	if m.err != nil {
		return m.err
	}
	m.listsTo = append(m.listsTo, to)
	m.orders = append(m.orders, order)
	return nil
}

func (m *fakeMailer) SendIngredientRequest(_ context.Context, to, ingredient, recipeName, reportedBy string) error {
	if m.err != nil {
		return m.err
	}
	m.requests = append(m.requests, to+"|"+ingredient+"|"+recipeName+"|"+reportedBy)
	return nil
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
