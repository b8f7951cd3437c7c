package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/grocery"
	"github.com/dukerupert/flexidiet/internal/handler"
	"github.com/dukerupert/flexidiet/internal/metrics"
	"github.com/dukerupert/flexidiet/internal/middleware"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	ws "github.com/dukerupert/flexidiet/internal/websocket"
)

// Mailer is everything the handlers send by email.
type Mailer interface {
	handler.ListMailer
	handler.RequestMailer
}

type Options struct {
	Tokens            *auth.Tokens
	Mailer            Mailer
	Snapshots         handler.SnapshotRunner
	Metrics           *metrics.Metrics
	AdminEmail        string
	LookupConcurrency int
	RateLimitRPS      float64
	RateLimitBurst    int
	OriginPatterns    []string
	// TrustedProxies are the peers whose forwarding headers name the client.
	TrustedProxies []netip.Prefix
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	tokens      *auth.Tokens
	metrics     *metrics.Metrics
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
	origins     []string
	clientIP    func(*http.Request) string

	healthH    *handler.HealthHandler
	recipeH    *handler.RecipeHandler
	foodH      *handler.FoodHandler
	groceryH   *handler.GroceryHandler
	profileH   *handler.ProfileHandler
	missingH   *handler.MissingIngredientHandler
	settingsH  *handler.SettingsHandler
	snapshotH  *handler.SnapshotHandler
	adherenceH *handler.AdherenceHandler
	favoriteH  *handler.FavoriteHandler
	takeawayH  *handler.TakeawayHandler
}

func New(db *sql.DB, opts Options, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	v := validation.New()

	recipeStore := store.NewRecipeStore(db)
	foodStore := store.NewFoodStore(db)
	listStore := store.NewGroceryListStore(db)
	profileStore := store.NewProfileStore(db)
	missingStore := store.NewMissingIngredientStore(db)
	settingsStore := store.NewSettingsStore(db)
	snapshotStore := store.NewSnapshotStore(db)
	adherenceStore := store.NewAdherenceStore(db)
	favoriteStore := store.NewFavoriteStore(db)
	takeawayStore := store.NewTakeawayStore(db)

	concurrency := opts.LookupConcurrency
	if concurrency < 1 {
		concurrency = 8
	}
	consolidator := grocery.NewConsolidator(foodStore, logger.With("component", "grocery"), grocery.WithConcurrency(concurrency))

	rps, burst := opts.RateLimitRPS, opts.RateLimitBurst
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 30
	}

	return &Server{
		db:          db,
		hub:         hub,
		tokens:      opts.Tokens,
		metrics:     opts.Metrics,
		rateLimiter: middleware.NewRateLimiter(rps, burst),
		logger:      logger,
		origins:     opts.OriginPatterns,
		clientIP:    middleware.RealIP(opts.TrustedProxies),

		healthH:    handler.NewHealthHandler(db),
		recipeH:    handler.NewRecipeHandler(recipeStore, foodStore, settingsStore, hub, v, opts.Metrics, logger),
		foodH:      handler.NewFoodHandler(foodStore, hub, v, logger),
		groceryH:   handler.NewGroceryHandler(recipeStore, listStore, settingsStore, consolidator, opts.Mailer, hub, v, opts.Metrics, logger),
		profileH:   handler.NewProfileHandler(profileStore, hub, v, logger),
		missingH:   handler.NewMissingIngredientHandler(missingStore, settingsStore, opts.Mailer, opts.AdminEmail, hub, v, logger),
		settingsH:  handler.NewSettingsHandler(settingsStore, hub, v, logger),
		snapshotH:  handler.NewSnapshotHandler(opts.Snapshots, snapshotStore, logger),
		adherenceH: handler.NewAdherenceHandler(adherenceStore, hub, v, logger),
		favoriteH:  handler.NewFavoriteHandler(favoriteStore, recipeStore, hub, v, logger),
		takeawayH:  handler.NewTakeawayHandler(takeawayStore, hub, v, logger),
	}
}

func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth required)
	mux.HandleFunc("GET /health", s.healthH.Health)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.registerProtectedRoutes(mux)

	// Metrics must wrap the mux directly to see the matched pattern.
	var h http.Handler = middleware.Metrics(s.metrics)(mux)
	h = middleware.RateLimit(s.rateLimiter, s.clientIP)(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	return middleware.RequestID(h)
}

func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(s.tokens)(h)
}

func (s *Server) admin(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(s.tokens)(middleware.RequireAdmin(h))
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.Handle("GET /ws", s.protected(ws.HandleWebSocket(s.hub, s.origins, s.logger.With("component", "websocket"))))

	// Recipes
	mux.Handle("GET /api/recipes", s.protected(s.recipeH.List))
	mux.Handle("POST /api/recipes", s.protected(s.recipeH.Create))
	mux.Handle("POST /api/recipes/verify", s.protected(s.recipeH.Verify))
	mux.Handle("GET /api/recipes/{id}", s.protected(s.recipeH.Get))
	mux.Handle("PUT /api/recipes/{id}", s.protected(s.recipeH.Update))
	mux.Handle("DELETE /api/recipes/{id}", s.protected(s.recipeH.Delete))
	mux.Handle("GET /api/recipes/{id}/scaled", s.protected(s.recipeH.Scaled))

	// Food catalog
	mux.Handle("GET /api/foods", s.protected(s.foodH.List))
	mux.Handle("POST /api/foods", s.admin(s.foodH.Create))
	mux.Handle("PUT /api/foods/{id}", s.admin(s.foodH.Update))

	// Grocery lists
	mux.Handle("POST /api/grocery-lists", s.protected(s.groceryH.Generate))
	mux.Handle("GET /api/grocery-lists/current", s.protected(s.groceryH.Current))
	mux.Handle("POST /api/grocery-lists/{id}/items/toggle", s.protected(s.groceryH.ToggleItem))
	mux.Handle("POST /api/grocery-lists/{id}/categories/toggle", s.protected(s.groceryH.ToggleCategory))
	mux.Handle("GET /api/grocery-lists/{id}/prices", s.protected(s.groceryH.Prices))
	mux.Handle("POST /api/grocery-lists/{id}/email", s.protected(s.groceryH.Email))

	// Profile and nutrition
	mux.Handle("GET /api/profile", s.protected(s.profileH.Get))
	mux.Handle("PUT /api/profile", s.protected(s.profileH.Put))
	mux.Handle("POST /api/nutrition/calculate", s.protected(s.profileH.Calculate))

	// Missing ingredients
	mux.Handle("GET /api/missing-ingredients", s.admin(s.missingH.List))
	mux.Handle("POST /api/missing-ingredients", s.protected(s.missingH.Create))
	mux.Handle("POST /api/missing-ingredients/{id}/resolve", s.admin(s.missingH.Resolve))

	// Plan tracking
	mux.Handle("PUT /api/adherence/daily", s.protected(s.adherenceH.PutDaily))
	mux.Handle("GET /api/adherence/weekly", s.protected(s.adherenceH.Weekly))
	mux.Handle("GET /api/adherence/meals", s.protected(s.adherenceH.Meals))
	mux.Handle("POST /api/adherence/meals/toggle", s.protected(s.adherenceH.ToggleMeal))
	mux.Handle("GET /api/favorites", s.protected(s.favoriteH.List))
	mux.Handle("POST /api/favorites/toggle", s.protected(s.favoriteH.Toggle))

	// Takeaway foods
	mux.Handle("GET /api/takeaway-foods", s.protected(s.takeawayH.List))
	mux.Handle("POST /api/takeaway-foods", s.admin(s.takeawayH.Create))
	mux.Handle("GET /api/takeaway-foods/match", s.protected(s.takeawayH.Match))

	// Admin
	mux.Handle("GET /api/settings", s.admin(s.settingsH.Get))
	mux.Handle("PUT /api/settings", s.admin(s.settingsH.Update))
	mux.Handle("GET /api/admin/snapshots", s.admin(s.snapshotH.List))
	mux.Handle("POST /api/admin/snapshots", s.admin(s.snapshotH.Create))
}
