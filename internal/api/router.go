package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsduel-go/internal/api/handler"
	apimiddleware "github.com/mcoot/rpsduel-go/internal/api/middleware"
	"github.com/mcoot/rpsduel-go/internal/events"
	"github.com/mcoot/rpsduel-go/internal/middleware"
	"github.com/mcoot/rpsduel-go/internal/services/admin"
	"github.com/mcoot/rpsduel-go/internal/services/auth"
	"github.com/mcoot/rpsduel-go/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	AdminService    *admin.Service
	MatchController *match.Controller
	EventsHub       *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	identityHandler := handler.NewIdentityHandler(cfg.AuthService)
	matchHandler := handler.NewMatchHandler(cfg.MatchController, cfg.EventsHub)
	adminHandler := handler.NewAdminHandler(cfg.AdminService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Identity routes (no auth required for claiming/registering/logging in)
	api.HandleFunc("/identities/claim", identityHandler.Claim).Methods(http.MethodPost)
	api.HandleFunc("/identities/register", identityHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/identities/login", identityHandler.Login).Methods(http.MethodPost)

	// Protected identity routes
	identityProtected := api.PathPrefix("/identities").Subrouter()
	identityProtected.Use(authMiddleware)
	identityProtected.HandleFunc("/me", identityHandler.GetMe).Methods(http.MethodGet)

	// Match queries (no auth - read-only projections)
	api.HandleFunc("/matches/by-host/{host}", matchHandler.ByHost).Methods(http.MethodGet)
	api.HandleFunc("/matches/by-opponent/{opponent}", matchHandler.ByOpponent).Methods(http.MethodGet)

	// Match mutations (require auth - the session identity is the actor)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("/{host}/respond", matchHandler.Respond).Methods(http.MethodPost)

	// Contract state projections (no auth)
	api.HandleFunc("/contract/owner", adminHandler.GetOwner).Methods(http.MethodGet)
	api.HandleFunc("/contract/admin", adminHandler.GetAdmin).Methods(http.MethodGet)
	api.HandleFunc("/contract/blacklist", adminHandler.GetBlacklist).Methods(http.MethodGet)

	// Admin-gated mutations (require auth; the admin service enforces adminship)
	contract := api.PathPrefix("/contract").Subrouter()
	contract.Use(authMiddleware)
	contract.HandleFunc("/admin", adminHandler.TransferAdmin).Methods(http.MethodPut)
	contract.HandleFunc("/blacklist", adminHandler.AddToBlacklist).Methods(http.MethodPost)
	contract.HandleFunc("/blacklist/{address}", adminHandler.RemoveFromBlacklist).Methods(http.MethodDelete)

	// Match event stream (requires auth)
	if cfg.EventsHub != nil {
		eventsHandler := handler.NewEventsHandler(cfg.EventsHub)
		eventsRoute := api.PathPrefix("/events").Subrouter()
		eventsRoute.Use(authMiddleware)
		eventsRoute.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)
	}

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
