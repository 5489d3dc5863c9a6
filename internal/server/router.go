package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artillio/boutique-api/internal/auth"
	"github.com/artillio/boutique-api/internal/handlers"
	"github.com/artillio/boutique-api/internal/httpx"
	"github.com/artillio/boutique-api/internal/middleware"
	"github.com/artillio/boutique-api/internal/models"
	"github.com/artillio/boutique-api/internal/services"
)

// New constructs the root handler with all routes and middlewares applied.
func New(db *gorm.DB, tokens *auth.TokenManager, logger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))

	authMW := middleware.NewAuthMiddleware(tokens)

	authHandler := handlers.NewAuthHandler(db, tokens)
	clientHandler := handlers.NewClientHandler(db)
	commandeHandler := handlers.NewCommandeHandler(db, services.NewCommandeService())
	produitHandler := handlers.NewProduitHandler(db)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.List)
			r.Get("/{id}", clientHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireAuth)
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleGestionnaireClients))
				r.Post("/", clientHandler.Create)
				r.Put("/{id}", clientHandler.Update)
				r.Delete("/{id}", clientHandler.Delete)
			})
		})

		r.Route("/commandes", func(r chi.Router) {
			r.Use(authMW.RequireAuth)
			r.Get("/", commandeHandler.List)
			r.Get("/{id}", commandeHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleGestionnaireCommandes))
				r.Post("/", commandeHandler.Create)
				r.Put("/{id}", commandeHandler.Update)
				r.Delete("/{id}", commandeHandler.Delete)
			})
		})

		r.Route("/produits", func(r chi.Router) {
			r.Get("/", produitHandler.List)
			r.Get("/{id}", produitHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireAuth)
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/", produitHandler.Create)
				r.Put("/{id}", produitHandler.Update)
				r.Delete("/{id}", produitHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "introuvable", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "methode_non_autorisee", nil)
	})

	return r
}
