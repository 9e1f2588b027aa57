package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodgram/internal/cache"
	"foodgram/internal/db"
	"foodgram/internal/email"
	"foodgram/internal/handlers"
	"foodgram/internal/handlers/api"
	"foodgram/internal/middleware"
	"foodgram/internal/shopping"
	"foodgram/internal/shortlink"
	"foodgram/internal/validation"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, cacheStore cache.Store) error {
	// Core services
	shoppingService := shopping.NewService(database, cacheStore)
	shortlinkService := shortlink.NewService(database, cacheStore)

	// Middleware and shared dependencies
	authMiddleware := middleware.NewAuthMiddleware(database)
	validate := validation.New()
	notifier := email.NewNotifier(s.Cfg)

	// Handlers
	ingredientHandler := api.NewIngredientHandler(database)
	recipeHandler := api.NewRecipeHandler(database, validate)
	cartHandler := api.NewCartHandler(database, shoppingService)
	favoriteHandler := api.NewFavoriteHandler(database)
	userHandler := api.NewUserHandler(database, notifier)
	shortLinkHandler := api.NewShortLinkHandler(shortlinkService, s.Cfg)
	redirectHandler := handlers.NewRedirectHandler(shortlinkService, s.Cfg)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is required for any write access
	if s.Cfg.OIDCIssuer == "" {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable login.")
	} else {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	}

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Ingredient catalog (public, read-only)
	s.App.Get("/api/ingredients", ingredientHandler.List)
	s.App.Get("/api/ingredients/:id", ingredientHandler.Get)

	// Recipes. The static shopping-cart route must precede the :id routes.
	s.App.Get("/api/recipes/download_shopping_cart", authMiddleware.RequireAuth, cartHandler.Download)
	s.App.Get("/api/recipes", authMiddleware.OptionalAuth, recipeHandler.List)
	s.App.Post("/api/recipes", authMiddleware.RequireAuth, recipeHandler.Create)
	s.App.Get("/api/recipes/:id", authMiddleware.OptionalAuth, recipeHandler.Get)
	s.App.Patch("/api/recipes/:id", authMiddleware.RequireAuth, recipeHandler.Update)
	s.App.Delete("/api/recipes/:id", authMiddleware.RequireAuth, recipeHandler.Delete)

	// Short links (creation is public, like recipe reads)
	s.App.Get("/api/recipes/:id/get-link", shortLinkHandler.GetLink)

	// Cart and favorites
	s.App.Post("/api/recipes/:id/shopping_cart", authMiddleware.RequireAuth, cartHandler.Add)
	s.App.Delete("/api/recipes/:id/shopping_cart", authMiddleware.RequireAuth, cartHandler.Remove)
	s.App.Post("/api/recipes/:id/favorite", authMiddleware.RequireAuth, favoriteHandler.Add)
	s.App.Delete("/api/recipes/:id/favorite", authMiddleware.RequireAuth, favoriteHandler.Remove)

	// Users and subscriptions
	s.App.Get("/api/users/me", authMiddleware.RequireAuth, userHandler.Me)
	s.App.Put("/api/users/me/avatar", authMiddleware.RequireAuth, userHandler.UpdateAvatar)
	s.App.Delete("/api/users/me/avatar", authMiddleware.RequireAuth, userHandler.DeleteAvatar)
	s.App.Get("/api/users/subscriptions", authMiddleware.RequireAuth, userHandler.Subscriptions)
	s.App.Get("/api/users/:id", authMiddleware.OptionalAuth, userHandler.Get)
	s.App.Post("/api/users/:id/subscribe", authMiddleware.RequireAuth, userHandler.Subscribe)
	s.App.Delete("/api/users/:id/subscribe", authMiddleware.RequireAuth, userHandler.Unsubscribe)

	// Public short-link redirect
	s.App.Get("/a/r/:hash", redirectHandler.Redirect)

	return nil
}
