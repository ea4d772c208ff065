package server

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cardlink/internal/cardview"
	"cardlink/internal/db"
	"cardlink/internal/handlers"
	"cardlink/internal/handlers/api"
	"cardlink/internal/logging"
	"cardlink/internal/middleware"
)

// Deps are the services the routes are wired to.
type Deps struct {
	DB        *db.DB
	Assembler *cardview.Assembler
	Avatars   handlers.AvatarService // nil when object storage is not configured
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	database := deps.DB

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)
	operatorMiddleware := middleware.NewOperatorMiddleware(s.Cfg.IsConsoleEnabled())

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(database)
	cardHandler := handlers.NewCardHandler(deps.Assembler, database, s.Cfg)
	apiCardHandler := api.NewCardHandler(deps.Assembler)
	profileHandler := handlers.NewProfileHandler(database, s.Cfg)
	adminHandler := handlers.NewAdminHandler(database, deps.Avatars, s.Cfg)
	consoleHandler := handlers.NewConsoleHandler(database, s.Cfg)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public pages
	s.App.Get("/", authMiddleware.OptionalAuth, func(c fiber.Ctx) error {
		return c.Render("home", handlers.MergeBranding(fiber.Map{
			"Profile": middleware.CurrentProfile(c),
		}, s.Cfg))
	})
	s.App.Get("/c/:slug/qr.png", cardHandler.QRCode)
	s.App.Get("/c/:slug", cardHandler.Show)
	s.App.Get("/api/v1/cards/:slug", apiCardHandler.Get)

	// Auth routes - the admin needs OIDC; public cards work without it
	oidcEnabled := false
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		oidcEnabled = true
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		logging.Log.Warn("OIDC_ISSUER is not set; owner sign-in is disabled")
	}

	s.App.Get("/login", func(c fiber.Ctx) error {
		return c.Render("login", handlers.MergeBranding(fiber.Map{
			"OIDCEnabled": oidcEnabled,
		}, s.Cfg))
	})

	// Owner admin
	admin := s.App.Group("/admin", authMiddleware.RequireAuth)
	admin.Get("/", adminHandler.Index)
	admin.Get("/profile", profileHandler.Show)
	admin.Post("/profile", profileHandler.Update)
	admin.Get("/cards/new", adminHandler.NewCard)
	admin.Post("/cards", adminHandler.CreateCard)
	admin.Get("/cards/:id", adminHandler.EditCard)
	admin.Post("/cards/:id", adminHandler.UpdateCard)
	admin.Post("/cards/:id/publish", adminHandler.TogglePublish)
	admin.Post("/cards/:id/delete", adminHandler.DeleteCard)
	admin.Post("/cards/:id/avatar", adminHandler.UploadAvatar)
	admin.Post("/cards/:id/avatar/delete", adminHandler.RemoveAvatar)

	admin.Post("/cards/:id/socials", adminHandler.AddSocialLink)
	admin.Post("/cards/:id/socials/sync", adminHandler.SyncSocialLinks)
	admin.Post("/cards/:id/socials/reorder", adminHandler.ReorderSocialLinks)
	admin.Post("/cards/:id/socials/:linkID", adminHandler.UpdateSocialLink)
	admin.Post("/cards/:id/socials/:linkID/toggle", adminHandler.ToggleSocialLink)
	admin.Post("/cards/:id/socials/:linkID/delete", adminHandler.DeleteSocialLink)

	admin.Post("/cards/:id/media", adminHandler.AddMediaItem)
	admin.Post("/cards/:id/media/:itemID", adminHandler.RetitleMediaItem)
	admin.Post("/cards/:id/media/:itemID/toggle", adminHandler.ToggleMediaItem)
	admin.Post("/cards/:id/media/:itemID/delete", adminHandler.DeleteMediaItem)

	admin.Post("/cards/:id/reviews", adminHandler.AddReviewLink)
	admin.Post("/cards/:id/reviews/:reviewID", adminHandler.RetitleReviewLink)
	admin.Post("/cards/:id/reviews/:reviewID/toggle", adminHandler.ToggleReviewLink)
	admin.Post("/cards/:id/reviews/:reviewID/delete", adminHandler.DeleteReviewLink)

	// Operator console - every route answers 404 when no operator is configured
	s.App.Get("/console/login", operatorMiddleware.RequireEnabled, consoleHandler.LoginPage)
	s.App.Post("/console/login", operatorMiddleware.RequireEnabled, consoleHandler.Login)
	s.App.Post("/console/logout", operatorMiddleware.RequireEnabled, consoleHandler.Logout)

	console := s.App.Group("/console", operatorMiddleware.RequireOperator)
	console.Get("/", consoleHandler.Dashboard)
	console.Get("/users", consoleHandler.Users)
	console.Post("/users/:id/delete", consoleHandler.DeleteUser)
	console.Get("/cards", consoleHandler.Cards)
	console.Post("/cards/:id/toggle", consoleHandler.ToggleCard)
	console.Post("/cards/:id/delete", consoleHandler.DeleteCard)
	console.Get("/export/:table.:format", consoleHandler.Export)

	if s.Cfg.IsConsoleEnabled() {
		logging.Log.Info("operator console enabled", zap.Int("operators", len(s.Cfg.Operators)))
	}

	return nil
}
