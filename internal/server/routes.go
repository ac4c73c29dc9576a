package server

import (
	"context"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"critvue/internal/db"
	"critvue/internal/email"
	"critvue/internal/handlers"
	"critvue/internal/handlers/api"
	"critvue/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, notifier *email.Notifier) error {
	authMiddleware := middleware.NewAuthMiddleware(database)

	slotHandler := api.NewSlotHandler(database, s.Cfg, notifier)
	reviewHandler := api.NewReviewHandler(database)
	requestHandler := api.NewRequestHandler(database)
	reviewerHandler := api.NewReviewerHandler(database)
	profileHandler := api.NewProfileHandler(database)
	healthHandler := api.NewHealthHandler(database)

	// Auth routes
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	}

	// Operational endpoints
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Review request routes
	s.App.Get("/api/requests", authMiddleware.OptionalAuth, requestHandler.List)
	s.App.Get("/api/requests/mine", authMiddleware.RequireAuth, requestHandler.Mine)
	s.App.Post("/api/requests", authMiddleware.RequireAuth, requestHandler.Create)
	s.App.Get("/api/requests/:id", authMiddleware.RequireAuth, requestHandler.Get)
	s.App.Delete("/api/requests/:id", authMiddleware.RequireAuth, requestHandler.Cancel)
	s.App.Post("/api/requests/:id/claim", authMiddleware.RequireAuth, slotHandler.Claim)

	// Reviewer workspace and creator inbox
	s.App.Get("/api/reviews/mine", authMiddleware.RequireAuth, reviewHandler.Mine)
	s.App.Get("/api/reviews/pending", authMiddleware.RequireAuth, reviewHandler.Pending)

	// Slot lifecycle routes
	s.App.Get("/api/review-slots/:id", authMiddleware.RequireAuth, slotHandler.Get)
	s.App.Post("/api/review-slots/:id/submit", authMiddleware.RequireAuth, slotHandler.Submit)
	s.App.Post("/api/review-slots/:id/accept", authMiddleware.RequireAuth, slotHandler.Accept)
	s.App.Post("/api/review-slots/:id/reject", authMiddleware.RequireAuth, slotHandler.Reject)
	s.App.Post("/api/review-slots/:id/abandon", authMiddleware.RequireAuth, slotHandler.Abandon)

	// Reviewer directory and profiles
	s.App.Get("/api/reviewers", authMiddleware.RequireAuth, reviewerHandler.List)
	s.App.Get("/api/users/me", authMiddleware.RequireAuth, profileHandler.Me)
	s.App.Put("/api/users/me", authMiddleware.RequireAuth, profileHandler.UpdateMe)

	return nil
}
