package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parla-app/parla-api/internal/api"
	apiMiddleware "github.com/parla-app/parla-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	practiceHandler := api.NewPracticeHandler(app.practiceService, app.logger)
	streakHandler := api.NewStreakHandler(app.practiceService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Practice session endpoints
			r.Post("/practice/sessions", practiceHandler.StartSession)
			r.Get("/practice/sessions/current", practiceHandler.GetCurrentSession)
			r.Post("/practice/sessions/answer", practiceHandler.SubmitAnswer)

			// Streak endpoint
			r.Get("/streak", streakHandler.GetStreak)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
