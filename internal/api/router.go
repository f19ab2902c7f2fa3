/**
 * @description
 * This file sets up the HTTP router for the billing service using the
 * go-chi/chi router. It defines the API routes, applies middleware for
 * logging and timeouts, and maps the routes to their handler functions.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the billing-service routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Billing service is healthy"))
	})

	// External periodic trigger for one user's reminder run.
	r.Post("/users/{userID}/reminders/schedule", h.handleScheduleReminders)

	// Called whenever a due-day edit or a payment status change occurs.
	r.Post("/clients/{clientID}/status/recompute", h.handleRecomputeStatus)

	// Called by the transport layer per inbound chat message.
	r.Post("/messages/match", h.handleMatchMessage)

	return r
}
