/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. CORS:          Cross-origin requests for the frontend
  2. RequestLogger: Structured request logging (httplog over slog)
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. RequestID:     Unique ID per request for tracing
  5. Heartbeat:     Liveness probe at /healthz

ROUTE GROUPS:
  /api/employees/*      Schedule config management + monthly reports
  /api/punches          Clock event submission
  /api/absences/*       Justification submission and review
  /api/dashboard        Manager overview

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Heartbeat("/healthz"))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.SaveEmployee)
			r.Get("/{name}", h.GetEmployee)
			r.Delete("/{name}", h.DeleteEmployee)
			r.Get("/{name}/report", h.GetReport)
		})

		// Record submission routes
		r.Post("/punches", h.SubmitPunch)

		// Absence routes
		r.Route("/absences", func(r chi.Router) {
			r.Post("/", h.SubmitAbsence)
			r.Get("/pending", h.ListPendingAbsences)
			r.Post("/{id}/approve", h.ApproveAbsence)
			r.Post("/{id}/reject", h.RejectAbsence)
		})

		// Dashboard
		r.Get("/dashboard", h.Dashboard)
	})

	return r
}
