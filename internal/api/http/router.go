package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matchday-travel/lead-service/internal/api/http/handlers"
	"github.com/matchday-travel/lead-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Leads          *handlers.LeadsHandler
	Events         *handlers.EventsHandler
	Quotes         *handlers.QuotesHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Lead intake and the event catalogue
// are public; listing leads, moving them through the lifecycle, and
// quoting require a staff token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	api := app.Group("/api")

	api.Get("/events", cfg.Events.ListEvents)
	api.Get("/events/:id", cfg.Events.GetEvent)
	api.Get("/events/:id/packages", cfg.Events.ListEventPackages)

	api.Post("/leads", cfg.Leads.CreateLead)

	staffOnly := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	staffOnly.Get("/leads", cfg.Leads.ListLeads)
	staffOnly.Patch("/leads/:id/status", cfg.Leads.UpdateLeadStatus)
	staffOnly.Get("/leads/:id/quotes", cfg.Quotes.ListLeadQuotes)
	staffOnly.Post("/quotes/generate", cfg.Quotes.GenerateQuote)
}
