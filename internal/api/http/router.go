package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Notes          *handlers.NotesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything under the protected group
// runs the auth gate before any handler logic.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/users", cfg.Users.Register)
	app.Post("/users/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/users/me", cfg.Users.Me)

	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Put("/tickets/:id", cfg.Tickets.UpdateTicket)
	protected.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)

	protected.Get("/tickets/:ticketId/notes", cfg.Notes.ListNotes)
	protected.Post("/tickets/:ticketId/notes", cfg.Notes.AddNote)
}
