package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appogelardexa/ticket-triage/internal/api/http/handlers"
	"github.com/appogelardexa/ticket-triage/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	History        *handlers.HistoryHandler
	Intake         *handlers.IntakeHandler
	Lookups        *handlers.LookupsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.Login)

	// Registered ahead of the auth middleware: polling stays open so
	// untrusted submitters can watch their job.
	app.Get("/intake/:job_id", cfg.Intake.Get)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/by-email", cfg.Tickets.ListByEmail)
	tickets.Get("/by-client-name", cfg.Tickets.ListByClientName)
	tickets.Get("/filter", cfg.Tickets.FilterDetailed)
	tickets.Get("/:ticket_id", cfg.Tickets.GetTicket)
	tickets.Patch("/:ticket_id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:ticket_id", cfg.Tickets.DeleteTicket)

	history := protected.Group("/history")
	history.Get("/status/:ticket_id", cfg.History.StatusHistory)
	history.Get("/priority/:ticket_id", cfg.History.PriorityHistory)

	// Finalization is an operator action.
	intake := protected.Group("/intake")
	intake.Post("", cfg.Intake.Submit)
	intake.Post("/:job_id/complete", auth.RequireAdmin(), cfg.Intake.Complete)
	intake.Post("/:job_id/fail", auth.RequireAdmin(), cfg.Intake.Fail)

	lookups := protected.Group("/lookups", auth.RequireAdmin())
	lookups.Post("/clients", cfg.Lookups.CreateClient)
	lookups.Get("/clients", cfg.Lookups.ListClients)
	lookups.Delete("/clients/:id", cfg.Lookups.DeleteClient)
	lookups.Post("/staff", cfg.Lookups.CreateStaff)
	lookups.Get("/staff", cfg.Lookups.ListStaff)
	lookups.Patch("/staff/:id/status", cfg.Lookups.SetStaffStatus)
	lookups.Post("/departments", cfg.Lookups.CreateDepartment)
	lookups.Get("/departments", cfg.Lookups.ListDepartments)
	lookups.Get("/departments/:id/categories", cfg.Lookups.ListCategories)
	lookups.Post("/categories", cfg.Lookups.CreateCategory)
	lookups.Post("/companies", cfg.Lookups.CreateCompany)
	lookups.Get("/companies", cfg.Lookups.ListCompanies)
}
