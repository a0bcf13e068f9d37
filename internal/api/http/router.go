package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/spoc-booking/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Demo     *handlers.DemoHandler
	Spocs    *handlers.SpocsHandler
	Clients  *handlers.ClientsHandler
	Bookings *handlers.BookingsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/api/v1")
	v1.Get("/demo/info", cfg.Demo.Info)

	v1.Get("/spocs", cfg.Spocs.ListSpocs)
	v1.Get("/spocs/:id", cfg.Spocs.GetSpoc)
	v1.Get("/spocs/:id/availability", cfg.Spocs.GetAvailability)

	v1.Post("/clients", cfg.Clients.CreateClient)
	v1.Get("/clients", cfg.Clients.ListClients)
	v1.Get("/clients/:id", cfg.Clients.GetClient)

	v1.Post("/bookings", cfg.Bookings.CreateBooking)
	v1.Get("/bookings", cfg.Bookings.ListBookings)
	v1.Get("/bookings/:id", cfg.Bookings.GetBooking)
	v1.Post("/bookings/:id/cancel", cfg.Bookings.CancelBooking)
}
