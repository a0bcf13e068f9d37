package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/spoc-booking/internal/repository"
)

// DemoHandler reports dataset counters, mirroring the original demo-info
// endpoint.
type DemoHandler struct {
	spocs    repository.SpocRepository
	slots    repository.SlotRepository
	clients  repository.ClientRepository
	bookings repository.BookingRepository
	demoMode bool
}

// NewDemoHandler constructs handler.
func NewDemoHandler(spocs repository.SpocRepository, slots repository.SlotRepository, clients repository.ClientRepository, bookings repository.BookingRepository, demoMode bool) *DemoHandler {
	return &DemoHandler{spocs: spocs, slots: slots, clients: clients, bookings: bookings, demoMode: demoMode}
}

// Info GET /api/v1/demo/info.
func (h *DemoHandler) Info(c *fiber.Ctx) error {
	ctx := c.Context()

	spocs, err := h.spocs.List(ctx, repository.SpocFilter{})
	if err != nil {
		return err
	}
	available, booked, err := h.slots.Counts(ctx)
	if err != nil {
		return err
	}
	clientCount, err := h.clients.Count(ctx)
	if err != nil {
		return err
	}
	bookingCount, err := h.bookings.Count(ctx)
	if err != nil {
		return err
	}

	mode := "postgres"
	if h.demoMode {
		mode = "in-memory"
	}
	return c.JSON(fiber.Map{
		"mode":                     mode,
		"total_spocs":              len(spocs),
		"total_availability_slots": available + booked,
		"available_slots_count":    available,
		"booked_slots_count":       booked,
		"clients_created":          clientCount,
		"bookings_created":         bookingCount,
	})
}
