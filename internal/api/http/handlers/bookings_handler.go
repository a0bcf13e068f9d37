package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/spoc-booking/internal/api/dto"
	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/repository"
	"github.com/spec-kit/spoc-booking/internal/service"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

// BookingsHandler serves booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// CreateBooking POST /api/v1/bookings.
func (h *BookingsHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" || req.SpocID == 0 || req.SlotID == 0 || req.MeetingType == "" {
		return apperrors.NewValidationError("client_id, spoc_id, slot_id, meeting_type required", nil)
	}

	confirmation, err := h.service.CreateBooking(c.Context(), service.BookingCreateInput{
		ClientID:    req.ClientID,
		SpocID:      req.SpocID,
		SlotID:      req.SlotID,
		MeetingType: req.MeetingType,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewBookingConfirmationResponse(confirmation)})
}

// GetBooking GET /api/v1/bookings/:id.
func (h *BookingsHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.service.GetBooking(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// ListBookings GET /api/v1/bookings.
func (h *BookingsHandler) ListBookings(c *fiber.Ctx) error {
	filter := repository.BookingFilter{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("skip", 0),
	}
	if status := c.Query("status"); status != "" {
		bookingStatus := domain.BookingStatus(status)
		filter.Status = &bookingStatus
	}
	if spocID := c.QueryInt("spoc_id", 0); spocID != 0 {
		filter.SpocID = &spocID
	}

	bookings, err := h.service.ListBookings(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.NewBookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CancelBooking POST /api/v1/bookings/:id/cancel.
func (h *BookingsHandler) CancelBooking(c *fiber.Ctx) error {
	booking, err := h.service.CancelBooking(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    "Booking cancelled successfully",
		"booking_id": booking.ID,
		"status":     booking.Status,
	})
}
