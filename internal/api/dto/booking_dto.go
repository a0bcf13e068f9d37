package dto

import (
	"time"

	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/service"
)

// CreateBookingRequest is the booking creation payload.
type CreateBookingRequest struct {
	ClientID    string `json:"client_id"`
	SpocID      int    `json:"spoc_id"`
	SlotID      int    `json:"slot_id"`
	MeetingType string `json:"meeting_type"`
}

// BookingConfirmationResponse is the confirmation returned on creation.
type BookingConfirmationResponse struct {
	BookingID   string    `json:"booking_id"`
	Message     string    `json:"message"`
	SpocName    string    `json:"spoc_name"`
	MeetingLink string    `json:"meeting_link"`
	StartTime   time.Time `json:"start_time"`
}

// BookingResponse describes a stored booking.
type BookingResponse struct {
	BookingID   string               `json:"booking_id"`
	ClientID    string               `json:"client_id"`
	SpocID      int                  `json:"spoc_id"`
	SlotID      int                  `json:"slot_id"`
	MeetingType string               `json:"meeting_type"`
	Status      domain.BookingStatus `json:"booking_status"`
	MeetingLink string               `json:"meeting_link"`
	CreatedAt   time.Time            `json:"created_at"`
}

// NewBookingConfirmationResponse maps a service confirmation.
func NewBookingConfirmationResponse(conf *service.BookingConfirmation) BookingConfirmationResponse {
	return BookingConfirmationResponse{
		BookingID:   conf.BookingID,
		Message:     conf.Message,
		SpocName:    conf.SpocName,
		MeetingLink: conf.MeetingLink,
		StartTime:   conf.StartTime,
	}
}

// NewBookingResponse maps a domain booking.
func NewBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:   booking.ID,
		ClientID:    booking.ClientID,
		SpocID:      booking.SpocID,
		SlotID:      booking.SlotID,
		MeetingType: booking.MeetingType,
		Status:      booking.Status,
		MeetingLink: booking.MeetingLink,
		CreatedAt:   booking.CreatedAt,
	}
}
