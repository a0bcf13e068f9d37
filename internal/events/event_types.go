package events

import (
	"time"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClientCreated    EventType = "client_created"
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ClientCreatedPayload payload.
type ClientCreatedPayload struct {
	ClientID     string `json:"client_id"`
	CompanyName  string `json:"company_name"`
	SolutionType string `json:"solution_type"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID   string `json:"booking_id"`
	ClientID    string `json:"client_id"`
	SpocID      int    `json:"spoc_id"`
	SpocEmail   string `json:"spoc_email"`
	SlotID      int    `json:"slot_id"`
	MeetingType string `json:"meeting_type"`
	MeetingLink string `json:"meeting_link"`
}

// BookingCancelledPayload payload.
type BookingCancelledPayload struct {
	BookingID string               `json:"booking_id"`
	SlotID    int                  `json:"slot_id"`
	OldStatus domain.BookingStatus `json:"old_status"`
}
