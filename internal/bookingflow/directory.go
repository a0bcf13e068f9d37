package bookingflow

import (
	"context"
	"time"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// Directory is the remote booking service boundary consumed by the
// workflow. Implementations return FlowError values so the orchestrator can
// classify failures.
type Directory interface {
	// CreateClient stores a submission and returns the new client id.
	// Creation is not idempotent; a retry after a timeout may create a
	// duplicate client.
	CreateClient(ctx context.Context, sub domain.ClientSubmission) (string, error)
	// ListSpocs returns the SPOCs matching a solution type, in directory
	// order.
	ListSpocs(ctx context.Context, solutionType string) ([]domain.Spoc, error)
	// GetAvailability returns a SPOC's open slots in [from, to), sorted by
	// start time. May fail independently per SPOC.
	GetAvailability(ctx context.Context, spocID int, from, to time.Time) ([]domain.Slot, error)
	// CreateBooking confirms a booking. Fails with a slot conflict when the
	// slot was taken concurrently.
	CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error)
}

// BookingRequest identifies the slot being confirmed.
type BookingRequest struct {
	ClientID    string
	SpocID      int
	SlotID      int
	MeetingType string
}

// BookingResult is the terminal artifact of a successful session.
type BookingResult struct {
	BookingID   string
	SpocName    string
	StartTime   time.Time
	MeetingLink string
}
