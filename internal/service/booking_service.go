package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/events"
	"github.com/spec-kit/spoc-booking/internal/meeting"
	"github.com/spec-kit/spoc-booking/internal/repository"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

// BookingService coordinates the booking workflow on the service side.
type BookingService struct {
	bookings   repository.BookingRepository
	slots      repository.SlotRepository
	spocs      repository.SpocRepository
	clients    repository.ClientRepository
	links      *meeting.LinkBuilder
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// BookingDependencies bundles dependencies for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	SlotRepo    repository.SlotRepository
	SpocRepo    repository.SpocRepository
	ClientRepo  repository.ClientRepository
	LinkBuilder *meeting.LinkBuilder
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// BookingCreateInput describes booking creation payload.
type BookingCreateInput struct {
	ClientID    string
	SpocID      int
	SlotID      int
	MeetingType string
}

// BookingConfirmation is the caller-facing result of a successful booking.
type BookingConfirmation struct {
	BookingID   string
	Message     string
	SpocName    string
	MeetingLink string
	StartTime   time.Time
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		slots:      deps.SlotRepo,
		spocs:      deps.SpocRepo,
		clients:    deps.ClientRepo,
		links:      deps.LinkBuilder,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateBooking validates the request, claims the slot and persists the
// booking. The slot claim is atomic; a slot taken by a concurrent booking is
// reported as a conflict, never a silent success.
func (s *BookingService) CreateBooking(ctx context.Context, input BookingCreateInput) (*BookingConfirmation, error) {
	if !domain.IsValidMeetingType(input.MeetingType) {
		return nil, apperrors.NewValidationError("unsupported meeting type", map[string]any{"meeting_type": input.MeetingType})
	}

	slot, err := s.slots.GetByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewSlotConflict("slot not available or does not exist", map[string]any{"slot_id": input.SlotID})
		}
		return nil, err
	}
	if slot.IsBooked {
		return nil, apperrors.NewSlotConflict("slot not available or does not exist", map[string]any{"slot_id": input.SlotID})
	}

	spoc, err := s.spocs.GetByID(ctx, input.SpocID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SPOC", map[string]any{"spoc_id": input.SpocID})
		}
		return nil, err
	}
	if slot.SpocID != input.SpocID {
		return nil, apperrors.NewValidationError("selected slot does not belong to this SPOC", map[string]any{
			"slot_id": input.SlotID,
			"spoc_id": input.SpocID,
		})
	}

	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, err
	}

	if err := s.slots.MarkBooked(ctx, input.SlotID); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, apperrors.NewSlotConflict("slot not available or does not exist", map[string]any{"slot_id": input.SlotID})
		}
		return nil, err
	}

	bookingID := newShortID()
	link, err := s.links.BuildLink(bookingID, spoc.ID)
	if err != nil {
		s.releaseSlot(ctx, input.SlotID)
		return nil, err
	}

	booking := &domain.Booking{
		ID:          bookingID,
		ClientID:    input.ClientID,
		SpocID:      input.SpocID,
		SlotID:      input.SlotID,
		MeetingType: input.MeetingType,
		Status:      domain.BookingStatusScheduled,
		MeetingLink: link,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		s.releaseSlot(ctx, input.SlotID)
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventBookingCreated,
		Payload: events.BookingCreatedPayload{
			BookingID:   booking.ID,
			ClientID:    booking.ClientID,
			SpocID:      booking.SpocID,
			SpocEmail:   spoc.Email,
			SlotID:      booking.SlotID,
			MeetingType: booking.MeetingType,
			MeetingLink: booking.MeetingLink,
		},
	})

	return &BookingConfirmation{
		BookingID:   booking.ID,
		Message:     "Booking created successfully",
		SpocName:    spoc.Name,
		MeetingLink: booking.MeetingLink,
		StartTime:   slot.StartTime,
	}, nil
}

// GetBooking fetches a booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"booking_id": id})
		}
		return nil, err
	}
	return booking, nil
}

// ListBookings returns bookings with optional status/SPOC filters, newest
// first.
func (s *BookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// CancelBooking marks a booking cancelled and frees its slot.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, apperrors.NewValidationError("booking already cancelled", map[string]any{"booking_id": id})
	}

	oldStatus := booking.Status
	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled

	if err := s.slots.Release(ctx, booking.SlotID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Warn("failed to release slot after cancellation",
			zap.String("booking_id", id),
			zap.Int("slot_id", booking.SlotID),
			zap.Error(err))
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventBookingCancelled,
		Payload: events.BookingCancelledPayload{
			BookingID: booking.ID,
			SlotID:    booking.SlotID,
			OldStatus: oldStatus,
		},
	})
	return booking, nil
}

func (s *BookingService) releaseSlot(ctx context.Context, slotID int) {
	if err := s.slots.Release(ctx, slotID); err != nil {
		s.logger.Warn("failed to release slot after aborted booking",
			zap.Int("slot_id", slotID),
			zap.Error(err))
	}
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
