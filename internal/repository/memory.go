package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// MemoryRepositories bundles the in-memory implementations used in demo
// mode (no POSTGRES_DSN). Missing rows are reported as pgx.ErrNoRows so the
// service layer maps them the same way in both modes.
type MemoryRepositories struct {
	Spocs    SpocRepository
	Slots    SlotRepository
	Clients  ClientRepository
	Bookings BookingRepository
}

type memoryStore struct {
	mu       sync.Mutex
	spocs    []domain.Spoc
	slots    []*domain.Slot
	clients  []*domain.Client
	bookings []*domain.Booking
}

// NewMemoryRepositories seeds the demo dataset: three SPOCs, each with three
// slots per day (10:00, 14:00, 16:00) for the next 14 days starting tomorrow.
func NewMemoryRepositories(now time.Time) *MemoryRepositories {
	store := &memoryStore{
		spocs: []domain.Spoc{
			{ID: 1, Name: "Rajesh Sharma", Expertise: "Cloud Infrastructure", Specialization: "Enterprise Cloud Solutions & Migration", Email: "rajesh.sharma@company.com", Phone: "+91-9876543210"},
			{ID: 2, Name: "Priya Desai", Expertise: "Security Solutions", Specialization: "Regulatory & Data Protection", Email: "priya.desai@company.com", Phone: "+91-9876543211"},
			{ID: 3, Name: "Amit Patel", Expertise: "Data Analytics", Specialization: "Predictive Analytics & Business Intelligence", Email: "amit.patel@company.com", Phone: "+91-9876543212"},
		},
	}
	store.seedSlots(now)
	return &MemoryRepositories{
		Spocs:    &memorySpocRepo{store},
		Slots:    &memorySlotRepo{store},
		Clients:  &memoryClientRepo{store},
		Bookings: &memoryBookingRepo{store},
	}
}

func (s *memoryStore) seedSlots(now time.Time) {
	base := now.AddDate(0, 0, 1)
	slotID := 1
	for _, spoc := range s.spocs {
		for day := 0; day < 14; day++ {
			date := base.AddDate(0, 0, day)
			for _, hour := range []int{10, 14, 16} {
				start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
				s.slots = append(s.slots, &domain.Slot{
					ID:        slotID,
					SpocID:    spoc.ID,
					StartTime: start,
					EndTime:   start.Add(time.Hour),
				})
				slotID++
			}
		}
	}
}

type memorySpocRepo struct{ store *memoryStore }

func (r *memorySpocRepo) List(ctx context.Context, filter SpocFilter) ([]domain.Spoc, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Spoc
	for _, spoc := range r.store.spocs {
		if filter.SolutionType != nil && !containsFold(spoc.Expertise, *filter.SolutionType) {
			continue
		}
		if filter.Expertise != nil && !containsFold(spoc.Specialization, *filter.Expertise) {
			continue
		}
		result = append(result, spoc)
	}
	return result, nil
}

func (r *memorySpocRepo) GetByID(ctx context.Context, id int) (*domain.Spoc, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, spoc := range r.store.spocs {
		if spoc.ID == id {
			found := spoc
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memorySlotRepo struct{ store *memoryStore }

func (r *memorySlotRepo) ListAvailable(ctx context.Context, spocID int, from, to *time.Time) ([]domain.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Slot
	for _, slot := range r.store.slots {
		if slot.SpocID != spocID || slot.IsBooked {
			continue
		}
		if from != nil && slot.StartTime.Before(*from) {
			continue
		}
		if to != nil && slot.EndTime.After(*to) {
			continue
		}
		result = append(result, *slot)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (r *memorySlotRepo) GetByID(ctx context.Context, id int) (*domain.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if slot := r.store.findSlot(id); slot != nil {
		found := *slot
		return &found, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memorySlotRepo) MarkBooked(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slot := r.store.findSlot(id)
	if slot == nil || slot.IsBooked {
		return ErrSlotUnavailable
	}
	slot.IsBooked = true
	return nil
}

func (r *memorySlotRepo) Release(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	slot := r.store.findSlot(id)
	if slot == nil {
		return pgx.ErrNoRows
	}
	slot.IsBooked = false
	return nil
}

func (r *memorySlotRepo) Counts(ctx context.Context) (int, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	available, booked := 0, 0
	for _, slot := range r.store.slots {
		if slot.IsBooked {
			booked++
		} else {
			available++
		}
	}
	return available, booked, nil
}

func (s *memoryStore) findSlot(id int) *domain.Slot {
	for _, slot := range s.slots {
		if slot.ID == id {
			return slot
		}
	}
	return nil
}

type memoryClientRepo struct{ store *memoryStore }

func (r *memoryClientRepo) Create(ctx context.Context, client *domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}
	stored := *client
	r.store.clients = append(r.store.clients, &stored)
	return nil
}

func (r *memoryClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, client := range r.store.clients {
		if client.ID == id {
			found := *client
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryClientRepo) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.store.clients) {
		return []domain.Client{}, nil
	}
	end := offset + limit
	if end > len(r.store.clients) {
		end = len(r.store.clients)
	}
	result := make([]domain.Client, 0, end-offset)
	for _, client := range r.store.clients[offset:end] {
		result = append(result, *client)
	}
	return result, nil
}

func (r *memoryClientRepo) Count(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.clients), nil
}

type memoryBookingRepo struct{ store *memoryStore }

func (r *memoryBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	stored := *booking
	r.store.bookings = append(r.store.bookings, &stored)
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking := r.store.findBooking(id); booking != nil {
		found := *booking
		return &found, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryBookingRepo) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []domain.Booking
	for _, booking := range r.store.bookings {
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		if filter.SpocID != nil && booking.SpocID != *filter.SpocID {
			continue
		}
		result = append(result, *booking)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return []domain.Booking{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (r *memoryBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking := r.store.findBooking(id)
	if booking == nil {
		return pgx.ErrNoRows
	}
	booking.Status = status
	return nil
}

func (r *memoryBookingRepo) Count(ctx context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.bookings), nil
}

func (s *memoryStore) findBooking(id string) *domain.Booking {
	for _, booking := range s.bookings {
		if booking.ID == id {
			return booking
		}
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
