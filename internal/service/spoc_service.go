package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/persistence"
	"github.com/spec-kit/spoc-booking/internal/repository"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

const availabilityCacheTTL = 30 * time.Second

// SpocService serves the SPOC directory and per-SPOC availability.
type SpocService struct {
	spocs  repository.SpocRepository
	slots  repository.SlotRepository
	cache  *persistence.Redis
	logger *zap.Logger
}

// SpocDependencies bundles dependencies for the SPOC service.
type SpocDependencies struct {
	SpocRepo repository.SpocRepository
	SlotRepo repository.SlotRepository
	Cache    *persistence.Redis
	Logger   *zap.Logger
}

// NewSpocService constructs the service.
func NewSpocService(deps SpocDependencies) *SpocService {
	return &SpocService{
		spocs:  deps.SpocRepo,
		slots:  deps.SlotRepo,
		cache:  deps.Cache,
		logger: deps.Logger,
	}
}

// ListSpocs returns the SPOCs matching the filter, ordered by id. An empty
// result is not an error.
func (s *SpocService) ListSpocs(ctx context.Context, filter repository.SpocFilter) ([]domain.Spoc, error) {
	spocs, err := s.spocs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if spocs == nil {
		spocs = []domain.Spoc{}
	}
	return spocs, nil
}

// GetSpoc fetches a single SPOC.
func (s *SpocService) GetSpoc(ctx context.Context, id int) (*domain.Spoc, error) {
	spoc, err := s.spocs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("SPOC", map[string]any{"spoc_id": id})
		}
		return nil, err
	}
	return spoc, nil
}

// GetAvailability returns a SPOC with its unbooked slots in [from, to),
// sorted by start time. Results are cached briefly in Redis when available.
func (s *SpocService) GetAvailability(ctx context.Context, spocID int, from, to *time.Time) (*domain.SpocAvailability, error) {
	spoc, err := s.GetSpoc(ctx, spocID)
	if err != nil {
		return nil, err
	}

	key := availabilityCacheKey(spocID, from, to)
	if slots, ok := s.cachedSlots(ctx, key); ok {
		return &domain.SpocAvailability{Spoc: *spoc, Slots: slots}, nil
	}

	slots, err := s.slots.ListAvailable(ctx, spocID, from, to)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []domain.Slot{}
	}
	s.storeSlots(ctx, key, slots)

	return &domain.SpocAvailability{Spoc: *spoc, Slots: slots}, nil
}

func (s *SpocService) cachedSlots(ctx context.Context, key string) ([]domain.Slot, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *SpocService) storeSlots(ctx context.Context, key string, slots []domain.Slot) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, availabilityCacheTTL).Err(); err != nil {
		s.logger.Debug("availability cache write failed", zap.Error(err))
	}
}

func availabilityCacheKey(spocID int, from, to *time.Time) string {
	fromPart, toPart := "-", "-"
	if from != nil {
		fromPart = fmt.Sprintf("%d", from.Unix())
	}
	if to != nil {
		toPart = fmt.Sprintf("%d", to.Unix())
	}
	return fmt.Sprintf("availability:%d:%s:%s", spocID, fromPart, toPart)
}
