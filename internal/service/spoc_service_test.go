package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/spoc-booking/internal/repository"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

func newSpocFixture(t *testing.T, now time.Time) (*SpocService, *repository.MemoryRepositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories(now)
	svc := NewSpocService(SpocDependencies{
		SpocRepo: repos.Spocs,
		SlotRepo: repos.Slots,
		Logger:   zap.NewNop(),
	})
	return svc, repos
}

func TestListSpocsBySolutionType(t *testing.T) {
	svc, _ := newSpocFixture(t, time.Now())

	solution := "Security Solutions"
	spocs, err := svc.ListSpocs(context.Background(), repository.SpocFilter{SolutionType: &solution})
	require.NoError(t, err)
	require.Len(t, spocs, 1)
	assert.Equal(t, "Priya Desai", spocs[0].Name)
}

func TestListSpocsNoMatchIsEmptyNotError(t *testing.T) {
	svc, _ := newSpocFixture(t, time.Now())

	solution := "Quantum Computing"
	spocs, err := svc.ListSpocs(context.Background(), repository.SpocFilter{SolutionType: &solution})
	require.NoError(t, err)
	assert.Empty(t, spocs)
}

func TestGetSpocUnknownIsNotFound(t *testing.T) {
	svc, _ := newSpocFixture(t, time.Now())

	_, err := svc.GetSpoc(context.Background(), 42)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestGetAvailabilityReturnsSortedUnbookedSlots(t *testing.T) {
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	svc, repos := newSpocFixture(t, now)
	ctx := context.Background()

	availability, err := svc.GetAvailability(ctx, 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, availability.Spoc.ID)
	// 14 days, three slots per day.
	require.Len(t, availability.Slots, 42)
	for i := 1; i < len(availability.Slots); i++ {
		assert.True(t, availability.Slots[i-1].StartTime.Before(availability.Slots[i].StartTime))
	}

	require.NoError(t, repos.Slots.MarkBooked(ctx, availability.Slots[0].ID))
	availability, err = svc.GetAvailability(ctx, 1, nil, nil)
	require.NoError(t, err)
	assert.Len(t, availability.Slots, 41)
}

func TestGetAvailabilityWindowFilter(t *testing.T) {
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	svc, _ := newSpocFixture(t, now)

	from := now.AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 2)
	availability, err := svc.GetAvailability(context.Background(), 2, &from, &to)
	require.NoError(t, err)
	// Two full days inside the window.
	assert.Len(t, availability.Slots, 6)
	for _, slot := range availability.Slots {
		assert.Equal(t, 2, slot.SpocID)
		assert.False(t, slot.StartTime.Before(from))
		assert.False(t, slot.EndTime.After(to))
	}
}

func TestGetAvailabilityUnknownSpocIsNotFound(t *testing.T) {
	svc, _ := newSpocFixture(t, time.Now())

	_, err := svc.GetAvailability(context.Background(), 42, nil, nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
