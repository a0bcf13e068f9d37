package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

func TestMemorySeedDataset(t *testing.T) {
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	repos := NewMemoryRepositories(now)
	ctx := context.Background()

	spocs, err := repos.Spocs.List(ctx, SpocFilter{})
	require.NoError(t, err)
	require.Len(t, spocs, 3)

	available, booked, err := repos.Slots.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3*14*3, available)
	assert.Zero(t, booked)

	// First slot is tomorrow at 10:00.
	slot, err := repos.Slots.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC), slot.StartTime)
	assert.Equal(t, slot.StartTime.Add(time.Hour), slot.EndTime)
}

func TestMemorySpocFilterIsCaseInsensitive(t *testing.T) {
	repos := NewMemoryRepositories(time.Now())

	solution := "security"
	spocs, err := repos.Spocs.List(context.Background(), SpocFilter{SolutionType: &solution})
	require.NoError(t, err)
	require.Len(t, spocs, 1)
	assert.Equal(t, 2, spocs[0].ID)
}

func TestMemoryMarkBookedIsAtomic(t *testing.T) {
	repos := NewMemoryRepositories(time.Now())
	ctx := context.Background()

	require.NoError(t, repos.Slots.MarkBooked(ctx, 1))
	assert.ErrorIs(t, repos.Slots.MarkBooked(ctx, 1), ErrSlotUnavailable)
	assert.ErrorIs(t, repos.Slots.MarkBooked(ctx, 99999), ErrSlotUnavailable)

	require.NoError(t, repos.Slots.Release(ctx, 1))
	require.NoError(t, repos.Slots.MarkBooked(ctx, 1))
}

func TestMemoryListAvailableSkipsBookedSlots(t *testing.T) {
	repos := NewMemoryRepositories(time.Now())
	ctx := context.Background()

	before, err := repos.Slots.ListAvailable(ctx, 1, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, before)

	require.NoError(t, repos.Slots.MarkBooked(ctx, before[0].ID))

	after, err := repos.Slots.ListAvailable(ctx, 1, nil, nil)
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)
	for _, slot := range after {
		assert.NotEqual(t, before[0].ID, slot.ID)
	}
}

func TestMemoryMissingRowsReportPgxNoRows(t *testing.T) {
	repos := NewMemoryRepositories(time.Now())
	ctx := context.Background()

	_, err := repos.Spocs.GetByID(ctx, 42)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = repos.Slots.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = repos.Clients.GetByID(ctx, "deadbeef")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = repos.Bookings.GetByID(ctx, "deadbeef")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, repos.Bookings.UpdateStatus(ctx, "deadbeef", domain.BookingStatusCancelled), pgx.ErrNoRows)
}
