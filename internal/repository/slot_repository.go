package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// ErrSlotUnavailable is returned when a slot is already booked or missing at
// the moment a booking claims it.
var ErrSlotUnavailable = errors.New("slot not available")

// SlotRepository encapsulates availability slot persistence.
type SlotRepository interface {
	ListAvailable(ctx context.Context, spocID int, from, to *time.Time) ([]domain.Slot, error)
	GetByID(ctx context.Context, id int) (*domain.Slot, error)
	// MarkBooked atomically claims an unbooked slot. Returns
	// ErrSlotUnavailable when the slot is missing or already taken.
	MarkBooked(ctx context.Context, id int) error
	Release(ctx context.Context, id int) error
	Counts(ctx context.Context) (available, booked int, err error)
}

type slotRepository struct {
	pool *pgxpool.Pool
}

// NewSlotRepository instantiates repository.
func NewSlotRepository(pool *pgxpool.Pool) SlotRepository {
	return &slotRepository{pool: pool}
}

func (r *slotRepository) ListAvailable(ctx context.Context, spocID int, from, to *time.Time) ([]domain.Slot, error) {
	query := `SELECT slot_id, spoc_id, start_time, end_time, is_booked
	          FROM availability_slots WHERE spoc_id=$1 AND is_booked=FALSE`
	args := []any{spocID}
	if from != nil {
		args = append(args, *from)
		query += ` AND start_time >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND end_time <= $3`
		} else {
			query += ` AND end_time <= $2`
		}
	}
	query += ` ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlots(rows)
}

func (r *slotRepository) GetByID(ctx context.Context, id int) (*domain.Slot, error) {
	const query = `SELECT slot_id, spoc_id, start_time, end_time, is_booked
	               FROM availability_slots WHERE slot_id=$1`
	var slot domain.Slot
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.SpocID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
	); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) MarkBooked(ctx context.Context, id int) error {
	const query = `UPDATE availability_slots SET is_booked=TRUE WHERE slot_id=$1 AND is_booked=FALSE`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

func (r *slotRepository) Release(ctx context.Context, id int) error {
	const query = `UPDATE availability_slots SET is_booked=FALSE WHERE slot_id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slotRepository) Counts(ctx context.Context) (int, int, error) {
	const query = `SELECT
	    COUNT(*) FILTER (WHERE NOT is_booked),
	    COUNT(*) FILTER (WHERE is_booked)
	    FROM availability_slots`
	var available, booked int
	if err := r.pool.QueryRow(ctx, query).Scan(&available, &booked); err != nil {
		return 0, 0, err
	}
	return available, booked, nil
}

func scanSlots(rows pgx.Rows) ([]domain.Slot, error) {
	var result []domain.Slot
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(
			&slot.ID,
			&slot.SpocID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBooked,
		); err != nil {
			return nil, err
		}
		result = append(result, slot)
	}
	return result, rows.Err()
}
