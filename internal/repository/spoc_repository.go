package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// SpocFilter captures SPOC directory search parameters. SolutionType matches
// against expertise, Expertise against specialization, both as substrings.
type SpocFilter struct {
	SolutionType *string
	Expertise    *string
}

// SpocRepository encapsulates SPOC directory persistence.
type SpocRepository interface {
	List(ctx context.Context, filter SpocFilter) ([]domain.Spoc, error)
	GetByID(ctx context.Context, id int) (*domain.Spoc, error)
}

type spocRepository struct {
	pool *pgxpool.Pool
}

// NewSpocRepository instantiates repository.
func NewSpocRepository(pool *pgxpool.Pool) SpocRepository {
	return &spocRepository{pool: pool}
}

func (r *spocRepository) List(ctx context.Context, filter SpocFilter) ([]domain.Spoc, error) {
	base := `SELECT spoc_id, name, expertise, specialization, email, phone FROM spocs`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SolutionType != nil && strings.TrimSpace(*filter.SolutionType) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SolutionType))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(expertise) LIKE $%d", len(args)))
	}
	if filter.Expertise != nil && strings.TrimSpace(*filter.Expertise) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Expertise))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(specialization) LIKE $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY spoc_id", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSpocs(rows)
}

func (r *spocRepository) GetByID(ctx context.Context, id int) (*domain.Spoc, error) {
	const query = `SELECT spoc_id, name, expertise, specialization, email, phone FROM spocs WHERE spoc_id=$1`
	var spoc domain.Spoc
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&spoc.ID,
		&spoc.Name,
		&spoc.Expertise,
		&spoc.Specialization,
		&spoc.Email,
		&spoc.Phone,
	); err != nil {
		return nil, err
	}
	return &spoc, nil
}

func scanSpocs(rows pgx.Rows) ([]domain.Spoc, error) {
	var result []domain.Spoc
	for rows.Next() {
		var spoc domain.Spoc
		if err := rows.Scan(
			&spoc.ID,
			&spoc.Name,
			&spoc.Expertise,
			&spoc.Specialization,
			&spoc.Email,
			&spoc.Phone,
		); err != nil {
			return nil, err
		}
		result = append(result, spoc)
	}
	return result, rows.Err()
}
