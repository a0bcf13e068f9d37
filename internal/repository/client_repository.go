package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// ClientRepository encapsulates client record persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, limit, offset int) ([]domain.Client, error)
	Count(ctx context.Context) (int, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository instantiates repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (client_id, company_name, contact_name, contact_email, contact_phone, industry, budget_range, decision_timeline, solution_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		client.ID,
		client.CompanyName,
		client.ContactName,
		client.ContactEmail,
		client.ContactPhone,
		client.Industry,
		client.BudgetRange,
		client.DecisionTimeline,
		client.SolutionType,
	).Scan(&client.CreatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `
        SELECT client_id, company_name, contact_name, contact_email, contact_phone, industry, budget_range, decision_timeline, solution_type, created_at
        FROM clients WHERE client_id=$1`
	var client domain.Client
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.CompanyName,
		&client.ContactName,
		&client.ContactEmail,
		&client.ContactPhone,
		&client.Industry,
		&client.BudgetRange,
		&client.DecisionTimeline,
		&client.SolutionType,
		&client.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT client_id, company_name, contact_name, contact_email, contact_phone, industry, budget_range, decision_timeline, solution_type, created_at
        FROM clients ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *clientRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.CompanyName,
			&client.ContactName,
			&client.ContactEmail,
			&client.ContactPhone,
			&client.Industry,
			&client.BudgetRange,
			&client.DecisionTimeline,
			&client.SolutionType,
			&client.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
