package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lalith-99/luxgrid/internal/models"
)

// DomainStore manages the tenants themselves. Unlike the entity stores it is
// not domain-scoped: it exists for admin tooling.
type DomainStore struct {
	pool *pgxpool.Pool
}

func NewDomainStore(pool *pgxpool.Pool) *DomainStore {
	return &DomainStore{pool: pool}
}

func (s *DomainStore) Create(ctx context.Context, displayName string) (models.Domain, error) {
	query := `
		INSERT INTO domains (display_name)
		VALUES ($1)
		RETURNING id, display_name, created_at`

	var d models.Domain
	err := s.pool.QueryRow(ctx, query, displayName).Scan(&d.ID, &d.DisplayName, &d.CreatedAt)
	if err != nil {
		return models.Domain{}, dbErr("insert domain", err)
	}
	return d, nil
}

func (s *DomainStore) FetchOne(ctx context.Context, id uuid.UUID) (models.Domain, error) {
	query := `SELECT id, display_name, created_at FROM domains WHERE id = $1`

	var d models.Domain
	err := s.pool.QueryRow(ctx, query, id).Scan(&d.ID, &d.DisplayName, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Domain{}, models.NoSuchResource("domain", id)
		}
		return models.Domain{}, dbErr("get domain", err)
	}
	return d, nil
}

func (s *DomainStore) FetchAll(ctx context.Context) ([]models.Domain, error) {
	query := `SELECT id, display_name, created_at FROM domains ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, dbErr("list domains", err)
	}
	defer rows.Close()

	domains := make([]models.Domain, 0)
	for rows.Next() {
		var d models.Domain
		if err := rows.Scan(&d.ID, &d.DisplayName, &d.CreatedAt); err != nil {
			return nil, dbErr("scan domain", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("iterate domains", err)
	}
	return domains, nil
}
