// Package postgres implements the repository interfaces on pgx. Every
// tenant-facing query carries the scope's domain id in its WHERE clause; a
// row owned by another domain is indistinguishable from one that does not
// exist.
package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/repository"
)

// Store hands out per-domain scopes over a shared pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Domain(domainID uuid.UUID) repository.Scope {
	return &DomainDB{pool: s.pool, domainID: domainID}
}

// DomainDB is the pool paired with one domain id. All entity stores embed it,
// so the scoping is structural rather than per-call discipline.
type DomainDB struct {
	pool     *pgxpool.Pool
	domainID uuid.UUID
}

func (d *DomainDB) Devices() repository.DeviceRepository {
	return &deviceStore{d}
}

func (d *DomainDB) Configs() repository.ConfigRepository {
	return &configStore{d}
}

func (d *DomainDB) Features() repository.FeatureRepository {
	return &featureStore{d}
}

func (d *DomainDB) Profiles() repository.ProfileRepository {
	return &profileStore{d}
}

func (d *DomainDB) FeatureProfiles() repository.FeatureProfileRepository {
	return &featureProfileStore{d}
}

// dbErr wraps a driver failure. The detail stays server-side: transport
// adapters log it and answer with an opaque internal error.
func dbErr(op string, err error) error {
	return models.DatabaseErrorf("%s: %v", op, err)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
