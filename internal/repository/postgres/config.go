package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/repository"
)

type configStore struct {
	*DomainDB
}

func (s *configStore) Create(ctx context.Context, c models.Config) (models.Config, error) {
	payload, err := json.Marshal(c.Light)
	if err != nil {
		return models.Config{}, dbErr("marshal light config", err)
	}

	query := `
		INSERT INTO config (domain_id, display_name, light_config)
		VALUES ($1, $2, $3)
		RETURNING id, domain_id, display_name, light_config`

	out, err := scanConfig(s.pool.QueryRow(ctx, query, s.domainID, c.DisplayName, payload))
	if err != nil {
		return models.Config{}, dbErr("insert config", err)
	}
	return out, nil
}

func (s *configStore) FetchOne(ctx context.Context, id uuid.UUID) (models.Config, error) {
	query := `
		SELECT id, domain_id, display_name, light_config
		FROM config
		WHERE id = $1 AND domain_id = $2`

	out, err := scanConfig(s.pool.QueryRow(ctx, query, id, s.domainID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Config{}, models.NoSuchResource("config", id)
		}
		return models.Config{}, err
	}
	return out, nil
}

func (s *configStore) FetchAll(ctx context.Context, filter repository.ListFilter) ([]models.Config, error) {
	query := `
		SELECT id, domain_id, display_name, light_config
		FROM config
		WHERE domain_id = $1 AND ($2 = '' OR display_name LIKE '%' || $2 || '%')
		ORDER BY display_name, id`

	rows, err := s.pool.Query(ctx, query, s.domainID, filter.DisplayName)
	if err != nil {
		return nil, dbErr("list configs", err)
	}
	defer rows.Close()

	configs := make([]models.Config, 0)
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("iterate configs", err)
	}
	return configs, nil
}

func (s *configStore) Update(ctx context.Context, c models.Config) (models.Config, error) {
	payload, err := json.Marshal(c.Light)
	if err != nil {
		return models.Config{}, dbErr("marshal light config", err)
	}

	query := `
		UPDATE config
		SET display_name = $3, light_config = $4
		WHERE id = $1 AND domain_id = $2
		RETURNING id, domain_id, display_name, light_config`

	out, err := scanConfig(s.pool.QueryRow(ctx, query, c.ID, s.domainID, c.DisplayName, payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Config{}, models.NoSuchResource("config", c.ID)
		}
		return models.Config{}, err
	}
	return out, nil
}

// Delete refuses to remove a config any device in the domain still points at.
// The reference check is scoped to the domain like every other query; another
// tenant cannot pin this tenant's config by guessing its id.
func (s *configStore) Delete(ctx context.Context, id uuid.UUID) error {
	var inUse bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM device WHERE config_id = $1 AND domain_id = $2)`,
		id, s.domainID).Scan(&inUse)
	if err != nil {
		return dbErr("check config in use", err)
	}
	if inUse {
		return models.ErrConfigInUse
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM config WHERE id = $1 AND domain_id = $2`, id, s.domainID)
	if err != nil {
		return dbErr("delete config", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NoSuchResource("config", id)
	}
	return nil
}

func scanConfig(row pgx.Row) (models.Config, error) {
	var (
		c   models.Config
		raw []byte
	)
	if err := row.Scan(&c.ID, &c.DomainID, &c.DisplayName, &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Config{}, err
		}
		return models.Config{}, dbErr("scan config", err)
	}
	// A stored payload that no longer parses means the row went bad after it
	// was written, which is a storage fault, not a client one.
	if err := json.Unmarshal(raw, &c.Light); err != nil {
		return models.Config{}, models.DatabaseErrorf("parse light config payload: %v", err)
	}
	return c, nil
}
