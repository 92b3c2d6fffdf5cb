package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/repository"
)

type featureStore struct {
	*DomainDB
}

func (s *featureStore) Create(ctx context.Context, f models.Feature) (models.Feature, error) {
	query := `
		INSERT INTO features (domain_id, display_name, feature_type)
		VALUES ($1, $2, $3)
		RETURNING id, domain_id, display_name, feature_type`

	out, err := scanFeature(s.pool.QueryRow(ctx, query, s.domainID, f.DisplayName, f.Type.String()))
	if err != nil {
		return models.Feature{}, err
	}
	return out, nil
}

func (s *featureStore) FetchOne(ctx context.Context, id uuid.UUID) (models.Feature, error) {
	query := `
		SELECT id, domain_id, display_name, feature_type
		FROM features
		WHERE id = $1 AND domain_id = $2`

	out, err := scanFeature(s.pool.QueryRow(ctx, query, id, s.domainID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Feature{}, models.NoSuchResource("feature", id)
		}
		return models.Feature{}, err
	}
	return out, nil
}

func (s *featureStore) FetchAll(ctx context.Context, filter repository.ListFilter) ([]models.Feature, error) {
	query := `
		SELECT id, domain_id, display_name, feature_type
		FROM features
		WHERE domain_id = $1 AND ($2 = '' OR display_name LIKE '%' || $2 || '%')
		ORDER BY display_name, id`

	rows, err := s.pool.Query(ctx, query, s.domainID, filter.DisplayName)
	if err != nil {
		return nil, dbErr("list features", err)
	}
	defer rows.Close()

	features := make([]models.Feature, 0)
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("iterate features", err)
	}
	return features, nil
}

func (s *featureStore) Update(ctx context.Context, f models.Feature) (models.Feature, error) {
	query := `
		UPDATE features
		SET display_name = $3, feature_type = $4
		WHERE id = $1 AND domain_id = $2
		RETURNING id, domain_id, display_name, feature_type`

	out, err := scanFeature(s.pool.QueryRow(ctx, query, f.ID, s.domainID, f.DisplayName, f.Type.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Feature{}, models.NoSuchResource("feature", f.ID)
		}
		return models.Feature{}, err
	}
	return out, nil
}

func (s *featureStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM features WHERE id = $1 AND domain_id = $2`, id, s.domainID)
	if err != nil {
		return dbErr("delete feature", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NoSuchResource("feature", id)
	}
	return nil
}

func scanFeature(row pgx.Row) (models.Feature, error) {
	var (
		f        models.Feature
		typeName string
	)
	if err := row.Scan(&f.ID, &f.DomainID, &f.DisplayName, &typeName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Feature{}, err
		}
		return models.Feature{}, dbErr("scan feature", err)
	}
	featureType, err := models.FeatureTypeFromString(typeName)
	if err != nil {
		// The CHECK constraint should make this unreachable; if it happens the
		// row is corrupt.
		return models.Feature{}, models.DatabaseErrorf("stored feature type %q unknown", typeName)
	}
	f.Type = featureType
	return f, nil
}
