package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/repository"
)

type featureProfileStore struct {
	*DomainDB
}

// featureProfileSelect joins features so every fetch carries the
// discriminator the stored payload must be decoded under.
const featureProfileSelect = `
	SELECT fp.id, fp.domain_id, fp.display_name, fp.profile_id, fp.feature_id,
	       fp.config, f.feature_type
	FROM feature_profiles fp
	JOIN features f ON f.id = fp.feature_id`

func (s *featureProfileStore) Create(ctx context.Context, fp models.FeatureProfile) (models.FeatureProfile, error) {
	return createFeatureProfile(ctx, s.pool, s.domainID, fp)
}

// createFeatureProfile is shared with profileStore, which inserts nested
// entries inside its own transaction.
func createFeatureProfile(ctx context.Context, q querier, domainID uuid.UUID, fp models.FeatureProfile) (models.FeatureProfile, error) {
	if err := checkProfileOwned(ctx, q, domainID, fp.ProfileID); err != nil {
		return models.FeatureProfile{}, err
	}
	if err := checkFeatureType(ctx, q, domainID, fp.FeatureID, fp.Config.Type); err != nil {
		return models.FeatureProfile{}, err
	}

	payload, err := fp.Config.MarshalPayload()
	if err != nil {
		return models.FeatureProfile{}, err
	}

	query := `
		INSERT INTO feature_profiles (domain_id, display_name, profile_id, feature_id, config)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	if err := q.QueryRow(ctx, query, domainID, fp.DisplayName, fp.ProfileID, fp.FeatureID, payload).Scan(&id); err != nil {
		return models.FeatureProfile{}, dbErr("insert feature profile", err)
	}

	fp.ID = id
	fp.DomainID = domainID
	return fp, nil
}

func (s *featureProfileStore) FetchOne(ctx context.Context, profileID, id uuid.UUID) (models.FeatureProfile, error) {
	query := featureProfileSelect + `
		WHERE fp.id = $1 AND fp.profile_id = $2 AND fp.domain_id = $3`

	out, err := scanFeatureProfile(s.pool.QueryRow(ctx, query, id, profileID, s.domainID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FeatureProfile{}, models.NoSuchResource("feature profile", id)
		}
		return models.FeatureProfile{}, err
	}
	return out, nil
}

func (s *featureProfileStore) FetchAll(ctx context.Context, profileID uuid.UUID, filter repository.ListFilter) ([]models.FeatureProfile, error) {
	query := featureProfileSelect + `
		WHERE fp.profile_id = $1 AND fp.domain_id = $2
		  AND ($3 = '' OR fp.display_name LIKE '%' || $3 || '%')
		ORDER BY fp.display_name, fp.id`

	rows, err := s.pool.Query(ctx, query, profileID, s.domainID, filter.DisplayName)
	if err != nil {
		return nil, dbErr("list feature profiles", err)
	}
	return collectFeatureProfiles(rows)
}

func (s *featureProfileStore) Update(ctx context.Context, fp models.FeatureProfile) (models.FeatureProfile, error) {
	if err := checkFeatureType(ctx, s.pool, s.domainID, fp.FeatureID, fp.Config.Type); err != nil {
		return models.FeatureProfile{}, err
	}

	payload, err := fp.Config.MarshalPayload()
	if err != nil {
		return models.FeatureProfile{}, err
	}

	query := `
		UPDATE feature_profiles
		SET display_name = $4, feature_id = $5, config = $6
		WHERE id = $1 AND profile_id = $2 AND domain_id = $3
		RETURNING id`

	var id uuid.UUID
	err = s.pool.QueryRow(ctx, query,
		fp.ID, fp.ProfileID, s.domainID, fp.DisplayName, fp.FeatureID, payload).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FeatureProfile{}, models.NoSuchResource("feature profile", fp.ID)
		}
		return models.FeatureProfile{}, dbErr("update feature profile", err)
	}

	fp.DomainID = s.domainID
	return fp, nil
}

func (s *featureProfileStore) Delete(ctx context.Context, profileID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM feature_profiles WHERE id = $1 AND profile_id = $2 AND domain_id = $3`,
		id, profileID, s.domainID)
	if err != nil {
		return dbErr("delete feature profile", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NoSuchResource("feature profile", id)
	}
	return nil
}

func (s *featureProfileStore) ListByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]models.FeatureProfile, error) {
	byProfile := make(map[uuid.UUID][]models.FeatureProfile, len(profileIDs))
	if len(profileIDs) == 0 {
		return byProfile, nil
	}

	query := featureProfileSelect + `
		WHERE fp.domain_id = $1 AND fp.profile_id = ANY($2)
		ORDER BY fp.display_name, fp.id`

	rows, err := s.pool.Query(ctx, query, s.domainID, profileIDs)
	if err != nil {
		return nil, dbErr("list feature profiles by profiles", err)
	}

	all, err := collectFeatureProfiles(rows)
	if err != nil {
		return nil, err
	}
	for _, fp := range all {
		byProfile[fp.ProfileID] = append(byProfile[fp.ProfileID], fp)
	}
	return byProfile, nil
}

// querier is the subset of pgxpool.Pool and pgx.Tx the shared helpers need.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func checkProfileOwned(ctx context.Context, q querier, domainID, profileID uuid.UUID) error {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1 AND domain_id = $2)`,
		profileID, domainID).Scan(&exists)
	if err != nil {
		return dbErr("check profile reference", err)
	}
	if !exists {
		return models.NoSuchResource("profile", profileID)
	}
	return nil
}

// checkFeatureType verifies the referenced feature exists in the domain and
// that its type matches the config variant the client supplied.
func checkFeatureType(ctx context.Context, q querier, domainID, featureID uuid.UUID, want models.FeatureType) error {
	var typeName string
	err := q.QueryRow(ctx,
		`SELECT feature_type FROM features WHERE id = $1 AND domain_id = $2`,
		featureID, domainID).Scan(&typeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NoSuchResource("feature", featureID)
		}
		return dbErr("check feature reference", err)
	}

	got, err := models.FeatureTypeFromString(typeName)
	if err != nil {
		return models.DatabaseErrorf("stored feature type %q unknown", typeName)
	}
	if got != want {
		return &models.ValueError{Value: want.String(), Type: "FeatureProfile.config"}
	}
	return nil
}

func scanFeatureProfile(row pgx.Row) (models.FeatureProfile, error) {
	var (
		fp       models.FeatureProfile
		raw      []byte
		typeName string
	)
	err := row.Scan(&fp.ID, &fp.DomainID, &fp.DisplayName, &fp.ProfileID, &fp.FeatureID, &raw, &typeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FeatureProfile{}, err
		}
		return models.FeatureProfile{}, dbErr("scan feature profile", err)
	}

	featureType, err := models.FeatureTypeFromString(typeName)
	if err != nil {
		return models.FeatureProfile{}, models.DatabaseErrorf("stored feature type %q unknown", typeName)
	}
	fp.Config, err = models.ParseFeatureProfileConfig(featureType, raw)
	if err != nil {
		return models.FeatureProfile{}, err
	}
	return fp, nil
}

func collectFeatureProfiles(rows pgx.Rows) ([]models.FeatureProfile, error) {
	defer rows.Close()

	featureProfiles := make([]models.FeatureProfile, 0)
	for rows.Next() {
		fp, err := scanFeatureProfile(rows)
		if err != nil {
			return nil, err
		}
		featureProfiles = append(featureProfiles, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("iterate feature profiles", err)
	}
	return featureProfiles, nil
}
