package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/repository"
)

// profileStore treats a profile as an aggregate: fetches return it with its
// feature profiles attached, and Create inserts the nested entries in the
// same transaction so a half-written profile never becomes visible.
type profileStore struct {
	*DomainDB
}

func (s *profileStore) Create(ctx context.Context, p models.Profile) (models.Profile, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Profile{}, dbErr("begin profile insert", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO profiles (domain_id, display_name) VALUES ($1, $2) RETURNING id`,
		s.domainID, p.DisplayName).Scan(&id)
	if err != nil {
		return models.Profile{}, dbErr("insert profile", err)
	}

	stored := models.Profile{
		ID:              id,
		DomainID:        s.domainID,
		DisplayName:     p.DisplayName,
		FeatureProfiles: make([]models.FeatureProfile, 0, len(p.FeatureProfiles)),
	}
	for _, fp := range p.FeatureProfiles {
		fp.ProfileID = id
		created, err := createFeatureProfile(ctx, tx, s.domainID, fp)
		if err != nil {
			return models.Profile{}, err
		}
		stored.FeatureProfiles = append(stored.FeatureProfiles, created)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Profile{}, dbErr("commit profile insert", err)
	}
	return stored, nil
}

func (s *profileStore) FetchOne(ctx context.Context, id uuid.UUID) (models.Profile, error) {
	query := `
		SELECT id, domain_id, display_name
		FROM profiles
		WHERE id = $1 AND domain_id = $2`

	var p models.Profile
	err := s.pool.QueryRow(ctx, query, id, s.domainID).Scan(&p.ID, &p.DomainID, &p.DisplayName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, models.NoSuchResource("profile", id)
		}
		return models.Profile{}, dbErr("get profile", err)
	}

	fps := featureProfileStore{s.DomainDB}
	p.FeatureProfiles, err = fps.FetchAll(ctx, id, repository.ListFilter{})
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *profileStore) FetchAll(ctx context.Context, filter repository.ListFilter) ([]models.Profile, error) {
	query := `
		SELECT id, domain_id, display_name
		FROM profiles
		WHERE domain_id = $1 AND ($2 = '' OR display_name LIKE '%' || $2 || '%')
		ORDER BY display_name, id`

	rows, err := s.pool.Query(ctx, query, s.domainID, filter.DisplayName)
	if err != nil {
		return nil, dbErr("list profiles", err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.DomainID, &p.DisplayName); err != nil {
			return nil, dbErr("scan profile", err)
		}
		p.FeatureProfiles = make([]models.FeatureProfile, 0)
		profiles = append(profiles, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("iterate profiles", err)
	}

	// One batched query for all nested entries instead of one per profile.
	fps := featureProfileStore{s.DomainDB}
	byProfile, err := fps.ListByProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if nested, ok := byProfile[profiles[i].ID]; ok {
			profiles[i].FeatureProfiles = nested
		}
	}
	return profiles, nil
}

// Update changes the profile's own fields only. Nested feature profiles are
// managed through their own endpoints; whatever the client attached to the
// update message is ignored.
func (s *profileStore) Update(ctx context.Context, p models.Profile) (models.Profile, error) {
	query := `
		UPDATE profiles
		SET display_name = $3
		WHERE id = $1 AND domain_id = $2
		RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query, p.ID, s.domainID, p.DisplayName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, models.NoSuchResource("profile", p.ID)
		}
		return models.Profile{}, dbErr("update profile", err)
	}

	return s.FetchOne(ctx, id)
}

// Delete removes the profile; the schema cascades to its feature profiles.
func (s *profileStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM profiles WHERE id = $1 AND domain_id = $2`, id, s.domainID)
	if err != nil {
		return dbErr("delete profile", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NoSuchResource("profile", id)
	}
	return nil
}
