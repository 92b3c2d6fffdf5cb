package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/repository"
)

type deviceStore struct {
	*DomainDB
}

const deviceColumns = "id, domain_id, display_name, mac, config_id, description, timezone"

func (s *deviceStore) Create(ctx context.Context, d models.Device) (models.Device, error) {
	if err := s.checkConfigOwned(ctx, d.ConfigID); err != nil {
		return models.Device{}, err
	}

	query := `
		INSERT INTO device (domain_id, display_name, mac, config_id, description, timezone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + deviceColumns

	row := s.pool.QueryRow(ctx, query,
		s.domainID, d.DisplayName, d.Mac, d.ConfigID, d.Description, d.Timezone)

	out, err := scanDevice(row)
	if err != nil {
		// The UNIQUE (domain_id, mac) constraint is the authority on
		// duplicates — no pre-check, so two concurrent registrations of the
		// same MAC cannot both succeed.
		if isUniqueViolation(err) {
			return models.Device{}, models.ErrMacConflict
		}
		return models.Device{}, dbErr("insert device", err)
	}
	return out, nil
}

func (s *deviceStore) FetchOne(ctx context.Context, id uuid.UUID) (models.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM device WHERE id = $1 AND domain_id = $2`

	out, err := scanDevice(s.pool.QueryRow(ctx, query, id, s.domainID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Device{}, models.NoSuchResource("device", id)
		}
		return models.Device{}, dbErr("get device", err)
	}
	return out, nil
}

func (s *deviceStore) FetchAll(ctx context.Context, filter repository.ListFilter) ([]models.Device, error) {
	query := `
		SELECT ` + deviceColumns + `
		FROM device
		WHERE domain_id = $1 AND ($2 = '' OR display_name LIKE '%' || $2 || '%')
		ORDER BY display_name, id`

	rows, err := s.pool.Query(ctx, query, s.domainID, filter.DisplayName)
	if err != nil {
		return nil, dbErr("list devices", err)
	}
	return collectDevices(rows)
}

func (s *deviceStore) FetchByMac(ctx context.Context, mac models.Mac) (models.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM device WHERE domain_id = $1 AND mac = $2`

	out, err := scanDevice(s.pool.QueryRow(ctx, query, s.domainID, mac))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Device{}, models.NoSuchResourceKey("device", string(mac))
		}
		return models.Device{}, dbErr("get device by mac", err)
	}
	return out, nil
}

func (s *deviceStore) FetchByConfig(ctx context.Context, configID uuid.UUID, filter repository.ListFilter) ([]models.Device, error) {
	query := `
		SELECT ` + deviceColumns + `
		FROM device
		WHERE domain_id = $1 AND config_id = $2 AND ($3 = '' OR display_name LIKE '%' || $3 || '%')
		ORDER BY display_name, id`

	rows, err := s.pool.Query(ctx, query, s.domainID, configID, filter.DisplayName)
	if err != nil {
		return nil, dbErr("list devices by config", err)
	}
	return collectDevices(rows)
}

func (s *deviceStore) Update(ctx context.Context, d models.Device) (models.Device, error) {
	if err := s.checkConfigOwned(ctx, d.ConfigID); err != nil {
		return models.Device{}, err
	}

	query := `
		UPDATE device
		SET display_name = $3, mac = $4, config_id = $5, description = $6, timezone = $7
		WHERE id = $1 AND domain_id = $2
		RETURNING ` + deviceColumns

	row := s.pool.QueryRow(ctx, query,
		d.ID, s.domainID, d.DisplayName, d.Mac, d.ConfigID, d.Description, d.Timezone)

	out, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Device{}, models.NoSuchResource("device", d.ID)
		}
		// Keeping its own MAC never trips this: the conflicting row would be
		// the row being updated.
		if isUniqueViolation(err) {
			return models.Device{}, models.ErrMacConflict
		}
		return models.Device{}, dbErr("update device", err)
	}
	return out, nil
}

func (s *deviceStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM device WHERE id = $1 AND domain_id = $2`, id, s.domainID)
	if err != nil {
		return dbErr("delete device", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NoSuchResource("device", id)
	}
	return nil
}

// checkConfigOwned verifies the referenced config exists in this domain.
// The FK alone is not enough: it would accept another tenant's config id.
func (s *deviceStore) checkConfigOwned(ctx context.Context, configID uuid.UUID) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM config WHERE id = $1 AND domain_id = $2)`,
		configID, s.domainID).Scan(&exists)
	if err != nil {
		return dbErr("check config reference", err)
	}
	if !exists {
		return models.NoSuchResource("config", configID)
	}
	return nil
}

func scanDevice(row pgx.Row) (models.Device, error) {
	var d models.Device
	err := row.Scan(
		&d.ID,
		&d.DomainID,
		&d.DisplayName,
		&d.Mac,
		&d.ConfigID,
		&d.Description,
		&d.Timezone,
	)
	return d, err
}

func collectDevices(rows pgx.Rows) ([]models.Device, error) {
	defer rows.Close()

	devices := make([]models.Device, 0)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, dbErr("scan device", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("iterate devices", err)
	}
	return devices, nil
}
