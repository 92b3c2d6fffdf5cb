// Package repository defines the storage interfaces the API layer depends on.
// The postgres subpackage implements them; tests can substitute fakes.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lalith-99/luxgrid/internal/models"
)

// ListFilter narrows FetchAll results. Zero value means no filtering.
type ListFilter struct {
	// DisplayName, when non-empty, keeps rows whose display name contains it
	// (case-sensitive).
	DisplayName string
}

// CRUD is the access pattern every entity shares. Implementations are already
// scoped to one domain (see Scope), so no method takes a domain id: it is
// impossible to express a cross-tenant query through this interface.
//
// Create ignores any id on the value and returns the stored entity with its
// server-assigned id. Update addresses the row by the id on the value and
// returns the entity as stored. Fetch and Delete report a missing row as a
// NotFoundError carrying the entity kind and id.
type CRUD[T any] interface {
	Create(ctx context.Context, v T) (T, error)
	FetchOne(ctx context.Context, id uuid.UUID) (T, error)
	FetchAll(ctx context.Context, filter ListFilter) ([]T, error)
	Update(ctx context.Context, v T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeviceRepository adds the device-specific lookups on top of plain CRUD.
type DeviceRepository interface {
	CRUD[models.Device]

	// FetchByMac finds the device registered under a normalized MAC.
	FetchByMac(ctx context.Context, mac models.Mac) (models.Device, error)

	// FetchByConfig lists the devices referencing a config.
	FetchByConfig(ctx context.Context, configID uuid.UUID, filter ListFilter) ([]models.Device, error)
}

// ConfigRepository is plain CRUD; the referenced-config delete guard lives in
// the implementation's Delete.
type ConfigRepository interface {
	CRUD[models.Config]
}

// FeatureRepository is plain CRUD over features.
type FeatureRepository interface {
	CRUD[models.Feature]
}

// ProfileRepository is CRUD over profiles as aggregates: fetches include the
// nested feature profiles, Create inserts them, and Delete removes them.
type ProfileRepository interface {
	CRUD[models.Profile]
}

// FeatureProfileRepository manages the entries nested under a profile. All
// methods are additionally scoped by the owning profile, matching the
// two-level resource name.
type FeatureProfileRepository interface {
	Create(ctx context.Context, v models.FeatureProfile) (models.FeatureProfile, error)
	FetchOne(ctx context.Context, profileID, id uuid.UUID) (models.FeatureProfile, error)
	FetchAll(ctx context.Context, profileID uuid.UUID, filter ListFilter) ([]models.FeatureProfile, error)
	Update(ctx context.Context, v models.FeatureProfile) (models.FeatureProfile, error)
	Delete(ctx context.Context, profileID, id uuid.UUID) error

	// ListByProfiles fetches the entries of many profiles in one query, for
	// assembling profile lists without a query per profile.
	ListByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]models.FeatureProfile, error)
}

// Scope is one tenant's view of the store. Everything reachable from it is
// filtered to that tenant's domain.
type Scope interface {
	Devices() DeviceRepository
	Configs() ConfigRepository
	Features() FeatureRepository
	Profiles() ProfileRepository
	FeatureProfiles() FeatureProfileRepository
}

// Store hands out per-domain scopes. The domain id must come from verified
// auth claims, never from request content.
type Store interface {
	Domain(domainID uuid.UUID) Scope
}

// DomainRepository manages the tenants themselves. It is used by the admin
// tooling, not by the tenant-facing API.
type DomainRepository interface {
	Create(ctx context.Context, displayName string) (models.Domain, error)
	FetchOne(ctx context.Context, id uuid.UUID) (models.Domain, error)
	FetchAll(ctx context.Context) ([]models.Domain, error)
}
