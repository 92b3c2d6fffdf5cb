package models

import (
	"time"

	"github.com/google/uuid"
)

// Domain is the top-level isolation boundary (one grow operation, lab, or
// customer account). Every device, config, feature, and profile belongs to
// exactly one domain. This is what makes the system "multi-tenant": operator
// A never sees operator B's hardware.
//
// The domain ID is never client-controlled — it comes from the verified JWT,
// and every repository query filters on it.
type Domain struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Device is a physical controller registered in a domain.
//
// Why a Mac type and not a plain string?
//   - MACs arrive in every imaginable casing. Normalizing once at the edge
//     (ParseMac) means the per-domain uniqueness check compares canonical
//     values, not whatever the client typed.
//
// Timezone is an IANA zone name ("America/Montreal"). It is validated before
// any database access; the row never holds an unparseable zone.
type Device struct {
	ID          uuid.UUID `json:"id"`
	DomainID    uuid.UUID `json:"domain_id"`
	DisplayName string    `json:"display_name"`
	Mac         Mac       `json:"mac"`
	ConfigID    uuid.UUID `json:"config_id"`
	Description string    `json:"description"`
	Timezone    string    `json:"timezone"`
}

// Config is a named lighting configuration that devices point at. It is
// referenced by zero or more devices and cannot be deleted while referenced.
//
// Light is stored as JSONB but held parsed in memory: structural problems
// with the payload surface when the row is read (as a database error, since
// the row got out of sync with itself), never when it is serialized back out.
type Config struct {
	ID          uuid.UUID   `json:"id"`
	DomainID    uuid.UUID   `json:"domain_id"`
	DisplayName string      `json:"display_name"`
	Light       LightConfig `json:"light"`
}

// FeatureType is the closed set of capability kinds a profile can configure.
// The zero value is deliberately invalid: an unset discriminator is a client
// error, never silently defaulted.
type FeatureType int32

const (
	FeatureTypeUnspecified FeatureType = 0
	FeatureTypeLight       FeatureType = 1
)

// ParseFeatureType validates a wire discriminator against the closed set.
func ParseFeatureType(v int32) (FeatureType, error) {
	switch FeatureType(v) {
	case FeatureTypeLight:
		return FeatureTypeLight, nil
	case FeatureTypeUnspecified:
		return FeatureTypeUnspecified, &ValueError{Value: "Unspecified", Type: "FeatureType"}
	default:
		return FeatureTypeUnspecified, &ValueError{Value: int32String(v), Type: "FeatureType"}
	}
}

// String returns the storage representation ("light"). Only valid variants
// have one; callers must have gone through ParseFeatureType first.
func (t FeatureType) String() string {
	switch t {
	case FeatureTypeLight:
		return "light"
	default:
		return "unspecified"
	}
}

// FeatureTypeFromString maps the storage representation back to the enum.
func FeatureTypeFromString(s string) (FeatureType, error) {
	switch s {
	case "light":
		return FeatureTypeLight, nil
	default:
		return FeatureTypeUnspecified, &ValueError{Value: s, Type: "FeatureType"}
	}
}

// Feature is a capability a domain's devices can expose (currently only
// lighting). Its type decides how FeatureProfile payloads referencing it are
// interpreted.
type Feature struct {
	ID          uuid.UUID   `json:"id"`
	DomainID    uuid.UUID   `json:"domain_id"`
	DisplayName string      `json:"display_name"`
	Type        FeatureType `json:"feature_type"`
}

// Profile is a named bundle of per-feature configuration. Deleting a profile
// removes its feature profiles with it (ON DELETE CASCADE at the schema).
type Profile struct {
	ID              uuid.UUID        `json:"id"`
	DomainID        uuid.UUID        `json:"domain_id"`
	DisplayName     string           `json:"display_name"`
	FeatureProfiles []FeatureProfile `json:"feature_profiles"`
}

// FeatureProfile holds the actual typed configuration for one feature within
// one profile.
//
// The interesting part is Config: the JSON payload's meaning depends on the
// feature_type of the *referenced* Feature, not on anything stored in this
// row. Repositories fetch the type via a join and decode accordingly.
type FeatureProfile struct {
	ID          uuid.UUID            `json:"id"`
	DomainID    uuid.UUID            `json:"domain_id"`
	DisplayName string               `json:"display_name"`
	ProfileID   uuid.UUID            `json:"profile_id"`
	FeatureID   uuid.UUID            `json:"feature_id"`
	Config      FeatureProfileConfig `json:"config"`
}
