package names

import (
	"github.com/google/uuid"

	"github.com/lalith-99/luxgrid/internal/models"
)

// Typed wrappers so call sites can't mix up which template a name must
// follow. The templates are part of the external API and must not change.

// DeviceName handles "devices/{}".
func DeviceName(id uuid.UUID) string {
	return New(Pair{Key: "devices", ID: id}).String()
}

func ParseDeviceName(name string) (uuid.UUID, error) {
	n, err := Parse(name, "devices/{}")
	if err != nil {
		return uuid.Nil, err
	}
	return n.Get("devices")
}

// ConfigName handles "config/{}". Singular by historical accident, kept for
// interoperability.
func ConfigName(id uuid.UUID) string {
	return New(Pair{Key: "config", ID: id}).String()
}

func ParseConfigName(name string) (uuid.UUID, error) {
	n, err := Parse(name, "config/{}")
	if err != nil {
		return uuid.Nil, err
	}
	return n.Get("config")
}

// FeatureName handles "features/{}".
func FeatureName(id uuid.UUID) string {
	return New(Pair{Key: "features", ID: id}).String()
}

func ParseFeatureName(name string) (uuid.UUID, error) {
	n, err := Parse(name, "features/{}")
	if err != nil {
		return uuid.Nil, err
	}
	return n.Get("features")
}

// ProfileName handles "profiles/{}".
func ProfileName(id uuid.UUID) string {
	return New(Pair{Key: "profiles", ID: id}).String()
}

func ParseProfileName(name string) (uuid.UUID, error) {
	n, err := Parse(name, "profiles/{}")
	if err != nil {
		return uuid.Nil, err
	}
	return n.Get("profiles")
}

// FeatureProfileName handles "profiles/{}/features/{}": the profile that owns
// the entry, then the entry's own id.
func FeatureProfileName(profileID, featureProfileID uuid.UUID) string {
	return New(
		Pair{Key: "profiles", ID: profileID},
		Pair{Key: "features", ID: featureProfileID},
	).String()
}

func ParseFeatureProfileName(name string) (profileID, featureProfileID uuid.UUID, err error) {
	n, err := Parse(name, "profiles/{}/features/{}")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	profileID, err = n.Get("profiles")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	featureProfileID, err = n.Get("features")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return profileID, featureProfileID, nil
}

// EncodeID exposes the bare 22-character identifier encoding, for URL path
// parameters that carry just the id segment.
func EncodeID(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// DecodeID parses a bare identifier segment.
func DecodeID(s string) (uuid.UUID, error) {
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, models.ErrInvalidName
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, models.ErrInvalidName
	}
	return id, nil
}
