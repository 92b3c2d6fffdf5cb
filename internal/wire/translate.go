package wire

import (
	"time"
	// Embed the IANA zone database so timezone validation does not depend on
	// the host image shipping /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/names"
)

// DeviceFromWire validates a wire device and builds the internal model. All
// checks run before any database access: timezone against the IANA database,
// MAC syntax, and both resource names against their templates.
func DeviceFromWire(w Device, domainID uuid.UUID, stripIDs bool) (models.Device, error) {
	if err := validateTimezone(w.Timezone); err != nil {
		return models.Device{}, err
	}

	var id uuid.UUID
	if !stripIDs && w.Name != "" {
		var err error
		if id, err = names.ParseDeviceName(w.Name); err != nil {
			return models.Device{}, models.ErrInvalidDeviceID
		}
	}

	mac, err := models.ParseMac(w.Mac)
	if err != nil {
		return models.Device{}, err
	}

	configID, err := names.ParseConfigName(w.ConfigName)
	if err != nil {
		return models.Device{}, models.ErrInvalidConfigID
	}

	return models.Device{
		ID:          id,
		DomainID:    domainID,
		DisplayName: w.DisplayName,
		Mac:         mac,
		ConfigID:    configID,
		Description: w.Description,
		Timezone:    w.Timezone,
	}, nil
}

// DeviceToWire renders a stored device back to wire form.
func DeviceToWire(m models.Device) Device {
	return Device{
		Name:        names.DeviceName(m.ID),
		DisplayName: m.DisplayName,
		Mac:         m.Mac.String(),
		ConfigName:  names.ConfigName(m.ConfigID),
		Description: m.Description,
		Timezone:    m.Timezone,
	}
}

// ConfigFromWire validates a wire config. A missing light_config is an
// InvalidConfig error — distinct from a payload that is present but
// malformed, which gin's JSON binding already rejects.
func ConfigFromWire(w Config, domainID uuid.UUID, stripIDs bool) (models.Config, error) {
	var id uuid.UUID
	if !stripIDs && w.Name != "" {
		var err error
		if id, err = names.ParseConfigName(w.Name); err != nil {
			return models.Config{}, models.ErrInvalidConfigID
		}
	}

	if w.LightConfig == nil {
		return models.Config{}, models.ErrInvalidConfig
	}

	return models.Config{
		ID:          id,
		DomainID:    domainID,
		DisplayName: w.DisplayName,
		Light:       *w.LightConfig,
	}, nil
}

func ConfigToWire(m models.Config) Config {
	light := m.Light
	return Config{
		Name:        names.ConfigName(m.ID),
		DisplayName: m.DisplayName,
		LightConfig: &light,
	}
}

// FeatureFromWire validates a wire feature. The discriminator is checked
// against the closed enumeration: unspecified (0) and out-of-range values
// both fail with a ValueError, never a silent default.
func FeatureFromWire(w Feature, domainID uuid.UUID, stripIDs bool) (models.Feature, error) {
	var id uuid.UUID
	if !stripIDs {
		var err error
		if id, err = names.ParseFeatureName(w.Name); err != nil {
			return models.Feature{}, err
		}
	}

	featureType, err := models.ParseFeatureType(w.FeatureType)
	if err != nil {
		return models.Feature{}, err
	}

	return models.Feature{
		ID:          id,
		DomainID:    domainID,
		DisplayName: w.DisplayName,
		Type:        featureType,
	}, nil
}

func FeatureToWire(m models.Feature) Feature {
	return Feature{
		Name:        names.FeatureName(m.ID),
		DisplayName: m.DisplayName,
		FeatureType: int32(m.Type),
	}
}

// FeatureProfileFromWire validates one feature-profile entry. The config is a
// tagged union: the variant present in the message decides the type, and the
// repositories later verify it agrees with the referenced feature.
func FeatureProfileFromWire(w FeatureProfile, domainID uuid.UUID, stripIDs bool) (models.FeatureProfile, error) {
	if w.LightProfile == nil {
		return models.FeatureProfile{}, &models.ValueError{Value: "None", Type: "FeatureProfile.config"}
	}

	var profileID, id uuid.UUID
	if !stripIDs {
		var err error
		if profileID, id, err = names.ParseFeatureProfileName(w.Name); err != nil {
			return models.FeatureProfile{}, err
		}
	}

	featureID, err := names.ParseFeatureName(w.FeatureName)
	if err != nil {
		return models.FeatureProfile{}, err
	}

	return models.FeatureProfile{
		ID:          id,
		DomainID:    domainID,
		DisplayName: w.DisplayName,
		ProfileID:   profileID,
		FeatureID:   featureID,
		Config:      models.NewLightProfileConfig(*w.LightProfile),
	}, nil
}

// FeatureProfileToWire renders a feature profile, exposing the variant that
// matches its stored type.
func FeatureProfileToWire(m models.FeatureProfile) FeatureProfile {
	out := FeatureProfile{
		Name:        names.FeatureProfileName(m.ProfileID, m.ID),
		DisplayName: m.DisplayName,
		FeatureName: names.FeatureName(m.FeatureID),
	}
	if m.Config.Type == models.FeatureTypeLight {
		out.LightProfile = m.Config.Light
	}
	return out
}

// ProfileFromWire validates a wire profile and its nested feature profiles.
// On create, identifiers are stripped from the profile and every nested
// entry alike; the store assigns all of them.
func ProfileFromWire(w Profile, domainID uuid.UUID, stripIDs bool) (models.Profile, error) {
	var id uuid.UUID
	if !stripIDs {
		var err error
		if id, err = names.ParseProfileName(w.Name); err != nil {
			return models.Profile{}, err
		}
	}

	featureProfiles := make([]models.FeatureProfile, 0, len(w.FeatureProfiles))
	for _, fp := range w.FeatureProfiles {
		m, err := FeatureProfileFromWire(fp, domainID, stripIDs)
		if err != nil {
			return models.Profile{}, err
		}
		featureProfiles = append(featureProfiles, m)
	}

	return models.Profile{
		ID:              id,
		DomainID:        domainID,
		DisplayName:     w.DisplayName,
		FeatureProfiles: featureProfiles,
	}, nil
}

func ProfileToWire(m models.Profile) Profile {
	featureProfiles := make([]FeatureProfile, 0, len(m.FeatureProfiles))
	for _, fp := range m.FeatureProfiles {
		featureProfiles = append(featureProfiles, FeatureProfileToWire(fp))
	}
	return Profile{
		Name:            names.ProfileName(m.ID),
		DisplayName:     m.DisplayName,
		FeatureProfiles: featureProfiles,
	}
}

func validateTimezone(tz string) error {
	if tz == "" {
		return models.ErrInvalidTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return models.ErrInvalidTimezone
	}
	return nil
}
