package wire

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/names"
)

var testDomainID = uuid.MustParse("8d6f5380-0bd0-4ee7-a6cd-9e41aba7b712")

func validWireDevice() Device {
	return Device{
		Name:        "devices/QasxIsREQqivPuKUwY--OA",
		DisplayName: "rack 3 controller",
		Mac:         "AA:BB:CC:dd:ee:ff",
		ConfigName:  "config/dM9s94plQJKyQAcKAncw5Q",
		Description: "north wall",
		Timezone:    "America/Montreal",
	}
}

func TestDeviceFromWire(t *testing.T) {
	m, err := DeviceFromWire(validWireDevice(), testDomainID, false)
	require.NoError(t, err)

	assert.Equal(t, uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38"), m.ID)
	assert.Equal(t, testDomainID, m.DomainID)
	assert.Equal(t, models.Mac("aa:bb:cc:dd:ee:ff"), m.Mac)
	assert.Equal(t, uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5"), m.ConfigID)
	assert.Equal(t, "America/Montreal", m.Timezone)
}

func TestDeviceFromWireStripsID(t *testing.T) {
	m, err := DeviceFromWire(validWireDevice(), testDomainID, true)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, m.ID)
}

func TestDeviceFromWireEmptyName(t *testing.T) {
	w := validWireDevice()
	w.Name = ""
	m, err := DeviceFromWire(w, testDomainID, false)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, m.ID)
}

func TestDeviceFromWireBadName(t *testing.T) {
	w := validWireDevice()
	w.Name = "config/QasxIsREQqivPuKUwY--OA"
	_, err := DeviceFromWire(w, testDomainID, false)
	assert.ErrorIs(t, err, models.ErrInvalidDeviceID)
}

func TestDeviceFromWireBadMac(t *testing.T) {
	w := validWireDevice()
	w.Mac = "not-a-mac"
	_, err := DeviceFromWire(w, testDomainID, false)
	assert.ErrorIs(t, err, models.ErrInvalidMac)
}

func TestDeviceFromWireBadConfigName(t *testing.T) {
	w := validWireDevice()
	w.ConfigName = "devices/dM9s94plQJKyQAcKAncw5Q"
	_, err := DeviceFromWire(w, testDomainID, false)
	assert.ErrorIs(t, err, models.ErrInvalidConfigID)

	// A config reference is mandatory, so empty fails the same way.
	w.ConfigName = ""
	_, err = DeviceFromWire(w, testDomainID, false)
	assert.ErrorIs(t, err, models.ErrInvalidConfigID)
}

func TestDeviceFromWireBadTimezone(t *testing.T) {
	w := validWireDevice()
	w.Timezone = "Rohan/Edoras"
	_, err := DeviceFromWire(w, testDomainID, false)
	assert.ErrorIs(t, err, models.ErrInvalidTimezone)

	w.Timezone = ""
	_, err = DeviceFromWire(w, testDomainID, false)
	assert.ErrorIs(t, err, models.ErrInvalidTimezone)
}

func TestDeviceRoundTrip(t *testing.T) {
	w := validWireDevice()
	w.Mac = "aa:bb:cc:dd:ee:ff"
	m, err := DeviceFromWire(w, testDomainID, false)
	require.NoError(t, err)
	assert.Equal(t, w, DeviceToWire(m))
}

func TestConfigFromWire(t *testing.T) {
	w := Config{
		Name:        "config/dM9s94plQJKyQAcKAncw5Q",
		DisplayName: "veg stage",
		LightConfig: &models.LightConfig{
			Luminaires: []models.Luminaire{{
				Port:   1,
				UsePWM: true,
				PhotoPeriod: []models.DailySchedule{{
					Start:     models.TimeOfDay{Hour: 6},
					Stop:      models.TimeOfDay{Hour: 22},
					Intensity: 80,
				}},
			}},
		},
	}

	m, err := ConfigFromWire(w, testDomainID, false)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5"), m.ID)
	assert.Equal(t, testDomainID, m.DomainID)
	assert.Len(t, m.Light.Luminaires, 1)

	assert.Equal(t, w, ConfigToWire(m))
}

func TestConfigFromWireMissingPayload(t *testing.T) {
	_, err := ConfigFromWire(Config{Name: "", DisplayName: "empty"}, testDomainID, true)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestFeatureFromWire(t *testing.T) {
	w := Feature{
		Name:        "features/lHQ-oH4nRuuHNXlaG2NYGA",
		DisplayName: "lighting",
		FeatureType: 1,
	}
	m, err := FeatureFromWire(w, testDomainID, false)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("94743ea0-7e27-46eb-8735-795a1b635818"), m.ID)
	assert.Equal(t, models.FeatureTypeLight, m.Type)

	assert.Equal(t, w, FeatureToWire(m))
}

func TestFeatureFromWireRejectsUnspecifiedType(t *testing.T) {
	w := Feature{DisplayName: "lighting", FeatureType: 0}
	_, err := FeatureFromWire(w, testDomainID, true)

	var verr *models.ValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Unspecified", verr.Value)
	assert.Equal(t, "FeatureType", verr.Type)
}

func TestFeatureFromWireRejectsUnknownType(t *testing.T) {
	w := Feature{DisplayName: "lighting", FeatureType: 999}
	_, err := FeatureFromWire(w, testDomainID, true)

	var verr *models.ValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "999", verr.Value)
}

func TestFeatureProfileFromWire(t *testing.T) {
	w := FeatureProfile{
		Name:        "profiles/QasxIsREQqivPuKUwY--OA/features/dM9s94plQJKyQAcKAncw5Q",
		DisplayName: "bloom lights",
		FeatureName: "features/lHQ-oH4nRuuHNXlaG2NYGA",
		LightProfile: &models.LightProfile{
			PhotoPeriod: []models.DailySchedule{{
				Start:     models.TimeOfDay{Hour: 8},
				Stop:      models.TimeOfDay{Hour: 20},
				Intensity: 100,
			}},
		},
	}

	m, err := FeatureProfileFromWire(w, testDomainID, false)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38"), m.ProfileID)
	assert.Equal(t, uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5"), m.ID)
	assert.Equal(t, uuid.MustParse("94743ea0-7e27-46eb-8735-795a1b635818"), m.FeatureID)
	assert.Equal(t, models.FeatureTypeLight, m.Config.Type)

	assert.Equal(t, w, FeatureProfileToWire(m))
}

func TestFeatureProfileFromWireMissingConfig(t *testing.T) {
	w := FeatureProfile{
		DisplayName: "bloom lights",
		FeatureName: "features/lHQ-oH4nRuuHNXlaG2NYGA",
	}
	_, err := FeatureProfileFromWire(w, testDomainID, true)

	var verr *models.ValueError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "None", verr.Value)
	assert.Equal(t, "FeatureProfile.config", verr.Type)
}

func TestProfileFromWireStripCascades(t *testing.T) {
	w := Profile{
		Name:        "profiles/QasxIsREQqivPuKUwY--OA",
		DisplayName: "bloom",
		FeatureProfiles: []FeatureProfile{{
			Name:         "profiles/QasxIsREQqivPuKUwY--OA/features/dM9s94plQJKyQAcKAncw5Q",
			DisplayName:  "bloom lights",
			FeatureName:  "features/lHQ-oH4nRuuHNXlaG2NYGA",
			LightProfile: &models.LightProfile{},
		}},
	}

	m, err := ProfileFromWire(w, testDomainID, true)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, m.ID)
	require.Len(t, m.FeatureProfiles, 1)
	assert.Equal(t, uuid.Nil, m.FeatureProfiles[0].ID)
	assert.Equal(t, uuid.Nil, m.FeatureProfiles[0].ProfileID)
	// The feature reference is never stripped: it points at an existing entity.
	assert.NotEqual(t, uuid.Nil, m.FeatureProfiles[0].FeatureID)
}

func TestProfileRoundTrip(t *testing.T) {
	profileID := uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38")
	m := models.Profile{
		ID:          profileID,
		DomainID:    testDomainID,
		DisplayName: "bloom",
		FeatureProfiles: []models.FeatureProfile{{
			ID:          uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5"),
			DomainID:    testDomainID,
			DisplayName: "bloom lights",
			ProfileID:   profileID,
			FeatureID:   uuid.MustParse("94743ea0-7e27-46eb-8735-795a1b635818"),
			Config:      models.NewLightProfileConfig(models.LightProfile{}),
		}},
	}

	w := ProfileToWire(m)
	assert.Equal(t, names.ProfileName(profileID), w.Name)

	got, err := ProfileFromWire(w, testDomainID, false)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}
