package models

import "encoding/json"

// Lighting payloads. These structs are both the stored JSONB shape and the
// wire shape — the payload passes through the API verbatim, so the JSON tags
// here (camelCase, matching what controllers already consume) are the single
// source of truth for it.

// TimeOfDay is a wall-clock instant within the device's own timezone.
type TimeOfDay struct {
	Hour   int32 `json:"hour"`
	Minute int32 `json:"minute"`
	Second int32 `json:"second"`
}

// DailySchedule is one photoperiod window: lights at the given intensity
// between start and stop, every day.
type DailySchedule struct {
	Start     TimeOfDay `json:"start"`
	Stop      TimeOfDay `json:"stop"`
	Intensity int32     `json:"intensity"`
}

// Luminaire describes one light output port on a controller.
type Luminaire struct {
	Port        int32           `json:"port"`
	UsePWM      bool            `json:"usePwm"`
	PhotoPeriod []DailySchedule `json:"photoPeriod"`
}

// LightConfig is the hardware-level lighting configuration attached to a
// Config entity.
type LightConfig struct {
	Luminaires []Luminaire `json:"luminaires"`
}

// LightProfile is the per-feature lighting schedule carried by a
// FeatureProfile whose feature has FeatureTypeLight.
type LightProfile struct {
	PhotoPeriod []DailySchedule `json:"photoPeriod"`
}

// FeatureProfileConfig is a tagged union: exactly one variant is set, and
// which one is decided by the feature_type of the referenced Feature — a
// foreign discriminator, fetched via join, never assumed.
type FeatureProfileConfig struct {
	Type  FeatureType
	Light *LightProfile
}

// NewLightProfileConfig builds the Light variant.
func NewLightProfileConfig(p LightProfile) FeatureProfileConfig {
	return FeatureProfileConfig{Type: FeatureTypeLight, Light: &p}
}

// MarshalPayload serializes the active variant for storage.
func (c FeatureProfileConfig) MarshalPayload() ([]byte, error) {
	switch c.Type {
	case FeatureTypeLight:
		return json.Marshal(c.Light)
	default:
		return nil, &ValueError{Value: c.Type.String(), Type: "FeatureType"}
	}
}

// ParseFeatureProfileConfig decodes a stored payload under the discriminator
// fetched alongside it. A shape mismatch here means the row became
// inconsistent with its own metadata after storage, so it is reported as a
// database error rather than a client validation error.
func ParseFeatureProfileConfig(t FeatureType, raw []byte) (FeatureProfileConfig, error) {
	switch t {
	case FeatureTypeLight:
		var p LightProfile
		if err := json.Unmarshal(raw, &p); err != nil {
			return FeatureProfileConfig{}, DatabaseErrorf("parse light profile payload: %v", err)
		}
		return FeatureProfileConfig{Type: FeatureTypeLight, Light: &p}, nil
	default:
		return FeatureProfileConfig{}, DatabaseErrorf("unknown feature type %d for stored payload", t)
	}
}
