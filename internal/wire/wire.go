// Package wire defines the typed messages exchanged with clients and the
// translation to and from validated internal models.
//
// Why a separate package and not json tags on the models?
//   - The wire message is NOT the same shape as the row. Clients speak in
//     resource names ("devices/…", "config/…"); models hold UUIDs. Clients
//     must never control ids or domain ownership; models carry both.
//   - Translation is where structural invariants are enforced: names parse
//     against their templates, enum discriminators are validated against the
//     closed set, and discriminated payloads must actually be present.
//
// FromWire functions take a stripIDs flag: on create the server assigns
// identifiers, so whatever the client put in the name field is discarded.
// ToWire functions are total — a model that made it past FromWire and the
// repositories is well-formed by construction.
package wire

import "github.com/lalith-99/luxgrid/internal/models"

// Device is the wire form of a registered controller.
type Device struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Mac         string `json:"mac"`
	ConfigName  string `json:"config_name"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
}

// Config is the wire form of a lighting configuration.
type Config struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"display_name"`
	LightConfig *models.LightConfig `json:"light_config"`
}

// Feature is the wire form of a capability type. FeatureType is a numeric
// discriminator: 0 is unspecified (always rejected), 1 is light.
type Feature struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	FeatureType int32  `json:"feature_type"`
}

// FeatureProfile is the wire form of one feature's configuration within a
// profile. Exactly one of the config variants must be set; which one must
// agree with the referenced feature's type.
type FeatureProfile struct {
	Name         string               `json:"name"`
	DisplayName  string               `json:"display_name"`
	FeatureName  string               `json:"feature_name"`
	LightProfile *models.LightProfile `json:"light_profile,omitempty"`
}

// Profile is the wire form of a named bundle of feature profiles.
type Profile struct {
	Name            string           `json:"name"`
	DisplayName     string           `json:"display_name"`
	FeatureProfiles []FeatureProfile `json:"feature_profiles"`
}

// ListDevicesResponse et al. wrap list results so the top-level JSON value is
// an object, which leaves room to add paging later without breaking clients.
type ListDevicesResponse struct {
	Devices []Device `json:"devices"`
}

type ListConfigsResponse struct {
	Configs []Config `json:"configs"`
}

type ListFeaturesResponse struct {
	Features []Feature `json:"features"`
}

type ListProfilesResponse struct {
	Profiles []Profile `json:"profiles"`
}
