package names

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalith-99/luxgrid/internal/models"
)

func TestParseWithSingleID(t *testing.T) {
	n, err := Parse("devices/QasxIsREQqivPuKUwY--OA", "devices/{}")
	require.NoError(t, err)

	id, err := n.Get("devices")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38"), id)
}

func TestParseWithManyIDs(t *testing.T) {
	n, err := Parse(
		"profiles/QasxIsREQqivPuKUwY--OA/features/dM9s94plQJKyQAcKAncw5Q",
		"profiles/{}/features/{}",
	)
	require.NoError(t, err)

	profileID, err := n.Get("profiles")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38"), profileID)

	featureID, err := n.Get("features")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5"), featureID)
}

func TestParseWithMismatchedLiteral(t *testing.T) {
	_, err := Parse("devices/QasxIsREQqivPuKUwY--OA", "features/{}")
	assert.ErrorIs(t, err, models.ErrInvalidName)
}

func TestParseWithInvalidID(t *testing.T) {
	_, err := Parse("features/not-a-uuid", "features/{}")
	assert.ErrorIs(t, err, models.ErrInvalidName)

	// Empty identifier segment.
	_, err = Parse("features//info", "features/{}/info")
	assert.ErrorIs(t, err, models.ErrInvalidName)
}

func TestParseRejectsNonCanonicalID(t *testing.T) {
	// "…OB" decodes to the same 16 bytes as "…OA" under a lenient decoder;
	// only the canonical spelling is accepted, so names stay unique handles.
	_, err := Parse("devices/QasxIsREQqivPuKUwY--OB", "devices/{}")
	assert.ErrorIs(t, err, models.ErrInvalidName)

	n, err := Parse("devices/QasxIsREQqivPuKUwY--OA", "devices/{}")
	require.NoError(t, err)
	assert.Equal(t, "devices/QasxIsREQqivPuKUwY--OA", n.String())
}

func TestParseWithWrongSegmentCount(t *testing.T) {
	for _, name := range []string{"features/", "features", "/"} {
		_, err := Parse(name, "features/{}")
		assert.ErrorIs(t, err, models.ErrInvalidName, "name %q", name)
	}
}

func TestParseEmpty(t *testing.T) {
	n, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, "", n.String())

	// No pairs were captured, so lookups fail.
	_, err = n.Get("devices")
	assert.ErrorIs(t, err, models.ErrInvalidName)
}

func TestStringify(t *testing.T) {
	n := New(
		Pair{Key: "profiles", ID: uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38")},
		Pair{Key: "features", ID: uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5")},
	)
	assert.Equal(t, "profiles/QasxIsREQqivPuKUwY--OA/features/dM9s94plQJKyQAcKAncw5Q", n.String())
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		template string
	}{
		{"devices/QasxIsREQqivPuKUwY--OA", "devices/{}"},
		{"config/dM9s94plQJKyQAcKAncw5Q", "config/{}"},
		{"profiles/QasxIsREQqivPuKUwY--OA/features/dM9s94plQJKyQAcKAncw5Q", "profiles/{}/features/{}"},
	}
	for _, tc := range cases {
		n, err := Parse(tc.name, tc.template)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.name, n.String())
	}
}

func TestTypedNames(t *testing.T) {
	id := uuid.MustParse("94743ea0-7e27-46eb-8735-795a1b635818")

	assert.Equal(t, "features/lHQ-oH4nRuuHNXlaG2NYGA", FeatureName(id))

	parsed, err := ParseFeatureName("features/lHQ-oH4nRuuHNXlaG2NYGA")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	// A device name is not a feature name.
	_, err = ParseFeatureName("devices/lHQ-oH4nRuuHNXlaG2NYGA")
	assert.ErrorIs(t, err, models.ErrInvalidName)
}

func TestFeatureProfileName(t *testing.T) {
	profileID := uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38")
	fpID := uuid.MustParse("74cf6cf7-8a65-4092-b240-070a027730e5")

	name := FeatureProfileName(profileID, fpID)
	assert.Equal(t, "profiles/QasxIsREQqivPuKUwY--OA/features/dM9s94plQJKyQAcKAncw5Q", name)

	gotProfile, gotFP, err := ParseFeatureProfileName(name)
	require.NoError(t, err)
	assert.Equal(t, profileID, gotProfile)
	assert.Equal(t, fpID, gotFP)
}

func TestEncodeDecodeID(t *testing.T) {
	id := uuid.MustParse("41ab3122-c444-42a8-af3e-e294c18fbe38")

	encoded := EncodeID(id)
	assert.Equal(t, "QasxIsREQqivPuKUwY--OA", encoded)
	assert.Len(t, encoded, 22)

	decoded, err := DecodeID(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	_, err = DecodeID("nope")
	assert.ErrorIs(t, err, models.ErrInvalidName)

	// Non-canonical trailing bits are rejected, not silently normalized.
	_, err = DecodeID("QasxIsREQqivPuKUwY--OB")
	assert.ErrorIs(t, err, models.ErrInvalidName)
}
