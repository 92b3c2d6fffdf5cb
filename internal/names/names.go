// Package names implements the opaque resource-name scheme used as the
// external handle for every entity: alternating literal segments and
// identifiers, e.g. "profiles/<id>/features/<id>". Identifiers are UUIDs
// encoded with the URL-safe, unpadded base64 alphabet — always exactly 22
// characters — so names are short, copy-pasteable, and reveal nothing about
// row ordering.
//
// Parse and String are mutual inverses for every well-formed name, and both
// are pure: no I/O, no state.
package names

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	"github.com/lalith-99/luxgrid/internal/models"
)

// Strict decoding rejects non-zero trailing padding bits, so every UUID has
// exactly one 22-character spelling and parse/render stay mutual inverses.
var encoding = base64.RawURLEncoding.Strict()

// Pair is one (literal segment, identifier) element of a resource name.
type Pair struct {
	Key string
	ID  uuid.UUID
}

// ResourceName is an ordered sequence of (literal, identifier) pairs.
type ResourceName struct {
	pairs []Pair
}

// New builds a resource name from pairs, in order.
func New(pairs ...Pair) ResourceName {
	return ResourceName{pairs: pairs}
}

// Parse validates name against a template of literal segments and "{}"
// placeholders ("profiles/{}/features/{}") and extracts the identifiers.
// It fails with models.ErrInvalidName unless the segment counts match, every
// literal matches byte-for-byte, and every placeholder decodes to a UUID.
func Parse(name, template string) (ResourceName, error) {
	if strings.Count(name, "/") != strings.Count(template, "/") {
		return ResourceName{}, models.ErrInvalidName
	}

	var pairs []Pair
	lastKey := ""
	haveKey := false

	nameSegs := strings.Split(name, "/")
	tmplSegs := strings.Split(template, "/")

	for i, tmpl := range tmplSegs {
		seg := nameSegs[i]

		if tmpl == "{}" {
			if !haveKey {
				return ResourceName{}, models.ErrInvalidName
			}
			raw, err := encoding.DecodeString(seg)
			if err != nil {
				return ResourceName{}, models.ErrInvalidName
			}
			id, err := uuid.FromBytes(raw)
			if err != nil {
				return ResourceName{}, models.ErrInvalidName
			}
			pairs = append(pairs, Pair{Key: lastKey, ID: id})
			haveKey = false
			continue
		}

		if seg != tmpl {
			return ResourceName{}, models.ErrInvalidName
		}
		lastKey = seg
		haveKey = true
	}

	return ResourceName{pairs: pairs}, nil
}

// Get returns the identifier stored under a literal segment. A missing key
// means the name did not match the template the caller expected.
func (n ResourceName) Get(key string) (uuid.UUID, error) {
	for _, p := range n.pairs {
		if p.Key == key {
			return p.ID, nil
		}
	}
	return uuid.Nil, models.ErrInvalidName
}

// String renders the name back to its wire form.
func (n ResourceName) String() string {
	segs := make([]string, 0, len(n.pairs))
	for _, p := range n.pairs {
		segs = append(segs, p.Key+"/"+encoding.EncodeToString(p.ID[:]))
	}
	return strings.Join(segs, "/")
}
