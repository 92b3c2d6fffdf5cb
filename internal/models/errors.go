package models

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Error taxonomy for the data-access layer. Validation errors are detected
// before any database access; NotFoundError separates "row absent (or owned
// by another domain)" from every other storage failure, which is wrapped as
// a DatabaseError and only ever logged in full — callers see an opaque
// internal error.

var (
	// ErrInvalidName — resource name malformed or template mismatch.
	ErrInvalidName = errors.New("invalid resource name")

	// ErrInvalidMac — MAC address failed to parse.
	ErrInvalidMac = errors.New("invalid mac address")

	// ErrInvalidTimezone — not a recognized IANA zone name.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidConfig — config message carried no light configuration.
	ErrInvalidConfig = errors.New("invalid light config")

	// ErrInvalidDeviceID — device name field did not parse as a device name.
	ErrInvalidDeviceID = errors.New("invalid device id")

	// ErrInvalidConfigID — config name field did not parse as a config name.
	ErrInvalidConfigID = errors.New("invalid config id")

	// ErrMacConflict — MAC already used by another device in the domain.
	ErrMacConflict = errors.New("mac address already in use")

	// ErrConfigInUse — config is referenced by at least one device.
	ErrConfigInUse = errors.New("config is in use")

	// ErrNotFound — requested row absent or owned by another domain. Usually
	// wrapped in a NotFoundError carrying the resource type and id.
	ErrNotFound = errors.New("not found")
)

// ValueError reports a field value outside its accepted set, e.g. an enum
// discriminator that is unspecified or out of range.
type ValueError struct {
	Value string
	Type  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value '%s' for type %s", e.Value, e.Type)
}

// NotFoundError identifies which resource was missing. errors.Is(err,
// ErrNotFound) matches it, so callers that don't care about the detail can
// test the sentinel.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such resource %s/%s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NoSuchResource builds the typed not-found error repositories return. The id
// is usually a UUID but can be any lookup key (a MAC, for instance).
func NoSuchResource(resource string, id uuid.UUID) error {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

// NoSuchResourceKey is NoSuchResource for non-UUID lookup keys.
func NoSuchResourceKey(resource, key string) error {
	return &NotFoundError{Resource: resource, ID: key}
}

// DatabaseError wraps any storage failure that isn't a plain missing row.
// The detail is for server-side logs only; transport adapters must map this
// to an opaque internal error.
type DatabaseError struct {
	Detail string
}

func (e *DatabaseError) Error() string {
	return "database error: " + e.Detail
}

// DatabaseErrorf formats a DatabaseError from an underlying driver error.
func DatabaseErrorf(format string, args ...any) error {
	return &DatabaseError{Detail: fmt.Sprintf(format, args...)}
}

func int32String(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}
