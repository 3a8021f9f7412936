package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"

	dErrors "staywatch/pkg/domain-errors"
)

// Typed identifiers keep traveler and alert IDs from being swapped at compile time.
type (
	TravelerID uuid.UUID
	AlertID    uuid.UUID
)

func (t TravelerID) String() string { return uuid.UUID(t).String() }
func (t TravelerID) IsNil() bool    { return uuid.UUID(t) == uuid.Nil }

func (a AlertID) String() string { return uuid.UUID(a).String() }
func (a AlertID) IsNil() bool    { return uuid.UUID(a) == uuid.Nil }

func (t TravelerID) MarshalText() ([]byte, error) { return uuid.UUID(t).MarshalText() }
func (a AlertID) MarshalText() ([]byte, error)    { return uuid.UUID(a).MarshalText() }

func (t *TravelerID) UnmarshalText(b []byte) error {
	parsed, err := ParseTravelerID(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (a *AlertID) UnmarshalText(b []byte) error {
	parsed, err := ParseAlertID(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value and Scan let the typed IDs bind directly to UUID columns.
func (t TravelerID) Value() (driver.Value, error) { return uuid.UUID(t).String(), nil }
func (a AlertID) Value() (driver.Value, error)    { return uuid.UUID(a).String(), nil }

func (t *TravelerID) Scan(src any) error { return (*uuid.UUID)(t).Scan(src) }
func (a *AlertID) Scan(src any) error    { return (*uuid.UUID)(a).Scan(src) }

// NewAlertID returns a fresh random alert identifier.
func NewAlertID() AlertID {
	return AlertID(uuid.New())
}

// ParseTravelerID parses a traveler identifier at a trust boundary.
func ParseTravelerID(s string) (TravelerID, error) {
	u, err := parseUUID("traveler_id", s)
	return TravelerID(u), err
}

// ParseAlertID parses an alert identifier at a trust boundary.
func ParseAlertID(s string) (AlertID, error) {
	u, err := parseUUID("alert_id", s)
	return AlertID(u), err
}

// parseUUID rejects empty, malformed and nil UUIDs.
func parseUUID(field, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("invalid %s", field))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil UUID")
	}
	return u, nil
}
