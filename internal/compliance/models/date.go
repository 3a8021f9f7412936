package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	dErrors "staywatch/pkg/domain-errors"
)

// DateLayout is the ISO-8601 calendar date layout accepted at every boundary.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date with no time of day or zone.
//
// It is stored as a day number relative to 1970-01-01 so that day arithmetic
// across month, year and leap-year boundaries is plain integer arithmetic.
// The zero value is 1970-01-01.
type Date struct {
	day int64
}

// NewDate builds a Date from its calendar parts. Out-of-range parts are
// normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{day: time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("invalid date %q", s))
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Unix(d.day*secondsPerDay, 0).UTC()
}

func (d Date) AddDays(n int) Date { return Date{day: d.day + int64(n)} }
func (d Date) Before(o Date) bool { return d.day < o.day }
func (d Date) After(o Date) bool { return d.day > o.day }
func (d Date) Equal(o Date) bool { return d.day == o.day }
func (d Date) Compare(o Date) int { return cmpInt64(d.day, o.day) }
func (d Date) DaysUntil(o Date) int { return int(o.day - d.day) }
func (d Date) String() string { return d.Time().Format(DateLayout) }
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "date must be a string")
	}
	return d.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer for DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.UnmarshalText([]byte(v[:min(len(v), len(DateLayout))]))
	case []byte:
		return d.UnmarshalText(v[:min(len(v), len(DateLayout))])
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
