package models

import (
	"errors"
	"fmt"
	"strings"

	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
)

const (
	// QuotaLimit is the maximum number of presence days allowed in any window.
	QuotaLimit = 90
	// WindowDays is the length of the trailing window.
	WindowDays = 180
)

// ErrMalformedInterval marks an interval whose exit precedes its entry or
// whose dates cannot be parsed.
var ErrMalformedInterval = errors.New("malformed travel interval")

// TravelInterval is one entry/exit pair for a traveler in a territory.
// Both dates are inclusive presence days.
type TravelInterval struct {
	TravelerID id.TravelerID `json:"traveler_id"`
	Territory  string        `json:"territory"`
	EntryDate  Date          `json:"entry_date"`
	ExitDate   Date          `json:"exit_date"`
}

// NewTravelInterval validates entry <= exit. It never repairs a bad interval.
func NewTravelInterval(travelerID id.TravelerID, territory string, entry, exit Date) (TravelInterval, error) {
	iv := TravelInterval{
		TravelerID: travelerID,
		Territory:  strings.TrimSpace(territory),
		EntryDate:  entry,
		ExitDate:   exit,
	}
	if err := iv.Validate(); err != nil {
		return TravelInterval{}, err
	}
	return iv, nil
}

// ParseTravelInterval is NewTravelInterval for raw YYYY-MM-DD strings.
func ParseTravelInterval(travelerID id.TravelerID, territory, entry, exit string) (TravelInterval, error) {
	entryDate, err := ParseDate(entry)
	if err != nil {
		return TravelInterval{}, dErrors.Wrap(fmt.Errorf("%w: entry date %q", ErrMalformedInterval, entry), dErrors.CodeValidation, "unparsable entry date")
	}
	exitDate, err := ParseDate(exit)
	if err != nil {
		return TravelInterval{}, dErrors.Wrap(fmt.Errorf("%w: exit date %q", ErrMalformedInterval, exit), dErrors.CodeValidation, "unparsable exit date")
	}
	return NewTravelInterval(travelerID, territory, entryDate, exitDate)
}

// Validate reports ErrMalformedInterval when exit precedes entry.
func (iv TravelInterval) Validate() error {
	if iv.ExitDate.Before(iv.EntryDate) {
		return dErrors.Wrap(
			fmt.Errorf("%w: exit %s before entry %s", ErrMalformedInterval, iv.ExitDate, iv.EntryDate),
			dErrors.CodeValidation,
			"exit date must not precede entry date",
		)
	}
	return nil
}

// Days is the inclusive length of the interval.
func (iv TravelInterval) Days() int {
	return iv.EntryDate.DaysUntil(iv.ExitDate) + 1
}
