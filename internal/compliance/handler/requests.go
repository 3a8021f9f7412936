package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
	"staywatch/pkg/requestcontext"
)

const maxTerritoryLength = 64

// RecordTripRequest is the body of POST /travelers/{travelerID}/trips.
type RecordTripRequest struct {
	Territory string `json:"territory"`
	EntryDate string `json:"entry_date"`
	ExitDate  string `json:"exit_date"`
}

func (r *RecordTripRequest) Validate() error {
	r.Territory = strings.TrimSpace(r.Territory)
	if r.Territory == "" {
		return dErrors.New(dErrors.CodeValidation, "territory is required")
	}
	if len(r.Territory) > maxTerritoryLength {
		return dErrors.New(dErrors.CodeValidation, "territory is too long")
	}
	if r.EntryDate == "" || r.ExitDate == "" {
		return dErrors.New(dErrors.CodeValidation, "entry_date and exit_date are required")
	}
	return nil
}

// Interval parses the request into a validated interval for travelerID.
func (r *RecordTripRequest) Interval(travelerID id.TravelerID) (models.TravelInterval, error) {
	return models.ParseTravelInterval(travelerID, r.Territory, r.EntryDate, r.ExitDate)
}

func travelerIDParam(r *http.Request) (id.TravelerID, error) {
	return id.ParseTravelerID(chi.URLParam(r, "travelerID"))
}

// dateQuery reads a YYYY-MM-DD query parameter, defaulting to the request's today.
func dateQuery(r *http.Request, name string) (models.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return models.DateOf(requestcontext.Now(r.Context())), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, name+" must be YYYY-MM-DD")
	}
	return d, nil
}

func alertFilterQuery(r *http.Request) (models.AlertFilter, error) {
	q := r.URL.Query()
	var filter models.AlertFilter

	if raw := q.Get("risk_level"); raw != "" {
		level, err := models.ParseRiskLevel(raw)
		if err != nil {
			return models.AlertFilter{}, err
		}
		filter.RiskLevel = level
	}
	if raw := q.Get("traveler_id"); raw != "" {
		travelerID, err := id.ParseTravelerID(raw)
		if err != nil {
			return models.AlertFilter{}, err
		}
		filter.TravelerID = travelerID
	}
	if raw := q.Get("pending_email"); raw != "" {
		pending, err := strconv.ParseBool(raw)
		if err != nil {
			return models.AlertFilter{}, dErrors.New(dErrors.CodeInvalidInput, "pending_email must be a boolean")
		}
		filter.EmailPending = pending
	}
	return filter, nil
}

func wrapInternal(err error, message string) error {
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}
