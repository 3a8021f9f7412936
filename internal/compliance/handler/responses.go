package handler

import (
	"time"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/service/alerts"
	id "staywatch/pkg/domain"
)

// WindowResponse is the HTTP response for GET /travelers/{travelerID}/window.
type WindowResponse struct {
	TravelerID    id.TravelerID      `json:"traveler_id"`
	ReferenceDate models.Date        `json:"reference_date"`
	DaysUsed      int                `json:"days_used"`
	DaysRemaining int                `json:"days_remaining"`
	RiskTier      models.DisplayTier `json:"risk_tier"`
}

func FromWindow(travelerID id.TravelerID, result *models.WindowResult) *WindowResponse {
	return &WindowResponse{
		TravelerID:    travelerID,
		ReferenceDate: result.ReferenceDate,
		DaysUsed:      result.DaysUsed,
		DaysRemaining: result.DaysRemaining,
		RiskTier:      result.RiskTier,
	}
}

// ForecastResponse is the HTTP response for GET /travelers/{travelerID}/forecast.
type ForecastResponse struct {
	TravelerID         id.TravelerID `json:"traveler_id"`
	Today              models.Date   `json:"today"`
	Compliant          bool          `json:"compliant"`
	EarliestSafeDate   *models.Date  `json:"earliest_safe_date"`
	DaysUntilCompliant int           `json:"days_until_compliant"`
}

func FromForecast(travelerID id.TravelerID, today models.Date, f *models.ComplianceForecast) *ForecastResponse {
	return &ForecastResponse{
		TravelerID:         travelerID,
		Today:              today,
		Compliant:          f.IsCompliant(),
		EarliestSafeDate:   f.EarliestSafeDate,
		DaysUntilCompliant: f.DaysUntilCompliant,
	}
}

// EvaluateResponse is the HTTP response for POST /travelers/{travelerID}/evaluate.
type EvaluateResponse struct {
	*alerts.Outcome
	EvaluatedAt time.Time `json:"evaluated_at"`
}

func FromOutcome(outcome *alerts.Outcome, now time.Time) *EvaluateResponse {
	return &EvaluateResponse{Outcome: outcome, EvaluatedAt: now.UTC()}
}

// AlertListResponse wraps alert listings.
type AlertListResponse struct {
	Alerts []*models.Alert `json:"alerts"`
	Count  int             `json:"count"`
}

func FromAlerts(list []*models.Alert) *AlertListResponse {
	if list == nil {
		list = []*models.Alert{}
	}
	return &AlertListResponse{Alerts: list, Count: len(list)}
}
