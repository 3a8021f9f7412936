package models

// WindowResult is the point-in-time usage of one traveler.
type WindowResult struct {
	ReferenceDate Date        `json:"reference_date"`
	DaysUsed      int         `json:"days_used"`
	DaysRemaining int         `json:"days_remaining"`
	RiskTier      DisplayTier `json:"risk_tier"`
}

// ComplianceForecast is nil/0 when the traveler is already within quota.
type ComplianceForecast struct {
	EarliestSafeDate   *Date `json:"earliest_safe_date"`
	DaysUntilCompliant int   `json:"days_until_compliant"`
}

// IsCompliant reports whether the traveler is within quota on the reference date.
func (f ComplianceForecast) IsCompliant() bool {
	return f.EarliestSafeDate == nil
}
