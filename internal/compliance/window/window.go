// Package window computes trailing-window usage and the two risk classifications.
//
// The window for a reference date ref is [ref-180, ref-1]: the 180 calendar
// days strictly before ref. The same convention drives usage, remaining days
// and the safe-entry search; there is no further adjustment to the count.
package window

import (
	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/presence"
)

// Bounds returns the inclusive first and last day of the window for ref.
func Bounds(ref models.Date) (from, to models.Date) {
	return ref.AddDays(-models.WindowDays), ref.AddDays(-1)
}

// DaysUsed counts presence days inside the window for ref. Always in [0, 180].
func DaysUsed(p presence.Set, ref models.Date) int {
	from, to := Bounds(ref)
	return p.CountBetween(from, to)
}

// DaysRemaining is limit - DaysUsed. It is negative over quota and never clamped.
func DaysRemaining(p presence.Set, ref models.Date, limit int) int {
	return limit - DaysUsed(p, ref)
}

// Calculate builds the WindowResult for ref under the display policy.
func Calculate(p presence.Set, ref models.Date, policy DisplayPolicy) models.WindowResult {
	used := DaysUsed(p, ref)
	remaining := models.QuotaLimit - used
	return models.WindowResult{
		ReferenceDate: ref,
		DaysUsed:      used,
		DaysRemaining: remaining,
		RiskTier:      policy.Classify(remaining),
	}
}
