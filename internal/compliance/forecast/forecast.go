// Package forecast finds when an over-quota traveler becomes compliant again.
package forecast

import (
	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/presence"
	"staywatch/internal/compliance/window"
)

// EarliestSafeDate returns the first date after today whose window holds at
// most limit-1 presence days. ok is false when the traveler is within quota
// today (DaysRemaining >= 0).
//
// The scan is day by day. Presence made of many short trips means the blocking
// day does not leave the window at a single computable offset, so each
// candidate is checked with an O(log n) window count.
func EarliestSafeDate(p presence.Set, today models.Date, limit int) (models.Date, bool) {
	if window.DaysRemaining(p, today, limit) >= 0 {
		return models.Date{}, false
	}
	last := searchBound(p, today)
	for d := today.AddDays(1); !d.After(last); d = d.AddDays(1) {
		if window.DaysUsed(p, d) <= limit-1 {
			return d, true
		}
	}
	// unreachable: on the bound the window holds no presence at all
	return last, true
}

// searchBound is today+180, pushed out past planned presence on or after today
// so the final candidate's window is guaranteed empty.
func searchBound(p presence.Set, today models.Date) models.Date {
	bound := today.AddDays(models.WindowDays)
	if lastDay, ok := p.Last(); ok {
		if past := lastDay.AddDays(models.WindowDays + 1); past.After(bound) {
			bound = past
		}
	}
	return bound
}

// DaysUntilCompliant returns (0, today) when already compliant, otherwise the
// day count and date from EarliestSafeDate.
func DaysUntilCompliant(p presence.Set, today models.Date, limit int) (int, models.Date) {
	safe, ok := EarliestSafeDate(p, today, limit)
	if !ok {
		return 0, today
	}
	return today.DaysUntil(safe), safe
}

// Forecast packages DaysUntilCompliant as a ComplianceForecast.
func Forecast(p presence.Set, today models.Date, limit int) models.ComplianceForecast {
	days, safe := DaysUntilCompliant(p, today, limit)
	if days == 0 {
		return models.ComplianceForecast{}
	}
	return models.ComplianceForecast{EarliestSafeDate: &safe, DaysUntilCompliant: days}
}
