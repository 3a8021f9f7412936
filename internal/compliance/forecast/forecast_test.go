package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/presence"
	"staywatch/internal/compliance/window"
)

func span(first models.Date, n int) []models.Date {
	out := make([]models.Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, first.AddDays(i))
	}
	return out
}

// assertSafeDateInvariant checks the defining property of a safe date:
// compliant on the date, still over the line the day before.
func assertSafeDateInvariant(t *testing.T, p presence.Set, today models.Date) {
	t.Helper()
	safe, ok := EarliestSafeDate(p, today, models.QuotaLimit)
	remaining := window.DaysRemaining(p, today, models.QuotaLimit)
	require.Equal(t, remaining < 0, ok, "safe date exists iff over quota")
	if !ok {
		return
	}
	assert.True(t, safe.After(today))
	assert.LessOrEqual(t, window.DaysUsed(p, safe), models.QuotaLimit-1)
	assert.GreaterOrEqual(t, window.DaysUsed(p, safe.AddDays(-1)), models.QuotaLimit)
}

func TestEarliestSafeDate_Compliant(t *testing.T) {
	today := models.MustParseDate("2025-07-01")
	p := presence.NewSet(span(today.AddDays(-90), 90)...)

	_, ok := EarliestSafeDate(p, today, models.QuotaLimit)
	assert.False(t, ok)

	days, date := DaysUntilCompliant(p, today, models.QuotaLimit)
	assert.Equal(t, 0, days)
	assert.Equal(t, today, date)

	f := Forecast(p, today, models.QuotaLimit)
	assert.True(t, f.IsCompliant())
	assert.Equal(t, 0, f.DaysUntilCompliant)
}

func TestEarliestSafeDate_ContinuousOverstay(t *testing.T) {
	today := models.MustParseDate("2025-07-01")
	// 100 days ending yesterday: 10 over the limit.
	first := today.AddDays(-100)
	p := presence.NewSet(span(first, 100)...)

	safe, ok := EarliestSafeDate(p, today, models.QuotaLimit)
	require.True(t, ok)
	// Eleven days of the block must have left the window: d-180 > first+10.
	assert.Equal(t, today.AddDays(91), safe)
	assertSafeDateInvariant(t, p, today)

	days, date := DaysUntilCompliant(p, today, models.QuotaLimit)
	assert.Equal(t, 91, days)
	assert.Equal(t, safe, date)

	f := Forecast(p, today, models.QuotaLimit)
	require.NotNil(t, f.EarliestSafeDate)
	assert.Equal(t, safe, *f.EarliestSafeDate)
}

func TestEarliestSafeDate_IrregularTrips(t *testing.T) {
	today := models.MustParseDate("2025-03-15")
	var dates []models.Date
	// Short trips scattered across the window; total well over 90.
	for start := today.AddDays(-178); start.Before(today); start = start.AddDays(5) {
		dates = append(dates, span(start, 3)...)
	}
	p := presence.NewSet(dates...)
	require.Less(t, window.DaysRemaining(p, today, models.QuotaLimit), 0)
	assertSafeDateInvariant(t, p, today)
}

func TestEarliestSafeDate_PlannedFutureTravel(t *testing.T) {
	today := models.MustParseDate("2025-03-15")
	past := span(today.AddDays(-95), 95)
	// A planned stay starting tomorrow keeps the traveler over quota past today+180.
	future := span(today.AddDays(1), 150)
	p := presence.NewSet(append(past, future...)...)

	safe, ok := EarliestSafeDate(p, today, models.QuotaLimit)
	require.True(t, ok)
	assert.Equal(t, today.AddDays(242), safe)
	assertSafeDateInvariant(t, p, today)
}

func TestEarliestSafeDate_Deterministic(t *testing.T) {
	today := models.MustParseDate("2025-07-01")
	p := presence.NewSet(span(today.AddDays(-120), 120)...)
	first, _ := EarliestSafeDate(p, today, models.QuotaLimit)
	for i := 0; i < 5; i++ {
		again, ok := EarliestSafeDate(p, today, models.QuotaLimit)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestSafeDateInvariant_Sweep(t *testing.T) {
	today := models.MustParseDate("2024-03-01")
	for length := 85; length <= 180; length += 5 {
		for gap := 0; gap < 30; gap += 7 {
			p := presence.NewSet(span(today.AddDays(-length-gap), length)...)
			assertSafeDateInvariant(t, p, today)
		}
	}
}
