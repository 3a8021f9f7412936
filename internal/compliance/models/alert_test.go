package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
)

func newTestAlert(t *testing.T, level RiskLevel, now time.Time) *Alert {
	t.Helper()
	a, err := NewAlert(id.NewAlertID(), id.TravelerID(uuid.New()), level, "msg", now)
	require.NoError(t, err)
	return a
}

func TestNewAlert(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects none level", func(t *testing.T) {
		_, err := NewAlert(id.NewAlertID(), id.TravelerID(uuid.New()), RiskNone, "m", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects nil traveler", func(t *testing.T) {
		_, err := NewAlert(id.NewAlertID(), id.TravelerID(uuid.Nil), RiskRed, "m", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("starts open and unsent", func(t *testing.T) {
		a := newTestAlert(t, RiskYellow, now)
		assert.False(t, a.Resolved)
		assert.False(t, a.EmailSent)
		assert.Equal(t, 1, a.Revision)
	})
}

func TestAlertTransitions(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := start.Add(24 * time.Hour)

	t.Run("refresh keeps level, created_at and email flag", func(t *testing.T) {
		a := newTestAlert(t, RiskYellow, start)
		a.EmailSent = true
		a.Refresh("new message", later)
		assert.Equal(t, "new message", a.Message)
		assert.Equal(t, start, a.CreatedAt)
		assert.True(t, a.EmailSent)
		assert.Equal(t, 1, a.Revision)
	})

	t.Run("escalation resets created_at and email flag", func(t *testing.T) {
		a := newTestAlert(t, RiskYellow, start)
		a.EmailSent = true
		tr, err := a.ChangeLevel(RiskRed, "red", later)
		require.NoError(t, err)
		assert.Equal(t, TransitionEscalated, tr)
		assert.Equal(t, later, a.CreatedAt)
		assert.False(t, a.EmailSent)
		assert.Equal(t, 2, a.Revision)
	})

	t.Run("de-escalation is also a level change", func(t *testing.T) {
		a := newTestAlert(t, RiskRed, start)
		a.EmailSent = true
		tr, err := a.ChangeLevel(RiskOrange, "orange", later)
		require.NoError(t, err)
		assert.Equal(t, TransitionDeescalated, tr)
		assert.False(t, a.EmailSent)
	})

	t.Run("resolved alert is terminal", func(t *testing.T) {
		a := newTestAlert(t, RiskOrange, start)
		require.NoError(t, a.CanResolve())
		a.ApplyResolution(later)
		assert.True(t, a.Resolved)
		assert.Error(t, a.CanResolve())
		_, err := a.ChangeLevel(RiskRed, "x", later)
		assert.Error(t, err)
	})
}

func TestAlertFilter(t *testing.T) {
	now := time.Now()
	a := newTestAlert(t, RiskOrange, now)

	assert.True(t, AlertFilter{}.Matches(a))
	assert.True(t, AlertFilter{TravelerID: a.TravelerID, RiskLevel: RiskOrange, EmailPending: true}.Matches(a))
	assert.False(t, AlertFilter{RiskLevel: RiskRed}.Matches(a))
	assert.False(t, AlertFilter{TravelerID: id.TravelerID(uuid.New())}.Matches(a))

	a.EmailSent = true
	assert.False(t, AlertFilter{EmailPending: true}.Matches(a))

	a.ApplyResolution(now)
	assert.False(t, AlertFilter{}.Matches(a))
}

func TestTravelInterval(t *testing.T) {
	traveler := id.TravelerID(uuid.New())

	t.Run("same-day interval is one day", func(t *testing.T) {
		iv, err := ParseTravelInterval(traveler, " FR ", "2025-01-01", "2025-01-01")
		require.NoError(t, err)
		assert.Equal(t, 1, iv.Days())
		assert.Equal(t, "FR", iv.Territory)
	})

	t.Run("exit before entry is malformed", func(t *testing.T) {
		_, err := ParseTravelInterval(traveler, "FR", "2025-01-10", "2025-01-09")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedInterval))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("unparsable date is malformed", func(t *testing.T) {
		_, err := ParseTravelInterval(traveler, "FR", "2025-13-01", "2025-01-09")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedInterval))
	})
}
