package models

import (
	"time"

	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
)

// Alert is the persisted record of one breach or near-breach episode.
//
// Invariants:
//   - At most one unresolved alert exists per traveler.
//   - RiskLevel is always YELLOW, ORANGE or RED.
//   - A resolved alert is historical; it is never reopened. A new breach after
//     resolution produces a new alert.
//   - CreatedAt, EmailSent and Revision change only when the level changes.
//     Message is refreshed on every evaluation.
type Alert struct {
	ID         id.AlertID    `json:"id"`
	TravelerID id.TravelerID `json:"traveler_id"`
	RiskLevel  RiskLevel     `json:"risk_level"`
	Message    string        `json:"message"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Resolved   bool          `json:"resolved"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
	EmailSent  bool          `json:"email_sent"`
	// Revision increments on every level change so a dispatch cycle only marks
	// the version it rendered.
	Revision int `json:"revision"`
}

// AlertRef identifies one version of an alert.
type AlertRef struct {
	ID       id.AlertID
	Revision int
}

// Transition names what an evaluation did to the traveler's alert.
type Transition string

const (
	TransitionNone        Transition = "none"
	TransitionCreated     Transition = "created"
	TransitionRefreshed   Transition = "refreshed"
	TransitionEscalated   Transition = "escalated"
	TransitionDeescalated Transition = "deescalated"
	TransitionResolved    Transition = "resolved"
)

// NewAlert opens a new unresolved alert at level.
func NewAlert(alertID id.AlertID, travelerID id.TravelerID, level RiskLevel, message string, now time.Time) (*Alert, error) {
	if travelerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "alert requires a traveler")
	}
	if !level.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "alert requires a notify level")
	}
	return &Alert{
		ID:         alertID,
		TravelerID: travelerID,
		RiskLevel:  level,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
		Revision:   1,
	}, nil
}

// Refresh updates the usage summary without touching level, CreatedAt or EmailSent.
func (a *Alert) Refresh(message string, now time.Time) {
	a.Message = message
	a.UpdatedAt = now
}

// ChangeLevel moves the alert to a different notify level. The operator must be
// told again, so EmailSent is cleared and CreatedAt restarts.
func (a *Alert) ChangeLevel(level RiskLevel, message string, now time.Time) (Transition, error) {
	if a.Resolved {
		return TransitionNone, dErrors.New(dErrors.CodeInvariantViolation, "resolved alert cannot change level")
	}
	if !level.IsValid() {
		return TransitionNone, dErrors.New(dErrors.CodeInvariantViolation, "alert requires a notify level")
	}
	transition := TransitionDeescalated
	if level.Severity() > a.RiskLevel.Severity() {
		transition = TransitionEscalated
	}
	a.RiskLevel = level
	a.Message = message
	a.CreatedAt = now
	a.UpdatedAt = now
	a.EmailSent = false
	a.Revision++
	return transition, nil
}

// CanResolve checks the alert is still open.
func (a *Alert) CanResolve() error {
	if a.Resolved {
		return dErrors.New(dErrors.CodeInvariantViolation, "alert is already resolved")
	}
	return nil
}

// ApplyResolution marks the alert historical.
func (a *Alert) ApplyResolution(now time.Time) {
	a.Resolved = true
	a.ResolvedAt = &now
	a.UpdatedAt = now
}

// Ref returns the (id, revision) pair of the current version.
func (a *Alert) Ref() AlertRef {
	return AlertRef{ID: a.ID, Revision: a.Revision}
}

// Clone returns a deep copy so stores never hand out shared pointers.
func (a *Alert) Clone() *Alert {
	if a == nil {
		return nil
	}
	c := *a
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}

// AlertFilter narrows ListUnresolved. Zero fields match everything.
type AlertFilter struct {
	TravelerID   id.TravelerID
	RiskLevel    RiskLevel
	EmailPending bool
}

// Matches reports whether an unresolved alert satisfies the filter.
func (f AlertFilter) Matches(a *Alert) bool {
	if a == nil || a.Resolved {
		return false
	}
	if !f.TravelerID.IsNil() && a.TravelerID != f.TravelerID {
		return false
	}
	if f.RiskLevel != "" && a.RiskLevel != f.RiskLevel {
		return false
	}
	if f.EmailPending && a.EmailSent {
		return false
	}
	return true
}
