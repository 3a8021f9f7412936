package alert

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
	"staywatch/pkg/platform/sentinel"
)

// InMemoryStore keeps alerts in memory and enforces one unresolved alert per
// traveler through an index. It hands out clones only.
type InMemoryStore struct {
	mu         sync.RWMutex
	alerts     map[id.AlertID]*models.Alert
	unresolved map[id.TravelerID]id.AlertID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		alerts:     make(map[id.AlertID]*models.Alert),
		unresolved: make(map[id.TravelerID]id.AlertID),
	}
}

func (s *InMemoryStore) GetUnresolved(_ context.Context, travelerID id.TravelerID) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alertID, ok := s.unresolved[travelerID]
	if !ok {
		return nil, nil
	}
	return s.alerts[alertID].Clone(), nil
}

// Upsert inserts or replaces an alert by ID. A second unresolved alert for the
// traveler, or reopening a resolved one, returns sentinel.ErrConflict.
func (s *InMemoryStore) Upsert(_ context.Context, alert *models.Alert) error {
	if alert == nil {
		return errors.New("alert is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.alerts[alert.ID]; ok && existing.Resolved {
		return sentinel.ErrConflict
	}
	if !alert.Resolved {
		if openID, ok := s.unresolved[alert.TravelerID]; ok && openID != alert.ID {
			return sentinel.ErrConflict
		}
		s.unresolved[alert.TravelerID] = alert.ID
	} else if s.unresolved[alert.TravelerID] == alert.ID {
		delete(s.unresolved, alert.TravelerID)
	}
	s.alerts[alert.ID] = alert.Clone()
	return nil
}

// MarkResolved is idempotent for an alert that is already resolved.
func (s *InMemoryStore) MarkResolved(_ context.Context, alertID id.AlertID, resolvedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.alerts[alertID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if alert.Resolved {
		return nil
	}
	alert.ApplyResolution(resolvedAt)
	if s.unresolved[alert.TravelerID] == alertID {
		delete(s.unresolved, alert.TravelerID)
	}
	return nil
}

// MarkEmailed flags each referenced alert whose revision still matches.
// It returns how many alerts changed.
func (s *InMemoryStore) MarkEmailed(_ context.Context, refs []models.AlertRef) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for _, ref := range refs {
		alert, ok := s.alerts[ref.ID]
		if !ok || alert.Revision != ref.Revision || alert.EmailSent {
			continue
		}
		alert.EmailSent = true
		marked++
	}
	return marked, nil
}

// ListUnresolved returns matching open alerts, oldest first.
func (s *InMemoryStore) ListUnresolved(_ context.Context, filter models.AlertFilter) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Alert, 0, len(s.unresolved))
	for _, alertID := range s.unresolved {
		alert := s.alerts[alertID]
		if filter.Matches(alert) {
			out = append(out, alert.Clone())
		}
	}
	slices.SortFunc(out, compareCreated)
	return out, nil
}

// ListHistory returns every alert ever recorded for the traveler, oldest first.
func (s *InMemoryStore) ListHistory(_ context.Context, travelerID id.TravelerID) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Alert
	for _, alert := range s.alerts {
		if alert.TravelerID == travelerID {
			out = append(out, alert.Clone())
		}
	}
	slices.SortFunc(out, compareCreated)
	return out, nil
}

func compareCreated(a, b *models.Alert) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	if a.ID.String() < b.ID.String() {
		return -1
	}
	if a.ID.String() > b.ID.String() {
		return 1
	}
	return 0
}
