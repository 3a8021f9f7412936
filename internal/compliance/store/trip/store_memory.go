package trip

import (
	"context"
	"slices"
	"sync"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
)

// InMemoryStore holds intervals per traveler. It does not validate them; a
// malformed interval is the engine's to reject.
type InMemoryStore struct {
	mu        sync.RWMutex
	intervals map[id.TravelerID][]models.TravelInterval
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{intervals: make(map[id.TravelerID][]models.TravelInterval)}
}

func (s *InMemoryStore) Add(_ context.Context, intervals ...models.TravelInterval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range intervals {
		s.intervals[iv.TravelerID] = append(s.intervals[iv.TravelerID], iv)
	}
	return nil
}

// Replace overwrites everything recorded for a traveler.
func (s *InMemoryStore) Replace(_ context.Context, travelerID id.TravelerID, intervals []models.TravelInterval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(intervals) == 0 {
		delete(s.intervals, travelerID)
		return nil
	}
	s.intervals[travelerID] = slices.Clone(intervals)
	return nil
}

// ListIntervals returns an empty slice for an unknown traveler.
func (s *InMemoryStore) ListIntervals(_ context.Context, travelerID id.TravelerID) ([]models.TravelInterval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TravelInterval{}, s.intervals[travelerID]...), nil
}

// ListTravelers returns travelers in ID order.
func (s *InMemoryStore) ListTravelers(_ context.Context) ([]id.TravelerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]id.TravelerID, 0, len(s.intervals))
	for travelerID := range s.intervals {
		out = append(out, travelerID)
	}
	slices.SortFunc(out, func(a, b id.TravelerID) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	return out, nil
}
