package alert

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/ports"
	id "staywatch/pkg/domain"
	"staywatch/pkg/platform/sentinel"
)

type InMemoryAlertStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func TestInMemoryAlertStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryAlertStoreSuite))
}

func (s *InMemoryAlertStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryAlertStoreSuite) newAlert(travelerID id.TravelerID, level models.RiskLevel) *models.Alert {
	alert, err := models.NewAlert(id.NewAlertID(), travelerID, level, "msg", s.now)
	s.Require().NoError(err)
	return alert
}

// =============================================================================
// GetUnresolved / Upsert
// =============================================================================

func (s *InMemoryAlertStoreSuite) TestGetUnresolved() {
	ctx := context.Background()

	s.Run("missing traveler returns nil without error", func() {
		got, err := s.store.GetUnresolved(ctx, id.TravelerID(uuid.New()))
		s.NoError(err)
		s.Nil(got)
	})

	s.Run("returns a clone that does not alias stored state", func() {
		traveler := id.TravelerID(uuid.New())
		s.Require().NoError(s.store.Upsert(ctx, s.newAlert(traveler, models.RiskYellow)))

		got, err := s.store.GetUnresolved(ctx, traveler)
		s.Require().NoError(err)
		s.Require().NotNil(got)
		got.Message = "mutated"

		again, err := s.store.GetUnresolved(ctx, traveler)
		s.Require().NoError(err)
		s.Equal("msg", again.Message)
	})
}

func (s *InMemoryAlertStoreSuite) TestUpsert() {
	ctx := context.Background()

	s.Run("second unresolved alert for the same traveler conflicts", func() {
		traveler := id.TravelerID(uuid.New())
		s.Require().NoError(s.store.Upsert(ctx, s.newAlert(traveler, models.RiskYellow)))

		err := s.store.Upsert(ctx, s.newAlert(traveler, models.RiskRed))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("updating the open alert by ID succeeds", func() {
		traveler := id.TravelerID(uuid.New())
		alert := s.newAlert(traveler, models.RiskYellow)
		s.Require().NoError(s.store.Upsert(ctx, alert))

		_, err := alert.ChangeLevel(models.RiskOrange, "escalated", s.now.Add(time.Hour))
		s.Require().NoError(err)
		s.Require().NoError(s.store.Upsert(ctx, alert))

		got, err := s.store.GetUnresolved(ctx, traveler)
		s.Require().NoError(err)
		s.Equal(models.RiskOrange, got.RiskLevel)
		s.Equal(2, got.Revision)
	})

	s.Run("resolved alert cannot be reopened", func() {
		traveler := id.TravelerID(uuid.New())
		alert := s.newAlert(traveler, models.RiskYellow)
		s.Require().NoError(s.store.Upsert(ctx, alert))
		s.Require().NoError(s.store.MarkResolved(ctx, alert.ID, s.now))

		err := s.store.Upsert(ctx, alert)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("new alert after resolution is a separate row", func() {
		traveler := id.TravelerID(uuid.New())
		first := s.newAlert(traveler, models.RiskYellow)
		s.Require().NoError(s.store.Upsert(ctx, first))
		s.Require().NoError(s.store.MarkResolved(ctx, first.ID, s.now))

		second := s.newAlert(traveler, models.RiskRed)
		s.Require().NoError(s.store.Upsert(ctx, second))

		history, err := s.store.ListHistory(ctx, traveler)
		s.Require().NoError(err)
		s.Len(history, 2)
		got, err := s.store.GetUnresolved(ctx, traveler)
		s.Require().NoError(err)
		s.Equal(second.ID, got.ID)
	})

	s.Run("nil alert is rejected", func() {
		s.Error(s.store.Upsert(ctx, nil))
	})
}

func (s *InMemoryAlertStoreSuite) TestListHistoryIsEpisodeOrdered() {
	ctx := context.Background()
	traveler := id.TravelerID(uuid.New())

	var ids []id.AlertID
	for i := 0; i < 3; i++ {
		alert, err := models.NewAlert(id.NewAlertID(), traveler, models.RiskYellow, "msg", s.now.AddDate(0, 0, i*10))
		s.Require().NoError(err)
		s.Require().NoError(s.store.Upsert(ctx, alert))
		if i < 2 {
			s.Require().NoError(s.store.MarkResolved(ctx, alert.ID, s.now.AddDate(0, 0, i*10+5)))
		}
		ids = append(ids, alert.ID)
	}

	history, err := s.store.ListHistory(ctx, traveler)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	for i, alert := range history {
		s.Equal(ids[i], alert.ID, "position %d", i)
	}
	s.False(history[2].Resolved, "the open episode is the latest")
}

// =============================================================================
// MarkResolved / MarkEmailed
// =============================================================================

func (s *InMemoryAlertStoreSuite) TestMarkResolved() {
	ctx := context.Background()

	s.Run("unknown alert returns ErrNotFound", func() {
		err := s.store.MarkResolved(ctx, id.NewAlertID(), s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("resolving twice keeps the first resolution time", func() {
		traveler := id.TravelerID(uuid.New())
		alert := s.newAlert(traveler, models.RiskYellow)
		s.Require().NoError(s.store.Upsert(ctx, alert))

		s.Require().NoError(s.store.MarkResolved(ctx, alert.ID, s.now))
		s.Require().NoError(s.store.MarkResolved(ctx, alert.ID, s.now.Add(time.Hour)))

		history, err := s.store.ListHistory(ctx, traveler)
		s.Require().NoError(err)
		s.Require().Len(history, 1)
		s.True(history[0].Resolved)
		s.Equal(s.now, *history[0].ResolvedAt)
	})
}

func (s *InMemoryAlertStoreSuite) TestMarkEmailed() {
	ctx := context.Background()

	s.Run("only alerts at the rendered revision are marked", func() {
		travelerA := id.TravelerID(uuid.New())
		travelerB := id.TravelerID(uuid.New())
		a := s.newAlert(travelerA, models.RiskYellow)
		b := s.newAlert(travelerB, models.RiskYellow)
		s.Require().NoError(s.store.Upsert(ctx, a))
		s.Require().NoError(s.store.Upsert(ctx, b))
		refs := []models.AlertRef{a.Ref(), b.Ref()}

		// b escalates between render and mark
		_, err := b.ChangeLevel(models.RiskOrange, "escalated", s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.Upsert(ctx, b))

		marked, err := s.store.MarkEmailed(ctx, refs)
		s.Require().NoError(err)
		s.Equal(1, marked)

		pending, err := s.store.ListUnresolved(ctx, models.AlertFilter{EmailPending: true})
		s.Require().NoError(err)
		s.Require().Len(pending, 1)
		s.Equal(b.ID, pending[0].ID)
	})

	s.Run("marking again is a no-op", func() {
		traveler := id.TravelerID(uuid.New())
		alert := s.newAlert(traveler, models.RiskRed)
		s.Require().NoError(s.store.Upsert(ctx, alert))

		first, err := s.store.MarkEmailed(ctx, []models.AlertRef{alert.Ref()})
		s.Require().NoError(err)
		second, err := s.store.MarkEmailed(ctx, []models.AlertRef{alert.Ref()})
		s.Require().NoError(err)
		s.Equal(1, first)
		s.Equal(0, second)
	})
}

// =============================================================================
// ListUnresolved
// =============================================================================

func (s *InMemoryAlertStoreSuite) TestListUnresolved() {
	ctx := context.Background()
	yellow := s.newAlert(id.TravelerID(uuid.New()), models.RiskYellow)
	red := s.newAlert(id.TravelerID(uuid.New()), models.RiskRed)
	red.CreatedAt = s.now.Add(time.Minute)
	closed := s.newAlert(id.TravelerID(uuid.New()), models.RiskRed)
	for _, a := range []*models.Alert{yellow, red, closed} {
		s.Require().NoError(s.store.Upsert(ctx, a))
	}
	s.Require().NoError(s.store.MarkResolved(ctx, closed.ID, s.now))

	s.Run("empty filter lists open alerts oldest first", func() {
		got, err := s.store.ListUnresolved(ctx, models.AlertFilter{})
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(yellow.ID, got[0].ID)
		s.Equal(red.ID, got[1].ID)
	})

	s.Run("risk level filter", func() {
		got, err := s.store.ListUnresolved(ctx, models.AlertFilter{RiskLevel: models.RiskRed})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(red.ID, got[0].ID)
	})

	s.Run("traveler filter", func() {
		got, err := s.store.ListUnresolved(ctx, models.AlertFilter{TravelerID: yellow.TravelerID})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(yellow.ID, got[0].ID)
	})
}

// =============================================================================
// ShardedTx
// =============================================================================

func (s *InMemoryAlertStoreSuite) TestShardedTxSerializesPerTraveler() {
	txr := NewShardedTx(s.store, 0)
	traveler := id.TravelerID(uuid.New())
	const goroutines = 50

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- txr.RunInTx(context.Background(), traveler, func(ctx context.Context, store ports.AlertStore) error {
				existing, err := store.GetUnresolved(ctx, traveler)
				if err != nil || existing != nil {
					return err
				}
				return store.Upsert(ctx, s.newAlert(traveler, models.RiskYellow))
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	history, err := s.store.ListHistory(context.Background(), traveler)
	s.Require().NoError(err)
	s.Len(history, 1, "check-then-insert under the traveler lock must create exactly one alert")
}

func (s *InMemoryAlertStoreSuite) TestShardedTxRejectsCancelledContext() {
	txr := NewShardedTx(s.store, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := txr.RunInTx(ctx, id.TravelerID(uuid.New()), func(context.Context, ports.AlertStore) error {
		called = true
		return nil
	})
	s.Error(err)
	s.False(called)
}
