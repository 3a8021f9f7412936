package alerts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/ports/mocks"
	alertStore "staywatch/internal/compliance/store/alert"
	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
	"staywatch/pkg/platform/sentinel"
)

// =============================================================================
// EvaluateAll
// =============================================================================

func (s *AlertServiceSuite) TestEvaluateAllIsolatesFailures() {
	ok1 := id.TravelerID(uuid.New())
	ok2 := id.TravelerID(uuid.New())
	broken := id.TravelerID(uuid.New())
	s.setUsage(ok1, 76)
	s.setUsage(ok2, 10)
	s.Require().NoError(s.trips.Add(context.Background(), models.TravelInterval{
		TravelerID: broken,
		Territory:  "FR",
		EntryDate:  s.today.AddDays(-1),
		ExitDate:   s.today.AddDays(-5),
	}))

	report, err := s.service.EvaluateAll(s.ctx())
	s.Require().NoError(err)

	s.Equal(3, report.Travelers)
	s.Equal(2, report.Evaluated)
	s.Equal(1, report.Levels[models.RiskYellow])
	s.Equal(1, report.Levels[models.RiskNone])
	s.Equal(1, report.Transitions[models.TransitionCreated])
	s.Require().Len(report.Failures, 1)
	s.Equal(broken, report.Failures[0].TravelerID)
	s.Equal(string(dErrors.CodeValidation), report.Failures[0].Code)
	s.NotNil(s.unresolved(ok1))
	s.Equal(s.now, report.StartedAt)
}

func (s *AlertServiceSuite) TestEvaluateAllRespectsConcurrencyLimit() {
	svc, err := New(s.trips, s.alerts, alertStore.NewShardedTx(s.alerts, 0), WithConcurrency(2))
	s.Require().NoError(err)
	for i := 0; i < 20; i++ {
		s.setUsage(id.TravelerID(uuid.New()), 75+i)
	}

	report, err := svc.EvaluateAll(s.ctx())
	s.Require().NoError(err)
	s.Equal(20, report.Evaluated)
	s.Empty(report.Failures)

	open, err := s.alerts.ListUnresolved(context.Background(), models.AlertFilter{})
	s.Require().NoError(err)
	s.Len(open, 20)
}

func (s *AlertServiceSuite) TestEvaluateAllListFailure() {
	trips := mocks.NewMockTripRepository(s.ctrl)
	svc, err := New(trips, s.alerts, alertStore.NewShardedTx(s.alerts, 0))
	s.Require().NoError(err)
	trips.EXPECT().ListTravelers(gomock.Any()).Return(nil, sentinel.ErrUnavailable)

	report, err := svc.EvaluateAll(s.ctx())
	s.Nil(report)
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *AlertServiceSuite) TestEvaluateAllResolvesAlertOfTravelerWithoutTrips() {
	traveler := id.TravelerID(uuid.New())
	s.setUsage(traveler, 88)
	level, err := s.service.Evaluate(s.ctx(), traveler)
	s.Require().NoError(err)
	s.Require().Equal(models.RiskOrange, level)

	// every trip withdrawn; the traveler no longer appears in the trip store
	s.setUsage(traveler, 0)

	report, err := s.service.EvaluateAll(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, report.Travelers)
	s.Equal(1, report.Evaluated)
	s.Equal(1, report.Transitions[models.TransitionResolved])
	s.Nil(s.unresolved(traveler))

	history := s.history(traveler)
	s.Require().Len(history, 1)
	s.True(history[0].Resolved)
}

func (s *AlertServiceSuite) TestEvaluateAllCountsTravelerOnce() {
	traveler := id.TravelerID(uuid.New())
	s.setUsage(traveler, 80)
	_, err := s.service.Evaluate(s.ctx(), traveler)
	s.Require().NoError(err)

	report, err := s.service.EvaluateAll(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, report.Travelers, "trips and open alert name the same traveler")
	s.Equal(1, report.Transitions[models.TransitionRefreshed])
}

func (s *AlertServiceSuite) TestEvaluateAllOpenAlertListFailure() {
	store := mocks.NewMockAlertStore(s.ctrl)
	svc, err := New(s.trips, store, passthroughTx{store: store})
	s.Require().NoError(err)
	store.EXPECT().ListUnresolved(gomock.Any(), models.AlertFilter{}).Return(nil, errors.New("connection reset"))

	report, err := svc.EvaluateAll(s.ctx())
	s.Nil(report)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *AlertServiceSuite) TestEvaluateAllCancelled() {
	s.setUsage(id.TravelerID(uuid.New()), 80)
	ctx, cancel := context.WithCancel(s.ctx())
	cancel()

	report, err := s.service.EvaluateAll(ctx)
	s.Require().NotNil(report)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.Equal(0, report.Evaluated)
}

// =============================================================================
// DispatchNotifications
// =============================================================================

func (s *AlertServiceSuite) TestDispatchNothingPending() {
	report, err := s.service.DispatchNotifications(s.ctx())
	s.Require().NoError(err)
	s.Equal(DispatchEmpty, report.Outcome)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Dispatches.WithLabelValues(DispatchEmpty)))
}

func (s *AlertServiceSuite) TestDispatchSendsOneDigestAndMarksAll() {
	a := id.TravelerID(uuid.New())
	b := id.TravelerID(uuid.New())
	s.setUsage(a, 76)
	s.setUsage(b, 95)
	_, err := s.service.EvaluateAll(s.ctx())
	s.Require().NoError(err)

	s.sink.EXPECT().
		Send(gomock.Any(), "officer@example.com", "[staywatch] 2 compliance alerts (1 RED, 1 YELLOW)", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, body string) error {
			s.Less(strings.Index(body, b.String()), strings.Index(body, a.String()), "RED listed before YELLOW")
			return nil
		})

	report, err := s.service.DispatchNotifications(s.ctx())
	s.Require().NoError(err)
	s.Equal(DispatchSent, report.Outcome)
	s.Equal(2, report.Pending)
	s.Equal(2, report.Marked)

	// nothing left to send
	again, err := s.service.DispatchNotifications(s.ctx())
	s.Require().NoError(err)
	s.Equal(DispatchEmpty, again.Outcome)
	s.Equal(float64(2), promtestutil.ToFloat64(s.metrics.AlertsEmailed))
}

func (s *AlertServiceSuite) TestDispatchSendFailureMarksNothing() {
	traveler := id.TravelerID(uuid.New())
	s.setUsage(traveler, 88)
	_, err := s.service.Evaluate(s.ctx(), traveler)
	s.Require().NoError(err)

	s.sink.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp timeout"))
	report, err := s.service.DispatchNotifications(s.ctx())
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(DispatchFailed, report.Outcome)
	s.False(s.unresolved(traveler).EmailSent)

	// the next cycle retries the same alert
	s.sink.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	report, err = s.service.DispatchNotifications(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, report.Marked)
	s.True(s.unresolved(traveler).EmailSent)
}

func (s *AlertServiceSuite) TestDispatchSkipsAlertEscalatedDuringSend() {
	traveler := id.TravelerID(uuid.New())
	s.setUsage(traveler, 76)
	_, err := s.service.Evaluate(s.ctx(), traveler)
	s.Require().NoError(err)

	s.sink.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, string) error {
			s.setUsage(traveler, 91)
			_, err := s.service.Evaluate(s.ctx(), traveler)
			s.Require().NoError(err)
			return nil
		})

	report, err := s.service.DispatchNotifications(s.ctx())
	s.Require().NoError(err)
	s.Equal(0, report.Marked, "the rendered YELLOW version is stale")

	red := s.unresolved(traveler)
	s.Equal(models.RiskRed, red.RiskLevel)
	s.False(red.EmailSent, "the RED escalation still needs its own notification")
}

func (s *AlertServiceSuite) TestDispatchLease() {
	traveler := id.TravelerID(uuid.New())
	s.setUsage(traveler, 80)
	_, err := s.service.Evaluate(s.ctx(), traveler)
	s.Require().NoError(err)

	s.Run("held lease skips the cycle", func() {
		lease := mocks.NewMockDispatchLease(s.ctrl)
		svc, err := New(s.trips, s.alerts, alertStore.NewShardedTx(s.alerts, 0),
			WithSink(s.sink, "officer@example.com"),
			WithLease(lease, time.Minute),
		)
		s.Require().NoError(err)
		lease.EXPECT().Acquire(gomock.Any(), time.Minute).Return(nil, false, nil)

		report, err := svc.DispatchNotifications(s.ctx())
		s.Require().NoError(err)
		s.Equal(DispatchSkipped, report.Outcome)
	})

	s.Run("acquired lease is released after sending", func() {
		lease := mocks.NewMockDispatchLease(s.ctrl)
		svc, err := New(s.trips, s.alerts, alertStore.NewShardedTx(s.alerts, 0),
			WithSink(s.sink, "officer@example.com"),
			WithLease(lease, time.Minute),
		)
		s.Require().NoError(err)

		released := false
		release := func(context.Context) error {
			released = true
			return nil
		}
		lease.EXPECT().Acquire(gomock.Any(), time.Minute).Return(release, true, nil)
		s.sink.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		report, err := svc.DispatchNotifications(s.ctx())
		s.Require().NoError(err)
		s.Equal(DispatchSent, report.Outcome)
		s.True(released)
	})

	s.Run("lease backend failure is unavailable", func() {
		lease := mocks.NewMockDispatchLease(s.ctrl)
		svc, err := New(s.trips, s.alerts, alertStore.NewShardedTx(s.alerts, 0),
			WithSink(s.sink, "officer@example.com"),
			WithLease(lease, time.Minute),
		)
		s.Require().NoError(err)
		lease.EXPECT().Acquire(gomock.Any(), time.Minute).Return(nil, false, errors.New("redis down"))

		_, err = svc.DispatchNotifications(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *AlertServiceSuite) TestDispatchWithoutSink() {
	svc, err := New(s.trips, s.alerts, alertStore.NewShardedTx(s.alerts, 0))
	s.Require().NoError(err)

	_, err = svc.DispatchNotifications(s.ctx())
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *AlertServiceSuite) TestDispatchMarkFailure() {
	store := mocks.NewMockAlertStore(s.ctrl)
	svc, err := New(s.trips, store, passthroughTx{store: store}, WithSink(s.sink, "officer@example.com"))
	s.Require().NoError(err)

	pending, err := models.NewAlert(id.NewAlertID(), id.TravelerID(uuid.New()), models.RiskRed, "msg", s.now)
	s.Require().NoError(err)
	store.EXPECT().ListUnresolved(gomock.Any(), models.AlertFilter{EmailPending: true}).Return([]*models.Alert{pending}, nil)
	s.sink.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().MarkEmailed(gomock.Any(), []models.AlertRef{pending.Ref()}).Return(0, errors.New("deadlock"))

	report, err := svc.DispatchNotifications(s.ctx())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(DispatchFailed, report.Outcome)
}
