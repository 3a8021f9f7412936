// Package alerts owns the per-traveler alert lifecycle: evaluation against the
// notification thresholds, batch re-evaluation, and digest dispatch.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"staywatch/internal/compliance/metrics"
	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/notify"
	"staywatch/internal/compliance/ports"
	"staywatch/internal/compliance/presence"
	"staywatch/internal/compliance/window"
	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
	"staywatch/pkg/platform/sentinel"
	"staywatch/pkg/requestcontext"
)

// Type aliases for shared interfaces.
type (
	TripRepository = ports.TripRepository
	Store          = ports.AlertStore
	Tx             = ports.AlertTx
	Sink           = ports.NotificationSink
	Lease          = ports.DispatchLease
)

const (
	defaultConcurrency = 8
	defaultLeaseTTL    = 2 * time.Minute
	tracerName         = "staywatch/compliance/alerts"
)

type Service struct {
	trips       TripRepository
	alerts      Store
	tx          Tx
	sink        Sink
	recipient   string
	lease       Lease
	leaseTTL    time.Duration
	builder     *presence.Builder
	policy      window.NotificationPolicy
	concurrency int
	newID       func() id.AlertID
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithSink sets where DispatchNotifications delivers the digest.
func WithSink(sink Sink, recipient string) Option {
	return func(s *Service) {
		s.sink = sink
		s.recipient = recipient
	}
}

// WithLease guards each dispatch cycle so only one replica sends it.
func WithLease(lease Lease, ttl time.Duration) Option {
	return func(s *Service) {
		s.lease = lease
		if ttl > 0 {
			s.leaseTTL = ttl
		}
	}
}

// WithBuilder sets the presence builder, for example one that excludes territories.
func WithBuilder(b *presence.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithConcurrency bounds how many travelers EvaluateAll evaluates at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithIDGenerator overrides alert ID generation.
func WithIDGenerator(fn func() id.AlertID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func New(trips TripRepository, alerts Store, tx Tx, opts ...Option) (*Service, error) {
	if trips == nil {
		return nil, fmt.Errorf("trip repository is required")
	}
	if alerts == nil {
		return nil, fmt.Errorf("alert store is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("alert transaction runner is required")
	}

	svc := &Service{
		trips:       trips,
		alerts:      alerts,
		tx:          tx,
		leaseTTL:    defaultLeaseTTL,
		builder:     presence.NewBuilder(),
		concurrency: defaultConcurrency,
		newID:       id.NewAlertID,
		logger:      slog.New(slog.DiscardHandler),
		tracer:      otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.sink != nil && svc.recipient == "" {
		return nil, fmt.Errorf("notification recipient is required when a sink is configured")
	}

	return svc, nil
}

// Outcome is the result of evaluating one traveler.
type Outcome struct {
	TravelerID id.TravelerID     `json:"traveler_id"`
	Level      models.RiskLevel  `json:"risk_level"`
	DaysUsed   int               `json:"days_used"`
	Transition models.Transition `json:"transition"`
}

// Evaluate re-derives the traveler's notify tier as of today and applies the
// matching alert transition. Repeated calls with unchanged data are no-ops.
func (s *Service) Evaluate(ctx context.Context, travelerID id.TravelerID) (models.RiskLevel, error) {
	outcome, err := s.EvaluateWithOutcome(ctx, travelerID)
	if err != nil {
		return "", err
	}
	return outcome.Level, nil
}

// EvaluateWithOutcome is Evaluate, also reporting usage and what changed.
func (s *Service) EvaluateWithOutcome(ctx context.Context, travelerID id.TravelerID) (*Outcome, error) {
	if travelerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "traveler_id is required")
	}

	ctx, span := s.tracer.Start(ctx, "alerts.Evaluate", trace.WithAttributes(
		attribute.String("traveler_id", travelerID.String()),
	))
	defer span.End()
	start := time.Now()

	outcome, err := s.evaluate(ctx, travelerID)
	transition := ""
	if outcome != nil {
		transition = string(outcome.Transition)
		span.SetAttributes(
			attribute.String("risk_level", string(outcome.Level)),
			attribute.Int("days_used", outcome.DaysUsed),
			attribute.String("transition", transition),
		)
	}
	s.metrics.ObserveEvaluation(transition, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return nil, err
	}

	if outcome.Transition != models.TransitionNone && outcome.Transition != models.TransitionRefreshed {
		s.logger.InfoContext(ctx, "alert transition",
			"request_id", requestcontext.RequestID(ctx),
			"traveler_id", travelerID,
			"risk_level", outcome.Level,
			"days_used", outcome.DaysUsed,
			"transition", outcome.Transition,
		)
	}
	return outcome, nil
}

func (s *Service) evaluate(ctx context.Context, travelerID id.TravelerID) (*Outcome, error) {
	now := requestcontext.Now(ctx)
	today := models.DateOf(now)

	intervals, err := s.trips.ListIntervals(ctx, travelerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load travel intervals")
	}
	set, err := s.builder.Build(intervals)
	if err != nil {
		return nil, err
	}

	used := window.DaysUsed(set, today)
	level := s.policy.Classify(used)
	message := notify.AlertMessage(used, models.QuotaLimit)

	transition, err := s.applyWithRetry(ctx, travelerID, level, message, now)
	if err != nil {
		return nil, err
	}
	return &Outcome{TravelerID: travelerID, Level: level, DaysUsed: used, Transition: transition}, nil
}

// applyWithRetry retries once when a concurrent writer won the one-open-alert
// race; the second attempt sees the winner's row and converges on it.
func (s *Service) applyWithRetry(ctx context.Context, travelerID id.TravelerID, level models.RiskLevel, message string, now time.Time) (models.Transition, error) {
	transition, err := s.apply(ctx, travelerID, level, message, now)
	if errors.Is(err, sentinel.ErrConflict) {
		s.metrics.IncrementConflictRetries()
		s.logger.WarnContext(ctx, "alert write conflicted, retrying",
			"traveler_id", travelerID,
		)
		transition, err = s.apply(ctx, travelerID, level, message, now)
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.TransitionNone, dErrors.Wrap(err, dErrors.CodeConflict, "concurrent alert update")
		}
		var coded *dErrors.Error
		if errors.As(err, &coded) {
			return models.TransitionNone, err
		}
		return models.TransitionNone, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update alert")
	}
	return transition, nil
}

func (s *Service) apply(ctx context.Context, travelerID id.TravelerID, level models.RiskLevel, message string, now time.Time) (models.Transition, error) {
	transition := models.TransitionNone
	err := s.tx.RunInTx(ctx, travelerID, func(ctx context.Context, store ports.AlertStore) error {
		existing, err := store.GetUnresolved(ctx, travelerID)
		if err != nil {
			return fmt.Errorf("get unresolved alert: %w", err)
		}

		switch {
		case existing == nil && level == models.RiskNone:
			return nil

		case existing == nil:
			alert, err := models.NewAlert(s.newID(), travelerID, level, message, now)
			if err != nil {
				return err
			}
			if err := store.Upsert(ctx, alert); err != nil {
				return fmt.Errorf("create alert: %w", err)
			}
			transition = models.TransitionCreated
			return nil

		case level == models.RiskNone:
			if err := existing.CanResolve(); err != nil {
				return err
			}
			if err := store.MarkResolved(ctx, existing.ID, now); err != nil {
				return fmt.Errorf("resolve alert: %w", err)
			}
			transition = models.TransitionResolved
			return nil

		case existing.RiskLevel == level:
			transition = models.TransitionRefreshed
			if existing.Message == message {
				return nil
			}
			existing.Refresh(message, now)
			if err := store.Upsert(ctx, existing); err != nil {
				return fmt.Errorf("refresh alert: %w", err)
			}
			return nil

		default:
			changed, err := existing.ChangeLevel(level, message, now)
			if err != nil {
				return err
			}
			if err := store.Upsert(ctx, existing); err != nil {
				return fmt.Errorf("change alert level: %w", err)
			}
			transition = changed
			return nil
		}
	})
	if err != nil {
		return models.TransitionNone, err
	}
	return transition, nil
}
