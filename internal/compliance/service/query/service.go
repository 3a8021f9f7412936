// Package query answers read-only compliance questions: window usage, the
// safe-entry forecast, and the current alert set. It never writes.
package query

import (
	"context"
	"fmt"
	"log/slog"

	"staywatch/internal/compliance/forecast"
	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/ports"
	"staywatch/internal/compliance/presence"
	"staywatch/internal/compliance/window"
	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
)

// Type aliases for shared interfaces.
type (
	TripRepository = ports.TripRepository
	AlertReader    = ports.AlertStore
	AlertHistory   = ports.AlertHistory
)

type Service struct {
	trips   TripRepository
	alerts  AlertReader
	history AlertHistory
	builder *presence.Builder
	display window.DisplayPolicy
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBuilder sets the presence builder; it must match the one used for alerts.
func WithBuilder(b *presence.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

func WithDisplayPolicy(p window.DisplayPolicy) Option {
	return func(s *Service) {
		s.display = p
	}
}

// WithHistory enables AlertHistory. Stores that keep resolved rows implement it.
func WithHistory(h AlertHistory) Option {
	return func(s *Service) {
		s.history = h
	}
}

func New(trips TripRepository, alerts AlertReader, opts ...Option) (*Service, error) {
	if trips == nil {
		return nil, fmt.Errorf("trip repository is required")
	}
	if alerts == nil {
		return nil, fmt.Errorf("alert store is required")
	}

	svc := &Service{
		trips:   trips,
		alerts:  alerts,
		builder: presence.NewBuilder(),
		display: window.DefaultDisplayPolicy(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(svc)
	}

	if err := svc.display.Validate(); err != nil {
		return nil, err
	}
	return svc, nil
}

// WindowResult reports usage and the display tier for ref.
func (s *Service) WindowResult(ctx context.Context, travelerID id.TravelerID, ref models.Date) (*models.WindowResult, error) {
	set, err := s.presence(ctx, travelerID)
	if err != nil {
		return nil, err
	}
	result := window.Calculate(set, ref, s.display)
	return &result, nil
}

// ComplianceForecast reports the earliest date the traveler is back within
// quota, or a compliant forecast when they already are on today.
func (s *Service) ComplianceForecast(ctx context.Context, travelerID id.TravelerID, today models.Date) (*models.ComplianceForecast, error) {
	set, err := s.presence(ctx, travelerID)
	if err != nil {
		return nil, err
	}
	result := forecast.Forecast(set, today, models.QuotaLimit)
	return &result, nil
}

// ActiveAlerts lists unresolved alerts matching filter, oldest first.
func (s *Service) ActiveAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error) {
	if filter.RiskLevel != "" && !filter.RiskLevel.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown risk level %q", filter.RiskLevel))
	}
	alerts, err := s.alerts.ListUnresolved(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
}

// AlertHistory lists every alert recorded for the traveler, resolved included.
func (s *Service) AlertHistory(ctx context.Context, travelerID id.TravelerID) ([]*models.Alert, error) {
	if travelerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "traveler_id is required")
	}
	if s.history == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "alert history is not supported by this store")
	}
	alerts, err := s.history.ListHistory(ctx, travelerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alert history")
	}
	return alerts, nil
}

func (s *Service) presence(ctx context.Context, travelerID id.TravelerID) (presence.Set, error) {
	if travelerID.IsNil() {
		return presence.Set{}, dErrors.New(dErrors.CodeBadRequest, "traveler_id is required")
	}
	intervals, err := s.trips.ListIntervals(ctx, travelerID)
	if err != nil {
		return presence.Set{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load travel intervals")
	}
	return s.builder.Build(intervals)
}
