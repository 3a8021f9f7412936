// Package worker runs the periodic evaluate-then-dispatch cycle.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"staywatch/internal/compliance/service/alerts"
)

// Cycle is the slice of the alert service a scheduled run needs.
type Cycle interface {
	EvaluateAll(ctx context.Context) (*alerts.BatchReport, error)
	DispatchNotifications(ctx context.Context) (*alerts.DispatchReport, error)
}

type Scheduler struct {
	cycle    Cycle
	interval time.Duration
	dispatch bool
	logger   *slog.Logger
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithoutDispatch runs evaluation only, for deployments with no sink.
func WithoutDispatch() Option {
	return func(s *Scheduler) {
		s.dispatch = false
	}
}

func New(cycle Cycle, interval time.Duration, opts ...Option) (*Scheduler, error) {
	if cycle == nil {
		return nil, errors.New("alert service is required")
	}
	if interval <= 0 {
		return nil, errors.New("interval must be positive")
	}
	s := &Scheduler{
		cycle:    cycle,
		interval: interval,
		dispatch: true,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run executes one cycle immediately and then one per interval until ctx is
// cancelled. A failed cycle is logged; the next tick runs regardless.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce evaluates every traveler and then, if enabled, dispatches the digest.
// Dispatch still runs when some travelers failed to evaluate.
func (s *Scheduler) RunOnce(ctx context.Context) {
	report, err := s.cycle.EvaluateAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled evaluation failed", "error", err)
		if ctx.Err() != nil {
			return
		}
	} else if len(report.Failures) > 0 {
		s.logger.WarnContext(ctx, "scheduled evaluation had failures",
			"evaluated", report.Evaluated,
			"failed", len(report.Failures),
		)
	}

	if !s.dispatch {
		return
	}
	dispatched, err := s.cycle.DispatchNotifications(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled dispatch failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled cycle complete",
		"dispatch", dispatched.Outcome,
		"marked", dispatched.Marked,
	)
}
