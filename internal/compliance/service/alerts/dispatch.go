package alerts

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/notify"
	dErrors "staywatch/pkg/domain-errors"
	"staywatch/pkg/requestcontext"
)

// Dispatch outcomes, also used as metric labels.
const (
	DispatchSent    = "sent"
	DispatchEmpty   = "empty"
	DispatchFailed  = "failed"
	DispatchSkipped = "skipped"
)

// DispatchReport summarizes one dispatch cycle.
type DispatchReport struct {
	Outcome string `json:"outcome"`
	Pending int    `json:"pending"`
	Marked  int    `json:"marked"`
	Subject string `json:"subject,omitempty"`
}

// DispatchNotifications sends one digest of every unresolved alert not yet
// emailed, then marks exactly the rendered alert versions as emailed.
// A failed send marks nothing, so the next cycle sends them again.
func (s *Service) DispatchNotifications(ctx context.Context) (*DispatchReport, error) {
	if s.sink == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "no notification sink configured")
	}

	ctx, span := s.tracer.Start(ctx, "alerts.DispatchNotifications")
	defer span.End()

	if s.lease != nil {
		release, ok, err := s.lease.Acquire(ctx, s.leaseTTL)
		if err != nil {
			span.RecordError(err)
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to acquire dispatch lease")
		}
		if !ok {
			s.metrics.ObserveDispatch(DispatchSkipped, 0)
			s.logger.InfoContext(ctx, "dispatch skipped, lease held elsewhere")
			return &DispatchReport{Outcome: DispatchSkipped}, nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.WarnContext(ctx, "failed to release dispatch lease", "error", err)
			}
		}()
	}

	pending, err := s.alerts.ListUnresolved(ctx, models.AlertFilter{EmailPending: true})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list pending alerts failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending alerts")
	}
	span.SetAttributes(attribute.Int("pending", len(pending)))
	if len(pending) == 0 {
		s.metrics.ObserveDispatch(DispatchEmpty, 0)
		return &DispatchReport{Outcome: DispatchEmpty}, nil
	}

	digest := notify.RenderDigest(pending, requestcontext.Now(ctx))
	report := &DispatchReport{Pending: len(pending), Subject: digest.Subject}

	if err := s.sink.Send(ctx, s.recipient, digest.Subject, digest.Body); err != nil {
		s.metrics.ObserveDispatch(DispatchFailed, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		s.logger.ErrorContext(ctx, "notification digest send failed",
			"pending", len(pending),
			"error", err,
		)
		report.Outcome = DispatchFailed
		return report, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to send notification digest")
	}

	marked, err := s.alerts.MarkEmailed(ctx, digest.Refs)
	if err != nil {
		// Sent but not marked: the next cycle repeats the digest.
		s.metrics.ObserveDispatch(DispatchFailed, 0)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "failed to mark alerts emailed",
			"pending", len(pending),
			"error", err,
		)
		report.Outcome = DispatchFailed
		return report, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark alerts emailed")
	}

	report.Outcome = DispatchSent
	report.Marked = marked
	s.metrics.ObserveDispatch(DispatchSent, marked)
	s.logger.InfoContext(ctx, "notification digest sent",
		"recipient", s.recipient,
		"pending", len(pending),
		"marked", marked,
	)
	return report, nil
}
