package alerts

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
	"staywatch/pkg/requestcontext"
)

// TravelerFailure records one traveler whose evaluation failed in a batch.
type TravelerFailure struct {
	TravelerID id.TravelerID `json:"traveler_id"`
	Code       string        `json:"code"`
	Error      string        `json:"error"`
}

// BatchReport summarizes an EvaluateAll run.
type BatchReport struct {
	StartedAt   time.Time                 `json:"started_at"`
	Travelers   int                       `json:"travelers"`
	Evaluated   int                       `json:"evaluated"`
	Levels      map[models.RiskLevel]int  `json:"levels"`
	Transitions map[models.Transition]int `json:"transitions"`
	Failures    []TravelerFailure         `json:"failures,omitempty"`
}

// EvaluateAll re-evaluates every known traveler with bounded parallelism.
// A failing traveler is logged and reported; it never stops the batch.
// Every traveler is evaluated against the same "now".
func (s *Service) EvaluateAll(ctx context.Context) (*BatchReport, error) {
	ctx, span := s.tracer.Start(ctx, "alerts.EvaluateAll")
	defer span.End()

	now := requestcontext.Now(ctx)
	ctx = requestcontext.WithTime(ctx, now)

	travelers, err := s.batchTravelers(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.SetBatchTravelers(len(travelers))

	report := &BatchReport{
		StartedAt:   now,
		Travelers:   len(travelers),
		Levels:      make(map[models.RiskLevel]int),
		Transitions: make(map[models.Transition]int),
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, travelerID := range travelers {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, err := s.EvaluateWithOutcome(ctx, travelerID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.ErrorContext(ctx, "traveler evaluation failed",
					"traveler_id", travelerID,
					"error", err,
				)
				report.Failures = append(report.Failures, TravelerFailure{
					TravelerID: travelerID,
					Code:       string(dErrors.CodeOf(err)),
					Error:      err.Error(),
				})
				return nil
			}
			report.Evaluated++
			report.Levels[outcome.Level]++
			report.Transitions[outcome.Transition]++
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(report.Failures, func(a, b TravelerFailure) int {
		return strings.Compare(a.TravelerID.String(), b.TravelerID.String())
	})

	s.logger.InfoContext(ctx, "batch evaluation complete",
		"travelers", report.Travelers,
		"evaluated", report.Evaluated,
		"failed", len(report.Failures),
		"duration_ms", time.Since(now).Milliseconds(),
	)

	if err := ctx.Err(); err != nil {
		return report, dErrors.Wrap(err, dErrors.CodeTimeout, "batch evaluation interrupted")
	}
	return report, nil
}

// batchTravelers is everyone with trips plus everyone holding an open alert.
// A traveler whose trips were all removed still needs the pass that resolves
// their alert.
func (s *Service) batchTravelers(ctx context.Context) ([]id.TravelerID, error) {
	travelers, err := s.trips.ListTravelers(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list travelers")
	}
	open, err := s.alerts.ListUnresolved(ctx, models.AlertFilter{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list open alerts")
	}

	seen := make(map[id.TravelerID]struct{}, len(travelers)+len(open))
	out := make([]id.TravelerID, 0, len(travelers)+len(open))
	add := func(travelerID id.TravelerID) {
		if _, dup := seen[travelerID]; dup {
			return
		}
		seen[travelerID] = struct{}{}
		out = append(out, travelerID)
	}
	for _, travelerID := range travelers {
		add(travelerID)
	}
	for _, alert := range open {
		add(alert.TravelerID)
	}
	return out, nil
}
