package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/service/alerts"
	id "staywatch/pkg/domain"
	"staywatch/pkg/platform/httputil"
	"staywatch/pkg/requestcontext"
)

// QueryService answers read-only compliance questions.
type QueryService interface {
	WindowResult(ctx context.Context, travelerID id.TravelerID, ref models.Date) (*models.WindowResult, error)
	ComplianceForecast(ctx context.Context, travelerID id.TravelerID, today models.Date) (*models.ComplianceForecast, error)
	ActiveAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error)
	AlertHistory(ctx context.Context, travelerID id.TravelerID) ([]*models.Alert, error)
}

// AlertService drives evaluation and dispatch.
type AlertService interface {
	EvaluateWithOutcome(ctx context.Context, travelerID id.TravelerID) (*alerts.Outcome, error)
	EvaluateAll(ctx context.Context) (*alerts.BatchReport, error)
	DispatchNotifications(ctx context.Context) (*alerts.DispatchReport, error)
}

// TripRecorder appends travel intervals.
type TripRecorder interface {
	Add(ctx context.Context, intervals ...models.TravelInterval) error
}

// Handler exposes the compliance services over HTTP.
type Handler struct {
	query  QueryService
	alerts AlertService
	trips  TripRecorder
	logger *slog.Logger
}

// New constructs a compliance handler. trips may be nil, in which case the
// trip recording endpoint is not mounted.
func New(query QueryService, alerts AlertService, trips TripRecorder, logger *slog.Logger) *Handler {
	return &Handler{
		query:  query,
		alerts: alerts,
		trips:  trips,
		logger: logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/travelers/{travelerID}", func(r chi.Router) {
		r.Get("/window", h.HandleWindow)
		r.Get("/forecast", h.HandleForecast)
		r.Post("/evaluate", h.HandleEvaluate)
		r.Get("/alerts/history", h.HandleAlertHistory)
		if h.trips != nil {
			r.Post("/trips", h.HandleRecordTrip)
		}
	})
	r.Get("/alerts", h.HandleListAlerts)
	r.Post("/alerts/evaluate", h.HandleEvaluateAll)
	r.Post("/alerts/dispatch", h.HandleDispatch)
}

// HandleWindow handles GET /travelers/{travelerID}/window?date=YYYY-MM-DD.
// The date defaults to today.
func (h *Handler) HandleWindow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	travelerID, err := travelerIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ref, err := dateQuery(r, "date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.query.WindowResult(ctx, travelerID, ref)
	if err != nil {
		h.logger.ErrorContext(ctx, "window query failed",
			"request_id", requestID,
			"traveler_id", travelerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromWindow(travelerID, result))
}

// HandleForecast handles GET /travelers/{travelerID}/forecast?today=YYYY-MM-DD.
func (h *Handler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	travelerID, err := travelerIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	today, err := dateQuery(r, "today")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.query.ComplianceForecast(ctx, travelerID, today)
	if err != nil {
		h.logger.ErrorContext(ctx, "forecast query failed",
			"request_id", requestID,
			"traveler_id", travelerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromForecast(travelerID, today, result))
}

// HandleEvaluate handles POST /travelers/{travelerID}/evaluate.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	travelerID, err := travelerIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.alerts.EvaluateWithOutcome(ctx, travelerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"traveler_id", travelerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "traveler evaluated",
		"request_id", requestID,
		"traveler_id", travelerID,
		"risk_level", outcome.Level,
		"transition", outcome.Transition,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome, requestcontext.Now(ctx)))
}

// HandleAlertHistory handles GET /travelers/{travelerID}/alerts/history.
func (h *Handler) HandleAlertHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	travelerID, err := travelerIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	history, err := h.query.AlertHistory(ctx, travelerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "alert history query failed",
			"request_id", requestcontext.RequestID(ctx),
			"traveler_id", travelerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAlerts(history))
}

// HandleRecordTrip handles POST /travelers/{travelerID}/trips.
func (h *Handler) HandleRecordTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	travelerID, err := travelerIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndValidate[RecordTripRequest](w, r, h.logger)
	if !ok {
		return
	}

	interval, err := req.Interval(travelerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.trips.Add(ctx, interval); err != nil {
		h.logger.ErrorContext(ctx, "failed to record trip",
			"request_id", requestID,
			"traveler_id", travelerID,
			"error", err,
		)
		httputil.WriteError(w, wrapInternal(err, "failed to record trip"))
		return
	}

	h.logger.InfoContext(ctx, "trip recorded",
		"request_id", requestID,
		"traveler_id", travelerID,
		"territory", interval.Territory,
	)
	httputil.WriteJSON(w, http.StatusCreated, interval)
}

// HandleListAlerts handles GET /alerts?risk_level=&traveler_id=&pending_email=.
func (h *Handler) HandleListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := alertFilterQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	active, err := h.query.ActiveAlerts(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "alert listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAlerts(active))
}

// HandleEvaluateAll handles POST /alerts/evaluate.
func (h *Handler) HandleEvaluateAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	report, err := h.alerts.EvaluateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch evaluation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch evaluated",
		"request_id", requestID,
		"travelers", report.Travelers,
		"failed", len(report.Failures),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleDispatch handles POST /alerts/dispatch.
func (h *Handler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	report, err := h.alerts.DispatchNotifications(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dispatch failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dispatch completed",
		"request_id", requestID,
		"outcome", report.Outcome,
		"marked", report.Marked,
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}
