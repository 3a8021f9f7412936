// Package app assembles the stores, services and HTTP router from Config.
// The server and the ops CLI share it so both see the same wiring.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staywatch/internal/compliance/handler"
	complianceMetrics "staywatch/internal/compliance/metrics"
	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/notify"
	"staywatch/internal/compliance/ports"
	"staywatch/internal/compliance/presence"
	"staywatch/internal/compliance/service/alerts"
	"staywatch/internal/compliance/service/query"
	alertStore "staywatch/internal/compliance/store/alert"
	"staywatch/internal/compliance/store/lease"
	tripStore "staywatch/internal/compliance/store/trip"
	"staywatch/internal/compliance/window"
	"staywatch/internal/platform/config"
	platformMetrics "staywatch/internal/platform/metrics"
	"staywatch/internal/platform/middleware"
	"staywatch/internal/platform/postgres"
	"staywatch/internal/platform/redis"
	id "staywatch/pkg/domain"
	"staywatch/pkg/platform/httputil"
	"staywatch/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// TripStore is what both trip store implementations offer.
type TripStore interface {
	ports.TripRepository
	Add(ctx context.Context, intervals ...models.TravelInterval) error
	Replace(ctx context.Context, travelerID id.TravelerID, intervals []models.TravelInterval) error
}

// AlertStore is what both alert store implementations offer.
type AlertStore interface {
	ports.AlertStore
	ports.AlertHistory
}

type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Trips    TripStore
	Store    AlertStore
	Alerts   *alerts.Service
	Query    *query.Service
	Registry *prometheus.Registry

	httpMetrics *platformMetrics.Metrics
	checks      map[string]func(context.Context) error
	closers     []func()
	persistent  bool
}

// New connects every configured backend. On error, anything already opened
// is closed before returning.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
		checks:   make(map[string]func(context.Context) error),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.httpMetrics = platformMetrics.NewWith(a.Registry)

	tx, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	dispatchLease, err := a.openLease(ctx)
	if err != nil {
		return nil, err
	}

	sink, err := a.openSink(ctx)
	if err != nil {
		return nil, err
	}

	display, err := window.NewDisplayPolicy(cfg.Policy.GreenThreshold, cfg.Policy.AmberThreshold)
	if err != nil {
		return nil, err
	}
	builder := presence.NewBuilder(presence.WithExcludedTerritories(cfg.Policy.ExcludedTerritories...))

	a.Alerts, err = alerts.New(a.Trips, a.Store, tx,
		alerts.WithLogger(logger),
		alerts.WithMetrics(complianceMetrics.NewWith(a.Registry)),
		alerts.WithBuilder(builder),
		alerts.WithSink(sink, cfg.Notification.Recipient),
		alerts.WithLease(dispatchLease, cfg.Notification.LeaseTTL),
		alerts.WithConcurrency(cfg.Scheduler.Concurrency),
	)
	if err != nil {
		return nil, fmt.Errorf("create alert service: %w", err)
	}

	a.Query, err = query.New(a.Trips, a.Store,
		query.WithLogger(logger),
		query.WithBuilder(builder),
		query.WithDisplayPolicy(display),
		query.WithHistory(a.Store),
	)
	if err != nil {
		return nil, fmt.Errorf("create query service: %w", err)
	}

	return a, nil
}

// Persistent reports whether the stores outlive the process.
func (a *App) Persistent() bool {
	return a.persistent
}

func (a *App) openStores(ctx context.Context) (ports.AlertTx, error) {
	if a.Config.Postgres.URL == "" {
		a.Logger.Warn("POSTGRES_URL not set, using in-memory stores")
		trips := tripStore.NewInMemoryStore()
		store := alertStore.NewInMemoryStore()
		a.Trips, a.Store = trips, store
		return alertStore.NewShardedTx(store, 0), nil
	}

	db, err := postgres.Open(ctx, a.Config.Postgres)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	a.checks["postgres"] = db.PingContext

	if a.Config.Postgres.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.OpenPool(ctx, a.Config.Postgres)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)

	store := alertStore.NewPostgres(db)
	a.Trips = tripStore.NewPostgres(pool)
	a.Store = store
	a.persistent = true
	return alertStore.NewPostgresTx(db, store), nil
}

func (a *App) openLease(ctx context.Context) (ports.DispatchLease, error) {
	client, err := redis.Open(ctx, a.Config.Redis)
	if errors.Is(err, redis.ErrNotConfigured) {
		return lease.NewLocal(), nil
	}
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.checks["redis"] = redis.HealthCheck(client)
	return lease.NewRedis(client, a.Config.Redis.LeaseKey), nil
}

func (a *App) openSink(ctx context.Context) (ports.NotificationSink, error) {
	cfg := a.Config
	switch strings.ToLower(cfg.Notification.Sink) {
	case "smtp":
		return notify.NewSMTPSink(cfg.SMTP.Addr, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	case "kafka":
		sink, err := notify.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sink.Close)
		if err := sink.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
			return nil, err
		}
		a.checks["kafka"] = sink.Ping
		return sink, nil

	case "amqp":
		sink, err := notify.NewAMQPSink(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = sink.Close() })
		return sink, nil

	default:
		return notify.NewLogSink(a.Logger), nil
	}
}

// Router returns the full HTTP surface: compliance routes, /healthz and /metrics.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requesttime.Middleware)
	r.Use(middleware.AccessLog(a.Logger))
	r.Use(a.httpMetrics.Middleware)

	r.Get("/healthz", a.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	handler.New(a.Query, a.Alerts, a.Trips, a.Logger).Register(r)
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(a.checks))}
	status := http.StatusOK
	for name, check := range a.checks {
		if err := check(ctx); err != nil {
			a.Logger.WarnContext(ctx, "health check failed", "backend", name, "error", err)
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}

// Close releases backends in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// compile-time checks that both store pairs satisfy the app's needs.
var (
	_ TripStore  = (*tripStore.InMemoryStore)(nil)
	_ TripStore  = (*tripStore.PostgresStore)(nil)
	_ AlertStore = (*alertStore.InMemoryStore)(nil)
	_ AlertStore = (*alertStore.PostgresStore)(nil)
)
