// Package ports defines the collaborators the compliance engine consumes.
// The engine owns when these are called; implementations own durability.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
)

// TripRepository supplies travel intervals. The engine never writes to it.
type TripRepository interface {
	// ListIntervals returns every interval recorded for a traveler, in any order.
	ListIntervals(ctx context.Context, travelerID id.TravelerID) ([]models.TravelInterval, error)

	// ListTravelers returns every traveler with at least one interval.
	ListTravelers(ctx context.Context) ([]id.TravelerID, error)
}

// AlertStore persists alerts. It must reject a second unresolved alert for the
// same traveler with sentinel.ErrConflict.
type AlertStore interface {
	// GetUnresolved returns the traveler's open alert, or nil when there is none.
	GetUnresolved(ctx context.Context, travelerID id.TravelerID) (*models.Alert, error)

	// Upsert inserts a new alert or overwrites an existing one by ID.
	Upsert(ctx context.Context, alert *models.Alert) error

	// MarkResolved closes an open alert.
	MarkResolved(ctx context.Context, alertID id.AlertID, resolvedAt time.Time) error

	// MarkEmailed sets email_sent on each alert still at the given revision and
	// returns how many were marked.
	MarkEmailed(ctx context.Context, refs []models.AlertRef) (int, error)

	// ListUnresolved returns open alerts matching the filter.
	ListUnresolved(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error)
}

// AlertTx runs a read-modify-write against one traveler's alerts atomically.
// Evaluations for different travelers must not block each other.
type AlertTx interface {
	RunInTx(ctx context.Context, travelerID id.TravelerID, fn func(ctx context.Context, store AlertStore) error) error
}

// NotificationSink delivers one rendered message. A non-nil error means the
// message was not delivered.
type NotificationSink interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// DispatchLease keeps concurrent replicas from dispatching the same cycle.
type DispatchLease interface {
	// Acquire returns ok=false without error when another holder owns the lease.
	Acquire(ctx context.Context, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

// AlertHistory is implemented by stores that keep resolved alerts queryable.
type AlertHistory interface {
	ListHistory(ctx context.Context, travelerID id.TravelerID) ([]*models.Alert, error)
}
