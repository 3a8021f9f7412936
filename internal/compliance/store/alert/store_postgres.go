package alert

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"staywatch/internal/compliance/models"
	"staywatch/internal/compliance/ports"
	id "staywatch/pkg/domain"
	"staywatch/pkg/platform/sentinel"
	"staywatch/pkg/platform/tx"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const alertColumns = `id, traveler_id, risk_level, message, created_at, updated_at, resolved, resolved_at, email_sent, revision`

// PostgresStore persists alerts in PostgreSQL. The partial unique index on
// (traveler_id) WHERE NOT resolved backs the one-open-alert rule.
// Every method runs on the transaction carried by ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed alert store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetUnresolved(ctx context.Context, travelerID id.TravelerID) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM compliance_alerts WHERE traveler_id = $1 AND NOT resolved`
	alert, err := scanAlert(tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query, travelerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unresolved alert: %w", err)
	}
	return alert, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, alert *models.Alert) error {
	if alert == nil {
		return errors.New("alert is required")
	}
	query := `
		INSERT INTO compliance_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			risk_level = EXCLUDED.risk_level,
			message = EXCLUDED.message,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			resolved = EXCLUDED.resolved,
			resolved_at = EXCLUDED.resolved_at,
			email_sent = EXCLUDED.email_sent,
			revision = EXCLUDED.revision
		WHERE NOT compliance_alerts.resolved
	`
	result, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		alert.ID,
		alert.TravelerID,
		string(alert.RiskLevel),
		alert.Message,
		alert.CreatedAt,
		alert.UpdatedAt,
		alert.Resolved,
		nullTime(alert.ResolvedAt),
		alert.EmailSent,
		alert.Revision,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("upsert alert: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("upsert alert rows affected: %w", err)
	}
	if affected == 0 {
		// The row exists and is resolved; history is never reopened.
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) MarkResolved(ctx context.Context, alertID id.AlertID, resolvedAt time.Time) error {
	exec := tx.ExecutorFrom(ctx, s.db)
	result, err := exec.ExecContext(ctx, `
		UPDATE compliance_alerts
		SET resolved = TRUE, resolved_at = $2, updated_at = $2
		WHERE id = $1 AND NOT resolved
	`, alertID, resolvedAt)
	if err != nil {
		return fmt.Errorf("mark alert resolved: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark alert resolved rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	// Already resolved is fine; a missing row is not.
	var exists bool
	if err := exec.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM compliance_alerts WHERE id = $1)`, alertID).Scan(&exists); err != nil {
		return fmt.Errorf("check alert exists: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return nil
}

// MarkEmailed flags each (id, revision) pair in one statement. Pairs whose
// revision moved on since rendering are skipped.
func (s *PostgresStore) MarkEmailed(ctx context.Context, refs []models.AlertRef) (int, error) {
	if len(refs) == 0 {
		return 0, nil
	}
	ids := make([]string, len(refs))
	revisions := make([]int64, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID.String()
		revisions[i] = int64(ref.Revision)
	}
	query := `
		UPDATE compliance_alerts AS a
		SET email_sent = TRUE
		FROM unnest($1::uuid[], $2::int[]) AS r(id, revision)
		WHERE a.id = r.id AND a.revision = r.revision AND NOT a.email_sent
	`
	result, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, query, pq.Array(ids), pq.Array(revisions))
	if err != nil {
		return 0, fmt.Errorf("mark alerts emailed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark alerts emailed rows affected: %w", err)
	}
	return int(affected), nil
}

func (s *PostgresStore) ListUnresolved(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM compliance_alerts
		WHERE NOT resolved
			AND ($1::uuid IS NULL OR traveler_id = $1)
			AND ($2 = '' OR risk_level = $2)
			AND (NOT $3 OR NOT email_sent)
		ORDER BY created_at, id
	`
	var travelerArg any
	if !filter.TravelerID.IsNil() {
		travelerArg = filter.TravelerID
	}
	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, travelerArg, string(filter.RiskLevel), filter.EmailPending)
	if err != nil {
		return nil, fmt.Errorf("list unresolved alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListHistory returns every alert recorded for the traveler, oldest first.
func (s *PostgresStore) ListHistory(ctx context.Context, travelerID id.TravelerID) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM compliance_alerts WHERE traveler_id = $1 ORDER BY created_at, id`
	rows, err := tx.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, travelerID)
	if err != nil {
		return nil, fmt.Errorf("list alert history: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// PostgresTx runs each traveler's read-modify-write in a transaction guarded by
// a transaction-scoped advisory lock on the traveler ID.
type PostgresTx struct {
	db    *sql.DB
	store *PostgresStore
}

func NewPostgresTx(db *sql.DB, store *PostgresStore) *PostgresTx {
	return &PostgresTx{db: db, store: store}
}

func (t *PostgresTx) RunInTx(ctx context.Context, travelerID id.TravelerID, fn func(ctx context.Context, store ports.AlertStore) error) error {
	return tx.Run(ctx, t.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, t.db)
		if _, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, travelerID.String()); err != nil {
			return fmt.Errorf("lock traveler alerts: %w", err)
		}
		return fn(ctx, t.store)
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (*models.Alert, error) {
	var (
		alert      models.Alert
		riskLevel  string
		resolvedAt sql.NullTime
	)
	err := row.Scan(
		&alert.ID,
		&alert.TravelerID,
		&riskLevel,
		&alert.Message,
		&alert.CreatedAt,
		&alert.UpdatedAt,
		&alert.Resolved,
		&resolvedAt,
		&alert.EmailSent,
		&alert.Revision,
	)
	if err != nil {
		return nil, err
	}
	alert.RiskLevel = models.RiskLevel(riskLevel)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		alert.ResolvedAt = &t
	}
	return &alert, nil
}

func scanAlerts(rows *sql.Rows) ([]*models.Alert, error) {
	var out []*models.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
