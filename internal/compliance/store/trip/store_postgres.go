package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staywatch/internal/compliance/models"
	id "staywatch/pkg/domain"
)

// PostgresStore reads trips through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed trip store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Add inserts intervals in one batch.
func (s *PostgresStore) Add(ctx context.Context, intervals ...models.TravelInterval) error {
	if len(intervals) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, iv := range intervals {
		batch.Queue(
			`INSERT INTO trips (traveler_id, territory, entry_date, exit_date) VALUES ($1, $2, $3, $4)`,
			uuid.UUID(iv.TravelerID), iv.Territory, iv.EntryDate.Time(), iv.ExitDate.Time(),
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert trips: %w", err)
	}
	return nil
}

// Replace overwrites everything recorded for a traveler in one transaction.
func (s *PostgresStore) Replace(ctx context.Context, travelerID id.TravelerID, intervals []models.TravelInterval) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM trips WHERE traveler_id = $1`, uuid.UUID(travelerID)); err != nil {
			return fmt.Errorf("delete trips: %w", err)
		}
		for _, iv := range intervals {
			if _, err := tx.Exec(ctx,
				`INSERT INTO trips (traveler_id, territory, entry_date, exit_date) VALUES ($1, $2, $3, $4)`,
				uuid.UUID(travelerID), iv.Territory, iv.EntryDate.Time(), iv.ExitDate.Time(),
			); err != nil {
				return fmt.Errorf("insert trip: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListIntervals(ctx context.Context, travelerID id.TravelerID) ([]models.TravelInterval, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT territory, entry_date, exit_date
		FROM trips
		WHERE traveler_id = $1
		ORDER BY entry_date, id
	`, uuid.UUID(travelerID))
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := []models.TravelInterval{}
	for rows.Next() {
		var (
			territory   string
			entry, exit time.Time
		)
		if err := rows.Scan(&territory, &entry, &exit); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		out = append(out, models.TravelInterval{
			TravelerID: travelerID,
			Territory:  territory,
			EntryDate:  models.DateOf(entry),
			ExitDate:   models.DateOf(exit),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTravelers(ctx context.Context) ([]id.TravelerID, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT traveler_id FROM trips ORDER BY traveler_id`)
	if err != nil {
		return nil, fmt.Errorf("list travelers: %w", err)
	}
	defer rows.Close()

	var out []id.TravelerID
	for rows.Next() {
		var u uuid.UUID
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan traveler: %w", err)
		}
		out = append(out, id.TravelerID(u))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate travelers: %w", err)
	}
	return out, nil
}
