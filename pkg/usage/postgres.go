package usage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playsignal/quotaledger/pkg/period"
	"github.com/playsignal/quotaledger/pkg/plan"
)

// PostgresStore persists usage counters in the usage_counters table.
//
// Increments run as a single upsert statement so that concurrent increments
// for the same (org, feature, period) row serialize inside the database
// instead of racing through a read-modify-write cycle.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithPostgresClock overrides the wall clock used for period resolution.
func WithPostgresClock(now func() time.Time) PostgresOption {
	return func(s *PostgresStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPostgresStore returns a Store backed by the given connection pool.
// Panics on a nil pool to fail fast at wiring time.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) *PostgresStore {
	if pool == nil {
		panic("usage: postgres pool cannot be nil")
	}
	s := &PostgresStore{pool: pool, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const (
	queryCount = `
		SELECT count FROM usage_counters
		WHERE org_id = $1 AND key = $2 AND period_start = $3 AND period_end = $4`

	queryIncrement = `
		INSERT INTO usage_counters (org_id, key, period_start, period_end, count, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (org_id, key, period_start, period_end)
		DO UPDATE SET count = usage_counters.count + EXCLUDED.count, updated_at = now()
		RETURNING count`

	queryAllCounts = `
		SELECT key, count FROM usage_counters
		WHERE org_id = $1 AND period_start = $2 AND period_end = $3`

	queryReset = `DELETE FROM usage_counters WHERE org_id = $1`
)

// Count returns the current-period counter, or 0 when no row exists.
func (s *PostgresStore) Count(ctx context.Context, orgID uuid.UUID, feature plan.Feature) (int64, error) {
	p := period.Current(s.now())

	var count int64
	err := s.pool.QueryRow(ctx, queryCount, orgID, string(feature), p.Start, p.End).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrFailedToReadCounter, err)
	}
	return count, nil
}

// Increment upserts the current-period row, adding n atomically, and
// returns the new total.
func (s *PostgresStore) Increment(ctx context.Context, orgID uuid.UUID, feature plan.Feature, n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrInvalidIncrement
	}

	p := period.Current(s.now())

	var count int64
	err := s.pool.QueryRow(ctx, queryIncrement, orgID, string(feature), p.Start, p.End, n).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrFailedToIncrementCounter, err)
	}
	return count, nil
}

// AllCounts returns current-period counts for every known feature,
// defaulting features without a row to 0.
func (s *PostgresStore) AllCounts(ctx context.Context, orgID uuid.UUID) (map[plan.Feature]int64, error) {
	p := period.Current(s.now())

	out := make(map[plan.Feature]int64, len(plan.Features()))
	for _, f := range plan.Features() {
		out[f] = 0
	}

	rows, err := s.pool.Query(ctx, queryAllCounts, orgID, p.Start, p.End)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadCounter, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, errors.Join(ErrFailedToReadCounter, err)
		}
		// Rows for retired feature keys are ignored rather than surfaced.
		if _, known := out[plan.Feature(key)]; known {
			out[plan.Feature(key)] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToReadCounter, err)
	}

	return out, nil
}

// Reset deletes all counter rows for the organization.
func (s *PostgresStore) Reset(ctx context.Context, orgID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, queryReset, orgID); err != nil {
		return errors.Join(ErrFailedToResetCounters, err)
	}
	return nil
}
