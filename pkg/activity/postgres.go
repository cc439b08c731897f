package activity

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage appends events to the activity_log table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage returns a Storage over the given connection pool.
// Panics on a nil pool to fail fast at wiring time.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	if pool == nil {
		panic("activity: postgres pool cannot be nil")
	}
	return &PostgresStorage{pool: pool}
}

const queryInsertEvent = `
	INSERT INTO activity_log (id, org_id, type, meta, created_at)
	VALUES ($1, $2, $3, $4, $5)`

// Store appends a single event.
func (s *PostgresStorage) Store(ctx context.Context, event Event) error {
	meta, err := json.Marshal(event.Metadata)
	if err != nil {
		return errors.Join(ErrFailedToStoreEvent, err)
	}

	_, err = s.pool.Exec(ctx, queryInsertEvent,
		event.ID, event.OrgID, string(event.Type), meta, event.CreatedAt)
	if err != nil {
		return errors.Join(ErrFailedToStoreEvent, err)
	}
	return nil
}

// StoreBatch appends events in one round trip using pgx batching.
func (s *PostgresStorage) StoreBatch(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		meta, err := json.Marshal(event.Metadata)
		if err != nil {
			return errors.Join(ErrFailedToStoreEvent, err)
		}
		batch.Queue(queryInsertEvent,
			event.ID, event.OrgID, string(event.Type), meta, event.CreatedAt)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return errors.Join(ErrFailedToStoreEvent, err)
	}
	return nil
}
