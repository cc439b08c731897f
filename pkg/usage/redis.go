package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/playsignal/quotaledger/pkg/period"
	"github.com/playsignal/quotaledger/pkg/plan"
)

// RedisStore keeps usage counters in Redis. INCRBY gives atomic increments
// for free; keys carry the period start in their name and expire shortly
// after the period ends, so old periods clean themselves up instead of
// accumulating as history.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisClock overrides the wall clock used for period resolution.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewRedisStore returns a Store backed by the given Redis client.
// Panics on a nil client to fail fast at wiring time.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	if client == nil {
		panic("usage: redis client cannot be nil")
	}
	s := &RedisStore{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// keyExpiryGrace keeps counters readable for a day past period end so that
// end-of-month dashboards do not watch their numbers vanish at midnight.
const keyExpiryGrace = 24 * time.Hour

func (s *RedisStore) counterKey(orgID uuid.UUID, feature plan.Feature, p period.Period) string {
	return fmt.Sprintf("usage:%s:%s:%s", orgID, feature, p.Start.Format("2006-01"))
}

func (s *RedisStore) orgPattern(orgID uuid.UUID) string {
	return fmt.Sprintf("usage:%s:*", orgID)
}

// Count returns the current-period counter, or 0 when no key exists.
func (s *RedisStore) Count(ctx context.Context, orgID uuid.UUID, feature plan.Feature) (int64, error) {
	p := period.Current(s.now())

	count, err := s.client.Get(ctx, s.counterKey(orgID, feature, p)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrFailedToReadCounter, err)
	}
	return count, nil
}

// Increment adds n atomically via INCRBY and pins the key's expiry to the
// period end plus a grace window.
func (s *RedisStore) Increment(ctx context.Context, orgID uuid.UUID, feature plan.Feature, n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrInvalidIncrement
	}

	p := period.Current(s.now())
	key := s.counterKey(orgID, feature, p)

	pipe := s.client.TxPipeline()
	incr := pipe.IncrBy(ctx, key, n)
	pipe.ExpireAt(ctx, key, p.End.Add(keyExpiryGrace))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Join(ErrFailedToIncrementCounter, err)
	}
	return incr.Val(), nil
}

// AllCounts reads the current-period counter for every known feature in a
// single pipeline round trip, defaulting missing keys to 0.
func (s *RedisStore) AllCounts(ctx context.Context, orgID uuid.UUID) (map[plan.Feature]int64, error) {
	p := period.Current(s.now())
	features := plan.Features()

	pipe := s.client.Pipeline()
	cmds := make(map[plan.Feature]*redis.StringCmd, len(features))
	for _, f := range features {
		cmds[f] = pipe.Get(ctx, s.counterKey(orgID, f, p))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrFailedToReadCounter, err)
	}

	out := make(map[plan.Feature]int64, len(features))
	for f, cmd := range cmds {
		count, err := cmd.Int64()
		if errors.Is(err, redis.Nil) {
			out[f] = 0
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrFailedToReadCounter, err)
		}
		out[f] = count
	}
	return out, nil
}

// Reset deletes every counter key for the organization via SCAN, covering
// all features and any periods still within their expiry grace.
func (s *RedisStore) Reset(ctx context.Context, orgID uuid.UUID) error {
	iter := s.client.Scan(ctx, 0, s.orgPattern(orgID), 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Join(ErrFailedToResetCounters, err)
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Join(ErrFailedToResetCounters, err)
	}
	return nil
}
