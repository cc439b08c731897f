package usage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/playsignal/quotaledger/pkg/period"
	"github.com/playsignal/quotaledger/pkg/plan"
)

// mongoCollection is the collection holding counter documents.
const mongoCollection = "usage_counters"

// counterDoc is the persisted shape of one usage counter.
type counterDoc struct {
	OrgID       string    `bson:"org_id"`
	Key         string    `bson:"key"`
	PeriodStart time.Time `bson:"period_start"`
	PeriodEnd   time.Time `bson:"period_end"`
	Count       int64     `bson:"count"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// MongoStore persists usage counters in MongoDB. Increments use a $inc
// upsert through FindOneAndUpdate, which the server applies atomically per
// document.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// MongoOption configures a MongoStore.
type MongoOption func(*MongoStore)

// WithMongoClock overrides the wall clock used for period resolution.
func WithMongoClock(now func() time.Time) MongoOption {
	return func(s *MongoStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMongoStore returns a Store over the usage_counters collection of db.
// Panics on a nil database to fail fast at wiring time.
func NewMongoStore(db *mongo.Database, opts ...MongoOption) *MongoStore {
	if db == nil {
		panic("usage: mongo database cannot be nil")
	}
	s := &MongoStore{coll: db.Collection(mongoCollection), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MongoStore) currentFilter(orgID uuid.UUID, feature plan.Feature) bson.M {
	p := period.Current(s.now())
	return bson.M{
		"org_id":       orgID.String(),
		"key":          string(feature),
		"period_start": p.Start,
		"period_end":   p.End,
	}
}

// Count returns the current-period counter, or 0 when no document exists.
func (s *MongoStore) Count(ctx context.Context, orgID uuid.UUID, feature plan.Feature) (int64, error) {
	var doc counterDoc
	err := s.coll.FindOne(ctx, s.currentFilter(orgID, feature)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrFailedToReadCounter, err)
	}
	return doc.Count, nil
}

// Increment applies an atomic $inc upsert and returns the new total.
func (s *MongoStore) Increment(ctx context.Context, orgID uuid.UUID, feature plan.Feature, n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrInvalidIncrement
	}

	update := bson.M{
		"$inc": bson.M{"count": n},
		"$set": bson.M{"updated_at": s.now().UTC()},
	}

	var doc counterDoc
	err := s.coll.FindOneAndUpdate(
		ctx,
		s.currentFilter(orgID, feature),
		update,
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Join(ErrFailedToIncrementCounter, err)
	}
	return doc.Count, nil
}

// AllCounts returns current-period counts for every known feature,
// defaulting features without a document to 0.
func (s *MongoStore) AllCounts(ctx context.Context, orgID uuid.UUID) (map[plan.Feature]int64, error) {
	p := period.Current(s.now())

	out := make(map[plan.Feature]int64, len(plan.Features()))
	for _, f := range plan.Features() {
		out[f] = 0
	}

	cursor, err := s.coll.Find(ctx, bson.M{
		"org_id":       orgID.String(),
		"period_start": p.Start,
		"period_end":   p.End,
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToReadCounter, err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc counterDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Join(ErrFailedToReadCounter, err)
		}
		if _, known := out[plan.Feature(doc.Key)]; known {
			out[plan.Feature(doc.Key)] = doc.Count
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Join(ErrFailedToReadCounter, err)
	}

	return out, nil
}

// Reset deletes every counter document for the organization.
func (s *MongoStore) Reset(ctx context.Context, orgID uuid.UUID) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"org_id": orgID.String()}); err != nil {
		return errors.Join(ErrFailedToResetCounters, err)
	}
	return nil
}
