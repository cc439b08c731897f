// Package usage tracks how many times each rate-limited feature has been
// used per organization within the current billing period.
//
// Counters are keyed by (organization, feature, period). A counter that has
// never been written reads as zero; when a new period begins, reads start
// matching a fresh (implicitly zero) counter while old rows remain as
// history in the durable backends.
//
// Every backend implements Increment as a single atomic operation on the
// store (upsert with arithmetic in postgres, INCRBY in redis, $inc in
// mongo) rather than a read-modify-write cycle, so concurrent increments
// cannot lose updates.
//
// Backends: PostgresStore, RedisStore, MongoStore, and MemoryStore for
// tests and single-process setups.
package usage
