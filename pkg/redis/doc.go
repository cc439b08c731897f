// Package redis provides Redis connection plumbing for the quota ledger's
// counter backend: URL-based configuration, startup retry, and a
// healthcheck adapter.
package redis
