// Package pg provides PostgreSQL plumbing for the quota ledger: pooled
// connections with startup retry, a healthcheck adapter, and goose-based
// schema migrations.
package pg
