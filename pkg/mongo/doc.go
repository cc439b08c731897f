// Package mongo provides MongoDB connection plumbing for the quota
// ledger's counter backend.
package mongo
