// Package runs persists a ledger of timeline generation attempts in SQLite
// and enforces single-writer generation per project identifier.
package runs
