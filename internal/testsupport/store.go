package testsupport

import (
	"context"
	"testing"

	"splice/internal/config"
	"splice/internal/runs"
)

// MustOpenStore opens a runs.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *runs.Store {
	t.Helper()

	store, err := runs.Open(cfg)
	if err != nil {
		t.Fatalf("runs.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRun records a running ledger entry for tests.
func NewRun(t testing.TB, store *runs.Store, projectName, identifier, scriptType string) *runs.Run {
	t.Helper()

	run, err := store.Begin(context.Background(), projectName, identifier, scriptType)
	if err != nil {
		t.Fatalf("store.Begin: %v", err)
	}
	return run
}
