package testsupport

import (
	"context"
	"testing"

	"cinedex/internal/config"
	"cinedex/internal/production"
	"cinedex/internal/store"
)

// MustOpenStore opens the configured store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) store.Store {
	t.Helper()

	st, err := store.Open(cfg, nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// InsertProduction stores p and returns it with its assigned id.
func InsertProduction(t testing.TB, st store.Store, p production.Production) production.Production {
	t.Helper()

	created, err := st.Insert(context.Background(), p)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return created
}
