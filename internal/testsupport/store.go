package testsupport

import (
	"context"
	"testing"

	"cuesplit/internal/config"
	"cuesplit/internal/history"
)

// MustOpenHistory opens the history store configured by cfg and registers
// cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
