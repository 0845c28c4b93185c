package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Mr-Dark-debug/tally/internal/registry"
	"github.com/Mr-Dark-debug/tally/internal/registry/registrytest"
)

// TestNewDBService verifies that the database initializes correctly
// with the embedded schema using an in-memory SQLite instance.
func TestNewDBService(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	defer svc.Close()

	names, err := svc.Counters()
	if err != nil {
		t.Fatalf("Counters failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty store, got %v", names)
	}
}

// TestStoreContract runs the shared registry.Store checks against SQLite.
func TestStoreContract(t *testing.T) {
	registrytest.RunStoreTests(t, func(t *testing.T) registry.Store {
		svc, err := NewDBService(":memory:")
		if err != nil {
			t.Fatalf("NewDBService failed: %v", err)
		}
		t.Cleanup(func() { svc.Close() })
		return svc
	})
}

// TestFileBackedStore verifies the WAL DSN path used for on-disk databases.
func TestFileBackedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.db")
	svc, err := NewDBService(path)
	if err != nil {
		t.Fatalf("NewDBService(%s) failed: %v", path, err)
	}
	defer svc.Close()

	if _, err := svc.CreateCounter("laps"); err != nil {
		t.Fatalf("CreateCounter failed: %v", err)
	}
	if _, err := svc.AppendEvent("laps", 1); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	n, err := svc.Len("laps")
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 event, got %d", n)
	}
}

// TestRegistryOverSQLite drives the registry end to end through the
// SQLite backend: create, increment three times, decrement once.
func TestRegistryOverSQLite(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	reg := registry.New(svc)
	if _, err := reg.AddCollector("A"); err != nil {
		t.Fatalf("AddCollector failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := reg.Add("A"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := reg.RemoveLast("A"); err != nil {
		t.Fatalf("RemoveLast failed: %v", err)
	}

	snap, err := reg.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := snap.Len("A"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}

	if err := reg.Add("ghost"); !errors.Is(err, registry.ErrUnknownCounter) {
		t.Errorf("expected ErrUnknownCounter, got %v", err)
	}
}

// TestClosedStoreErrors verifies operations fail cleanly after Close.
func TestClosedStoreErrors(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	svc.Close()

	if _, err := svc.CreateCounter("A"); err == nil {
		t.Error("expected error creating counter on closed store")
	}
}
