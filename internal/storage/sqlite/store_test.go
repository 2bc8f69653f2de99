package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habitual.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestInitCreatesSchema(t *testing.T) {
	store, _ := setupTestStore(t)

	st, err := store.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if st.Current != 1 || !st.UpToDate() {
		t.Errorf("expected schema version 1 and up to date, got %s", st)
	}

	// Init is safe to repeat
	if err := store.Init(); err != nil {
		t.Errorf("second Init failed: %v", err)
	}
}

func TestGetSet(t *testing.T) {
	store, path := setupTestStore(t)

	if _, err := store.Get(storage.KeyHabits); !errors.Is(err, storage.ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}

	if err := store.Set(storage.KeyHabits, []byte(`[1]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(storage.KeyHabits, []byte(`[1,2]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(storage.KeyHabits)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("Get() = %s, want [1,2]", got)
	}

	stamps, err := reopened.UpdatedAt()
	if err != nil {
		t.Fatalf("UpdatedAt failed: %v", err)
	}
	if len(stamps) != 1 || stamps[storage.KeyHabits] == "" {
		t.Errorf("unexpected update stamps: %v", stamps)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	store, path := setupTestStore(t)
	if _, err := store.GetDB().Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened := NewStore(path)
	defer reopened.Close()
	if err := reopened.Load(); !errors.Is(err, migration.ErrSchemaTooNew) {
		t.Errorf("expected Load to refuse a newer schema, got %v", err)
	}
}

func TestClosedStore(t *testing.T) {
	store, _ := setupTestStore(t)
	store.Close()
	if err := store.Set(storage.KeyHabits, []byte(`[]`)); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized after Close, got %v", err)
	}
	if store.GetDB() != nil {
		t.Error("expected nil DB after Close")
	}
}
