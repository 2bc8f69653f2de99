package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "habitual.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, err := store.Get(KeyHabits); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound on empty store, got %v", err)
	}

	want := `[{"id":"a","title":"Run"}]`
	if err := store.Set(KeyHabits, []byte(want)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.Get(KeyHabits)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != want {
		t.Errorf("Get() = %s, want %s", got, want)
	}
	if reopened.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %s, want %s", reopened.GetConfigPath(), path)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestJSONStoreInitKeepsExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(KeyAssessment, []byte(`{"goals":["Reduce stress"]}`)); err != nil {
		t.Fatal(err)
	}

	again := NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if _, err := again.Get(KeyAssessment); err != nil {
		t.Errorf("second Init discarded data: %v", err)
	}
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := store.Get(KeyHabits); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized before load, got %v", err)
	}
}

func TestJSONStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected an error loading a corrupt file")
	}
}

func TestJSONStoreRejectsInvalidJSON(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "habitual.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(KeyHabits, []byte("not json")); err == nil {
		t.Error("expected Set to reject invalid JSON")
	}
	if _, err := store.Get(KeyHabits); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("rejected write must not be stored, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set(KeyUserProfile, []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(KeyUserProfile)
	if err != nil || string(got) != "{}" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	boom := errors.New("disk full")
	store.FailWrites = boom
	if err := store.Set(KeyUserProfile, []byte(`{"name":"x"}`)); !errors.Is(err, boom) {
		t.Errorf("expected injected failure, got %v", err)
	}
	got, _ = store.Get(KeyUserProfile)
	if string(got) != "{}" {
		t.Errorf("failed write changed stored value to %q", got)
	}
	if store.Writes != 1 {
		t.Errorf("expected 1 successful write, got %d", store.Writes)
	}
}
