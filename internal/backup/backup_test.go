package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, habits string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Set(storage.KeyHabits, []byte(habits)); err != nil {
		t.Fatalf("failed to write habits: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}
	return dbPath
}

func readHabits(t *testing.T, dbPath string) string {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load database: %v", err)
	}
	defer store.Close()
	data, err := store.Get(storage.KeyHabits)
	if err != nil {
		t.Fatalf("failed to read habits: %v", err)
	}
	return string(data)
}

// stepNow returns a clock that advances one second per call.
func stepNow(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, `[{"id":"a","title":"Read"}]`)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}
	if got := readHabits(t, backupPath); got != `[{"id":"a","title":"Read"}]` {
		t.Errorf("backup habits = %s", got)
	}
}

func TestCreateMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for missing store")
	}
}

func TestCreateRejectsForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	if err := os.WriteFile(dbPath, []byte("not a database"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(dbPath).Create(); err == nil {
		t.Error("expected error for a file that is not a habitual database")
	}
}

func TestSameSecondBackupsGetCounter(t *testing.T) {
	dbPath := setupTestDB(t, `[]`)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(first) != "habitual-20261017-090000.db" {
		t.Errorf("unexpected first name %s", filepath.Base(first))
	}
	if filepath.Base(second) != "habitual-20261017-090000-1.db" {
		t.Errorf("unexpected second name %s", filepath.Base(second))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 || backups[0].Path != second {
		t.Errorf("expected counter backup listed first, got %+v", backups)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t, `[]`)
	mgr := NewManager(dbPath)
	mgr.now = stepNow(time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}
}

func TestListIgnoresUnrelatedFiles(t *testing.T) {
	dbPath := setupTestDB(t, `[]`)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "habitual-garbage.db", "habitual-20261017-090000-x.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %+v", backups)
	}
}

func TestListWithoutDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitual.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Errorf("expected empty list, got %d", len(backups))
	}
}

func TestBackupRestoreWorkflow(t *testing.T) {
	dbPath := setupTestDB(t, `["before"]`)
	mgr := NewManager(dbPath)
	mgr.now = stepNow(time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local))

	saved, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(storage.KeyHabits, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	previous, err := mgr.Restore(saved)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := readHabits(t, dbPath); got != `["before"]` {
		t.Errorf("restored habits = %s, want [\"before\"]", got)
	}
	if previous == "" {
		t.Fatal("expected the pre-restore state to be backed up")
	}
	if got := readHabits(t, previous); got != `["after"]` {
		t.Errorf("pre-restore backup habits = %s, want [\"after\"]", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t, `[]`)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected error for corrupt backup")
	}
	if got := readHabits(t, dbPath); got != `[]` {
		t.Errorf("store changed by failed restore: %s", got)
	}
}

func TestJSONStoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitual.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(storage.KeyHabits, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(path)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected .json backup, got %s", backupPath)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if _, err := mgr.Restore(backups[0].Path); err != nil {
		t.Errorf("Restore failed: %v", err)
	}
}
