package migration

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const blobsSQL = `CREATE TABLE blobs (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL);`

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "habitual.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func schemaFiles(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func tableExists(t *testing.T, db *sqlx.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return n == 1
}

func TestScan(t *testing.T) {
	got, err := Scan(schemaFiles(map[string]string{
		"002_updated_index.sql": "CREATE INDEX blobs_updated ON blobs (updated_at);",
		"001_init.sql":          blobsSQL,
		"README.md":             "not a schema file",
	}))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 schema files, got %d", len(got))
	}
	if got[0].Version != 1 || got[0].Name != "init" || got[1].Version != 2 || got[1].Name != "updated_index" {
		t.Errorf("unexpected order or names: %+v", got)
	}
}

func TestScanRejects(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"no underscore", map[string]string{"001init.sql": blobsSQL}, "expected NNN_name.sql"},
		{"not a number", map[string]string{"one_init.sql": blobsSQL}, "invalid version number"},
		{"version zero", map[string]string{"000_init.sql": blobsSQL}, "version must be at least 1"},
		{"duplicate", map[string]string{"001_init.sql": blobsSQL, "001_again.sql": blobsSQL}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(schemaFiles(tt.files))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Scan() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestVersionAndSetVersion(t *testing.T) {
	r := NewRunner(openTestDB(t), schemaFiles(map[string]string{"001_init.sql": blobsSQL}), "sqlite")

	if v, err := r.Version(); err != nil || v != 0 {
		t.Fatalf("fresh Version() = %d, %v", v, err)
	}
	if err := r.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if v, err := r.Version(); err != nil || v != 5 {
		t.Errorf("Version() = %d, %v, want 5", v, err)
	}
}

func TestApplyCreatesBlobTable(t *testing.T) {
	db := openTestDB(t)
	files := schemaFiles(map[string]string{"001_init.sql": blobsSQL})
	r := NewRunner(db, files, "sqlite")

	n, err := r.Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if n != 1 || !tableExists(t, db, "blobs") {
		t.Fatalf("expected blobs table after 1 applied file, applied %d", n)
	}

	// a second run is a no-op
	if n, err := r.Apply(); err != nil || n != 0 {
		t.Errorf("second Apply() = %d, %v", n, err)
	}

	files["002_updated_index.sql"] = &fstest.MapFile{Data: []byte("CREATE INDEX blobs_updated ON blobs (updated_at);")}
	st, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.UpToDate() || len(st.Pending) != 1 || st.String() != "version 1, 1 pending (latest 2)" {
		t.Errorf("status before upgrade = %+v (%s)", st, st)
	}
	if n, err := r.Apply(); err != nil || n != 1 {
		t.Fatalf("incremental Apply() = %d, %v", n, err)
	}
	if st, _ := r.Status(); !st.UpToDate() || st.String() != "version 2" {
		t.Errorf("status after upgrade = %s", st)
	}
}

func TestApplyRollsBackFailedFile(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, schemaFiles(map[string]string{
		"001_init.sql":   blobsSQL,
		"002_broken.sql": "CREATE TABLE extra (id INTEGER); THIS IS INVALID SQL;",
	}), "sqlite")

	n, err := r.Apply()
	if err == nil {
		t.Fatal("Apply should fail on invalid SQL")
	}
	if n != 1 {
		t.Errorf("expected the first file to stay applied, got %d", n)
	}
	if v, _ := r.Version(); v != 1 {
		t.Errorf("version after failure = %d, want 1", v)
	}
	if tableExists(t, db, "extra") {
		t.Error("failed file must be rolled back")
	}
}

func TestNewerDatabaseIsRefused(t *testing.T) {
	r := NewRunner(openTestDB(t), schemaFiles(map[string]string{"001_init.sql": blobsSQL}), "sqlite")
	if err := r.SetVersion(10); err != nil {
		t.Fatal(err)
	}

	err := r.Check()
	var tooNew *TooNewError
	if !errors.As(err, &tooNew) || tooNew.Current != 10 || tooNew.Latest != 1 {
		t.Fatalf("Check() = %v, want TooNewError{10, 1}", err)
	}
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Error("TooNewError should match ErrSchemaTooNew")
	}
	if _, err := r.Apply(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply() = %v, want ErrSchemaTooNew", err)
	}
	if st, _ := r.Status(); st.UpToDate() || st.String() != "version 10 (newer than 1)" {
		t.Errorf("status = %s", st)
	}
}

func TestApplyIgnoresNestedFiles(t *testing.T) {
	db := openTestDB(t)
	files := schemaFiles(map[string]string{"001_init.sql": blobsSQL})
	files["nested/002_hidden.sql"] = &fstest.MapFile{Data: []byte("THIS IS INVALID SQL;")}

	if n, err := NewRunner(db, files, "sqlite").Apply(); err != nil || n != 1 {
		t.Errorf("Apply() = %d, %v", n, err)
	}
}
