// Package migration keeps the blob-store schema of the SQL backends in step
// with the schema files shipped in the binary. Files are named
// NNN_name.sql; the applied version is the single row of schema_version.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
)

// ErrSchemaTooNew matches a database written by a newer habitual.
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

type TooNewError struct {
	Current int
	Latest  int
}

func (e *TooNewError) Error() string {
	return fmt.Sprintf("database schema version %d is newer than supported version %d, please upgrade %s",
		e.Current, e.Latest, constants.AppName)
}

func (e *TooNewError) Is(target error) bool { return target == ErrSchemaTooNew }

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status compares a database with the shipped schema files.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

func (s Status) UpToDate() bool { return len(s.Pending) == 0 && s.Current <= s.Latest }

func (s Status) String() string {
	switch {
	case s.Current > s.Latest:
		return fmt.Sprintf("version %d (newer than %d)", s.Current, s.Latest)
	case len(s.Pending) > 0:
		return fmt.Sprintf("version %d, %d pending (latest %d)", s.Current, len(s.Pending), s.Latest)
	}
	return fmt.Sprintf("version %d", s.Current)
}

// parseFileName splits "001_init.sql" into 1 and "init".
func parseFileName(name string) (int, string, error) {
	num, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
	if !ok || rest == "" {
		return 0, "", fmt.Errorf("invalid schema file name %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in %s: version must be at least 1", name)
	}
	return version, rest, nil
}

// Scan reads the top-level .sql files of fsys in version order.
func Scan(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema files: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, name, err := parseFileName(e.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// Runner applies schema files to one backend's database.
type Runner struct {
	db      *sqlx.DB
	files   fs.FS
	backend string
}

// NewRunner binds files to db. backend names the store in log lines.
func NewRunner(db *sqlx.DB, files fs.FS, backend string) *Runner {
	return &Runner{db: db, files: files, backend: backend}
}

func (r *Runner) ensureTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// Version returns the applied version, 0 for a fresh database.
func (r *Runner) Version() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	var version int
	if err := r.db.Get(&version, "SELECT version FROM schema_version"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion records version without running any schema file.
func (r *Runner) SetVersion(version int) error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := writeVersion(tx, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func writeVersion(tx *sqlx.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := tx.Exec(tx.Rebind("INSERT INTO schema_version (version) VALUES (?)"), version); err != nil {
		return fmt.Errorf("failed to write schema version: %w", err)
	}
	return nil
}

func (r *Runner) Status() (Status, error) {
	current, err := r.Version()
	if err != nil {
		return Status{}, err
	}
	all, err := Scan(r.files)
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	if len(all) > 0 {
		st.Latest = all[len(all)-1].Version
	}
	for _, m := range all {
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Check fails with a *TooNewError when the database is ahead of the binary.
func (r *Runner) Check() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	if st.Current > st.Latest {
		return &TooNewError{Current: st.Current, Latest: st.Latest}
	}
	return nil
}

// Apply runs every pending schema file, each in its own transaction, and
// returns how many were applied. A failed file leaves the version at the
// last one that succeeded.
func (r *Runner) Apply() (int, error) {
	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	if st.Current > st.Latest {
		return 0, &TooNewError{Current: st.Current, Latest: st.Latest}
	}
	if len(st.Pending) == 0 {
		logger.Debug("schema up to date", "backend", r.backend, "version", st.Current)
		return 0, nil
	}

	start := time.Now()
	for i, m := range st.Pending {
		if err := r.apply(m); err != nil {
			return i, err
		}
		logger.Debug("schema file applied", "backend", r.backend, "version", m.Version, "name", m.Name)
	}
	logger.Info("schema upgraded", "backend", r.backend, "from", st.Current, "to", st.Latest,
		"took", time.Since(start).Round(time.Millisecond))
	return len(st.Pending), nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := writeVersion(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
