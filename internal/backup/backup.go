// Package backup keeps timestamped copies of the local store next to it.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
)

const timestampLayout = "20060102-150405"

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backups of a SQLite database or a JSON state file. The
// kind is chosen from the store path's extension.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
	now       func() time.Time
}

func NewManager(storePath string) *Manager {
	suffix := constants.BackupFileSuffix
	if isJSON(storePath) {
		suffix = ".json"
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
		suffix:    suffix,
		now:       time.Now,
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Dir returns the backup directory path.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create writes a new backup and rotates old ones away.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if isJSON(m.storePath) {
		err = m.backupJSON(path)
	} else {
		err = m.backupDatabase(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.storePath, err)
	}
	logger.Debug("backup created", "path", path)
	return path, nil
}

// nextPath picks an unused file name for the current instant, adding a
// counter when several backups land in the same second.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(timestampLayout)
	base := constants.BackupFilePrefix + stamp
	path := filepath.Join(m.backupDir, base+m.suffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, counter, m.suffix))
	}
}

func (m *Manager) backupDatabase(destPath string) error {
	db, err := sqlx.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verifyDatabase(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		db.Close()
		return copyFile(m.storePath, destPath)
	}
	return nil
}

func (m *Manager) backupJSON(destPath string) error {
	if err := verifyJSON(m.storePath); err != nil {
		return fmt.Errorf("source file appears to be corrupted: %w", err)
	}
	return copyFile(m.storePath, destPath)
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type entry struct {
		info    Info
		counter int
	}
	var found []entry
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)
		counter := 0
		if len(stamp) > len(timestampLayout) && stamp[len(timestampLayout)] == '-' {
			counter, err = strconv.Atoi(stamp[len(timestampLayout)+1:])
			if err != nil {
				continue
			}
			stamp = stamp[:len(timestampLayout)]
		}
		ts, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, entry{
			info:    Info{Path: filepath.Join(m.backupDir, name), Timestamp: ts, Size: fi.Size()},
			counter: counter,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].info.Timestamp.Equal(found[j].info.Timestamp) {
			return found[i].info.Timestamp.After(found[j].info.Timestamp)
		}
		return found[i].counter > found[j].counter
	})

	backups := make([]Info, len(found))
	for i, f := range found {
		backups[i] = f.info
	}
	return backups, nil
}

// rotate removes backups beyond the retention limit.
func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the store with a backup. The current store, if any, is
// backed up first; that backup's path is returned.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.storePath); err == nil {
		p, err := m.create()
		if err != nil {
			return "", fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		previous = p
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore store: %w", err)
	}
	logger.Info("store restored", "from", backupPath)
	return previous, nil
}

func (m *Manager) verify(path string) error {
	if isJSON(path) {
		return verifyJSON(path)
	}
	db, err := sqlx.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verifyDatabase(db)
}

// verifyDatabase checks that db is a readable habitual database.
func verifyDatabase(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'blobs'"); err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("not a %s database: blobs table missing", constants.AppName)
	}
	return nil
}

func verifyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("not a valid JSON document")
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
