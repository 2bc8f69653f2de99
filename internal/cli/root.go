package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

// StorageKeyring selects the PostgreSQL connection kept in the environment
// or the OS keyring.
const StorageKeyring = "postgres"

type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      storage.Provider
	Clock      utils.Clock
	Notifier   *notifier.Notifier
	// In answers confirmation prompts; os.Stdin when nil.
	In io.Reader

	tracker *tracker.Tracker
}

// Tracker loads the store and the saved state on first use.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}

	opts := []tracker.Option{}
	if c.Config != nil {
		opts = append(opts,
			tracker.WithMaxRecommendations(c.Config.Recommendations.Max),
			tracker.WithIdentity(c.Config.Profile.Name, c.Config.Profile.Email),
		)
	}
	clock := c.Clock
	if clock == nil {
		clock = utils.SystemClock{}
	}
	t := tracker.New(c.Store, clock, opts...)
	if err := t.Load(); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	c.tracker = t
	return t, nil
}

// ConfigDir is the directory holding the config file, logs and the daemon
// lockfile.
func (c *Context) ConfigDir() string {
	if c.ConfigPath != "" {
		return filepath.Dir(config.ExpandPath(c.ConfigPath))
	}
	return config.ExpandPath(constants.DefaultConfigDir)
}

// SavedConfigPath is where config changes are written.
func (c *Context) SavedConfigPath() string {
	if c.ConfigPath != "" {
		return config.ExpandPath(c.ConfigPath)
	}
	return config.DefaultPath()
}

// SavedConfig reads the config file alone. Config holds the effective
// settings with environment and flag overrides applied, which must never be
// written back.
func (c *Context) SavedConfig() (*config.Config, error) {
	return config.Load(c.SavedConfigPath())
}

// Confirm asks a yes/no question and reports whether the answer was yes.
// An unreadable or empty answer counts as no.
func (c *Context) Confirm(prompt string) bool {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		fmt.Println()
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !IsFileStore(path) {
		return
	}
	mgr := backup.NewManager(path)
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// IsFileStore reports whether path names a local store file that can be
// backed up.
func IsFileStore(path string) bool {
	if path == "" || postgres.IsConnString(path) || strings.HasPrefix(path, ":") {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Report prints the badges and persistence problems of a command and
// forwards the primary badge to the webhook.
func (c *Context) Report(out tracker.Outcome) {
	for _, b := range out.NewBadges {
		fmt.Printf("🎉 New badge: %s %s (%s)\n", b.Icon, b.Name, b.Rarity)
	}
	if out.PrimaryBadge != nil && c.Notifier.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
		defer cancel()
		if err := c.Notifier.Notify(ctx, notifier.BadgeText(*out.PrimaryBadge)); err != nil {
			logger.Warn("failed to send badge notification", "error", err)
		}
	}
	if out.SaveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: changes could not be saved: %v\n", out.SaveErr)
	}
}

// ResolveStorage picks a backend for target: a postgres:// URL (or the
// keyword "postgres" for the keyring connection), a *.json file, or a
// SQLite database path. Ephemeral sessions keep everything in memory.
func ResolveStorage(target string, ephemeral bool) (storage.Provider, error) {
	if ephemeral {
		return storage.NewMemoryStore(), nil
	}

	target = strings.TrimSpace(target)
	switch {
	case target == StorageKeyring:
		connStr, err := SecureConnectionString()
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(target):
		if _, err := postgres.ValidateConnString(target); err != nil {
			if apperrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w\n       Store the full connection string with 'habitual config set-connection' or %s,\n       then use --storage=%s", err, constants.EnvConnection, StorageKeyring)
			}
			return nil, err
		}
		return postgres.New(target), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return storage.NewJSONStore(config.ExpandPath(target)), nil
	}
	return sqlite.NewStore(config.ExpandPath(target)), nil
}

// SecureConnectionString returns the PostgreSQL connection string from the
// environment or, failing that, the OS keyring.
func SecureConnectionString() (string, error) {
	if v := os.Getenv(constants.EnvConnection); v != "" {
		return v, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return "", fmt.Errorf("no PostgreSQL connection configured (set %s or run 'habitual config set-connection'): %w", constants.EnvConnection, err)
	}
	return connStr, nil
}

// WebhookURL returns the configured notification webhook, falling back to
// the keyring.
func WebhookURL(cfg *config.Config) string {
	if cfg != nil && cfg.Reminders.WebhookURL != "" {
		return cfg.Reminders.WebhookURL
	}
	if u, err := keyring.GetWebhookURL(); err == nil {
		return u
	}
	return ""
}
