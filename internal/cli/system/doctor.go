package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/scheduler"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/transfer"
	"github.com/julianstephens/habitual/internal/utils"
)

// versioned is implemented by the SQL backends.
type versioned interface {
	SchemaStatus() (migration.Status, error)
}

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*cli.Context) (string, error)
	warning bool
	needsDB bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Saved state decodable", run: checkBlobs, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Backups present", run: checkBackupsPresent, warning: true},
	{name: "OS keyring", run: checkKeyring, warning: true},
	{name: "Reminder daemon", run: checkDaemon, warning: true},
	{name: "Log file", run: checkLogFile, warning: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsDB && !reachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		detail, err := c.run(ctx)
		switch {
		case err == nil:
			if detail != "" {
				fmt.Printf("✓ %s: OK (%s)\n", c.name, detail)
			} else {
				fmt.Printf("✓ %s: OK\n", c.name)
			}
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics failed")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkLogFile(ctx *cli.Context) (string, error) {
	path := logger.Path()
	if path == "" {
		return "", errors.New("logging is disabled")
	}
	return path, nil
}

func checkStorageReachable(ctx *cli.Context) (string, error) {
	if err := ctx.Store.Load(); err != nil {
		return "", err
	}
	return ctx.Store.GetConfigPath(), nil
}

func checkSchemaVersion(ctx *cli.Context) (string, error) {
	v, ok := ctx.Store.(versioned)
	if !ok {
		return "not versioned", nil
	}
	st, err := v.SchemaStatus()
	if err != nil {
		return "", err
	}
	if st.Current > st.Latest {
		return "", &migration.TooNewError{Current: st.Current, Latest: st.Latest}
	}
	return st.String(), nil
}

// checkBlobs reassembles the saved blobs into an export document so that the
// import checks apply to them.
func checkBlobs(ctx *cli.Context) (string, error) {
	doc := map[string]json.RawMessage{}
	for _, key := range storage.Keys {
		data, err := ctx.Store.Get(key)
		if apperrors.Is(err, storage.ErrBlobNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !json.Valid(data) {
			return "", fmt.Errorf("%s is not valid JSON", key)
		}
		doc[key] = data
	}
	if len(doc) == 0 {
		return "nothing saved yet", nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	parsed, err := transfer.Parse(raw)
	if err != nil {
		return "", err
	}
	n := 0
	if parsed.Habits != nil {
		n = len(*parsed.Habits)
	}
	return fmt.Sprintf("%d habit(s)", n), nil
}

func checkClockTimezone(ctx *cli.Context) (string, error) {
	loc, err := utils.LoadLocation(ctx.Config.Timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
	}
	now := time.Now().In(loc)
	if now.Year() < 2020 {
		return "", fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s, today is %s", loc, utils.DayKey(now)), nil
}

func checkBackupsPresent(ctx *cli.Context) (string, error) {
	path := ctx.Store.GetConfigPath()
	if !cli.IsFileStore(path) {
		return "not applicable", nil
	}
	list, err := backup.NewManager(path).List()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.New("no backups yet; run 'habitual backup create'")
	}
	return fmt.Sprintf("%d, newest %s", len(list), list[0].Timestamp.Format("2006-01-02 15:04")), nil
}

func checkKeyring(ctx *cli.Context) (string, error) {
	if !keyring.IsAvailable() {
		return "", keyring.ErrKeyringUnavailable
	}
	return "", nil
}

func checkDaemon(ctx *cli.Context) (string, error) {
	pid, err := scheduler.RunningPID(scheduler.LockfilePath(ctx.ConfigDir()))
	if err != nil {
		return "", fmt.Errorf("%v; start it with 'habitual remind'", err)
	}
	return fmt.Sprintf("pid %d", pid), nil
}
