package scheduler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitual/internal/constants"
)

var findProcessFunc = ps.FindProcess

var ErrAlreadyRunning = errors.New("reminder daemon is already running")

// LockfilePath returns the daemon lockfile inside dir.
func LockfilePath(dir string) string {
	return filepath.Join(dir, constants.ReminderLockfileName)
}

// RunningPID returns the pid recorded in the lockfile when that process is
// still a live habitual process.
func RunningPID(lockfilePath string) (int, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return 0, errors.New("reminder daemon is not running")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, errors.New("invalid process ID in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, fmt.Errorf("process %d is not running", pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AppName, process.Executable())
	}
	return pid, nil
}

// AcquireLock writes the current pid to the lockfile. A stale lockfile is
// replaced; a live one yields ErrAlreadyRunning. The returned func removes
// the lockfile.
func AcquireLock(lockfilePath string) (func() error, error) {
	if pid, err := RunningPID(lockfilePath); err == nil && pid != os.Getpid() {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	if err := os.MkdirAll(filepath.Dir(lockfilePath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	if err := os.WriteFile(lockfilePath, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return func() error {
		if err := os.Remove(lockfilePath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}, nil
}
