// Package logger writes the habitual log: a rotated file under the config
// directory, mirrored to stderr with --debug. The CLI and the reminder
// daemon share the file, so each line carries the command that wrote it.
// Every helper is a no-op until Init succeeds.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitual/internal/constants"
)

// Logger is nil until Init.
var Logger *log.Logger

var file *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Command is the kong command path, e.g. "habit add <title>"
	Command string
	// Stderr receives the debug mirror; os.Stderr when nil
	Stderr io.Writer
}

// FilePath is where Init writes for a given config directory.
func FilePath(configDir string) string {
	return filepath.Join(configDir, constants.LogDirName, constants.AppName+".log")
}

func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	Close()
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	var w io.Writer = file
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		mirror := cfg.Stderr
		if mirror == nil {
			mirror = os.Stderr
		}
		w = io.MultiWriter(mirror, file)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		// report the caller of Debug/Info/Warn/Error, not this package
		CallerOffset: 1,
	})
	if cfg.Command != "" {
		Logger = Logger.With("cmd", cfg.Command)
	}
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close releases the log file. Logging stops until the next Init.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func logAt(level log.Level, msg string, keyvals []interface{}) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...interface{}) { logAt(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { logAt(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { logAt(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { logAt(log.ErrorLevel, msg, keyvals) }
