package constants

import "time"

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitual"
	DefaultConfigFile  = "config.yaml"
	DefaultStorePath   = "~/.config/habitual/habitual.db"
	Version            = "v0.3.0"

	// DateFormat is the canonical day key layout (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format (HH:MM)
	TimeFormat = "15:04"

	// Progression
	XPPerCompletion = 10
	XPPerLevel      = 100

	// Habit goal bounds in minutes
	MinGoalMinutes     = 1
	MaxGoalMinutes     = 480
	DefaultGoalMinutes = 30

	// Metric windows in days
	ConsistencyWindowDays = 30
	GrowthWindowDays      = 7

	DefaultMaxRecommendations = 6

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Reminder daemon constants
	DefaultReminderTime    = "20:00"
	ReminderLockfileName   = "habitual-remind.lock"
	NotificationDurationMs = 5000
	NotifyTimeout          = 5 * time.Second

	// Environment overrides
	EnvStorage    = "HABITUAL_DB"
	EnvTimezone   = "HABITUAL_TIMEZONE"
	EnvDebug      = "HABITUAL_DEBUG"
	EnvWebhookURL = "HABITUAL_WEBHOOK_URL"
	EnvConnection = "HABITUAL_DB_CONNECTION"

	DefaultProfileName  = "Habit Builder"
	DefaultProfileEmail = ""
	DefaultTimezone     = "Local"
)
