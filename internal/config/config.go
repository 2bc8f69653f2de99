package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/utils"
)

type Config struct {
	// Storage is a SQLite path, a postgres:// URL or a *.json path
	Storage  string `yaml:"storage"`
	Timezone string `yaml:"timezone"`
	Debug    bool   `yaml:"debug"`

	Profile struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"profile"`

	Recommendations struct {
		Max int `yaml:"max"`
	} `yaml:"recommendations"`

	Reminders struct {
		Time       string `yaml:"time"`
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"reminders"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Storage:  constants.DefaultStorePath,
		Timezone: constants.DefaultTimezone,
	}
	cfg.Profile.Name = constants.DefaultProfileName
	cfg.Recommendations.Max = constants.DefaultMaxRecommendations
	cfg.Reminders.Time = constants.DefaultReminderTime
	return cfg
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// DefaultPath is the config file location.
func DefaultPath() string {
	return filepath.Join(ExpandPath(constants.DefaultConfigDir), constants.DefaultConfigFile)
}

// Load reads the YAML file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Storage == "" {
		c.Storage = d.Storage
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.Profile.Name == "" {
		c.Profile.Name = d.Profile.Name
	}
	if c.Recommendations.Max == 0 {
		c.Recommendations.Max = d.Recommendations.Max
	}
	if c.Reminders.Time == "" {
		c.Reminders.Time = d.Reminders.Time
	}
}

// LoadEnvFile loads a .env file into the process environment if present.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from HABITUAL_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(constants.EnvStorage); v != "" {
		c.Storage = v
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(constants.EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv(constants.EnvWebhookURL); v != "" {
		c.Reminders.WebhookURL = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage) == "" {
		return apperrors.Invalid("storage", "must not be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return apperrors.Invalid("timezone", "%q is not a valid IANA timezone", c.Timezone)
	}
	if c.Recommendations.Max < 1 {
		return apperrors.Invalid("recommendations.max", "must be at least 1, got %d", c.Recommendations.Max)
	}
	if _, err := utils.ParseTimeToMinutes(c.Reminders.Time); err != nil {
		return apperrors.Invalid("reminders.time", "%q is not HH:MM", c.Reminders.Time)
	}
	return nil
}

// StoragePath returns Storage with ~ expanded.
func (c *Config) StoragePath() string {
	return ExpandPath(c.Storage)
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Keys lists the settable dotted keys.
var Keys = []string{
	"storage", "timezone", "debug", "profile.name", "profile.email",
	"recommendations.max", "reminders.time", "reminders.webhook_url",
}

// Set assigns one dotted key from its string form and validates the result.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "storage":
		next.Storage = value
	case "timezone":
		next.Timezone = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return apperrors.Invalid(key, "%q is not a boolean", value)
		}
		next.Debug = b
	case "profile.name":
		next.Profile.Name = value
	case "profile.email":
		next.Profile.Email = value
	case "recommendations.max":
		n, err := strconv.Atoi(value)
		if err != nil {
			return apperrors.Invalid(key, "%q is not a number", value)
		}
		next.Recommendations.Max = n
	case "reminders.time":
		next.Reminders.Time = value
	case "reminders.webhook_url":
		next.Reminders.WebhookURL = value
	default:
		return apperrors.Invalid("key", "unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
