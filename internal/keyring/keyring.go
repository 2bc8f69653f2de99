// Package keyring keeps secrets (the PostgreSQL connection string and the
// notification webhook URL) in the OS keyring rather than in config files.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitual/internal/constants"
)

const (
	connectionUser = constants.DefaultKeyringUser
	webhookUser    = "webhook-url"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(user, what, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
// Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) { return get(connectionUser) }

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error {
	return set(connectionUser, "connection string", connStr)
}

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error { return del(connectionUser, "connection string") }

// GetWebhookURL retrieves the notification webhook URL.
func GetWebhookURL() (string, error) { return get(webhookUser) }

// SetWebhookURL stores the notification webhook URL.
func SetWebhookURL(u string) error { return set(webhookUser, "webhook URL", u) }

// DeleteWebhookURL removes the notification webhook URL.
func DeleteWebhookURL() error { return del(webhookUser, "webhook URL") }

// IsAvailable checks if the OS keyring is available on the current system.
// A not-found answer still proves the keyring responded.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
