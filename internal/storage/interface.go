package storage

import "errors"

// Blob keys. Each holds one JSON-encoded snapshot.
const (
	KeyHabits      = "habits"
	KeyUserProfile = "userProfile"
	KeyAssessment  = "assessment"
)

// Keys lists every blob key in load order.
var Keys = []string{KeyHabits, KeyUserProfile, KeyAssessment}

var (
	// ErrBlobNotFound is returned by Get when nothing has been saved under a key
	ErrBlobNotFound = errors.New("blob not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'habitual init' first")
)

// Provider is an opaque key-value store of serialized snapshots.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error

	// Utils
	GetConfigPath() string
}
