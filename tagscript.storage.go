package tagscript

import (
	"context"
	"sync"
	"time"
)

// StoredScript is a named tag script with metadata, as persisted by a
// ScriptStorage backend. Hosts typically key scripts per tenant (a chat
// bot's per-guild tags, for instance) through the Metadata map.
type StoredScript struct {
	// Name is the lookup key.
	Name string `json:"name"`

	// Source is the raw tag script.
	Source string `json:"source"`

	// Description is optional human-readable text.
	Description string `json:"description,omitempty"`

	// Version increments on every save of the same name.
	Version int `json:"version"`

	// Metadata holds arbitrary host-defined key/value pairs.
	Metadata map[string]string `json:"metadata,omitempty"`

	// CreatedAt is when the script was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when this version was saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// ScriptStorage persists named scripts. Implementations must be safe for
// concurrent use.
type ScriptStorage interface {
	// Get retrieves a script by name.
	Get(ctx context.Context, name string) (*StoredScript, error)

	// Save stores a script, incrementing its version when the name exists.
	Save(ctx context.Context, script *StoredScript) error

	// Delete removes a script by name.
	Delete(ctx context.Context, name string) error

	// List returns all stored script names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources. Further calls fail.
	Close() error
}

// StorageDriver opens a storage backend from a connection string.
type StorageDriver interface {
	Open(connectionString string) (ScriptStorage, error)
}

var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver makes a driver available to OpenStorage. Drivers
// typically register themselves from init.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()
	storageDrivers[name] = driver
}

// OpenStorage opens a storage backend by driver name.
func OpenStorage(driver, connectionString string) (ScriptStorage, error) {
	storageDriversMu.RLock()
	d, ok := storageDrivers[driver]
	storageDriversMu.RUnlock()
	if !ok {
		return nil, NewUnknownDriverError(driver)
	}
	return d.Open(connectionString)
}

// copyStoredScript returns a defensive copy so callers cannot mutate a
// backend's internal state.
func copyStoredScript(s *StoredScript) *StoredScript {
	if s == nil {
		return nil
	}
	out := *s
	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}
