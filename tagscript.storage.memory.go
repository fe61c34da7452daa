package tagscript

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory ScriptStorage, intended for testing and
// development. All data is lost when the process terminates.
type MemoryStorage struct {
	mu      sync.RWMutex
	scripts map[string]*StoredScript
	closed  bool
}

// MemoryStorageDriver creates MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage. The connection string is ignored.
func (d *MemoryStorageDriver) Open(_ string) (ScriptStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates an empty in-memory script storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		scripts: make(map[string]*StoredScript),
	}
}

// Get retrieves a script by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredScript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	script, ok := s.scripts[name]
	if !ok {
		return nil, NewScriptNotFoundError(name)
	}
	return copyStoredScript(script), nil
}

// Save stores a script, incrementing the version when the name exists.
func (s *MemoryStorage) Save(ctx context.Context, script *StoredScript) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if script == nil || script.Name == "" {
		return NewScriptNameEmptyError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now().UTC()
	stored := copyStoredScript(script)
	stored.UpdatedAt = now
	if existing, ok := s.scripts[script.Name]; ok {
		stored.Version = existing.Version + 1
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.Version = 1
		stored.CreatedAt = now
	}
	s.scripts[script.Name] = stored

	// Reflect version/timestamps back to the caller, like a DB save would.
	script.Version = stored.Version
	script.CreatedAt = stored.CreatedAt
	script.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a script by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}
	if _, ok := s.scripts[name]; !ok {
		return NewScriptNotFoundError(name)
	}
	delete(s.scripts, name)
	return nil
}

// List returns all stored script names in sorted order.
func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	names := make([]string, 0, len(s.scripts))
	for name := range s.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the storage closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
